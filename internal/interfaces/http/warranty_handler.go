package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/garantias-api/internal/application/dto"
	"github.com/jhoicas/garantias-api/internal/application/usecase"
)

// WarrantyHandler maneja las peticiones HTTP para Warranty (protegido).
type WarrantyHandler struct {
	uc *usecase.WarrantyUseCase
}

// NewWarrantyHandler construye el handler.
func NewWarrantyHandler(uc *usecase.WarrantyUseCase) *WarrantyHandler {
	return &WarrantyHandler{uc: uc}
}

// List godoc
// @Summary      Listar garantías
// @Tags         warranties
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página"         default(1)
// @Param        limit     query  int     false  "Tamaño página"  default(20)
// @Param        search    query  string  false  "Cliente, N° boleta o RUT"
// @Param        status    query  string  false  "Estados separados por coma (pending,ready,completed)"
// @Param        location  query  string  false  "ID de ubicación"
// @Success      200  {object}  dto.WarrantyListResponse
// @Router       /api/warranties [get]
func (h *WarrantyHandler) List(c *fiber.Ctx) error {
	q := dto.ListWarrantiesQuery{
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", dto.DefaultPageSize),
		Search:     c.Query("search"),
		LocationID: c.Query("location"),
	}
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				q.Statuses = append(q.Statuses, s)
			}
		}
	}
	out, err := h.uc.List(GetUserID(c), q)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener garantía por ID
// @Tags         warranties
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la garantía"
// @Success      200  {object}  dto.WarrantyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warranties/{id} [get]
func (h *WarrantyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetUserID(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar ingreso de garantía
// @Tags         warranties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarrantyRequest  true  "Datos del ingreso"
// @Success      201   {object}  dto.WarrantyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/warranties [post]
func (h *WarrantyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarrantyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar garantía
// @Description  Una garantía completed es inmutable (409). Si cambia la ubicación se registra el movimiento.
// @Tags         warranties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateWarrantyRequest  true  "Garantía completa con id"
// @Success      200   {object}  dto.WarrantyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warranties [put]
func (h *WarrantyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWarrantyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar garantía
// @Tags         warranties
// @Security     Bearer
// @Produce      json
// @Param        id   query  string  true  "ID de la garantía"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/warranties [delete]
func (h *WarrantyHandler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(GetUserID(c), id); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Receipt godoc
// @Summary      Comprobante de ingreso en PDF
// @Tags         warranties
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la garantía"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warranties/{id}/receipt [get]
func (h *WarrantyHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.Receipt(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="comprobante.pdf"`)
	return c.Send(pdfBytes)
}
