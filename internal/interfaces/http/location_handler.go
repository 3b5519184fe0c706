package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/garantias-api/internal/application/dto"
	"github.com/jhoicas/garantias-api/internal/application/usecase"
)

// LocationHandler maneja las peticiones HTTP para Location (protegido).
type LocationHandler struct {
	uc *usecase.LocationUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// List godoc
// @Summary      Listar ubicaciones con conteos de uso
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        onlyActive  query  bool  false  "Solo activas"  default(false)
// @Success      200  {array}  dto.LocationResponse
// @Router       /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetUserID(c), c.QueryBool("onlyActive", false))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear ubicación
// @Description  El nombre es único por usuario ignorando mayúsculas, tildes y espacios.
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "Nombre de la ubicación"
// @Success      201   {object}  dto.LocationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetUserID(c), in.Name)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ToggleActive godoc
// @Summary      Activar o desactivar ubicación
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la ubicación"
// @Param        body  body  dto.ToggleLocationRequest  true  "Estado deseado"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/active [patch]
func (h *LocationHandler) ToggleActive(c *fiber.Ctx) error {
	var in dto.ToggleLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ToggleActive(GetUserID(c), c.Params("id"), in.Active); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Delete godoc
// @Summary      Eliminar ubicación sin historial
// @Description  Con garantías o movimientos que la referencien responde 409; en ese caso solo se puede desactivar.
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [delete]
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
