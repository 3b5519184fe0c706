package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/garantias-api/internal/application/dto"
	"github.com/jhoicas/garantias-api/internal/application/usecase"
)

// LocationLogHandler maneja las peticiones HTTP del historial de movimientos (protegido).
type LocationLogHandler struct {
	uc *usecase.LocationLogUseCase
}

// NewLocationLogHandler construye el handler.
func NewLocationLogHandler(uc *usecase.LocationLogUseCase) *LocationLogHandler {
	return &LocationLogHandler{uc: uc}
}

// List godoc
// @Summary      Historial de movimientos
// @Description  Paginado, filtrable por rango de fechas (inclusivo) y por ubicación como origen o destino.
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página"         default(1)
// @Param        limit       query  int     false  "Tamaño página"  default(20)
// @Param        startDate   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        endDate     query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Param        locationId  query  string  false  "ID de ubicación (origen o destino)"
// @Success      200  {object}  dto.LocationLogListResponse
// @Router       /api/logs [get]
func (h *LocationLogHandler) List(c *fiber.Ctx) error {
	q := dto.ListLogsQuery{
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", dto.DefaultPageSize),
		StartDate:  c.Query("startDate"),
		EndDate:    c.Query("endDate"),
		LocationID: c.Query("locationId"),
	}
	out, err := h.uc.List(GetUserID(c), q)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}
