package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/garantias-api/internal/application/dto"
	"github.com/jhoicas/garantias-api/internal/domain"
)

// errorResponse mapea los errores de dominio a un status HTTP preciso. El
// sistema original respondía 500 para todo; aquí cada error lleva su código.
func errorResponse(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "INVALID_STATE"
	case errors.Is(err, domain.ErrInUse):
		status, code = fiber.StatusConflict, "IN_USE"
	}
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		// No filtrar detalles internos al cliente
		message = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}
