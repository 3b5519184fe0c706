package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/garantias-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarrantyUC *usecase.WarrantyUseCase
	LocationUC *usecase.LocationUseCase
	LogUC      *usecase.LocationLogUseCase
	Identity   IdentityResolver
}

// Router registra las rutas de la API. Todo /api requiere identidad resuelta.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.Identity))

	warranties := api.Group("/warranties")
	warrantyHandler := NewWarrantyHandler(deps.WarrantyUC)
	warranties.Get("/", warrantyHandler.List)
	warranties.Post("/", warrantyHandler.Create)
	warranties.Put("/", warrantyHandler.Update)
	warranties.Delete("/", warrantyHandler.Delete)
	warranties.Get("/:id", warrantyHandler.GetByID)
	warranties.Get("/:id/receipt", warrantyHandler.Receipt)

	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Post("/", locationHandler.Create)
	locations.Patch("/:id/active", locationHandler.ToggleActive)
	locations.Delete("/:id", locationHandler.Delete)

	logs := api.Group("/logs")
	logHandler := NewLocationLogHandler(deps.LogUC)
	logs.Get("/", logHandler.List)
}
