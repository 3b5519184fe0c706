package dto

import "time"

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// ToggleLocationRequest entrada para activar o desactivar una ubicación.
type ToggleLocationRequest struct {
	Active bool `json:"active"`
}

// LocationResponse salida de una ubicación, enriquecida con su uso para que
// el dashboard decida entre eliminar y desactivar.
type LocationResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	IsActive       bool      `json:"isActive"`
	ActiveCount    int       `json:"activeCount"`
	CompletedCount int       `json:"completedCount"`
	HasHistory     bool      `json:"hasHistory"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
