package entity

import "time"

// Location representa una ubicación física o lógica donde puede residir un
// equipo en garantía (ej. Taller, Bodega, Mesón de entrega). El nombre es
// único por usuario bajo normalización (case + tildes), validado en el caso
// de uso porque ninguna collation de la DB cubre esa regla.
type Location struct {
	ID        string
	UserID    string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LocationCounts agrega el uso de una ubicación para enriquecer listados.
type LocationCounts struct {
	ActiveCount    int // garantías pending o ready en la ubicación
	CompletedCount int // garantías completed en la ubicación
	HasLogs        bool
}

// HasHistory indica si la ubicación tiene cualquier rastro de uso; con
// historial solo se permite desactivarla, no eliminarla.
func (c LocationCounts) HasHistory() bool {
	return c.ActiveCount > 0 || c.CompletedCount > 0 || c.HasLogs
}
