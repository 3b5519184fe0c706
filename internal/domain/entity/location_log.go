package entity

import "time"

// LocationLog registra el movimiento de una garantía entre ubicaciones.
// Se crea únicamente cuando cambia la ubicación de una garantía (o en el
// ingreso, si está habilitado) y nunca se actualiza ni elimina.
// UserID se denormaliza desde la garantía: los logs no tienen dueño propio
// y el filtro por tenant debe resolverse sin joins.
type LocationLog struct {
	ID             string
	UserID         string
	WarrantyID     string
	FromLocationID string // vacío en el log de ingreso
	ToLocationID   string
	ChangedAt      time.Time
}
