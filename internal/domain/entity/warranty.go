package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Warranty.
const (
	StatusPending   = "pending"   // en taller, sin reparar
	StatusReady     = "ready"     // reparada, lista para retiro
	StatusCompleted = "completed" // entregada al cliente (terminal)
)

// ValidStatus indica si s es uno de los estados conocidos.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusReady || s == StatusCompleted
}

// Warranty representa una garantía de servicio técnico: un equipo que el
// cliente dejó en reparación y que se mueve entre ubicaciones hasta su entrega.
// Una vez en estado completed el registro es inmutable.
type Warranty struct {
	ID                 string
	UserID             string // dueño del registro (multi-tenant)
	InvoiceNumber      int64  // número de boleta/factura, 0 = sin asignar
	ClientName         string
	RUT                string // RUT chileno formateado (12.345.678-5), opcional
	Contact            string
	Email              string
	Product            string
	FailureDescription string
	SKU                string
	LocationID         string
	EntryDate          time.Time
	ReadyDate          *time.Time // fecha en que quedó lista
	DeliveryDate       *time.Time // fecha de entrega al cliente
	Status             string     // pending, ready, completed
	RepairCost         decimal.Decimal
	Notes              string
}
