package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListWarrantiesQuery parámetros de listado del dashboard.
type ListWarrantiesQuery struct {
	Page       int      `query:"page"`
	Limit      int      `query:"limit"`
	Search     string   `query:"search"`   // nombre de cliente, prefijo de boleta o RUT
	Statuses   []string `query:"-"`        // parseado desde status=pending,ready
	LocationID string   `query:"location"`
}

// CreateWarrantyRequest entrada para registrar el ingreso de un equipo.
type CreateWarrantyRequest struct {
	ClientName         string          `json:"clientName" validate:"required"`
	InvoiceNumber      int64           `json:"invoiceNumber"`
	RUT                string          `json:"rut"`
	Contact            string          `json:"contact"`
	Email              string          `json:"email"`
	Product            string          `json:"product" validate:"required"`
	FailureDescription string          `json:"failureDescription"`
	SKU                string          `json:"sku"`
	LocationID         string          `json:"locationId"`
	EntryDate          *time.Time      `json:"entryDate"`
	Status             string          `json:"status"`
	RepairCost         decimal.Decimal `json:"repairCost"`
	Notes              string          `json:"notes"`
}

// UpdateWarrantyRequest entrada de actualización. El dashboard envía el
// registro completo, incluido el id.
type UpdateWarrantyRequest struct {
	ID                 string          `json:"id" validate:"required"`
	ClientName         string          `json:"clientName"`
	InvoiceNumber      int64           `json:"invoiceNumber"`
	RUT                string          `json:"rut"`
	Contact            string          `json:"contact"`
	Email              string          `json:"email"`
	Product            string          `json:"product"`
	FailureDescription string          `json:"failureDescription"`
	SKU                string          `json:"sku"`
	LocationID         string          `json:"locationId"`
	ReadyDate          *time.Time      `json:"readyDate"`
	DeliveryDate       *time.Time      `json:"deliveryDate"`
	Status             string          `json:"status"`
	RepairCost         decimal.Decimal `json:"repairCost"`
	Notes              string          `json:"notes"`
}

// WarrantyResponse salida de una garantía.
type WarrantyResponse struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"userId"`
	ClientName         string          `json:"clientName"`
	InvoiceNumber      int64           `json:"invoiceNumber,omitempty"`
	RUT                string          `json:"rut,omitempty"`
	Contact            string          `json:"contact,omitempty"`
	Email              string          `json:"email,omitempty"`
	Product            string          `json:"product"`
	FailureDescription string          `json:"failureDescription,omitempty"`
	SKU                string          `json:"sku,omitempty"`
	LocationID         string          `json:"locationId"`
	EntryDate          time.Time       `json:"entryDate"`
	ReadyDate          *time.Time      `json:"readyDate,omitempty"`
	DeliveryDate       *time.Time      `json:"deliveryDate,omitempty"`
	Status             string          `json:"status"`
	RepairCost         decimal.Decimal `json:"repairCost"`
	Notes              string          `json:"notes,omitempty"`
}

// WarrantyListResponse página de garantías.
type WarrantyListResponse struct {
	Data  []WarrantyResponse `json:"data"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
