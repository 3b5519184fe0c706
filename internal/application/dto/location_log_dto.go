package dto

import "time"

// ListLogsQuery parámetros del historial de movimientos. Fechas en formato
// YYYY-MM-DD; el rango es inclusivo y endDate se extiende al fin del día.
type ListLogsQuery struct {
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
	LocationID string `query:"locationId"`
}

// LocationLogResponse fila del historial ya unida con la garantía y los
// nombres de ubicación, lista para mostrar.
type LocationLogResponse struct {
	ID            string    `json:"id"`
	WarrantyID    string    `json:"warrantyId"`
	InvoiceNumber string    `json:"invoiceNumber"`
	Product       string    `json:"product"`
	ClientName    string    `json:"clientName"`
	FromLocation  string    `json:"fromLocation"`
	ToLocation    string    `json:"toLocation"`
	ChangedAt     time.Time `json:"changedAt"`
}

// LocationLogListResponse página del historial.
type LocationLogListResponse struct {
	Data  []LocationLogResponse `json:"data"`
	Total int                   `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
