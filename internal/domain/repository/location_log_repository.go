package repository

import (
	"time"

	"github.com/jhoicas/garantias-api/internal/domain/entity"
)

// LogFilter filtros para el historial de movimientos. El rango de fechas es
// inclusivo; el caso de uso extiende To al final del día antes de llegar aquí.
type LogFilter struct {
	From       *time.Time
	To         *time.Time
	LocationID string // match como origen O destino
	Limit      int
	Offset     int
}

// LocationLogRepository define el puerto de persistencia para el historial de
// movimientos (append-only: sin Update ni Delete individual).
type LocationLogRepository interface {
	Create(log *entity.LocationLog) error
	ListByUser(userID string, f LogFilter) ([]*entity.LocationLog, int, error)
	ExistsForLocation(userID, locationID string) (bool, error)
	ExistsForWarranty(userID, warrantyID string) (bool, error)
}
