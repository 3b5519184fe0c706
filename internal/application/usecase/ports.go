package usecase

import (
	"context"

	"github.com/jhoicas/garantias-api/internal/domain/entity"
	"github.com/jhoicas/garantias-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repos atados a una misma transacción. Se usa para
// que la actualización de una garantía y el log de movimiento que genera se
// persistan juntos o no se persista ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		warranties repository.WarrantyRepository,
		logs repository.LocationLogRepository,
	) error) error
}

// ReceiptGenerator genera el comprobante de ingreso imprimible de una garantía.
type ReceiptGenerator interface {
	Generate(ctx context.Context, warranty *entity.Warranty, locationName string) ([]byte, error)
}
