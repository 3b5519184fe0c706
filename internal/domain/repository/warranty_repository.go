package repository

import "github.com/jhoicas/garantias-api/internal/domain/entity"

// WarrantyFilter filtros de listado. El caso de uso arma las variantes de RUT
// (con y sin puntuación) para el match OR que espera la búsqueda libre.
type WarrantyFilter struct {
	Search      string   // texto libre: nombre de cliente o prefijo de boleta
	RUTVariants []string // formas alternativas del RUT buscado
	Statuses    []string // subconjunto de pending/ready/completed
	LocationID  string
	Limit       int
	Offset      int
}

// WarrantyRepository define el puerto de persistencia para Warranty (DIP).
// Todo listado y conteo va filtrado por userID antes que cualquier otro filtro.
type WarrantyRepository interface {
	Create(warranty *entity.Warranty) error
	GetByID(id string) (*entity.Warranty, error)
	Update(warranty *entity.Warranty) error
	ListByUser(userID string, f WarrantyFilter) ([]*entity.Warranty, int, error)
	ListByIDs(ids []string) ([]*entity.Warranty, error)
	CountByLocation(userID, locationID string) (active, completed int, err error)
	Delete(id string) error
}
