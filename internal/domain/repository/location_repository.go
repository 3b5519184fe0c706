package repository

import "github.com/jhoicas/garantias-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	Update(location *entity.Location) error
	ListByUser(userID string, onlyActive bool) ([]*entity.Location, error)
	ListByIDs(ids []string) ([]*entity.Location, error)
	Delete(id string) error
}
