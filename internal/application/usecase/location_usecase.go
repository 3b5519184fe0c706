package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/garantias-api/internal/application/dto"
	"github.com/jhoicas/garantias-api/internal/domain"
	"github.com/jhoicas/garantias-api/internal/domain/entity"
	"github.com/jhoicas/garantias-api/internal/domain/repository"
	"github.com/jhoicas/garantias-api/pkg/normalize"
)

// LocationUseCase casos de uso sobre ubicaciones. El chequeo de nombre
// duplicado es por comparación normalizada en memoria: "Taller", "TALLER " y
// "táller" son el mismo nombre, y eso no lo resuelve un unique constraint.
type LocationUseCase struct {
	locations  repository.LocationRepository
	warranties repository.WarrantyRepository
	logs       repository.LocationLogRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(
	locations repository.LocationRepository,
	warranties repository.WarrantyRepository,
	logs repository.LocationLogRepository,
) *LocationUseCase {
	return &LocationUseCase{locations: locations, warranties: warranties, logs: logs}
}

// List devuelve las ubicaciones del usuario enriquecidas con conteos de
// garantías y si tienen historial. Los conteos por ubicación se consultan en
// paralelo, como hacía el dashboard con sus lecturas simultáneas.
func (uc *LocationUseCase) List(userID string, onlyActive bool) ([]dto.LocationResponse, error) {
	list, err := uc.locations.ListByUser(userID, onlyActive)
	if err != nil {
		return nil, err
	}

	out := make([]dto.LocationResponse, len(list))
	var g errgroup.Group
	for i, loc := range list {
		i, loc := i, loc
		g.Go(func() error {
			counts, err := uc.countsFor(userID, loc.ID)
			if err != nil {
				return err
			}
			out[i] = dto.LocationResponse{
				ID:             loc.ID,
				Name:           loc.Name,
				IsActive:       loc.IsActive,
				ActiveCount:    counts.ActiveCount,
				CompletedCount: counts.CompletedCount,
				HasHistory:     counts.HasHistory(),
				CreatedAt:      loc.CreatedAt,
				UpdatedAt:      loc.UpdatedAt,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create crea una ubicación. Falla con ErrDuplicate si el usuario ya tiene
// una con el mismo nombre normalizado.
func (uc *LocationUseCase) Create(userID, name string) (*dto.LocationResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.locations.ListByUser(userID, false)
	if err != nil {
		return nil, err
	}
	for _, loc := range existing {
		if normalize.Equal(loc.Name, name) {
			return nil, domain.ErrDuplicate
		}
	}

	now := time.Now()
	loc := &entity.Location{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.locations.Create(loc); err != nil {
		return nil, err
	}
	return &dto.LocationResponse{
		ID:        loc.ID,
		Name:      loc.Name,
		IsActive:  loc.IsActive,
		CreatedAt: loc.CreatedAt,
		UpdatedAt: loc.UpdatedAt,
	}, nil
}

// ToggleActive activa o desactiva una ubicación del usuario. Desactivar
// siempre está permitido, aun con historial.
func (uc *LocationUseCase) ToggleActive(userID, id string, active bool) error {
	loc, err := uc.ownedLocation(userID, id)
	if err != nil {
		return err
	}
	loc.IsActive = active
	loc.UpdatedAt = time.Now()
	return uc.locations.Update(loc)
}

// Delete elimina una ubicación sin historial. Con cualquier garantía que la
// referencie o cualquier log que la tenga como origen o destino, falla con
// ErrInUse y solo queda desactivarla.
func (uc *LocationUseCase) Delete(userID, id string) error {
	loc, err := uc.ownedLocation(userID, id)
	if err != nil {
		return err
	}
	counts, err := uc.countsFor(userID, loc.ID)
	if err != nil {
		return err
	}
	if counts.HasHistory() {
		return domain.ErrInUse
	}
	return uc.locations.Delete(id)
}

func (uc *LocationUseCase) ownedLocation(userID, id string) (*entity.Location, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.locations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	if loc.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return loc, nil
}

func (uc *LocationUseCase) countsFor(userID, locationID string) (entity.LocationCounts, error) {
	active, completed, err := uc.warranties.CountByLocation(userID, locationID)
	if err != nil {
		return entity.LocationCounts{}, err
	}
	hasLogs, err := uc.logs.ExistsForLocation(userID, locationID)
	if err != nil {
		return entity.LocationCounts{}, err
	}
	return entity.LocationCounts{ActiveCount: active, CompletedCount: completed, HasLogs: hasLogs}, nil
}
