package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/garantias-api/internal/domain/entity"
	"github.com/jhoicas/garantias-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una nueva ubicación.
func (r *LocationRepo) Create(loc *entity.Location) error {
	query := `
		INSERT INTO locations (id, user_id, name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		loc.ID, loc.UserID, loc.Name, loc.IsActive, loc.CreatedAt, loc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID. Devuelve nil sin error si no existe.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	query := `
		SELECT id, user_id, name, is_active, created_at, updated_at
		FROM locations WHERE id = $1`
	var loc entity.Location
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&loc.ID, &loc.UserID, &loc.Name, &loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &loc, nil
}

// Update actualiza nombre y estado activo de una ubicación.
func (r *LocationRepo) Update(loc *entity.Location) error {
	query := `
		UPDATE locations SET name = $2, is_active = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		loc.ID, loc.Name, loc.IsActive, loc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// ListByUser lista las ubicaciones del usuario, opcionalmente solo activas.
func (r *LocationRepo) ListByUser(userID string, onlyActive bool) ([]*entity.Location, error) {
	query := `
		SELECT id, user_id, name, is_active, created_at, updated_at
		FROM locations WHERE user_id = $1`
	if onlyActive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Location
	for rows.Next() {
		var loc entity.Location
		if err := rows.Scan(&loc.ID, &loc.UserID, &loc.Name, &loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &loc)
	}
	return list, rows.Err()
}

// ListByIDs obtiene ubicaciones por un conjunto de IDs (join del historial).
func (r *LocationRepo) ListByIDs(ids []string) ([]*entity.Location, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, user_id, name, is_active, created_at, updated_at
		FROM locations WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("list locations by ids: %w", err)
	}
	defer rows.Close()

	var list []*entity.Location
	for rows.Next() {
		var loc entity.Location
		if err := rows.Scan(&loc.ID, &loc.UserID, &loc.Name, &loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &loc)
	}
	return list, rows.Err()
}

// Delete elimina una ubicación por ID. El guard de historial vive en el caso de uso.
func (r *LocationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}
