package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/garantias-api/internal/domain/entity"
	"github.com/jhoicas/garantias-api/internal/domain/repository"
)

var _ repository.LocationLogRepository = (*LocationLogRepo)(nil)

// LocationLogRepo implementación del puerto LocationLogRepository sobre
// PostgreSQL. El historial es append-only: solo INSERT y SELECT.
type LocationLogRepo struct {
	q Querier
}

// NewLocationLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationLogRepository(q Querier) *LocationLogRepo {
	return &LocationLogRepo{q: q}
}

// Create persiste un log de movimiento.
func (r *LocationLogRepo) Create(l *entity.LocationLog) error {
	query := `
		INSERT INTO location_logs (id, user_id, warranty_id, from_location_id, to_location_id, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.UserID, l.WarrantyID, l.FromLocationID, l.ToLocationID, l.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("insert location log: %w", err)
	}
	return nil
}

// ListByUser lista el historial del usuario con filtros y total, ordenado por
// fecha de cambio descendente.
func (r *LocationLogRepo) ListByUser(userID string, f repository.LogFilter) ([]*entity.LocationLog, int, error) {
	where := []string{"user_id = $1"}
	args := []any{userID}

	if f.From != nil {
		where = append(where, fmt.Sprintf("changed_at >= $%d", len(args)+1))
		args = append(args, *f.From)
	}
	if f.To != nil {
		where = append(where, fmt.Sprintf("changed_at <= $%d", len(args)+1))
		args = append(args, *f.To)
	}
	if f.LocationID != "" {
		where = append(where, fmt.Sprintf("(from_location_id = $%d OR to_location_id = $%d)", len(args)+1, len(args)+1))
		args = append(args, f.LocationID)
	}
	cond := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM location_logs WHERE ` + cond
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count location logs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, warranty_id, from_location_id, to_location_id, changed_at
		FROM location_logs WHERE %s ORDER BY changed_at DESC LIMIT $%d OFFSET $%d`,
		cond, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list location logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.LocationLog
	for rows.Next() {
		var l entity.LocationLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.WarrantyID, &l.FromLocationID, &l.ToLocationID, &l.ChangedAt); err != nil {
			return nil, 0, fmt.Errorf("scan location log: %w", err)
		}
		list = append(list, &l)
	}
	return list, total, rows.Err()
}

// ExistsForLocation indica si algún log del usuario referencia la ubicación
// como origen o destino.
func (r *LocationLogRepo) ExistsForLocation(userID, locationID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM location_logs
			WHERE user_id = $1 AND (from_location_id = $2 OR to_location_id = $2)
		)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, userID, locationID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists location log for location: %w", err)
	}
	return exists, nil
}

// ExistsForWarranty indica si algún log del usuario referencia la garantía.
func (r *LocationLogRepo) ExistsForWarranty(userID, warrantyID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM location_logs WHERE user_id = $1 AND warranty_id = $2
		)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, userID, warrantyID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists location log for warranty: %w", err)
	}
	return exists, nil
}
