package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/garantias-api/internal/domain/entity"
	"github.com/jhoicas/garantias-api/internal/domain/repository"
)

var _ repository.WarrantyRepository = (*WarrantyRepo)(nil)

const warrantyColumns = `id, user_id, invoice_number, client_name, rut, contact, email, product,
	failure_description, sku, location_id, entry_date, ready_date, delivery_date, status, repair_cost, notes`

// WarrantyRepo implementación del puerto WarrantyRepository sobre PostgreSQL
// (usable con pool o tx).
type WarrantyRepo struct {
	q Querier
}

// NewWarrantyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarrantyRepository(q Querier) *WarrantyRepo {
	return &WarrantyRepo{q: q}
}

// Create persiste una nueva garantía.
func (r *WarrantyRepo) Create(w *entity.Warranty) error {
	query := `
		INSERT INTO warranties (` + warrantyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		w.ID, w.UserID, w.InvoiceNumber, w.ClientName, w.RUT, w.Contact, w.Email, w.Product,
		w.FailureDescription, w.SKU, w.LocationID, w.EntryDate, w.ReadyDate, w.DeliveryDate,
		w.Status, w.RepairCost, w.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert warranty: %w", err)
	}
	return nil
}

// GetByID obtiene una garantía por ID. Devuelve nil sin error si no existe.
func (r *WarrantyRepo) GetByID(id string) (*entity.Warranty, error) {
	query := `SELECT ` + warrantyColumns + ` FROM warranties WHERE id = $1`
	w, err := scanWarranty(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warranty: %w", err)
	}
	return w, nil
}

// Update actualiza todos los campos mutables de una garantía.
func (r *WarrantyRepo) Update(w *entity.Warranty) error {
	query := `
		UPDATE warranties SET
			invoice_number = $2, client_name = $3, rut = $4, contact = $5, email = $6,
			product = $7, failure_description = $8, sku = $9, location_id = $10,
			ready_date = $11, delivery_date = $12, status = $13, repair_cost = $14, notes = $15
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		w.ID, w.InvoiceNumber, w.ClientName, w.RUT, w.Contact, w.Email,
		w.Product, w.FailureDescription, w.SKU, w.LocationID,
		w.ReadyDate, w.DeliveryDate, w.Status, w.RepairCost, w.Notes,
	)
	if err != nil {
		return fmt.Errorf("update warranty: %w", err)
	}
	return nil
}

// ListByUser lista garantías del usuario con filtros y total. El filtro de
// dueño va siempre primero; la búsqueda libre es un OR entre nombre de
// cliente (ILIKE), prefijo de número de boleta y las variantes de RUT.
func (r *WarrantyRepo) ListByUser(userID string, f repository.WarrantyFilter) ([]*entity.Warranty, int, error) {
	where := []string{"user_id = $1"}
	args := []any{userID}

	if f.Search != "" {
		clause := fmt.Sprintf("(client_name ILIKE '%%' || $%d || '%%' OR invoice_number::text LIKE $%d || '%%'",
			len(args)+1, len(args)+2)
		args = append(args, f.Search, f.Search)
		if len(f.RUTVariants) > 0 {
			clause += fmt.Sprintf(" OR rut = ANY($%d)", len(args)+1)
			args = append(args, f.RUTVariants)
		}
		clause += ")"
		where = append(where, clause)
	}
	if len(f.Statuses) > 0 {
		where = append(where, fmt.Sprintf("status = ANY($%d)", len(args)+1))
		args = append(args, f.Statuses)
	}
	if f.LocationID != "" {
		where = append(where, fmt.Sprintf("location_id = $%d", len(args)+1))
		args = append(args, f.LocationID)
	}
	cond := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM warranties WHERE ` + cond
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count warranties: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM warranties WHERE %s ORDER BY entry_date DESC LIMIT $%d OFFSET $%d`,
		warrantyColumns, cond, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list warranties: %w", err)
	}
	defer rows.Close()

	var list []*entity.Warranty
	for rows.Next() {
		w, err := scanWarranty(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan warranty: %w", err)
		}
		list = append(list, w)
	}
	return list, total, rows.Err()
}

// ListByIDs obtiene garantías por un conjunto de IDs (join del historial).
func (r *WarrantyRepo) ListByIDs(ids []string) ([]*entity.Warranty, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + warrantyColumns + ` FROM warranties WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("list warranties by ids: %w", err)
	}
	defer rows.Close()

	var list []*entity.Warranty
	for rows.Next() {
		w, err := scanWarranty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warranty: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// CountByLocation cuenta garantías del usuario en una ubicación, separadas en
// no terminales (pending/ready) y completadas.
func (r *WarrantyRepo) CountByLocation(userID, locationID string) (active, completed int, err error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status IN ($3, $4)),
			COUNT(*) FILTER (WHERE status = $5)
		FROM warranties WHERE user_id = $1 AND location_id = $2`
	err = r.q.QueryRow(context.Background(), query,
		userID, locationID, entity.StatusPending, entity.StatusReady, entity.StatusCompleted,
	).Scan(&active, &completed)
	if err != nil {
		return 0, 0, fmt.Errorf("count warranties by location: %w", err)
	}
	return active, completed, nil
}

// Delete elimina una garantía por ID.
func (r *WarrantyRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM warranties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete warranty: %w", err)
	}
	return nil
}

func scanWarranty(row pgx.Row) (*entity.Warranty, error) {
	var w entity.Warranty
	err := row.Scan(
		&w.ID, &w.UserID, &w.InvoiceNumber, &w.ClientName, &w.RUT, &w.Contact, &w.Email, &w.Product,
		&w.FailureDescription, &w.SKU, &w.LocationID, &w.EntryDate, &w.ReadyDate, &w.DeliveryDate,
		&w.Status, &w.RepairCost, &w.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
