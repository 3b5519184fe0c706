package usecase

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/garantias-api/internal/domain/entity"
	"github.com/jhoicas/garantias-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repos en memoria para los tests de casos de uso. Replican el contrato de los
// adaptadores de PostgreSQL, incluido el filtrado y el orden de los listados.
// ──────────────────────────────────────────────────────────────────────────────

type memWarrantyRepo struct {
	items map[string]*entity.Warranty
}

func newMemWarrantyRepo() *memWarrantyRepo {
	return &memWarrantyRepo{items: make(map[string]*entity.Warranty)}
}

func (r *memWarrantyRepo) Create(w *entity.Warranty) error {
	cp := *w
	r.items[w.ID] = &cp
	return nil
}

func (r *memWarrantyRepo) GetByID(id string) (*entity.Warranty, error) {
	w, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *memWarrantyRepo) Update(w *entity.Warranty) error {
	cp := *w
	r.items[w.ID] = &cp
	return nil
}

func (r *memWarrantyRepo) ListByUser(userID string, f repository.WarrantyFilter) ([]*entity.Warranty, int, error) {
	var matched []*entity.Warranty
	for _, w := range r.items {
		if w.UserID != userID {
			continue
		}
		if f.Search != "" && !matchSearch(w, f) {
			continue
		}
		if len(f.Statuses) > 0 && !contains(f.Statuses, w.Status) {
			continue
		}
		if f.LocationID != "" && w.LocationID != f.LocationID {
			continue
		}
		cp := *w
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].EntryDate.Equal(matched[j].EntryDate) {
			return matched[i].EntryDate.After(matched[j].EntryDate)
		}
		return matched[i].ID < matched[j].ID
	})
	total := len(matched)
	if f.Offset >= total {
		return nil, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return matched[f.Offset:end], total, nil
}

func matchSearch(w *entity.Warranty, f repository.WarrantyFilter) bool {
	if strings.Contains(strings.ToLower(w.ClientName), strings.ToLower(f.Search)) {
		return true
	}
	if w.InvoiceNumber != 0 && strings.HasPrefix(strconv.FormatInt(w.InvoiceNumber, 10), f.Search) {
		return true
	}
	return contains(f.RUTVariants, w.RUT)
}

func (r *memWarrantyRepo) ListByIDs(ids []string) ([]*entity.Warranty, error) {
	var list []*entity.Warranty
	for _, id := range ids {
		if w, ok := r.items[id]; ok {
			cp := *w
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *memWarrantyRepo) CountByLocation(userID, locationID string) (int, int, error) {
	var active, completed int
	for _, w := range r.items {
		if w.UserID != userID || w.LocationID != locationID {
			continue
		}
		if w.Status == entity.StatusCompleted {
			completed++
		} else {
			active++
		}
	}
	return active, completed, nil
}

func (r *memWarrantyRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

type memLocationRepo struct {
	items map[string]*entity.Location
}

func newMemLocationRepo() *memLocationRepo {
	return &memLocationRepo{items: make(map[string]*entity.Location)}
}

func (r *memLocationRepo) Create(loc *entity.Location) error {
	cp := *loc
	r.items[loc.ID] = &cp
	return nil
}

func (r *memLocationRepo) GetByID(id string) (*entity.Location, error) {
	loc, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *loc
	return &cp, nil
}

func (r *memLocationRepo) Update(loc *entity.Location) error {
	cp := *loc
	r.items[loc.ID] = &cp
	return nil
}

func (r *memLocationRepo) ListByUser(userID string, onlyActive bool) ([]*entity.Location, error) {
	var list []*entity.Location
	for _, loc := range r.items {
		if loc.UserID != userID {
			continue
		}
		if onlyActive && !loc.IsActive {
			continue
		}
		cp := *loc
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *memLocationRepo) ListByIDs(ids []string) ([]*entity.Location, error) {
	var list []*entity.Location
	for _, id := range ids {
		if loc, ok := r.items[id]; ok {
			cp := *loc
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *memLocationRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

type memLogRepo struct {
	items []*entity.LocationLog
}

func newMemLogRepo() *memLogRepo { return &memLogRepo{} }

func (r *memLogRepo) Create(l *entity.LocationLog) error {
	cp := *l
	r.items = append(r.items, &cp)
	return nil
}

func (r *memLogRepo) ListByUser(userID string, f repository.LogFilter) ([]*entity.LocationLog, int, error) {
	var matched []*entity.LocationLog
	for _, l := range r.items {
		if l.UserID != userID {
			continue
		}
		if f.From != nil && l.ChangedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && l.ChangedAt.After(*f.To) {
			continue
		}
		if f.LocationID != "" && l.FromLocationID != f.LocationID && l.ToLocationID != f.LocationID {
			continue
		}
		cp := *l
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ChangedAt.After(matched[j].ChangedAt) })
	total := len(matched)
	if f.Offset >= total {
		return nil, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return matched[f.Offset:end], total, nil
}

func (r *memLogRepo) ExistsForLocation(userID, locationID string) (bool, error) {
	for _, l := range r.items {
		if l.UserID == userID && (l.FromLocationID == locationID || l.ToLocationID == locationID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memLogRepo) ExistsForWarranty(userID, warrantyID string) (bool, error) {
	for _, l := range r.items {
		if l.UserID == userID && l.WarrantyID == warrantyID {
			return true, nil
		}
	}
	return false, nil
}

// stubTxRunner ejecuta el callback sobre los mismos repos en memoria, sin
// transacción real.
type stubTxRunner struct {
	warranties repository.WarrantyRepository
	logs       repository.LocationLogRepository
}

func (r *stubTxRunner) Run(_ context.Context, fn func(
	warranties repository.WarrantyRepository,
	logs repository.LocationLogRepository,
) error) error {
	return fn(r.warranties, r.logs)
}

// stubReceipts devuelve bytes fijos.
type stubReceipts struct{}

func (stubReceipts) Generate(context.Context, *entity.Warranty, string) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func mustTime(t string) time.Time {
	parsed, err := time.Parse(time.RFC3339, t)
	if err != nil {
		panic(err)
	}
	return parsed
}
