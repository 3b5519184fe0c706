package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/garantias-api/internal/application/dto"
	"github.com/jhoicas/garantias-api/internal/domain"
	"github.com/jhoicas/garantias-api/internal/domain/entity"
	"github.com/jhoicas/garantias-api/internal/domain/repository"
	"github.com/jhoicas/garantias-api/pkg/config"
	"github.com/jhoicas/garantias-api/pkg/normalize"
	"github.com/jhoicas/garantias-api/pkg/rut"
)

// WarrantyUseCase casos de uso sobre garantías de servicio técnico. El
// fechado de ready/delivery y el log de cambios de ubicación se aplican aquí,
// no en el cliente, para que el invariante valga sin importar quién llame.
type WarrantyUseCase struct {
	warranties repository.WarrantyRepository
	locations  repository.LocationRepository
	logs       repository.LocationLogRepository
	tx         TxRunner
	receipts   ReceiptGenerator
	policy     config.WarrantyConfig
}

// NewWarrantyUseCase construye el caso de uso.
func NewWarrantyUseCase(
	warranties repository.WarrantyRepository,
	locations repository.LocationRepository,
	logs repository.LocationLogRepository,
	tx TxRunner,
	receipts ReceiptGenerator,
	policy config.WarrantyConfig,
) *WarrantyUseCase {
	return &WarrantyUseCase{
		warranties: warranties,
		locations:  locations,
		logs:       logs,
		tx:         tx,
		receipts:   receipts,
		policy:     policy,
	}
}

// List devuelve una página de garantías del usuario. La búsqueda libre hace
// match sobre nombre de cliente, prefijo del número de boleta y el RUT en sus
// formas con y sin puntuación (los RUT se guardan tal como se escribieron).
func (uc *WarrantyUseCase) List(userID string, q dto.ListWarrantiesQuery) (*dto.WarrantyListResponse, error) {
	page, limit := dto.NormalizePage(q.Page, q.Limit)

	for _, s := range q.Statuses {
		if !entity.ValidStatus(s) {
			return nil, domain.ErrInvalidInput
		}
	}

	search := strings.TrimSpace(q.Search)
	f := repository.WarrantyFilter{
		Search:      search,
		RUTVariants: rut.SearchVariants(search),
		Statuses:    q.Statuses,
		LocationID:  q.LocationID,
		Limit:       limit,
		Offset:      (page - 1) * limit,
	}

	list, total, err := uc.warranties.ListByUser(userID, f)
	if err != nil {
		return nil, err
	}
	data := make([]dto.WarrantyResponse, 0, len(list))
	for _, w := range list {
		data = append(data, *toWarrantyResponse(w))
	}
	return &dto.WarrantyListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

// GetByID obtiene una garantía del usuario.
func (uc *WarrantyUseCase) GetByID(userID, id string) (*dto.WarrantyResponse, error) {
	w, err := uc.ownedWarranty(userID, id)
	if err != nil {
		return nil, err
	}
	return toWarrantyResponse(w), nil
}

// Create registra el ingreso de un equipo. Si no viene ubicación se usa la
// ubicación de ingreso del usuario (se crea si no existe). Según política,
// el ingreso puede dejar su propio log de movimiento, atómico con el alta.
func (uc *WarrantyUseCase) Create(ctx context.Context, userID string, in dto.CreateWarrantyRequest) (*dto.WarrantyResponse, error) {
	if strings.TrimSpace(in.ClientName) == "" || strings.TrimSpace(in.Product) == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.StatusPending
	}
	if !entity.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	locationID := in.LocationID
	if locationID == "" {
		var err error
		locationID, err = uc.intakeLocation(userID)
		if err != nil {
			return nil, err
		}
	}

	entryDate := time.Now()
	if in.EntryDate != nil {
		entryDate = *in.EntryDate
	}

	w := &entity.Warranty{
		ID:                 uuid.New().String(),
		UserID:             userID,
		InvoiceNumber:      in.InvoiceNumber,
		ClientName:         in.ClientName,
		RUT:                in.RUT,
		Contact:            in.Contact,
		Email:              in.Email,
		Product:            in.Product,
		FailureDescription: in.FailureDescription,
		SKU:                in.SKU,
		LocationID:         locationID,
		EntryDate:          entryDate,
		Status:             status,
		RepairCost:         in.RepairCost,
		Notes:              in.Notes,
	}

	if !uc.policy.LogIntake {
		if err := uc.warranties.Create(w); err != nil {
			return nil, err
		}
		return toWarrantyResponse(w), nil
	}

	err := uc.tx.Run(ctx, func(warranties repository.WarrantyRepository, logs repository.LocationLogRepository) error {
		if err := warranties.Create(w); err != nil {
			return err
		}
		return logs.Create(&entity.LocationLog{
			ID:           uuid.New().String(),
			UserID:       userID,
			WarrantyID:   w.ID,
			ToLocationID: locationID,
			ChangedAt:    entryDate,
		})
	})
	if err != nil {
		return nil, err
	}
	return toWarrantyResponse(w), nil
}

// Update actualiza una garantía. Una garantía completed es inmutable. Si la
// ubicación cambia se agrega exactamente un log de movimiento en la misma
// transacción que la actualización.
func (uc *WarrantyUseCase) Update(ctx context.Context, userID string, in dto.UpdateWarrantyRequest) (*dto.WarrantyResponse, error) {
	if in.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Status != "" && !entity.ValidStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Warranty
	err := uc.tx.Run(ctx, func(warranties repository.WarrantyRepository, logs repository.LocationLogRepository) error {
		w, err := warranties.GetByID(in.ID)
		if err != nil {
			return err
		}
		if w == nil {
			return domain.ErrNotFound
		}
		if w.UserID != userID {
			return domain.ErrForbidden
		}
		if w.Status == entity.StatusCompleted {
			return domain.ErrConflict
		}

		if strings.TrimSpace(in.ClientName) == "" || strings.TrimSpace(in.Product) == "" {
			return domain.ErrInvalidInput
		}

		fromLocation := w.LocationID
		locationChanged := in.LocationID != "" && in.LocationID != w.LocationID

		w.ClientName = in.ClientName
		w.InvoiceNumber = in.InvoiceNumber
		w.RUT = in.RUT
		w.Contact = in.Contact
		w.Email = in.Email
		w.Product = in.Product
		w.FailureDescription = in.FailureDescription
		w.SKU = in.SKU
		w.RepairCost = in.RepairCost
		w.Notes = in.Notes
		if in.LocationID != "" {
			w.LocationID = in.LocationID
		}

		status := in.Status
		if status == "" {
			status = w.Status
		}
		applyStatusDates(w, status, in.ReadyDate, in.DeliveryDate)
		w.Status = status

		if err := warranties.Update(w); err != nil {
			return err
		}
		if locationChanged {
			if err := logs.Create(&entity.LocationLog{
				ID:             uuid.New().String(),
				UserID:         w.UserID,
				WarrantyID:     w.ID,
				FromLocationID: fromLocation,
				ToLocationID:   w.LocationID,
				ChangedAt:      time.Now(),
			}); err != nil {
				return err
			}
		}
		updated = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toWarrantyResponse(updated), nil
}

// Delete elimina una garantía del usuario. Por defecto el borrado es
// incondicional (los logs que la referencien quedan con referencia colgante y
// se muestran como Unknown); con DeleteChecksLogs activo se bloquea igual que
// el borrado de ubicaciones.
func (uc *WarrantyUseCase) Delete(userID, id string) error {
	w, err := uc.ownedWarranty(userID, id)
	if err != nil {
		return err
	}
	if uc.policy.DeleteChecksLogs {
		inUse, err := uc.logs.ExistsForWarranty(userID, w.ID)
		if err != nil {
			return err
		}
		if inUse {
			return domain.ErrInUse
		}
	}
	return uc.warranties.Delete(id)
}

// Receipt genera el comprobante de ingreso en PDF.
func (uc *WarrantyUseCase) Receipt(ctx context.Context, userID, id string) ([]byte, error) {
	w, err := uc.ownedWarranty(userID, id)
	if err != nil {
		return nil, err
	}
	locationName := ""
	if w.LocationID != "" {
		loc, err := uc.locations.GetByID(w.LocationID)
		if err != nil {
			return nil, err
		}
		if loc != nil {
			locationName = loc.Name
		}
	}
	return uc.receipts.Generate(ctx, w, locationName)
}

// ownedWarranty obtiene la garantía verificando existencia y pertenencia.
func (uc *WarrantyUseCase) ownedWarranty(userID, id string) (*entity.Warranty, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	w, err := uc.warranties.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if w.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return w, nil
}

// intakeLocation devuelve la ubicación de ingreso del usuario, creándola si
// no existe. La comparación de nombre usa la misma normalización que el
// chequeo de duplicados.
func (uc *WarrantyUseCase) intakeLocation(userID string) (string, error) {
	existing, err := uc.locations.ListByUser(userID, false)
	if err != nil {
		return "", err
	}
	for _, loc := range existing {
		if normalize.Equal(loc.Name, uc.policy.IntakeLocation) {
			return loc.ID, nil
		}
	}
	now := time.Now()
	loc := &entity.Location{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      uc.policy.IntakeLocation,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.locations.Create(loc); err != nil {
		return "", err
	}
	return loc.ID, nil
}

// applyStatusDates aplica el fechado que antes vivía en el formulario:
//   - ready: estampa ReadyDate si falta y limpia DeliveryDate
//   - completed: estampa ReadyDate y DeliveryDate si faltan
//   - pending: limpia ambas fechas
//
// Las fechas enviadas por el cliente se respetan cuando el estado las admite.
func applyStatusDates(w *entity.Warranty, status string, readyDate, deliveryDate *time.Time) {
	now := time.Now()
	switch status {
	case entity.StatusReady:
		w.ReadyDate = firstDate(readyDate, w.ReadyDate, &now)
		w.DeliveryDate = nil
	case entity.StatusCompleted:
		w.ReadyDate = firstDate(readyDate, w.ReadyDate, &now)
		w.DeliveryDate = firstDate(deliveryDate, w.DeliveryDate, &now)
	case entity.StatusPending:
		w.ReadyDate = nil
		w.DeliveryDate = nil
	}
}

func firstDate(candidates ...*time.Time) *time.Time {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

func toWarrantyResponse(w *entity.Warranty) *dto.WarrantyResponse {
	if w == nil {
		return nil
	}
	return &dto.WarrantyResponse{
		ID:                 w.ID,
		UserID:             w.UserID,
		ClientName:         w.ClientName,
		InvoiceNumber:      w.InvoiceNumber,
		RUT:                w.RUT,
		Contact:            w.Contact,
		Email:              w.Email,
		Product:            w.Product,
		FailureDescription: w.FailureDescription,
		SKU:                w.SKU,
		LocationID:         w.LocationID,
		EntryDate:          w.EntryDate,
		ReadyDate:          w.ReadyDate,
		DeliveryDate:       w.DeliveryDate,
		Status:             w.Status,
		RepairCost:         w.RepairCost,
		Notes:              w.Notes,
	}
}
