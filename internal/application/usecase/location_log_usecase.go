package usecase

import (
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/garantias-api/internal/application/dto"
	"github.com/jhoicas/garantias-api/internal/domain"
	"github.com/jhoicas/garantias-api/internal/domain/entity"
	"github.com/jhoicas/garantias-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// LocationLogUseCase listado del historial de movimientos. Los logs guardan
// ids; las garantías y los nombres de ubicación se unen aquí con lecturas por
// lote, y las referencias colgantes (garantías borradas) degradan a un
// placeholder en vez de fallar el listado.
type LocationLogUseCase struct {
	logs       repository.LocationLogRepository
	locations  repository.LocationRepository
	warranties repository.WarrantyRepository
}

// NewLocationLogUseCase construye el caso de uso.
func NewLocationLogUseCase(
	logs repository.LocationLogRepository,
	locations repository.LocationRepository,
	warranties repository.WarrantyRepository,
) *LocationLogUseCase {
	return &LocationLogUseCase{logs: logs, locations: locations, warranties: warranties}
}

// List devuelve una página del historial del usuario, filtrable por rango de
// fechas (inclusivo, endDate extendido al fin del día) y por una ubicación
// (como origen o destino).
func (uc *LocationLogUseCase) List(userID string, q dto.ListLogsQuery) (*dto.LocationLogListResponse, error) {
	page, limit := dto.NormalizePage(q.Page, q.Limit)

	f := repository.LogFilter{
		LocationID: q.LocationID,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}
	if q.StartDate != "" {
		from, err := time.ParseInLocation(dateLayout, q.StartDate, time.Local)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		f.From = &from
	}
	if q.EndDate != "" {
		end, err := time.ParseInLocation(dateLayout, q.EndDate, time.Local)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		endOfDay := end.Add(24*time.Hour - time.Millisecond)
		f.To = &endOfDay
	}

	logs, total, err := uc.logs.ListByUser(userID, f)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return &dto.LocationLogListResponse{Data: []dto.LocationLogResponse{}, Total: total, Page: page, Limit: limit}, nil
	}

	locationIDs := dedupIDs(logs, func(l *entity.LocationLog) []string {
		return []string{l.FromLocationID, l.ToLocationID}
	})
	warrantyIDs := dedupIDs(logs, func(l *entity.LocationLog) []string {
		return []string{l.WarrantyID}
	})

	// Lecturas simultáneas de las dos colecciones referenciadas.
	var locs []*entity.Location
	var wars []*entity.Warranty
	var g errgroup.Group
	g.Go(func() (err error) {
		locs, err = uc.locations.ListByIDs(locationIDs)
		return err
	})
	g.Go(func() (err error) {
		wars, err = uc.warranties.ListByIDs(warrantyIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	locNames := make(map[string]string, len(locs))
	for _, loc := range locs {
		locNames[loc.ID] = loc.Name
	}
	warMap := make(map[string]*entity.Warranty, len(wars))
	for _, w := range wars {
		warMap[w.ID] = w
	}

	data := make([]dto.LocationLogResponse, 0, len(logs))
	for _, l := range logs {
		row := dto.LocationLogResponse{
			ID:            l.ID,
			WarrantyID:    l.WarrantyID,
			InvoiceNumber: "N/A",
			Product:       "Unknown",
			ClientName:    "Unknown",
			FromLocation:  locationLabel(locNames, l.FromLocationID),
			ToLocation:    locationLabel(locNames, l.ToLocationID),
			ChangedAt:     l.ChangedAt,
		}
		if w, ok := warMap[l.WarrantyID]; ok {
			if w.InvoiceNumber != 0 {
				row.InvoiceNumber = strconv.FormatInt(w.InvoiceNumber, 10)
			}
			row.Product = w.Product
			row.ClientName = w.ClientName
		}
		data = append(data, row)
	}

	return &dto.LocationLogListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

// locationLabel resuelve el nombre a mostrar. El id vacío es el log de
// ingreso; un id sin ubicación es una referencia colgante.
func locationLabel(names map[string]string, id string) string {
	if id == "" {
		return "Ingreso"
	}
	if name, ok := names[id]; ok {
		return name
	}
	return "Unknown"
}

func dedupIDs(logs []*entity.LocationLog, extract func(*entity.LocationLog) []string) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, l := range logs {
		for _, id := range extract(l) {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
