package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/garantias-api/internal/application/dto"
	"github.com/jhoicas/garantias-api/internal/domain"
	"github.com/jhoicas/garantias-api/internal/domain/entity"
	"github.com/jhoicas/garantias-api/pkg/config"
)

const (
	ownerU1 = "user-1"
	ownerU2 = "user-2"
)

func defaultPolicy() config.WarrantyConfig {
	return config.WarrantyConfig{IntakeLocation: "Ingreso"}
}

type warrantyFixture struct {
	uc         *WarrantyUseCase
	warranties *memWarrantyRepo
	locations  *memLocationRepo
	logs       *memLogRepo
}

func newWarrantyFixture(policy config.WarrantyConfig) *warrantyFixture {
	warranties := newMemWarrantyRepo()
	locations := newMemLocationRepo()
	logs := newMemLogRepo()
	tx := &stubTxRunner{warranties: warranties, logs: logs}
	return &warrantyFixture{
		uc:         NewWarrantyUseCase(warranties, locations, logs, tx, stubReceipts{}, policy),
		warranties: warranties,
		locations:  locations,
		logs:       logs,
	}
}

func (f *warrantyFixture) addLocation(t *testing.T, userID, name string) string {
	t.Helper()
	now := time.Now()
	loc := &entity.Location{
		ID: "loc-" + name + "-" + userID, UserID: userID, Name: name,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, f.locations.Create(loc))
	return loc.ID
}

func updateFrom(w *dto.WarrantyResponse) dto.UpdateWarrantyRequest {
	return dto.UpdateWarrantyRequest{
		ID:                 w.ID,
		ClientName:         w.ClientName,
		InvoiceNumber:      w.InvoiceNumber,
		RUT:                w.RUT,
		Contact:            w.Contact,
		Email:              w.Email,
		Product:            w.Product,
		FailureDescription: w.FailureDescription,
		SKU:                w.SKU,
		LocationID:         w.LocationID,
		ReadyDate:          w.ReadyDate,
		DeliveryDate:       w.DeliveryDate,
		Status:             w.Status,
		RepairCost:         w.RepairCost,
		Notes:              w.Notes,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestWarrantyCreate_DefaultsYRoundTrip(t *testing.T) {
	f := newWarrantyFixture(defaultPolicy())

	in := dto.CreateWarrantyRequest{
		ClientName:    "María Pérez",
		Product:       "Notebook Lenovo",
		RUT:           "12.345.678-5",
		InvoiceNumber: 1042,
		RepairCost:    decimal.NewFromInt(25000),
		Notes:         "pantalla quebrada",
	}
	created, err := f.uc.Create(context.Background(), ownerU1, in)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPending, created.Status, "el estado por defecto es pending")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, ownerU1, created.UserID)
	assert.False(t, created.EntryDate.IsZero(), "la fecha de ingreso se estampa si no viene")
	assert.NotEmpty(t, created.LocationID, "sin ubicación se asigna la de ingreso")

	// La ubicación de ingreso se crea sola con el nombre de la política.
	locs, err := f.locations.ListByUser(ownerU1, false)
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, "Ingreso", locs[0].Name)

	// Round-trip: lo creado se recupera idéntico.
	fetched, err := f.uc.GetByID(ownerU1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestWarrantyCreate_CamposRequeridos(t *testing.T) {
	f := newWarrantyFixture(defaultPolicy())

	_, err := f.uc.Create(context.Background(), ownerU1, dto.CreateWarrantyRequest{Product: "TV"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "clientName es requerido")

	_, err = f.uc.Create(context.Background(), ownerU1, dto.CreateWarrantyRequest{ClientName: "Juan"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "product es requerido")
}

func TestWarrantyCreate_ReusaUbicacionDeIngresoExistente(t *testing.T) {
	f := newWarrantyFixture(defaultPolicy())
	// Con tilde y mayúsculas distintas: debe matchear por normalización.
	existing := f.addLocation(t, ownerU1, "INGRESO")

	created, err := f.uc.Create(context.Background(), ownerU1, dto.CreateWarrantyRequest{
		ClientName: "Juan Soto", Product: "Impresora",
	})
	require.NoError(t, err)
	assert.Equal(t, existing, created.LocationID)

	locs, _ := f.locations.ListByUser(ownerU1, false)
	assert.Len(t, locs, 1, "no debe crear una segunda ubicación de ingreso")
}

func TestWarrantyCreate_LogDeIngresoSegunPolitica(t *testing.T) {
	policy := defaultPolicy()
	policy.LogIntake = true
	f := newWarrantyFixture(policy)

	created, err := f.uc.Create(context.Background(), ownerU1, dto.CreateWarrantyRequest{
		ClientName: "Ana Díaz", Product: "Tablet",
	})
	require.NoError(t, err)

	require.Len(t, f.logs.items, 1)
	log := f.logs.items[0]
	assert.Equal(t, created.ID, log.WarrantyID)
	assert.Equal(t, ownerU1, log.UserID)
	assert.Empty(t, log.FromLocationID, "el log de ingreso no tiene origen")
	assert.Equal(t, created.LocationID, log.ToLocationID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestWarrantyUpdate_CompletedEsInmutable(t *testing.T) {
	f := newWarrantyFixture(defaultPolicy())
	created, err := f.uc.Create(context.Background(), ownerU1, dto.CreateWarrantyRequest{
		ClientName: "Pedro Rojas", Product: "Monitor",
	})
	require.NoError(t, err)

	req := updateFrom(created)
	req.Status = entity.StatusCompleted
	completed, err := f.uc.Update(context.Background(), ownerU1, req)
	require.NoError(t, err)
	require.Equal(t, entity.StatusCompleted, completed.Status)

	// Cualquier cambio posterior, incluso de un campo simple, debe fallar.
	again := updateFrom(completed)
	again.ClientName = "Otro Nombre"
	_, err = f.uc.Update(context.Background(), ownerU1, again)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestWarrantyUpdate_CambioDeUbicacionGeneraUnLog(t *testing.T) {
	f := newWarrantyFixture(defaultPolicy())
	bodega := f.addLocation(t, ownerU1, "Bodega")
	taller := f.addLocation(t, ownerU1, "Taller")

	created, err := f.uc.Create(context.Background(), ownerU1, dto.CreateWarrantyRequest{
		ClientName: "Laura Vega", Product: "Parlante", LocationID: bodega,
	})
	require.NoError(t, err)
	require.Empty(t, f.logs.items)

	// Sin cambio de ubicación: cero logs nuevos.
	req := updateFrom(created)
	req.Notes = "en diagnóstico"
	updated, err := f.uc.Update(context.Background(), ownerU1, req)
	require.NoError(t, err)
	assert.Empty(t, f.logs.items)

	// Con cambio: exactamente un log con origen, destino y dueño correctos.
	req = updateFrom(updated)
	req.LocationID = taller
	_, err = f.uc.Update(context.Background(), ownerU1, req)
	require.NoError(t, err)

	require.Len(t, f.logs.items, 1)
	log := f.logs.items[0]
	assert.Equal(t, bodega, log.FromLocationID)
	assert.Equal(t, taller, log.ToLocationID)
	assert.Equal(t, ownerU1, log.UserID)
	assert.Equal(t, created.ID, log.WarrantyID)
	assert.False(t, log.ChangedAt.IsZero())
}

func TestWarrantyUpdate_FechadoPorEstado(t *testing.T) {
	f := newWarrantyFixture(defaultPolicy())
	created, err := f.uc.Create(context.Background(), ownerU1, dto.CreateWarrantyRequest{
		ClientName: "Diego Fuentes", Product: "Consola",
	})
	require.NoError(t, err)

	// pending -> ready: estampa ReadyDate y no hay DeliveryDate.
	req := updateFrom(created)
	req.Status = entity.StatusReady
	ready, err := f.uc.Update(context.Background(), ownerU1, req)
	require.NoError(t, err)
	require.NotNil(t, ready.ReadyDate)
	assert.Nil(t, ready.DeliveryDate)

	// ready -> pending: limpia ambas fechas.
	req = updateFrom(ready)
	req.Status = entity.StatusPending
	pending, err := f.uc.Update(context.Background(), ownerU1, req)
	require.NoError(t, err)
	assert.Nil(t, pending.ReadyDate)
	assert.Nil(t, pending.DeliveryDate)

	// pending -> completed directo: estampa ambas fechas.
	req = updateFrom(pending)
	req.Status = entity.StatusCompleted
	completed, err := f.uc.Update(context.Background(), ownerU1, req)
	require.NoError(t, err)
	assert.NotNil(t, completed.ReadyDate)
	assert.NotNil(t, completed.DeliveryDate)
}

func TestWarrantyUpdate_ConservaReadyDateAlCompletar(t *testing.T) {
	f := newWarrantyFixture(defaultPolicy())
	created, err := f.uc.Create(context.Background(), ownerU1, dto.CreateWarrantyRequest{
		ClientName: "Carla Muñoz", Product: "Teclado",
	})
	require.NoError(t, err)

	req := updateFrom(created)
	req.Status = entity.StatusReady
	ready, err := f.uc.Update(context.Background(), ownerU1, req)
	require.NoError(t, err)
	readyDate := *ready.ReadyDate

	req = updateFrom(ready)
	req.Status = entity.StatusCompleted
	completed, err := f.uc.Update(context.Background(), ownerU1, req)
	require.NoError(t, err)
	assert.True(t, completed.ReadyDate.Equal(readyDate), "ready -> completed conserva la fecha en que quedó lista")
}

func TestWarrantyUpdate_NoEncontradaYOtroDueno(t *testing.T) {
	f := newWarrantyFixture(defaultPolicy())
	created, err := f.uc.Create(context.Background(), ownerU1, dto.CreateWarrantyRequest{
		ClientName: "Rosa León", Product: "Celular",
	})
	require.NoError(t, err)

	missing := updateFrom(created)
	missing.ID = "no-existe"
	_, err = f.uc.Update(context.Background(), ownerU1, missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Update(context.Background(), ownerU2, updateFrom(created))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestWarrantyDelete_PorDefectoEsIncondicional(t *testing.T) {
	f := newWarrantyFixture(defaultPolicy())
	bodega := f.addLocation(t, ownerU1, "Bodega")
	taller := f.addLocation(t, ownerU1, "Taller")

	created, err := f.uc.Create(context.Background(), ownerU1, dto.CreateWarrantyRequest{
		ClientName: "Iván Castro", Product: "Router", LocationID: bodega,
	})
	require.NoError(t, err)

	req := updateFrom(created)
	req.LocationID = taller
	_, err = f.uc.Update(context.Background(), ownerU1, req)
	require.NoError(t, err)
	require.Len(t, f.logs.items, 1)

	// Aun con historial de movimientos, el borrado procede (comportamiento original).
	require.NoError(t, f.uc.Delete(ownerU1, created.ID))
	got, _ := f.warranties.GetByID(created.ID)
	assert.Nil(t, got)
}

func TestWarrantyDelete_PoliticaBloqueaConHistorial(t *testing.T) {
	policy := defaultPolicy()
	policy.DeleteChecksLogs = true
	f := newWarrantyFixture(policy)
	bodega := f.addLocation(t, ownerU1, "Bodega")
	taller := f.addLocation(t, ownerU1, "Taller")

	created, err := f.uc.Create(context.Background(), ownerU1, dto.CreateWarrantyRequest{
		ClientName: "Elena Paredes", Product: "Cámara", LocationID: bodega,
	})
	require.NoError(t, err)

	// Sin historial todavía: se puede borrar otra garantía equivalente.
	req := updateFrom(created)
	req.LocationID = taller
	_, err = f.uc.Update(context.Background(), ownerU1, req)
	require.NoError(t, err)

	err = f.uc.Delete(ownerU1, created.ID)
	assert.ErrorIs(t, err, domain.ErrInUse)
}

func TestWarrantyDelete_OtroDueno(t *testing.T) {
	f := newWarrantyFixture(defaultPolicy())
	created, err := f.uc.Create(context.Background(), ownerU1, dto.CreateWarrantyRequest{
		ClientName: "Hugo Ortiz", Product: "Mouse",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.uc.Delete(ownerU2, created.ID), domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestWarrantyList_Paginacion(t *testing.T) {
	f := newWarrantyFixture(defaultPolicy())
	base := mustTime("2026-01-01T12:00:00Z")
	for i := 0; i < 45; i++ {
		entry := base.Add(time.Duration(i) * time.Hour)
		_, err := f.uc.Create(context.Background(), ownerU1, dto.CreateWarrantyRequest{
			ClientName: fmt.Sprintf("Cliente %02d", i),
			Product:    "Equipo",
			EntryDate:  &entry,
		})
		require.NoError(t, err)
	}

	page2, err := f.uc.List(ownerU1, dto.ListWarrantiesQuery{Page: 2, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 45, page2.Total)
	assert.Len(t, page2.Data, 20)

	page3, err := f.uc.List(ownerU1, dto.ListWarrantiesQuery{Page: 3, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, page3.Data, 5, "la última página devuelve el resto")

	// Orden por fecha de ingreso descendente: lo más nuevo primero.
	first, err := f.uc.List(ownerU1, dto.ListWarrantiesQuery{Page: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, first.Data, 1)
	assert.Equal(t, "Cliente 44", first.Data[0].ClientName)
}

func TestWarrantyList_BusquedaPorRUTSinPuntuacion(t *testing.T) {
	f := newWarrantyFixture(defaultPolicy())
	_, err := f.uc.Create(context.Background(), ownerU1, dto.CreateWarrantyRequest{
		ClientName: "Marcela Ríos", Product: "Notebook", RUT: "12.345.678-5",
	})
	require.NoError(t, err)

	// El RUT se guardó formateado; la búsqueda llega sin puntuación.
	out, err := f.uc.List(ownerU1, dto.ListWarrantiesQuery{Search: "123456785"})
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Marcela Ríos", out.Data[0].ClientName)

	out, err = f.uc.List(ownerU1, dto.ListWarrantiesQuery{Search: "12345678-5"})
	require.NoError(t, err)
	assert.Len(t, out.Data, 1, "también matchea la forma solo con guión")
}

func TestWarrantyList_AisladoPorDueno(t *testing.T) {
	f := newWarrantyFixture(defaultPolicy())
	_, err := f.uc.Create(context.Background(), ownerU1, dto.CreateWarrantyRequest{
		ClientName: "Dueño Uno", Product: "TV",
	})
	require.NoError(t, err)

	out, err := f.uc.List(ownerU2, dto.ListWarrantiesQuery{})
	require.NoError(t, err)
	assert.Empty(t, out.Data)
	assert.Zero(t, out.Total)
}

func TestWarrantyList_EstadoInvalido(t *testing.T) {
	f := newWarrantyFixture(defaultPolicy())
	_, err := f.uc.List(ownerU1, dto.ListWarrantiesQuery{Statuses: []string{"archived"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo y comprobante
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenario_MovimientoYCierre(t *testing.T) {
	f := newWarrantyFixture(defaultPolicy())
	bodega := f.addLocation(t, ownerU1, "Bodega")
	taller := f.addLocation(t, ownerU1, "Taller")

	created, err := f.uc.Create(context.Background(), ownerU1, dto.CreateWarrantyRequest{
		ClientName: "Sofía Herrera", Product: "Aspiradora", LocationID: bodega,
	})
	require.NoError(t, err)

	req := updateFrom(created)
	req.LocationID = taller
	moved, err := f.uc.Update(context.Background(), ownerU1, req)
	require.NoError(t, err)

	logUC := NewLocationLogUseCase(f.logs, f.locations, f.warranties)
	history, err := logUC.List(ownerU1, dto.ListLogsQuery{})
	require.NoError(t, err)
	require.Len(t, history.Data, 1)
	assert.Equal(t, "Bodega", history.Data[0].FromLocation)
	assert.Equal(t, "Taller", history.Data[0].ToLocation)

	req = updateFrom(moved)
	req.Status = entity.StatusCompleted
	completed, err := f.uc.Update(context.Background(), ownerU1, req)
	require.NoError(t, err)

	req = updateFrom(completed)
	req.ClientName = "Sofía H."
	_, err = f.uc.Update(context.Background(), ownerU1, req)
	assert.ErrorIs(t, err, domain.ErrConflict, "una garantía entregada no admite cambios")
}

func TestWarrantyReceipt(t *testing.T) {
	f := newWarrantyFixture(defaultPolicy())
	created, err := f.uc.Create(context.Background(), ownerU1, dto.CreateWarrantyRequest{
		ClientName: "Nicolás Bravo", Product: "Proyector",
	})
	require.NoError(t, err)

	pdfBytes, err := f.uc.Receipt(context.Background(), ownerU1, created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)

	_, err = f.uc.Receipt(context.Background(), ownerU2, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
