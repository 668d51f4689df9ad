package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/cdce-console/internal/clock"
	"github.com/spec-kit/cdce-console/internal/domain"
	"github.com/spec-kit/cdce-console/internal/events"
	"github.com/spec-kit/cdce-console/internal/persistence"
	"github.com/spec-kit/cdce-console/internal/repository"
	apperrors "github.com/spec-kit/cdce-console/pkg/util"
)

type fixture struct {
	store         persistence.SlotStore
	state         *State
	clock         *clock.FakeClock
	dispatcher    events.Dispatcher
	tickets       *TicketService
	inventory     *InventoryService
	backup        *BackupService
	notifications *NotificationService
	deps          Dependencies
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := persistence.NewTestSlots(t)
	return newFixtureWithStore(t, store)
}

func newFixtureWithStore(t *testing.T, store persistence.SlotStore) *fixture {
	t.Helper()
	logger := zap.NewNop()
	ctx := context.Background()
	state := NewState(ctx,
		repository.NewTicketRepository(store, logger),
		repository.NewInventoryRepository(store, logger),
		logger)

	fc := clock.Fake(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
	dispatcher := events.NewInMemoryDispatcher(logger)
	deps := Dependencies{
		State:      state,
		Profile:    domain.DefaultProfile(),
		Clock:      fc,
		Dispatcher: dispatcher,
		Logger:     logger,
	}
	notifications := NewNotificationService(dispatcher, logger)
	notifications.RegisterHandlers()

	return &fixture{
		store:         store,
		state:         state,
		clock:         fc,
		dispatcher:    dispatcher,
		tickets:       NewTicketService(deps),
		inventory:     NewInventoryService(deps),
		backup:        NewBackupService(deps, nil),
		notifications: notifications,
		deps:          deps,
	}
}

func validTicket() TicketInput {
	return TicketInput{
		Description: "Impresora sin conexión",
		Type:        domain.TicketTypeHardware,
		Priority:    domain.TicketPriorityHigh,
		Department:  "Informatica",
		Requester:   "Prof. Díaz",
	}
}

func TestCreateTicketPrependsWithDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := validTicket()
	in.Type = ""
	ticket, err := f.tickets.Create(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, domain.NewID(f.clock.Now()), ticket.ID)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketTypeSupport, ticket.Type)
	assert.True(t, ticket.CreatedAt.Equal(f.clock.Now()))
	require.NotNil(t, ticket.UpdatedAt)

	all := f.tickets.List()
	require.Len(t, all, 5)
	assert.Equal(t, ticket.ID, all[0].ID)

	// Persisted: a fresh state over the same store sees the new ticket.
	reloaded := newFixtureWithStore(t, f.store)
	assert.Equal(t, ticket.ID, reloaded.tickets.List()[0].ID)

	recent := f.notifications.Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, "Ticket creado exitosamente", recent[0].Message)
}

func TestResolvedTicketRequiresResolution(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before := f.tickets.List()

	in := validTicket()
	in.Status = domain.TicketStatusResolved
	in.Resolution = "   "
	_, err := f.tickets.Update(ctx, "1001", in)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	assert.Equal(t, before, f.tickets.List())

	in.Resolution = "Se reemplazó el cable de red"
	updated, err := f.tickets.Update(ctx, "1001", in)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, updated.Status)
	assert.Equal(t, before[0].CreatedAt, updated.CreatedAt)
	assert.Equal(t, domain.ID(1001), updated.ID)
}

func TestTicketValidationRejectsUnknownValues(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := validTicket()
	in.Priority = "Urgente"
	_, err := f.tickets.Create(ctx, in)
	require.Error(t, err)
	details := apperrors.ToDomainError(err).Details
	assert.Contains(t, details, "prioridad")

	in = validTicket()
	in.Department = "Marketing"
	_, err = f.tickets.Create(ctx, in)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	in = validTicket()
	in.Requester = ""
	_, err = f.tickets.Create(ctx, in)
	assert.Contains(t, apperrors.ToDomainError(err).Details, "solicitante")
	assert.Len(t, f.tickets.List(), 4)
}

func TestUpdateUnknownTicketIsNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.tickets.Update(context.Background(), "999", validTicket())
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestUpdateRacingDeleteNeverResurrects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before := len(f.state.Tickets())

	var wg sync.WaitGroup
	var updateErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, updateErr = f.tickets.Update(ctx, "1001", validTicket())
	}()
	go func() {
		defer wg.Done()
		_, err := f.tickets.Delete(ctx, "1001")
		assert.NoError(t, err)
	}()
	wg.Wait()

	if updateErr != nil {
		assert.True(t, apperrors.HasCode(updateErr, apperrors.CodeNotFound))
	}
	_, err := f.tickets.Get("1001")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.Len(t, f.state.Tickets(), before-1)
}

func TestUpdateAfterDeleteIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.inventory.Delete(ctx, "502")
	require.NoError(t, err)
	count := len(f.state.Inventory())

	_, err = f.inventory.Update(ctx, "502", InventoryInput{Name: "Cable UTP Cat6", Location: "Informatica"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.Len(t, f.state.Inventory(), count)
}

func TestSaveWithUnknownIDCreates(t *testing.T) {
	f := newFixture(t)
	ticket, created, err := f.tickets.Save(context.Background(), "999", validTicket())
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, domain.ID(999), ticket.ID)
}

func TestDeleteTicketByStringID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	removed, err := f.tickets.Delete(ctx, "1001")
	require.NoError(t, err)
	assert.True(t, removed)

	all := f.tickets.List()
	assert.Len(t, all, 3)
	for _, tk := range all {
		assert.NotEqual(t, domain.ID(1001), tk.ID)
	}

	removed, err = f.tickets.Delete(ctx, "424242")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Len(t, f.tickets.List(), 3)
}

func TestActiveAndHistoryFilters(t *testing.T) {
	f := newFixture(t)

	active := f.tickets.Active(TicketFilter{})
	assert.Len(t, active, 3)

	byStatus := f.tickets.Active(TicketFilter{Status: string(domain.TicketStatusInProgress)})
	require.Len(t, byStatus, 1)
	assert.Equal(t, domain.ID(1002), byStatus[0].ID)

	assert.Len(t, f.tickets.Active(TicketFilter{Status: domain.AllFilter}), 3)

	byRequester := f.tickets.Active(TicketFilter{Query: "RODRIGUEZ"})
	require.Len(t, byRequester, 1)
	assert.Equal(t, domain.ID(1001), byRequester[0].ID)

	history := f.tickets.History("")
	require.Len(t, history, 1)
	assert.Equal(t, domain.ID(1004), history[0].ID)
	assert.Empty(t, f.tickets.History("pantalla"))
}

func TestFiltersAreIdempotent(t *testing.T) {
	tickets := domain.SampleTickets()
	filter := TicketFilter{Query: "en"}
	once := FilterActiveTickets(tickets, filter)
	assert.Equal(t, once, FilterActiveTickets(once, filter))

	items := domain.SampleInventory()
	inv := InventoryFilter{Query: "o", Department: "Informatica", Status: string(domain.InventoryStatusActive)}
	first := FilterInventory(items, inv)
	assert.Equal(t, first, FilterInventory(first, inv))
	assert.Len(t, first, 3)
}

func TestInventorySaveDefaultsAndValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.inventory.Create(ctx, InventoryInput{Name: "Switch TP-Link"})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryEquipment, item.Category)
	assert.Equal(t, domain.InventoryStatusActive, item.Status)
	assert.Equal(t, domain.FrequencySemiannual, item.MaintenanceFrequency)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, "Atencion al ciudadano", item.Location)
	assert.Equal(t, item.ID, f.inventory.List()[0].ID)

	negative := -2
	_, err = f.inventory.Create(ctx, InventoryInput{Name: "Tóner", Quantity: &negative})
	assert.Contains(t, apperrors.ToDomainError(err).Details, "cantidad")

	_, err = f.inventory.Create(ctx, InventoryInput{Name: ""})
	assert.Contains(t, apperrors.ToDomainError(err).Details, "nombre")

	zero := 0
	updated, err := f.inventory.Update(ctx, "502", InventoryInput{Name: "Cable UTP Cat6", Quantity: &zero, Location: "Informatica"})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)

	removed, err := f.inventory.Delete(ctx, "502")
	require.NoError(t, err)
	assert.True(t, removed)
	_, err = f.inventory.Get("502")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestBackupRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.tickets.Create(ctx, validTicket())
	require.NoError(t, err)

	file, err := f.backup.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cdce_backup_2024-01-15.json", file.Filename)

	other := newFixture(t)
	counts, err := other.backup.Restore(ctx, file.Content)
	require.NoError(t, err)
	assert.Equal(t, 5, counts.Tickets)
	assert.Equal(t, 8, counts.Inventory)

	assert.Equal(t, f.tickets.List(), other.tickets.List())
	assert.Equal(t, f.inventory.List(), other.inventory.List())
	assert.Equal(t, "Base de datos restaurada", other.notifications.Recent(1)[0].Message)
}

func TestRestoreRejectsIncompleteBackup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before := f.tickets.List()

	_, err := f.backup.Restore(ctx, []byte(`{"tickets":[]}`))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidFormat))
	assert.Equal(t, "Formato de archivo inválido", apperrors.ToDomainError(err).Message)
	assert.Equal(t, before, f.tickets.List())

	_, err = f.backup.Restore(ctx, []byte(`{"tickets":[],"inventory":null}`))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidFormat))

	_, err = f.backup.Restore(ctx, []byte(`{"tickets":{"a":1},"inventory":"x"}`))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidFormat))

	_, err = f.backup.Restore(ctx, []byte(`not json at all`))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeReadError))
	assert.Equal(t, "Error al leer el archivo", apperrors.ToDomainError(err).Message)

	assert.Equal(t, before, f.tickets.List())
}

func TestRestoreEmptyCollections(t *testing.T) {
	f := newFixture(t)
	_, err := f.backup.Restore(context.Background(), []byte(`{"tickets":[],"inventory":[]}`))
	require.NoError(t, err)
	assert.Empty(t, f.tickets.List())
	assert.Empty(t, f.inventory.List())
}

type failingStore struct {
	persistence.SlotStore
	failKey string
}

func (s *failingStore) Put(ctx context.Context, key string, value []byte) error {
	if key == s.failKey {
		return errors.New("disk full")
	}
	return s.SlotStore.Put(ctx, key, value)
}

func TestFailedWriteLeavesStateUnchanged(t *testing.T) {
	inner := persistence.NewTestSlots(t)
	store := &failingStore{SlotStore: inner}
	f := newFixtureWithStore(t, store)
	ctx := context.Background()

	store.failKey = persistence.TicketsSlot
	_, err := f.tickets.Create(ctx, validTicket())
	require.Error(t, err)
	assert.Len(t, f.tickets.List(), 4)

	store.failKey = persistence.InventorySlot
	_, err = f.backup.Restore(ctx, []byte(`{"tickets":[],"inventory":[]}`))
	require.Error(t, err)
	assert.Len(t, f.tickets.List(), 4)
	assert.Len(t, f.inventory.List(), 8)
}

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d := BuildDashboard(domain.SampleTickets(), domain.SampleInventory(), now)

	assert.Equal(t, 2, d.Open)
	assert.Equal(t, 1, d.InProgress)
	assert.Equal(t, 1, d.Resolved)
	assert.Equal(t, 5, d.LowStock)
	require.Len(t, d.TopDepartments, 3)
	assert.Equal(t, DepartmentCount{Department: "Gestion Humana", Count: 2}, d.TopDepartments[0])
	assert.Equal(t, "Informatica", d.TopDepartments[1].Department)
	assert.Equal(t, "Despacho", d.TopDepartments[2].Department)

	for _, it := range d.MaintenanceDue {
		assert.NotEqual(t, domain.InventoryStatusDecommissioned, it.Status)
	}
	assert.NotEmpty(t, d.MaintenanceDue)
}
