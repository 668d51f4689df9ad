package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/cdce-console/internal/domain"
	"github.com/spec-kit/cdce-console/internal/persistence"
)

func TestTicketLoadSeedsWhenSlotMissing(t *testing.T) {
	store := persistence.NewTestSlots(t)
	repo := NewTicketRepository(store, zap.NewNop())

	tickets := repo.Load(context.Background())
	assert.Equal(t, domain.SampleTickets(), tickets)
}

func TestTicketLoadSeedsOnMalformedValue(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewTestSlots(t)
	require.NoError(t, store.Put(ctx, persistence.TicketsSlot, []byte(`{not json`)))

	repo := NewTicketRepository(store, zap.NewNop())
	assert.Len(t, repo.Load(ctx), 4)

	require.NoError(t, store.Put(ctx, persistence.TicketsSlot, []byte(`null`)))
	assert.Len(t, repo.Load(ctx), 4)
}

func TestTicketSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewTestSlots(t)
	repo := NewTicketRepository(store, zap.NewNop())

	tickets := domain.SampleTickets()[:2]
	tickets[0].Resolution = "Cambio de cable"
	require.NoError(t, repo.Save(ctx, tickets))

	loaded := repo.Load(ctx)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Cambio de cable", loaded[0].Resolution)
	assert.True(t, tickets[1].CreatedAt.Equal(loaded[1].CreatedAt))
}

func TestSaveEmptyCollectionWritesArray(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewTestSlots(t)
	repo := NewInventoryRepository(store, zap.NewNop())

	require.NoError(t, repo.Save(ctx, nil))
	raw, err := store.Get(ctx, persistence.InventorySlot)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
	assert.Empty(t, repo.Load(ctx))
}

func TestInventoryLoadAcceptsStringIDs(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewTestSlots(t)
	require.NoError(t, store.Put(ctx, persistence.InventorySlot,
		[]byte(`[{"id":"77","nombre":"Switch","categoria":"Equipo","cantidad":2,"ubicacion":"Informatica","estado":"Activo"}]`)))

	items := NewInventoryRepository(store, zap.NewNop()).Load(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, domain.ID(77), items[0].ID)
	assert.Equal(t, "Switch", items[0].Name)
}
