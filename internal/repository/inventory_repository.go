package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/cdce-console/internal/domain"
	"github.com/spec-kit/cdce-console/internal/persistence"
)

// InventoryRepository encapsulates inventory persistence.
type InventoryRepository interface {
	Load(ctx context.Context) []domain.InventoryItem
	Save(ctx context.Context, items []domain.InventoryItem) error
}

type inventoryRepository struct {
	col slotCollection[domain.InventoryItem]
}

// NewInventoryRepository instantiates repository.
func NewInventoryRepository(store persistence.SlotStore, logger *zap.Logger) InventoryRepository {
	return &inventoryRepository{col: slotCollection[domain.InventoryItem]{
		store:  store,
		slot:   persistence.InventorySlot,
		seed:   domain.SampleInventory,
		logger: logger,
	}}
}

func (r *inventoryRepository) Load(ctx context.Context) []domain.InventoryItem {
	return r.col.load(ctx)
}

func (r *inventoryRepository) Save(ctx context.Context, items []domain.InventoryItem) error {
	return r.col.save(ctx, items)
}
