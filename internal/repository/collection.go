package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/cdce-console/internal/persistence"
)

// slotCollection persists one JSON array in a single slot.
type slotCollection[T any] struct {
	store  persistence.SlotStore
	slot   string
	seed   func() []T
	logger *zap.Logger
}

// load never fails: a missing slot or an unreadable value yields the seed.
func (c *slotCollection[T]) load(ctx context.Context) []T {
	raw, err := c.store.Get(ctx, c.slot)
	if errors.Is(err, persistence.ErrSlotNotFound) {
		c.logger.Info("slot empty; seeding sample data", zap.String("slot", c.slot))
		return c.seed()
	}
	if err != nil {
		c.logger.Warn("unable to read slot; seeding sample data", zap.String("slot", c.slot), zap.Error(err))
		return c.seed()
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		c.logger.Warn("slot holds no array; seeding sample data", zap.String("slot", c.slot))
		return c.seed()
	}

	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		c.logger.Warn("slot holds malformed data; seeding sample data", zap.String("slot", c.slot), zap.Error(err))
		return c.seed()
	}
	return items
}

func (c *slotCollection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.slot, err)
	}
	return c.store.Put(ctx, c.slot, raw)
}
