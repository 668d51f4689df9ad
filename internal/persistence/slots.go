package persistence

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/cdce-console/internal/config"
)

// Slot keys. They match the keys used by the mobile app's local storage.
const (
	TicketsSlot   = "cdce_tickets"
	InventorySlot = "cdce_inventory"
)

// ErrSlotNotFound is returned by Get when the slot has never been written.
var ErrSlotNotFound = errors.New("slot not found")

// SlotStore is a durable key-value store holding one serialized document
// per key. Writes replace the whole value.
type SlotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}

// Open connects the backend selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (SlotStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite, "":
		store, err := OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("using sqlite slot store", zap.String("path", cfg.Storage.SQLitePath))
		return store, nil
	case config.BackendPostgres:
		return OpenPostgres(ctx, cfg.Postgres, logger)
	case config.BackendRedis:
		client, err := NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		return NewRedisSlots(client, cfg.Redis.KeyPrefix), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
