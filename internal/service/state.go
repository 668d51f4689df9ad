package service

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/cdce-console/internal/domain"
	"github.com/spec-kit/cdce-console/internal/repository"
)

// State owns the two collections. It is the only mutator: every change
// replaces a whole collection and is written to storage before the lock is
// released, so storage always mirrors the last committed change.
type State struct {
	mu        sync.RWMutex
	tickets   []domain.Ticket
	inventory []domain.InventoryItem

	ticketRepo    repository.TicketRepository
	inventoryRepo repository.InventoryRepository
	logger        *zap.Logger
}

// NewState loads both collections from storage, seeding sample data where
// nothing usable is stored.
func NewState(ctx context.Context, tickets repository.TicketRepository, inventory repository.InventoryRepository, logger *zap.Logger) *State {
	s := &State{
		ticketRepo:    tickets,
		inventoryRepo: inventory,
		logger:        logger,
	}
	s.tickets = tickets.Load(ctx)
	s.inventory = inventory.Load(ctx)
	logger.Info("state loaded",
		zap.Int("tickets", len(s.tickets)),
		zap.Int("inventory", len(s.inventory)))
	return s
}

// Tickets returns a copy of the ticket collection.
func (s *State) Tickets() []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tickets)
}

// Inventory returns a copy of the inventory collection.
func (s *State) Inventory() []domain.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.inventory)
}

// Snapshot returns consistent copies of both collections.
func (s *State) Snapshot() ([]domain.Ticket, []domain.InventoryItem) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tickets), slices.Clone(s.inventory)
}

// MutateTickets applies fn to a copy of the tickets and commits the result
// only if fn succeeds and the write to storage succeeds.
func (s *State) MutateTickets(ctx context.Context, fn func([]domain.Ticket) ([]domain.Ticket, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(slices.Clone(s.tickets))
	if err != nil {
		return err
	}
	if err := s.ticketRepo.Save(ctx, next); err != nil {
		s.logger.Error("persist tickets failed", zap.Error(err))
		return err
	}
	s.tickets = next
	return nil
}

// MutateInventory is MutateTickets for the inventory collection.
func (s *State) MutateInventory(ctx context.Context, fn func([]domain.InventoryItem) ([]domain.InventoryItem, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(slices.Clone(s.inventory))
	if err != nil {
		return err
	}
	if err := s.inventoryRepo.Save(ctx, next); err != nil {
		s.logger.Error("persist inventory failed", zap.Error(err))
		return err
	}
	s.inventory = next
	return nil
}

// ReplaceAll swaps both collections. If the inventory write fails after the
// tickets were written, the previous tickets are written back.
func (s *State) ReplaceAll(ctx context.Context, tickets []domain.Ticket, inventory []domain.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ticketRepo.Save(ctx, tickets); err != nil {
		s.logger.Error("persist tickets failed", zap.Error(err))
		return err
	}
	if err := s.inventoryRepo.Save(ctx, inventory); err != nil {
		s.logger.Error("persist inventory failed", zap.Error(err))
		if rbErr := s.ticketRepo.Save(ctx, s.tickets); rbErr != nil {
			s.logger.Error("restore previous tickets failed", zap.Error(rbErr))
		}
		return err
	}
	s.tickets = tickets
	s.inventory = inventory
	return nil
}
