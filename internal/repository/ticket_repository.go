package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/cdce-console/internal/domain"
	"github.com/spec-kit/cdce-console/internal/persistence"
)

// TicketRepository encapsulates ticket persistence. The whole collection is
// read and written at once.
type TicketRepository interface {
	Load(ctx context.Context) []domain.Ticket
	Save(ctx context.Context, tickets []domain.Ticket) error
}

type ticketRepository struct {
	col slotCollection[domain.Ticket]
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(store persistence.SlotStore, logger *zap.Logger) TicketRepository {
	return &ticketRepository{col: slotCollection[domain.Ticket]{
		store:  store,
		slot:   persistence.TicketsSlot,
		seed:   domain.SampleTickets,
		logger: logger,
	}}
}

func (r *ticketRepository) Load(ctx context.Context) []domain.Ticket {
	return r.col.load(ctx)
}

func (r *ticketRepository) Save(ctx context.Context, tickets []domain.Ticket) error {
	return r.col.save(ctx, tickets)
}
