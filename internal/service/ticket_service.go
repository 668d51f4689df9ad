package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/cdce-console/internal/clock"
	"github.com/spec-kit/cdce-console/internal/domain"
	"github.com/spec-kit/cdce-console/internal/events"
	apperrors "github.com/spec-kit/cdce-console/pkg/util"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	state      *State
	profile    domain.Profile
	clock      clock.Clock
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// Dependencies bundles what the domain services share.
type Dependencies struct {
	State      *State
	Profile    domain.Profile
	Clock      clock.Clock
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// TicketInput is the editable part of a ticket.
type TicketInput struct {
	Description string                `json:"descripcion" validate:"required"`
	Type        domain.TicketType     `json:"tipo" validate:"enum"`
	Priority    domain.TicketPriority `json:"prioridad" validate:"enum"`
	Status      domain.TicketStatus   `json:"estado" validate:"enum"`
	Department  string                `json:"departamento" validate:"required"`
	Requester   string                `json:"solicitante" validate:"required"`
	AssignedTo  string                `json:"asignado_a"`
	Resolution  string                `json:"solucion" validate:"required_if=Status Resuelto"`
}

// NewTicketService constructs the service.
func NewTicketService(deps Dependencies) *TicketService {
	return &TicketService{
		state:      deps.State,
		profile:    deps.Profile,
		clock:      deps.Clock,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

func (s *TicketService) normalize(in TicketInput) TicketInput {
	in.Description = strings.TrimSpace(in.Description)
	in.Requester = strings.TrimSpace(in.Requester)
	in.AssignedTo = strings.TrimSpace(in.AssignedTo)
	in.Resolution = strings.TrimSpace(in.Resolution)
	if in.Type == "" {
		in.Type = domain.TicketTypeSupport
	}
	if in.Priority == "" {
		in.Priority = domain.TicketPriorityMedium
	}
	if in.Status == "" {
		in.Status = domain.TicketStatusOpen
	}
	if in.Department == "" {
		in.Department = s.profile.DefaultDepartment()
	}
	return in
}

func (s *TicketService) validate(in TicketInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if !s.profile.HasDepartment(in.Department) {
		return apperrors.NewValidationError("validation failed", map[string]any{
			"departamento": "is not a known department",
		})
	}
	return nil
}

// List returns every ticket in stored order.
func (s *TicketService) List() []domain.Ticket {
	return s.state.Tickets()
}

// Active returns unfinished tickets matching the filter.
func (s *TicketService) Active(filter TicketFilter) []domain.Ticket {
	return FilterActiveTickets(s.state.Tickets(), filter)
}

// History returns resolved and closed tickets matching the query.
func (s *TicketService) History(query string) []domain.Ticket {
	return FilterHistoryTickets(s.state.Tickets(), query)
}

// Get returns the ticket whose ID matches the raw id.
func (s *TicketService) Get(id string) (domain.Ticket, error) {
	for _, t := range s.state.Tickets() {
		if t.ID.Matches(id) {
			return t, nil
		}
	}
	return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
}

// Save creates the ticket when id is empty or unknown and updates it
// otherwise. It reports whether a new ticket was created.
func (s *TicketService) Save(ctx context.Context, id string, in TicketInput) (domain.Ticket, bool, error) {
	return s.save(ctx, id, in, false)
}

// save looks the id up under the state lock; with mustExist an unknown id
// is a not-found error instead of a create.
func (s *TicketService) save(ctx context.Context, id string, in TicketInput, mustExist bool) (domain.Ticket, bool, error) {
	in = s.normalize(in)
	if err := s.validate(in); err != nil {
		return domain.Ticket{}, false, err
	}

	now := s.now()
	var saved domain.Ticket
	created := false
	err := s.state.MutateTickets(ctx, func(tickets []domain.Ticket) ([]domain.Ticket, error) {
		idx := -1
		if id != "" {
			idx = slices.IndexFunc(tickets, func(t domain.Ticket) bool { return t.ID.Matches(id) })
		}
		if idx < 0 && mustExist {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		if idx < 0 {
			created = true
			saved = applyTicketInput(domain.Ticket{ID: domain.NewID(now), CreatedAt: now}, in)
			saved.UpdatedAt = &now
			return append([]domain.Ticket{saved}, tickets...), nil
		}
		saved = applyTicketInput(tickets[idx], in)
		saved.UpdatedAt = &now
		tickets[idx] = saved
		return tickets, nil
	})
	if err != nil {
		return domain.Ticket{}, false, err
	}

	eventType := events.EventTicketUpdated
	if created {
		eventType = events.EventTicketCreated
	}
	s.publish(ctx, events.New(eventType, saved.ID.String(), now, events.TicketSavedPayload{
		Description: saved.Description,
		Status:      string(saved.Status),
		Priority:    string(saved.Priority),
		Department:  saved.Department,
	}))
	return saved, created, nil
}

// Create always allocates a new ticket.
func (s *TicketService) Create(ctx context.Context, in TicketInput) (domain.Ticket, error) {
	t, _, err := s.Save(ctx, "", in)
	return t, err
}

// Update modifies an existing ticket, failing when the id is unknown.
func (s *TicketService) Update(ctx context.Context, id string, in TicketInput) (domain.Ticket, error) {
	t, _, err := s.save(ctx, id, in, true)
	return t, err
}

// Delete removes tickets whose ID matches id. Deleting an unknown id
// succeeds without changes; the returned flag reports whether anything
// was removed.
func (s *TicketService) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := s.state.MutateTickets(ctx, func(tickets []domain.Ticket) ([]domain.Ticket, error) {
		before := len(tickets)
		tickets = slices.DeleteFunc(tickets, func(t domain.Ticket) bool { return t.ID.Matches(id) })
		removed = len(tickets) != before
		return tickets, nil
	})
	if err != nil {
		return false, err
	}
	if removed {
		s.publish(ctx, events.New(events.EventTicketDeleted, strings.Clone(strings.TrimSpace(id)), s.now(), nil))
	}
	return removed, nil
}

func (s *TicketService) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Millisecond)
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func applyTicketInput(t domain.Ticket, in TicketInput) domain.Ticket {
	t.Description = in.Description
	t.Type = in.Type
	t.Priority = in.Priority
	t.Status = in.Status
	t.Department = in.Department
	t.Requester = in.Requester
	t.AssignedTo = in.AssignedTo
	t.Resolution = in.Resolution
	return t
}
