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

// InventoryService coordinates inventory workflows.
type InventoryService struct {
	state      *State
	profile    domain.Profile
	clock      clock.Clock
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// InventoryInput is the editable part of an inventory item. A nil
// quantity defaults to one unit.
type InventoryInput struct {
	Name                 string                      `json:"nombre" validate:"required"`
	Description          string                      `json:"descripcion"`
	Category             domain.InventoryCategory    `json:"categoria" validate:"enum"`
	Quantity             *int                        `json:"cantidad" validate:"omitempty,min=0"`
	Location             string                      `json:"ubicacion" validate:"required"`
	Status               domain.InventoryStatus      `json:"estado" validate:"enum"`
	Barcode              string                      `json:"codigo_barras"`
	LastMaintenance      *time.Time                  `json:"ultimo_mantenimiento"`
	MaintenanceFrequency domain.MaintenanceFrequency `json:"frecuencia_mantenimiento" validate:"omitempty,enum"`
	MaintenanceType      domain.MaintenanceType      `json:"tipo_mantenimiento" validate:"omitempty,enum"`
}

// NewInventoryService constructs the service.
func NewInventoryService(deps Dependencies) *InventoryService {
	return &InventoryService{
		state:      deps.State,
		profile:    deps.Profile,
		clock:      deps.Clock,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

func (s *InventoryService) normalize(in InventoryInput) InventoryInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Barcode = strings.TrimSpace(in.Barcode)
	if in.Category == "" {
		in.Category = domain.CategoryEquipment
	}
	if in.Status == "" {
		in.Status = domain.InventoryStatusActive
	}
	if in.MaintenanceFrequency == "" {
		in.MaintenanceFrequency = domain.FrequencySemiannual
	}
	if in.Location == "" {
		in.Location = s.profile.DefaultDepartment()
	}
	if in.Quantity == nil {
		one := 1
		in.Quantity = &one
	}
	return in
}

func (s *InventoryService) validate(in InventoryInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if !s.profile.HasDepartment(in.Location) {
		return apperrors.NewValidationError("validation failed", map[string]any{
			"ubicacion": "is not a known department",
		})
	}
	return nil
}

// List returns every item in stored order.
func (s *InventoryService) List() []domain.InventoryItem {
	return s.state.Inventory()
}

// Filter returns the items matching f.
func (s *InventoryService) Filter(f InventoryFilter) []domain.InventoryItem {
	return FilterInventory(s.state.Inventory(), f)
}

// Get returns the item whose ID matches the raw id.
func (s *InventoryService) Get(id string) (domain.InventoryItem, error) {
	for _, it := range s.state.Inventory() {
		if it.ID.Matches(id) {
			return it, nil
		}
	}
	return domain.InventoryItem{}, apperrors.NewNotFound("inventory item", map[string]any{"id": id})
}

// Save creates the item when id is empty or unknown and updates it
// otherwise. It reports whether a new item was created.
func (s *InventoryService) Save(ctx context.Context, id string, in InventoryInput) (domain.InventoryItem, bool, error) {
	return s.save(ctx, id, in, false)
}

func (s *InventoryService) save(ctx context.Context, id string, in InventoryInput, mustExist bool) (domain.InventoryItem, bool, error) {
	in = s.normalize(in)
	if err := s.validate(in); err != nil {
		return domain.InventoryItem{}, false, err
	}

	now := s.clock.Now().UTC().Truncate(time.Millisecond)
	var saved domain.InventoryItem
	created := false
	err := s.state.MutateInventory(ctx, func(items []domain.InventoryItem) ([]domain.InventoryItem, error) {
		idx := -1
		if id != "" {
			idx = slices.IndexFunc(items, func(it domain.InventoryItem) bool { return it.ID.Matches(id) })
		}
		if idx < 0 && mustExist {
			return nil, apperrors.NewNotFound("inventory item", map[string]any{"id": id})
		}
		if idx < 0 {
			created = true
			saved = applyInventoryInput(domain.InventoryItem{ID: domain.NewID(now)}, in)
			return append([]domain.InventoryItem{saved}, items...), nil
		}
		saved = applyInventoryInput(items[idx], in)
		items[idx] = saved
		return items, nil
	})
	if err != nil {
		return domain.InventoryItem{}, false, err
	}

	eventType := events.EventInventoryUpdated
	if created {
		eventType = events.EventInventoryCreated
	}
	s.publish(ctx, events.New(eventType, saved.ID.String(), now, events.InventorySavedPayload{
		Name:     saved.Name,
		Quantity: saved.Quantity,
		Status:   string(saved.Status),
	}))
	return saved, created, nil
}

// Create always allocates a new item.
func (s *InventoryService) Create(ctx context.Context, in InventoryInput) (domain.InventoryItem, error) {
	it, _, err := s.Save(ctx, "", in)
	return it, err
}

// Update modifies an existing item, failing when the id is unknown.
func (s *InventoryService) Update(ctx context.Context, id string, in InventoryInput) (domain.InventoryItem, error) {
	it, _, err := s.save(ctx, id, in, true)
	return it, err
}

// Delete removes items whose ID matches id; unknown ids are a no-op.
func (s *InventoryService) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := s.state.MutateInventory(ctx, func(items []domain.InventoryItem) ([]domain.InventoryItem, error) {
		before := len(items)
		items = slices.DeleteFunc(items, func(it domain.InventoryItem) bool { return it.ID.Matches(id) })
		removed = len(items) != before
		return items, nil
	})
	if err != nil {
		return false, err
	}
	if removed {
		s.publish(ctx, events.New(events.EventInventoryDeleted, strings.Clone(strings.TrimSpace(id)), s.clock.Now().UTC(), nil))
	}
	return removed, nil
}

func (s *InventoryService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func applyInventoryInput(it domain.InventoryItem, in InventoryInput) domain.InventoryItem {
	it.Name = in.Name
	it.Description = in.Description
	it.Category = in.Category
	it.Quantity = *in.Quantity
	it.Location = in.Location
	it.Status = in.Status
	it.Barcode = in.Barcode
	it.LastMaintenance = in.LastMaintenance
	it.MaintenanceFrequency = in.MaintenanceFrequency
	it.MaintenanceType = in.MaintenanceType
	return it
}
