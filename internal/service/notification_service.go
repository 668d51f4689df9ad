package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/cdce-console/internal/events"
)

// Notification levels.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
)

// Notification is a short user-facing message about a state change.
type Notification struct {
	ID        string           `json:"id"`
	Type      events.EventType `json:"type"`
	Level     string           `json:"level"`
	Message   string           `json:"message"`
	SubjectID string           `json:"subject_id,omitempty"`
	At        time.Time        `json:"at"`
}

type notice struct {
	message string
	level   string
}

var notices = map[events.EventType]notice{
	events.EventTicketCreated:    {"Ticket creado exitosamente", LevelSuccess},
	events.EventTicketUpdated:    {"Ticket actualizado correctamente", LevelSuccess},
	events.EventTicketDeleted:    {"Ticket eliminado", LevelInfo},
	events.EventInventoryCreated: {"Item agregado al inventario", LevelSuccess},
	events.EventInventoryUpdated: {"Inventario actualizado", LevelSuccess},
	events.EventInventoryDeleted: {"Item eliminado del inventario", LevelInfo},
	events.EventBackupExported:   {"Respaldo descargado exitosamente", LevelSuccess},
	events.EventBackupRestored:   {"Base de datos restaurada", LevelSuccess},
	events.EventReportGenerated:  {"Informe generado", LevelSuccess},
}

// MessageFor returns the user-facing message for an event type.
func MessageFor(eventType events.EventType) string {
	return notices[eventType].message
}

const notificationCapacity = 50

// NotificationService turns domain events into a short feed of
// user-facing notifications.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger

	mu     sync.Mutex
	recent []Notification
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for eventType := range notices {
		n.dispatcher.Subscribe(eventType, n.handle)
	}
}

func (n *NotificationService) handle(_ context.Context, event events.Event) error {
	nt, ok := notices[event.Type]
	if !ok {
		return nil
	}
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("subject_id", event.SubjectID),
		zap.Any("payload", event.Payload))

	n.mu.Lock()
	defer n.mu.Unlock()
	n.recent = append(n.recent, Notification{
		ID:        event.ID,
		Type:      event.Type,
		Level:     nt.level,
		Message:   nt.message,
		SubjectID: event.SubjectID,
		At:        event.Timestamp,
	})
	if len(n.recent) > notificationCapacity {
		n.recent = append([]Notification(nil), n.recent[len(n.recent)-notificationCapacity:]...)
	}
	return nil
}

// Recent returns up to limit notifications, newest first.
func (n *NotificationService) Recent(limit int) []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if limit <= 0 || limit > len(n.recent) {
		limit = len(n.recent)
	}
	out := make([]Notification, 0, limit)
	for i := len(n.recent) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, n.recent[i])
	}
	return out
}
