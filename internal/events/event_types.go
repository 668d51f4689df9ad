package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated    EventType = "ticket_created"
	EventTicketUpdated    EventType = "ticket_updated"
	EventTicketDeleted    EventType = "ticket_deleted"
	EventInventoryCreated EventType = "inventory_created"
	EventInventoryUpdated EventType = "inventory_updated"
	EventInventoryDeleted EventType = "inventory_deleted"
	EventBackupExported   EventType = "backup_exported"
	EventBackupRestored   EventType = "backup_restored"
	EventReportGenerated  EventType = "report_generated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with a fresh ID.
func New(eventType EventType, subjectID string, at time.Time, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: at,
		Payload:   payload,
	}
}

// TicketSavedPayload payload.
type TicketSavedPayload struct {
	Description string `json:"descripcion"`
	Status      string `json:"estado"`
	Priority    string `json:"prioridad"`
	Department  string `json:"departamento"`
}

// InventorySavedPayload payload.
type InventorySavedPayload struct {
	Name     string `json:"nombre"`
	Quantity int    `json:"cantidad"`
	Status   string `json:"estado"`
}

// BackupPayload payload.
type BackupPayload struct {
	Tickets   int `json:"tickets"`
	Inventory int `json:"inventory"`
}

// ReportGeneratedPayload payload.
type ReportGeneratedPayload struct {
	Title     string `json:"title"`
	Period    string `json:"period"`
	Generated bool   `json:"generated"`
}
