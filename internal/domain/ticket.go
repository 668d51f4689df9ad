package domain

import (
	"fmt"
	"time"
)

// TicketStatus enumerates lifecycle labels for tickets. Any status may
// follow any other.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Abierto"
	TicketStatusInProgress TicketStatus = "En Progreso"
	TicketStatusResolved   TicketStatus = "Resuelto"
	TicketStatusClosed     TicketStatus = "Cerrado"
)

// TicketStatuses lists every status in display order.
var TicketStatuses = []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed}

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// Finished reports whether the ticket belongs to the history view.
func (s TicketStatus) Finished() bool {
	return s == TicketStatusResolved || s == TicketStatusClosed
}

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "Baja"
	TicketPriorityMedium   TicketPriority = "Media"
	TicketPriorityHigh     TicketPriority = "Alta"
	TicketPriorityCritical TicketPriority = "Crítica"
)

func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// TicketType classifies the request.
type TicketType string

const (
	TicketTypeSupport  TicketType = "Soporte"
	TicketTypeSoftware TicketType = "Software"
	TicketTypeNetwork  TicketType = "Redes"
	TicketTypeHardware TicketType = "Hardware"
	TicketTypeOther    TicketType = "Otros"
)

func (t TicketType) Valid() bool {
	switch t {
	case TicketTypeSupport, TicketTypeSoftware, TicketTypeNetwork, TicketTypeHardware, TicketTypeOther:
		return true
	}
	return false
}

// Ticket is a support request. JSON keys match the stored format of the
// mobile app so existing backups load unchanged.
type Ticket struct {
	ID          ID             `json:"id"`
	Description string         `json:"descripcion"`
	Type        TicketType     `json:"tipo"`
	Priority    TicketPriority `json:"prioridad"`
	Status      TicketStatus   `json:"estado"`
	Department  string         `json:"departamento"`
	Requester   string         `json:"solicitante"`
	CreatedAt   time.Time      `json:"creado_en"`
	UpdatedAt   *time.Time     `json:"actualizado_en,omitempty"`
	AssignedTo  string         `json:"asignado_a,omitempty"`
	Resolution  string         `json:"solucion,omitempty"`
}

// AgeLabel renders the elapsed time since creation the way the ticket
// list shows it. Finished tickets stop counting at their last update.
func (t Ticket) AgeLabel(now time.Time) string {
	end := now
	if t.Status.Finished() && t.UpdatedAt != nil {
		end = *t.UpdatedAt
	}
	mins := int(end.Sub(t.CreatedAt) / time.Minute)
	if mins < 1 {
		return "Hace un momento"
	}
	days := mins / 1440
	hours := (mins % 1440) / 60
	switch {
	case days > 0:
		return fmt.Sprintf("Hace %dd", days)
	case hours > 0:
		return fmt.Sprintf("Hace %dh", hours)
	}
	return fmt.Sprintf("Hace %dm", mins%60)
}
