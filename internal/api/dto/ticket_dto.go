package dto

import (
	"time"

	"github.com/spec-kit/cdce-console/internal/domain"
)

// TicketResponse is a ticket with its age label as shown in the lists.
type TicketResponse struct {
	domain.Ticket
	Age string `json:"antiguedad"`
}

// NewTicketResponse labels t relative to now.
func NewTicketResponse(t domain.Ticket, now time.Time) TicketResponse {
	return TicketResponse{Ticket: t, Age: t.AgeLabel(now)}
}

// NewTicketResponses labels every ticket relative to now.
func NewTicketResponses(tickets []domain.Ticket, now time.Time) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, NewTicketResponse(t, now))
	}
	return out
}

// DeleteResponse reports whether a record was removed.
type DeleteResponse struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}
