package service

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/spec-kit/cdce-console/internal/domain"
)

// TicketFilter narrows the active ticket list.
type TicketFilter struct {
	Query  string
	Status string
}

// InventoryFilter narrows the inventory list.
type InventoryFilter struct {
	Query      string
	Department string
	Status     string
}

func unfiltered(v string) bool {
	return v == "" || v == domain.AllFilter
}

// matcher performs case-insensitive substring matching. A Caser is not
// safe for concurrent use, so each filter call builds its own.
type matcher struct {
	fold  cases.Caser
	query string
}

func newMatcher(query string) *matcher {
	fold := cases.Fold()
	return &matcher{fold: fold, query: fold.String(strings.TrimSpace(query))}
}

func (m *matcher) match(fields ...string) bool {
	if m.query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(m.fold.String(f), m.query) {
			return true
		}
	}
	return false
}

// FilterActiveTickets keeps unfinished tickets whose description or
// requester contains the query, optionally restricted to one status.
func FilterActiveTickets(tickets []domain.Ticket, f TicketFilter) []domain.Ticket {
	m := newMatcher(f.Query)
	out := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.Status.Finished() {
			continue
		}
		if !unfiltered(f.Status) && string(t.Status) != f.Status {
			continue
		}
		if m.match(t.Description, t.Requester) {
			out = append(out, t)
		}
	}
	return out
}

// FilterHistoryTickets keeps resolved and closed tickets matching the query.
func FilterHistoryTickets(tickets []domain.Ticket, query string) []domain.Ticket {
	m := newMatcher(query)
	out := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.Status.Finished() && m.match(t.Description, t.Requester) {
			out = append(out, t)
		}
	}
	return out
}

// FilterInventory keeps items whose name contains the query and whose
// location and status match the optional exact filters.
func FilterInventory(items []domain.InventoryItem, f InventoryFilter) []domain.InventoryItem {
	m := newMatcher(f.Query)
	out := make([]domain.InventoryItem, 0, len(items))
	for _, it := range items {
		if !unfiltered(f.Department) && it.Location != f.Department {
			continue
		}
		if !unfiltered(f.Status) && string(it.Status) != f.Status {
			continue
		}
		if m.match(it.Name) {
			out = append(out, it)
		}
	}
	return out
}
