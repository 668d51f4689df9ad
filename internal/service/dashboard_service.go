package service

import (
	"slices"
	"time"

	"github.com/spec-kit/cdce-console/internal/clock"
	"github.com/spec-kit/cdce-console/internal/domain"
)

// DepartmentCount is one row of the busiest departments list.
type DepartmentCount struct {
	Department string `json:"departamento"`
	Count      int    `json:"count"`
}

// StatusCount is one slice of the status distribution.
type StatusCount struct {
	Status domain.TicketStatus `json:"estado"`
	Count  int                 `json:"count"`
}

// Dashboard aggregates the overview figures.
type Dashboard struct {
	TotalTickets   int                    `json:"total_tickets"`
	Open           int                    `json:"open"`
	InProgress     int                    `json:"in_progress"`
	Resolved       int                    `json:"resolved"`
	TotalItems     int                    `json:"total_items"`
	LowStock       int                    `json:"low_stock"`
	TopDepartments []DepartmentCount      `json:"top_departments"`
	Distribution   []StatusCount          `json:"distribution"`
	MaintenanceDue []domain.InventoryItem `json:"maintenance_due"`
}

// DashboardService computes the overview from the current state.
type DashboardService struct {
	state *State
	clock clock.Clock
}

func NewDashboardService(deps Dependencies) *DashboardService {
	return &DashboardService{state: deps.State, clock: deps.Clock}
}

// Overview returns the dashboard for the current state.
func (s *DashboardService) Overview() Dashboard {
	tickets, inventory := s.state.Snapshot()
	return BuildDashboard(tickets, inventory, s.clock.Now())
}

// BuildDashboard computes the overview figures. Top departments are
// ordered by ticket count; ties keep the order of first appearance.
func BuildDashboard(tickets []domain.Ticket, inventory []domain.InventoryItem, now time.Time) Dashboard {
	d := Dashboard{
		TotalTickets:   len(tickets),
		TotalItems:     len(inventory),
		TopDepartments: []DepartmentCount{},
		MaintenanceDue: []domain.InventoryItem{},
	}

	var depts []DepartmentCount
	index := map[string]int{}
	for _, t := range tickets {
		switch t.Status {
		case domain.TicketStatusOpen:
			d.Open++
		case domain.TicketStatusInProgress:
			d.InProgress++
		case domain.TicketStatusResolved:
			d.Resolved++
		}
		if i, ok := index[t.Department]; ok {
			depts[i].Count++
			continue
		}
		index[t.Department] = len(depts)
		depts = append(depts, DepartmentCount{Department: t.Department, Count: 1})
	}
	slices.SortStableFunc(depts, func(a, b DepartmentCount) int { return b.Count - a.Count })
	if len(depts) > 3 {
		depts = depts[:3]
	}
	d.TopDepartments = append(d.TopDepartments, depts...)

	d.Distribution = []StatusCount{
		{Status: domain.TicketStatusOpen, Count: d.Open},
		{Status: domain.TicketStatusInProgress, Count: d.InProgress},
		{Status: domain.TicketStatusResolved, Count: d.Resolved},
	}

	for _, it := range inventory {
		if it.LowStock(domain.DashboardLowStock) {
			d.LowStock++
		}
		if it.MaintenanceDue(now) {
			d.MaintenanceDue = append(d.MaintenanceDue, it)
		}
	}
	return d
}
