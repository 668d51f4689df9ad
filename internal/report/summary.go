package report

import (
	"fmt"
	"strings"

	"github.com/spec-kit/cdce-console/internal/domain"
)

// Summary holds the figures quoted in the report prompt.
type Summary struct {
	Tickets        int      `json:"tickets"`
	Open           int      `json:"open"`
	Closed         int      `json:"closed"`
	Critical       int      `json:"critical"`
	InventoryUnits int      `json:"inventory_units"`
	InMaintenance  int      `json:"in_maintenance"`
	LowStock       []string `json:"low_stock"`
}

// Summarize computes the figures from the period's tickets and the full
// current inventory.
func Summarize(tickets []domain.Ticket, inventory []domain.InventoryItem) Summary {
	s := Summary{Tickets: len(tickets), LowStock: []string{}}
	for _, t := range tickets {
		switch {
		case t.Status == domain.TicketStatusOpen:
			s.Open++
		case t.Status.Finished():
			s.Closed++
		}
		if t.Priority == domain.TicketPriorityCritical {
			s.Critical++
		}
	}
	for _, it := range inventory {
		s.InventoryUnits += it.Quantity
		if it.Status == domain.InventoryStatusMaintenance {
			s.InMaintenance++
		}
		if it.LowStock(domain.ReportLowStock) {
			s.LowStock = append(s.LowStock, fmt.Sprintf("%s (%d)", it.Name, it.Quantity))
		}
	}
	return s
}

// LowStockText renders the low-stock alert line.
func (s Summary) LowStockText() string {
	if len(s.LowStock) == 0 {
		return "Sin novedades"
	}
	return strings.Join(s.LowStock, ", ")
}
