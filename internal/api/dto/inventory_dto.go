package dto

import (
	"time"

	"github.com/spec-kit/cdce-console/internal/domain"
)

// InventoryResponse decorates an item with its stock and maintenance flags.
type InventoryResponse struct {
	domain.InventoryItem
	LowStock        bool       `json:"stock_bajo"`
	MaintenanceDue  bool       `json:"mantenimiento_pendiente"`
	NextMaintenance *time.Time `json:"proximo_mantenimiento,omitempty"`
}

func NewInventoryResponse(it domain.InventoryItem, now time.Time) InventoryResponse {
	resp := InventoryResponse{
		InventoryItem:  it,
		LowStock:       it.LowStock(domain.DashboardLowStock),
		MaintenanceDue: it.MaintenanceDue(now),
	}
	if next, ok := it.NextMaintenance(); ok {
		resp.NextMaintenance = &next
	}
	return resp
}

func NewInventoryResponses(items []domain.InventoryItem, now time.Time) []InventoryResponse {
	out := make([]InventoryResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewInventoryResponse(it, now))
	}
	return out
}
