package export

import (
	"strconv"

	"github.com/spec-kit/cdce-console/internal/domain"
)

// HistoryRecords flattens finished tickets for export.
func HistoryRecords(tickets []domain.Ticket) []Record {
	out := make([]Record, 0, len(tickets))
	for _, t := range tickets {
		resolution := t.Resolution
		if resolution == "" {
			resolution = "N/A"
		}
		out = append(out, Record{
			{"ID", t.ID.String()},
			{"Descripcion", t.Description},
			{"Solicitante", t.Requester},
			{"Depto", t.Department},
			{"Estado", string(t.Status)},
			{"Solucion", resolution},
		})
	}
	return out
}

// InventoryRecords flattens inventory items for export.
func InventoryRecords(items []domain.InventoryItem) []Record {
	out := make([]Record, 0, len(items))
	for _, it := range items {
		out = append(out, Record{
			{"Nombre", it.Name},
			{"Categoria", string(it.Category)},
			{"Cantidad", strconv.Itoa(it.Quantity)},
			{"Ubicacion", it.Location},
			{"Estado", string(it.Status)},
		})
	}
	return out
}
