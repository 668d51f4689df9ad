package domain

import "time"

// Stock thresholds. Reports flag items strictly below ReportLowStock; the
// dashboard counter uses the wider DashboardLowStock.
const (
	ReportLowStock    = 3
	DashboardLowStock = 5
)

// InventoryCategory classifies an asset.
type InventoryCategory string

const (
	CategoryEquipment  InventoryCategory = "Equipo"
	CategoryComponent  InventoryCategory = "Componente"
	CategoryConsumable InventoryCategory = "Consumible"
	CategorySoftware   InventoryCategory = "Software"
	CategoryOther      InventoryCategory = "Otros"
)

func (c InventoryCategory) Valid() bool {
	switch c {
	case CategoryEquipment, CategoryComponent, CategoryConsumable, CategorySoftware, CategoryOther:
		return true
	}
	return false
}

// InventoryStatus is the operational state of an asset.
type InventoryStatus string

const (
	InventoryStatusActive         InventoryStatus = "Activo"
	InventoryStatusInactive       InventoryStatus = "Inactivo"
	InventoryStatusMaintenance    InventoryStatus = "Mantenimiento"
	InventoryStatusDecommissioned InventoryStatus = "Baja"
)

// InventoryStatuses lists every status in display order.
var InventoryStatuses = []InventoryStatus{
	InventoryStatusActive, InventoryStatusInactive, InventoryStatusMaintenance, InventoryStatusDecommissioned,
}

func (s InventoryStatus) Valid() bool {
	switch s {
	case InventoryStatusActive, InventoryStatusInactive, InventoryStatusMaintenance, InventoryStatusDecommissioned:
		return true
	}
	return false
}

// MaintenanceFrequency is how often an asset is serviced.
type MaintenanceFrequency string

const (
	FrequencyQuarterly  MaintenanceFrequency = "Trimestral"
	FrequencySemiannual MaintenanceFrequency = "Semestral"
	FrequencyAnnual     MaintenanceFrequency = "Anual"
)

func (f MaintenanceFrequency) Valid() bool {
	return f.Months() > 0
}

// Months returns the service interval, or 0 for an unknown frequency.
func (f MaintenanceFrequency) Months() int {
	switch f {
	case FrequencyQuarterly:
		return 3
	case FrequencySemiannual:
		return 6
	case FrequencyAnnual:
		return 12
	}
	return 0
}

// MaintenanceType is the kind of maintenance currently planned.
type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "Preventivo"
	MaintenanceCorrective MaintenanceType = "Correctivo"
)

func (m MaintenanceType) Valid() bool {
	return m == MaintenancePreventive || m == MaintenanceCorrective
}

// InventoryItem is a tracked physical or licensed asset. Location shares
// the department vocabulary with tickets but is not a reference to them.
type InventoryItem struct {
	ID                   ID                   `json:"id"`
	Name                 string               `json:"nombre"`
	Description          string               `json:"descripcion"`
	Category             InventoryCategory    `json:"categoria"`
	Quantity             int                  `json:"cantidad"`
	Location             string               `json:"ubicacion"`
	Status               InventoryStatus      `json:"estado"`
	Barcode              string               `json:"codigo_barras,omitempty"`
	LastMaintenance      *time.Time           `json:"ultimo_mantenimiento,omitempty"`
	MaintenanceFrequency MaintenanceFrequency `json:"frecuencia_mantenimiento,omitempty"`
	MaintenanceType      MaintenanceType      `json:"tipo_mantenimiento,omitempty"`
}

// LowStock reports whether the quantity is strictly below threshold.
func (i InventoryItem) LowStock(threshold int) bool {
	return i.Quantity < threshold
}

// NextMaintenance returns when the item is next due, if it has both a
// last maintenance date and a known frequency.
func (i InventoryItem) NextMaintenance() (time.Time, bool) {
	months := i.MaintenanceFrequency.Months()
	if i.LastMaintenance == nil || months == 0 {
		return time.Time{}, false
	}
	return i.LastMaintenance.AddDate(0, months, 0), true
}

// MaintenanceDue reports whether the next maintenance date is not after now.
// Decommissioned items are never due.
func (i InventoryItem) MaintenanceDue(now time.Time) bool {
	if i.Status == InventoryStatusDecommissioned {
		return false
	}
	next, ok := i.NextMaintenance()
	return ok && !next.After(now)
}
