package domain

import "time"

func mustTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		panic(err)
	}
	return t
}

func timePtr(raw string) *time.Time {
	t := mustTime(raw)
	return &t
}

// SampleTickets returns the seed tickets used when storage holds nothing
// usable. Each call returns a fresh slice.
func SampleTickets() []Ticket {
	return []Ticket{
		{
			ID:          1001,
			Description: "Falla de conexión en laboratorio 3",
			Type:        TicketTypeNetwork,
			Priority:    TicketPriorityHigh,
			Status:      TicketStatusOpen,
			Department:  "Informatica",
			Requester:   "Prof. Rodriguez",
			CreatedAt:   mustTime("2023-10-25T09:00:00Z"),
		},
		{
			ID:          1002,
			Description: "Actualización de antivirus en administración",
			Type:        TicketTypeSoftware,
			Priority:    TicketPriorityMedium,
			Status:      TicketStatusInProgress,
			Department:  "Gestion Humana",
			Requester:   "Lic. Pérez",
			CreatedAt:   mustTime("2023-10-24T14:30:00Z"),
			AssignedTo:  "Téc. García",
		},
		{
			ID:          1003,
			Description: "Pantalla azul en PC Dirección",
			Type:        TicketTypeHardware,
			Priority:    TicketPriorityCritical,
			Status:      TicketStatusOpen,
			Department:  "Despacho",
			Requester:   "Dir. González",
			CreatedAt:   mustTime("2023-10-26T08:15:00Z"),
		},
		{
			ID:          1004,
			Description: "Solicitud de tóner impresora laser",
			Type:        TicketTypeOther,
			Priority:    TicketPriorityLow,
			Status:      TicketStatusResolved,
			Department:  "Gestion Humana",
			Requester:   "Asist. Martinez",
			CreatedAt:   mustTime("2023-10-20T10:00:00Z"),
			AssignedTo:  "Téc. López",
		},
	}
}

// SampleInventory returns the seed inventory. Each call returns a fresh slice.
func SampleInventory() []InventoryItem {
	return []InventoryItem{
		{ID: 501, Name: "Laptop Lenovo ThinkPad", Description: "Core i5, 8GB RAM, SSD 256GB", Category: CategoryEquipment, Quantity: 12, Location: "Informatica", Status: InventoryStatusActive, LastMaintenance: timePtr("2023-08-15T00:00:00Z"), MaintenanceFrequency: FrequencyQuarterly},
		{ID: 502, Name: "Cable UTP Cat6", Description: "Bobina 305m", Category: CategoryConsumable, Quantity: 2, Location: "Informatica", Status: InventoryStatusActive, LastMaintenance: timePtr("2023-10-01T00:00:00Z"), MaintenanceFrequency: FrequencySemiannual},
		{ID: 503, Name: "Router MikroTik", Description: "Routerboard RB750", Category: CategoryEquipment, Quantity: 1, Location: "Sala Situacional", Status: InventoryStatusMaintenance, LastMaintenance: timePtr("2023-09-10T00:00:00Z"), MaintenanceFrequency: FrequencyQuarterly, MaintenanceType: MaintenanceCorrective},
		{ID: 504, Name: "Mouse Óptico HP", Description: "USB Negro", Category: CategoryComponent, Quantity: 5, Location: "Despacho", Status: InventoryStatusActive, LastMaintenance: timePtr("2023-07-20T00:00:00Z"), MaintenanceFrequency: FrequencySemiannual},
		{ID: 505, Name: "Impresora Epson L3150", Description: "Multifuncional Tinta Continua", Category: CategoryEquipment, Quantity: 1, Location: "Atencion al ciudadano", Status: InventoryStatusDecommissioned, LastMaintenance: timePtr("2023-01-15T00:00:00Z"), MaintenanceFrequency: FrequencyQuarterly},
		{ID: 506, Name: "Monitor Dell 24", Description: "P2419H", Category: CategoryEquipment, Quantity: 3, Location: "Prensa", Status: InventoryStatusActive, LastMaintenance: timePtr("2023-09-25T00:00:00Z"), MaintenanceFrequency: FrequencySemiannual},
		{ID: 507, Name: "Servidor HP ProLiant", Description: "Servidor de Archivos", Category: CategoryEquipment, Quantity: 1, Location: "Informatica", Status: InventoryStatusActive, LastMaintenance: timePtr("2023-06-01T00:00:00Z"), MaintenanceFrequency: FrequencyQuarterly},
		{ID: 508, Name: "Licencia Microsoft Office", Description: "Licencia por volumen", Category: CategorySoftware, Quantity: 50, Location: "Informatica", Status: InventoryStatusActive, LastMaintenance: timePtr("2023-01-01T00:00:00Z"), MaintenanceFrequency: FrequencyAnnual},
	}
}
