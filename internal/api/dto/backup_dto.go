package dto

// RestoreResponse reports how many records a restore loaded.
type RestoreResponse struct {
	Tickets   int `json:"tickets"`
	Inventory int `json:"inventory"`
}

// ArchiveResponse names where a backup was stored.
type ArchiveResponse struct {
	Location string `json:"location"`
}
