package model

// Equipment is a tracked device installed in a room (projector, amplifier,
// HVAC unit, switch, ...).  CinemaID duplicates the room's cinema so that
// cinema-wide queries do not need a join.
type Equipment struct {
	ID              uint64            `json:"id"`
	RoomID          uint64            `json:"room_id"`
	CinemaID        uint64            `json:"cinema_id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	IPAddress       *string           `json:"ip_address,omitempty"`
	Status          EquipmentStatus   `json:"status"`
	Category        EquipmentCategory `json:"category"`
	InstallDate     *int64            `json:"install_date,omitempty"`
	LastMaintenance *int64            `json:"last_maintenance,omitempty"`
	NextMaintenance *int64            `json:"next_maintenance,omitempty"`
	WarrantyExpiry  *int64            `json:"warranty_expiry,omitempty"`
	Cost            *float64          `json:"cost,omitempty"`
}

type EquipmentPatch struct {
	Name            *string
	Description     *string
	IPAddress       *string
	Status          *EquipmentStatus
	Category        *EquipmentCategory
	LastMaintenance *int64
	NextMaintenance *int64
	WarrantyExpiry  *int64
	Cost            *float64
}
