package model

// MaintenanceRecord documents one intervention in a room, optionally tied
// to a specific piece of equipment.  Downtime is expressed in minutes,
// StartTime and EndTime in milliseconds since epoch.
type MaintenanceRecord struct {
	ID          uint64              `json:"id"`
	EquipmentID *uint64             `json:"equipment_id,omitempty"`
	RoomID      uint64              `json:"room_id"`
	CinemaID    uint64              `json:"cinema_id"`
	Type        MaintenanceType     `json:"type"`
	Category    MaintenanceCategory `json:"category"`
	Description string              `json:"description"`
	Cost        *float64            `json:"cost,omitempty"`
	Downtime    *int64              `json:"downtime,omitempty"`
	Technician  *string             `json:"technician,omitempty"`
	StartTime   int64               `json:"start_time"`
	EndTime     *int64              `json:"end_time,omitempty"`
	Status      MaintenanceStatus   `json:"status"`
	Notes       *string             `json:"notes,omitempty"`
}

// MaintenancePatch mirrors the fields a technician updates when closing a
// record.
type MaintenancePatch struct {
	EndTime  *int64
	Status   *MaintenanceStatus
	Cost     *float64
	Downtime *int64
	Notes    *string
}

// MaintenanceFilter narrows a maintenance listing.  Start and End are only
// applied when both are set.
type MaintenanceFilter struct {
	CinemaID *uint64
	RoomID   *uint64
	Start    *int64
	End      *int64
	Type     *MaintenanceType
	Category *MaintenanceCategory
}
