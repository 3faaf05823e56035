package model

// Room represents a screening room inside a cinema.  Besides its status it
// carries the projector/sound descriptors and the counters the maintenance
// alerts are computed from.  The three LastMaintenance tiers follow a 30,
// 90 and 365 day preventive cadence.
type Room struct {
	ID                    uint64         `json:"id"`                                 // rooms.id
	CinemaID              uint64         `json:"cinema_id"`                          // rooms.cinema_id
	Number                int            `json:"number"`                             // rooms.number
	Status                RoomStatus     `json:"status"`                             // rooms.status
	Projector             string         `json:"projector"`                          // rooms.projector
	SoundSystem           string         `json:"sound_system"`                       // rooms.sound_system
	ProjectorLampModel    *string        `json:"projector_lamp_model,omitempty"`     // rooms.projector_lamp_model
	ProjectorLampHours    *int64         `json:"projector_lamp_hours,omitempty"`     // rooms.projector_lamp_hours
	ProjectorLampMaxHours *int64         `json:"projector_lamp_max_hours,omitempty"` // rooms.projector_lamp_max_hours
	ProjectorType         *ProjectorType `json:"projector_type,omitempty"`           // rooms.projector_type
	LastMaintenanceA      *int64         `json:"last_maintenance_a,omitempty"`       // 30 day tier, ms
	LastMaintenanceB      *int64         `json:"last_maintenance_b,omitempty"`       // 90 day tier, ms
	LastMaintenanceC      *int64         `json:"last_maintenance_c,omitempty"`       // 365 day tier, ms
	AdditionalInfo        *string        `json:"additional_info,omitempty"`          // rooms.additional_info
	Amplifiers            *string        `json:"amplifiers,omitempty"`               // rooms.amplifiers
	ProjectorIP           *string        `json:"projector_ip,omitempty"`             // rooms.projector_ip
	Server                *string        `json:"server,omitempty"`                   // rooms.server
	ServerIP              *string        `json:"server_ip,omitempty"`                // rooms.server_ip
}

// RoomPatch carries the optional fields of a room update.
type RoomPatch struct {
	Number                *int
	Status                *RoomStatus
	Projector             *string
	SoundSystem           *string
	ProjectorLampModel    *string
	ProjectorLampHours    *int64
	ProjectorLampMaxHours *int64
	ProjectorType         *ProjectorType
	LastMaintenanceA      *int64
	LastMaintenanceB      *int64
	LastMaintenanceC      *int64
	AdditionalInfo        *string
	Amplifiers            *string
	ProjectorIP           *string
	Server                *string
	ServerIP              *string
}
