package model

// Event is a calendar entry (maintenance window, cleaning, inspection,
// meeting).  RoomID is optional; cinema-level events have none.
type Event struct {
	ID          uint64      `json:"id"`
	CinemaID    uint64      `json:"cinema_id"`
	RoomID      *uint64     `json:"room_id,omitempty"`
	Title       string      `json:"title"`
	Description *string     `json:"description,omitempty"`
	StartTime   int64       `json:"start_time"`
	EndTime     int64       `json:"end_time"`
	Type        EventType   `json:"type"`
	Status      EventStatus `json:"status"`
}

type EventPatch struct {
	Title       *string
	Description *string
	StartTime   *int64
	EndTime     *int64
	Type        *EventType
	Status      *EventStatus
}
