package model

// SessionImpact records a screening that was cancelled, delayed or
// interrupted because of a technical problem.
type SessionImpact struct {
	ID             uint64      `json:"id"`
	RoomID         uint64      `json:"room_id"`
	CinemaID       uint64      `json:"cinema_id"`
	Date           int64       `json:"date"`
	SessionTime    string      `json:"session_time"`
	ImpactType     ImpactType  `json:"impact_type"`
	Cause          ImpactCause `json:"cause"`
	DelayMinutes   *int64      `json:"delay_minutes,omitempty"`
	Description    string      `json:"description"`
	Resolved       bool        `json:"resolved"`
	ResolutionTime *int64      `json:"resolution_time,omitempty"`
}

// ImpactFilter narrows a session impact listing.  Start and End are only
// applied when both are set.
type ImpactFilter struct {
	CinemaID *uint64
	RoomID   *uint64
	Start    *int64
	End      *int64
}
