package model

// Cinema represents a venue that contains screening rooms.  TotalRooms,
// ActiveRooms and Availability are a denormalized cache of the room set.
// They are only refreshed by an explicit stats recompute and may be stale
// between room writes.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name of the venue.
//  Location     – free-form address or mall name.
//  TotalRooms   – cached count of rooms.
//  ActiveRooms  – cached count of rooms with status active.
//  Availability – cached percentage of active rooms (0–100).
type Cinema struct {
	ID           uint64 `json:"id"`           // cinemas.id
	Name         string `json:"name"`         // cinemas.name
	Location     string `json:"location"`     // cinemas.location
	TotalRooms   int    `json:"total_rooms"`  // cinemas.total_rooms
	ActiveRooms  int    `json:"active_rooms"` // cinemas.active_rooms
	Availability int    `json:"availability"` // cinemas.availability
}

// CinemaStats is the derived part of a Cinema.
type CinemaStats struct {
	TotalRooms   int `json:"total_rooms"`
	ActiveRooms  int `json:"active_rooms"`
	Availability int `json:"availability"`
}

// CinemaPatch carries the optional fields of a cinema update.  Nil fields
// are left untouched.
type CinemaPatch struct {
	Name     *string
	Location *string
}
