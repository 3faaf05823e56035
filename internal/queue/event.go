// Package queue defines the facility events exchanged over RabbitMQ, the
// publisher used by the HTTP layer and the audit consumer that records them.
package queue

import (
	"fmt"
	"time"
)

// QueueName is the durable queue every facility event is routed to.
const QueueName = "facility.events"

// Entities that produce events.
const (
	EntityCinema      = "cinema"
	EntityRoom        = "room"
	EntityEquipment   = "equipment"
	EntityMaintenance = "maintenance"
	EntityImpact      = "session_impact"
	EntityTask        = "task"
	EntityEvent       = "event"
	EntitySetting     = "setting"
)

// Actions carried in FacilityEvent.Action.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionResolved = "resolved"
	ActionStats    = "stats_recomputed"
)

// FacilityEvent is published after every successful mutation.  It carries
// enough context for consumers to audit or notify without reading the
// database.
type FacilityEvent struct {
	Entity     string  `json:"entity"`
	Action     string  `json:"action"`
	EntityID   uint64  `json:"entity_id"`
	CinemaID   *uint64 `json:"cinema_id,omitempty"`
	RoomID     *uint64 `json:"room_id,omitempty"`
	OccurredAt string  `json:"occurred_at"` // RFC 3339, UTC
}

// NewEvent stamps an event with the current time.
func NewEvent(entity, action string, id uint64) FacilityEvent {
	return FacilityEvent{Entity: entity, Action: action, EntityID: id, OccurredAt: time.Now().UTC().Format(time.RFC3339)}
}

// In attaches the owning cinema and, when non-nil, the room.
func (e FacilityEvent) In(cinemaID uint64, roomID *uint64) FacilityEvent {
	e.CinemaID = &cinemaID
	e.RoomID = roomID
	return e
}

// Line renders the event as one audit log line.
func (e FacilityEvent) Line() string {
	line := fmt.Sprintf("[%s] %s %s | id=%d", e.OccurredAt, e.Entity, e.Action, e.EntityID)
	if e.CinemaID != nil {
		line += fmt.Sprintf(" | cinema_id=%d", *e.CinemaID)
	}
	if e.RoomID != nil {
		line += fmt.Sprintf(" | room_id=%d", *e.RoomID)
	}
	return line + "\n"
}
