package model

import "fmt"

// Every status/category/type column is a closed set.  Each set is a named
// string type with a Valid method and a Parse constructor; values read from
// requests go through Parse before they reach the repositories.

// RoomStatus describes whether a screening room is usable.
type RoomStatus string

const (
	RoomActive      RoomStatus = "active"
	RoomMaintenance RoomStatus = "maintenance"
	RoomStopped     RoomStatus = "stopped"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomActive, RoomMaintenance, RoomStopped:
		return true
	}
	return false
}

// ParseRoomStatus validates a raw room status.
func ParseRoomStatus(raw string) (RoomStatus, error) {
	s := RoomStatus(raw)
	if !s.Valid() {
		return "", invalidEnum("status", raw)
	}
	return s, nil
}

// ProjectorType is the light source of a room projector.
type ProjectorType string

const (
	ProjectorLamp  ProjectorType = "lamp"
	ProjectorLaser ProjectorType = "laser"
)

func (p ProjectorType) Valid() bool {
	switch p {
	case ProjectorLamp, ProjectorLaser:
		return true
	}
	return false
}

func ParseProjectorType(raw string) (ProjectorType, error) {
	p := ProjectorType(raw)
	if !p.Valid() {
		return "", invalidEnum("projector_type", raw)
	}
	return p, nil
}

// EquipmentCategory groups equipment by technical area.
type EquipmentCategory string

const (
	EquipmentProjection EquipmentCategory = "projection"
	EquipmentSound      EquipmentCategory = "sound"
	EquipmentClimate    EquipmentCategory = "climate"
	EquipmentElectrical EquipmentCategory = "electrical"
	EquipmentNetwork    EquipmentCategory = "network"
	EquipmentOther      EquipmentCategory = "other"
)

func (c EquipmentCategory) Valid() bool {
	switch c {
	case EquipmentProjection, EquipmentSound, EquipmentClimate,
		EquipmentElectrical, EquipmentNetwork, EquipmentOther:
		return true
	}
	return false
}

func ParseEquipmentCategory(raw string) (EquipmentCategory, error) {
	c := EquipmentCategory(raw)
	if !c.Valid() {
		return "", invalidEnum("category", raw)
	}
	return c, nil
}

// EquipmentStatus is the service state of a piece of equipment.
type EquipmentStatus string

const (
	EquipmentOperational EquipmentStatus = "operational"
	EquipmentInService   EquipmentStatus = "maintenance"
	EquipmentReplacement EquipmentStatus = "replacement"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentOperational, EquipmentInService, EquipmentReplacement:
		return true
	}
	return false
}

// OutOfService reports whether the equipment is already unavailable.
func (s EquipmentStatus) OutOfService() bool {
	switch s {
	case EquipmentInService, EquipmentReplacement:
		return true
	case EquipmentOperational:
		return false
	}
	return false
}

func ParseEquipmentStatus(raw string) (EquipmentStatus, error) {
	s := EquipmentStatus(raw)
	if !s.Valid() {
		return "", invalidEnum("status", raw)
	}
	return s, nil
}

// MaintenanceType distinguishes planned from reactive work.
type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "preventive"
	MaintenanceCorrective MaintenanceType = "corrective"
	MaintenanceEmergency  MaintenanceType = "emergency"
)

func (t MaintenanceType) Valid() bool {
	switch t {
	case MaintenancePreventive, MaintenanceCorrective, MaintenanceEmergency:
		return true
	}
	return false
}

func ParseMaintenanceType(raw string) (MaintenanceType, error) {
	t := MaintenanceType(raw)
	if !t.Valid() {
		return "", invalidEnum("type", raw)
	}
	return t, nil
}

// MaintenanceCategory is the technical area a maintenance record touched.
// It extends EquipmentCategory with cleaning.
type MaintenanceCategory string

const (
	MaintenanceProjection MaintenanceCategory = "projection"
	MaintenanceSound      MaintenanceCategory = "sound"
	MaintenanceClimate    MaintenanceCategory = "climate"
	MaintenanceElectrical MaintenanceCategory = "electrical"
	MaintenanceNetwork    MaintenanceCategory = "network"
	MaintenanceCleaning   MaintenanceCategory = "cleaning"
	MaintenanceOther      MaintenanceCategory = "other"
)

func (c MaintenanceCategory) Valid() bool {
	switch c {
	case MaintenanceProjection, MaintenanceSound, MaintenanceClimate,
		MaintenanceElectrical, MaintenanceNetwork, MaintenanceCleaning, MaintenanceOther:
		return true
	}
	return false
}

func ParseMaintenanceCategory(raw string) (MaintenanceCategory, error) {
	c := MaintenanceCategory(raw)
	if !c.Valid() {
		return "", invalidEnum("category", raw)
	}
	return c, nil
}

// MaintenanceStatus tracks a maintenance record through its lifecycle.
type MaintenanceStatus string

const (
	MaintenanceScheduled  MaintenanceStatus = "scheduled"
	MaintenanceInProgress MaintenanceStatus = "in-progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceCancelled  MaintenanceStatus = "cancelled"
)

func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenanceScheduled, MaintenanceInProgress, MaintenanceCompleted, MaintenanceCancelled:
		return true
	}
	return false
}

func ParseMaintenanceStatus(raw string) (MaintenanceStatus, error) {
	s := MaintenanceStatus(raw)
	if !s.Valid() {
		return "", invalidEnum("status", raw)
	}
	return s, nil
}

// ImpactType is how a screening session was affected.
type ImpactType string

const (
	ImpactCancelled   ImpactType = "cancelled"
	ImpactDelayed     ImpactType = "delayed"
	ImpactInterrupted ImpactType = "interrupted"
)

func (t ImpactType) Valid() bool {
	switch t {
	case ImpactCancelled, ImpactDelayed, ImpactInterrupted:
		return true
	}
	return false
}

func ParseImpactType(raw string) (ImpactType, error) {
	t := ImpactType(raw)
	if !t.Valid() {
		return "", invalidEnum("impact_type", raw)
	}
	return t, nil
}

// ImpactCause is the technical area blamed for a session impact.
type ImpactCause string

const (
	CauseProjection ImpactCause = "projection"
	CauseSound      ImpactCause = "sound"
	CauseClimate    ImpactCause = "climate"
	CauseElectrical ImpactCause = "electrical"
	CauseNetwork    ImpactCause = "network"
	CauseOther      ImpactCause = "other"
)

func (c ImpactCause) Valid() bool {
	switch c {
	case CauseProjection, CauseSound, CauseClimate, CauseElectrical, CauseNetwork, CauseOther:
		return true
	}
	return false
}

func ParseImpactCause(raw string) (ImpactCause, error) {
	c := ImpactCause(raw)
	if !c.Valid() {
		return "", invalidEnum("cause", raw)
	}
	return c, nil
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func ParseTaskPriority(raw string) (TaskPriority, error) {
	p := TaskPriority(raw)
	if !p.Valid() {
		return "", invalidEnum("priority", raw)
	}
	return p, nil
}

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskDone:
		return true
	}
	return false
}

func ParseTaskStatus(raw string) (TaskStatus, error) {
	s := TaskStatus(raw)
	if !s.Valid() {
		return "", invalidEnum("status", raw)
	}
	return s, nil
}

type TaskCategory string

const (
	TaskMaintenance    TaskCategory = "maintenance"
	TaskCleaning       TaskCategory = "cleaning"
	TaskTechnical      TaskCategory = "technical"
	TaskAdministrative TaskCategory = "administrative"
)

func (c TaskCategory) Valid() bool {
	switch c {
	case TaskMaintenance, TaskCleaning, TaskTechnical, TaskAdministrative:
		return true
	}
	return false
}

func ParseTaskCategory(raw string) (TaskCategory, error) {
	c := TaskCategory(raw)
	if !c.Valid() {
		return "", invalidEnum("category", raw)
	}
	return c, nil
}

type EventType string

const (
	EventMaintenance EventType = "maintenance"
	EventCleaning    EventType = "cleaning"
	EventInspection  EventType = "inspection"
	EventMeeting     EventType = "meeting"
)

func (t EventType) Valid() bool {
	switch t {
	case EventMaintenance, EventCleaning, EventInspection, EventMeeting:
		return true
	}
	return false
}

func ParseEventType(raw string) (EventType, error) {
	t := EventType(raw)
	if !t.Valid() {
		return "", invalidEnum("type", raw)
	}
	return t, nil
}

type EventStatus string

const (
	EventScheduled  EventStatus = "scheduled"
	EventInProgress EventStatus = "in-progress"
	EventCompleted  EventStatus = "completed"
	EventCancelled  EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventScheduled, EventInProgress, EventCompleted, EventCancelled:
		return true
	}
	return false
}

func ParseEventStatus(raw string) (EventStatus, error) {
	s := EventStatus(raw)
	if !s.Valid() {
		return "", invalidEnum("status", raw)
	}
	return s, nil
}

func invalidEnum(field, raw string) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf("unknown value %q", raw)}
}
