package model

// Task is a to-do item on the cinema kanban board.  RoomID and EquipmentID
// are optional; a task without a room belongs to the cinema as a whole.
type Task struct {
	ID          uint64        `json:"id"`
	CinemaID    uint64        `json:"cinema_id"`
	RoomID      *uint64       `json:"room_id,omitempty"`
	EquipmentID *uint64       `json:"equipment_id,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Priority    TaskPriority  `json:"priority"`
	Status      TaskStatus    `json:"status"`
	AssignedTo  *string       `json:"assigned_to,omitempty"`
	DueDate     *int64        `json:"due_date,omitempty"`
	Category    *TaskCategory `json:"category,omitempty"`
}

type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *TaskPriority
	Status      *TaskStatus
	AssignedTo  *string
	DueDate     *int64
	Category    *TaskCategory
}
