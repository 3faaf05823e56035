package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-maintenance/internal/model"
)

// TaskRepo stores kanban tasks.
type TaskRepo struct {
	db DBTX
}

func NewTaskRepo(db DBTX) *TaskRepo { return &TaskRepo{db: db} }

const taskColumns = `id, cinema_id, room_id, equipment_id, title, description, priority, status,
	assigned_to, due_date, category`

func scanTask(sc interface{ Scan(...any) error }, t *model.Task) error {
	return sc.Scan(&t.ID, &t.CinemaID, &t.RoomID, &t.EquipmentID, &t.Title, &t.Description, &t.Priority, &t.Status,
		&t.AssignedTo, &t.DueDate, &t.Category)
}

func (r *TaskRepo) Create(ctx context.Context, t *model.Task) error {
	const q = `INSERT INTO tasks (cinema_id, room_id, equipment_id, title, description, priority, status,
		assigned_to, due_date, category)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.CinemaID, t.RoomID, t.EquipmentID, t.Title, t.Description, t.Priority, t.Status,
		t.AssignedTo, t.DueDate, t.Category)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id uint64) (*model.Task, error) {
	var t model.Task
	err := scanTask(r.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id), &t)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepo) ListAll(ctx context.Context) ([]model.Task, error) {
	return r.list(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY id")
}

func (r *TaskRepo) ListByCinema(ctx context.Context, cinemaID uint64) ([]model.Task, error) {
	return r.list(ctx, "SELECT "+taskColumns+" FROM tasks WHERE cinema_id = ? ORDER BY id", cinemaID)
}

func (r *TaskRepo) ListByRoom(ctx context.Context, roomID uint64) ([]model.Task, error) {
	return r.list(ctx, "SELECT "+taskColumns+" FROM tasks WHERE room_id = ? ORDER BY id", roomID)
}

func (r *TaskRepo) list(ctx context.Context, q string, args ...any) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TaskRepo) Update(ctx context.Context, id uint64, p model.TaskPatch) error {
	var up patch
	if p.Title != nil {
		up.set("title", *p.Title)
	}
	if p.Description != nil {
		up.set("description", *p.Description)
	}
	if p.Priority != nil {
		up.set("priority", *p.Priority)
	}
	if p.Status != nil {
		up.set("status", *p.Status)
	}
	if p.AssignedTo != nil {
		up.set("assigned_to", *p.AssignedTo)
	}
	if p.DueDate != nil {
		up.set("due_date", *p.DueDate)
	}
	if p.Category != nil {
		up.set("category", *p.Category)
	}
	return up.apply(ctx, r.db, TableTasks, id, ErrTaskNotFound)
}

// UpdateStatus moves a task to another kanban column.
func (r *TaskRepo) UpdateStatus(ctx context.Context, id uint64, s model.TaskStatus) error {
	return r.Update(ctx, id, model.TaskPatch{Status: &s})
}

func (r *TaskRepo) Delete(ctx context.Context, id uint64) error {
	if err := deleteByID(ctx, r.db, TableTasks, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}
