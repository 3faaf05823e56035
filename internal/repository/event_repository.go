package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-maintenance/internal/model"
)

// EventRepo stores calendar events.
type EventRepo struct {
	db DBTX
}

func NewEventRepo(db DBTX) *EventRepo { return &EventRepo{db: db} }

const eventColumns = "id, cinema_id, room_id, title, description, start_time, end_time, type, status"

func scanEvent(sc interface{ Scan(...any) error }, e *model.Event) error {
	return sc.Scan(&e.ID, &e.CinemaID, &e.RoomID, &e.Title, &e.Description, &e.StartTime, &e.EndTime, &e.Type, &e.Status)
}

func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events (cinema_id, room_id, title, description, start_time, end_time, type, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, e.CinemaID, e.RoomID, e.Title, e.Description, e.StartTime, e.EndTime, e.Type, e.Status)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	var e model.Event
	err := scanEvent(r.db.QueryRowContext(ctx, "SELECT "+eventColumns+" FROM events WHERE id = ?", id), &e)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepo) ListAll(ctx context.Context) ([]model.Event, error) {
	return r.list(ctx, "SELECT "+eventColumns+" FROM events ORDER BY start_time, id")
}

func (r *EventRepo) ListByCinema(ctx context.Context, cinemaID uint64) ([]model.Event, error) {
	return r.list(ctx, "SELECT "+eventColumns+" FROM events WHERE cinema_id = ? ORDER BY start_time, id", cinemaID)
}

func (r *EventRepo) ListByRoom(ctx context.Context, roomID uint64) ([]model.Event, error) {
	return r.list(ctx, "SELECT "+eventColumns+" FROM events WHERE room_id = ? ORDER BY start_time, id", roomID)
}

// ListByDateRange returns events starting inside [start, end], earliest
// first, optionally restricted to one cinema.
func (r *EventRepo) ListByDateRange(ctx context.Context, start, end int64, cinemaID *uint64) ([]model.Event, error) {
	var w where
	w.add("start_time >= ?", start)
	w.add("start_time <= ?", end)
	if cinemaID != nil {
		w.add("cinema_id = ?", *cinemaID)
	}
	return r.list(ctx, "SELECT "+eventColumns+" FROM events WHERE "+w.String()+" ORDER BY start_time, id", w.args...)
}

func (r *EventRepo) list(ctx context.Context, q string, args ...any) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		var e model.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EventRepo) Update(ctx context.Context, id uint64, p model.EventPatch) error {
	var up patch
	if p.Title != nil {
		up.set("title", *p.Title)
	}
	if p.Description != nil {
		up.set("description", *p.Description)
	}
	if p.StartTime != nil {
		up.set("start_time", *p.StartTime)
	}
	if p.EndTime != nil {
		up.set("end_time", *p.EndTime)
	}
	if p.Type != nil {
		up.set("type", *p.Type)
	}
	if p.Status != nil {
		up.set("status", *p.Status)
	}
	return up.apply(ctx, r.db, TableEvents, id, ErrEventNotFound)
}

func (r *EventRepo) UpdateStatus(ctx context.Context, id uint64, s model.EventStatus) error {
	return r.Update(ctx, id, model.EventPatch{Status: &s})
}

func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	if err := deleteByID(ctx, r.db, TableEvents, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}
