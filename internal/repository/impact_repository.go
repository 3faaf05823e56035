package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-maintenance/internal/model"
)

// ImpactRepo stores session impacts.
type ImpactRepo struct {
	db DBTX
}

func NewImpactRepo(db DBTX) *ImpactRepo { return &ImpactRepo{db: db} }

const impactColumns = `id, room_id, cinema_id, date, session_time, impact_type, cause,
	delay_minutes, description, resolved, resolution_time`

func scanImpact(sc interface{ Scan(...any) error }, i *model.SessionImpact) error {
	return sc.Scan(&i.ID, &i.RoomID, &i.CinemaID, &i.Date, &i.SessionTime, &i.ImpactType, &i.Cause,
		&i.DelayMinutes, &i.Description, &i.Resolved, &i.ResolutionTime)
}

func (r *ImpactRepo) Create(ctx context.Context, i *model.SessionImpact) error {
	const q = `INSERT INTO session_impacts (room_id, cinema_id, date, session_time, impact_type, cause,
		delay_minutes, description, resolved, resolution_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, i.RoomID, i.CinemaID, i.Date, i.SessionTime, i.ImpactType, i.Cause,
		i.DelayMinutes, i.Description, i.Resolved, i.ResolutionTime)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	i.ID = uint64(id)
	return nil
}

func (r *ImpactRepo) GetByID(ctx context.Context, id uint64) (*model.SessionImpact, error) {
	var i model.SessionImpact
	err := scanImpact(r.db.QueryRowContext(ctx, "SELECT "+impactColumns+" FROM session_impacts WHERE id = ?", id), &i)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrImpactNotFound
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// List returns the impacts matching f, newest date first.
func (r *ImpactRepo) List(ctx context.Context, f model.ImpactFilter) ([]model.SessionImpact, error) {
	var w where
	if f.CinemaID != nil {
		w.add("cinema_id = ?", *f.CinemaID)
	}
	if f.RoomID != nil {
		w.add("room_id = ?", *f.RoomID)
	}
	if f.Start != nil && f.End != nil {
		w.add("date >= ?", *f.Start)
		w.add("date <= ?", *f.End)
	}
	q := "SELECT " + impactColumns + " FROM session_impacts WHERE " + w.String() + " ORDER BY date DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.SessionImpact{}
	for rows.Next() {
		var i model.SessionImpact
		if err := scanImpact(rows, &i); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// Resolve marks an impact as resolved at the given instant.
func (r *ImpactRepo) Resolve(ctx context.Context, id uint64, at int64) error {
	var up patch
	up.set("resolved", true)
	up.set("resolution_time", at)
	return up.apply(ctx, r.db, TableImpacts, id, ErrImpactNotFound)
}
