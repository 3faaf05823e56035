// Package repository contains data access logic separated from HTTP handlers.
// This file holds the cinema queries: CRUD plus the write-back of the
// denormalized room statistics.  Cascading deletes are not done here; they
// are composed from the Tables primitives by the integrity maintainer.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to match sentinel values

	"github.com/iliyamo/cinema-maintenance/internal/model"
)

// CinemaRepo encapsulates all database queries related to cinemas.
type CinemaRepo struct {
	db DBTX // db is the underlying connection pool or transaction
}

// NewCinemaRepo constructs a CinemaRepo with the provided DB handle.
func NewCinemaRepo(db DBTX) *CinemaRepo {
	return &CinemaRepo{db: db}
}

const cinemaColumns = "id, name, location, total_rooms, active_rooms, availability"

func scanCinema(sc interface{ Scan(...any) error }, c *model.Cinema) error {
	return sc.Scan(&c.ID, &c.Name, &c.Location, &c.TotalRooms, &c.ActiveRooms, &c.Availability)
}

// Create inserts a new cinema.  On success the cinema's ID field will be
// populated with the auto-generated value.  The cached statistics are
// written as given (normally zero until the first recompute).
func (r *CinemaRepo) Create(ctx context.Context, c *model.Cinema) error {
	const q = "INSERT INTO cinemas (name, location, total_rooms, active_rooms, availability) VALUES (?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Location, c.TotalRooms, c.ActiveRooms, c.Availability)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID fetches a cinema by its ID.  It returns ErrCinemaNotFound if no
// row is found.
func (r *CinemaRepo) GetByID(ctx context.Context, id uint64) (*model.Cinema, error) {
	const q = "SELECT " + cinemaColumns + " FROM cinemas WHERE id = ?"
	var c model.Cinema
	if err := scanCinema(r.db.QueryRowContext(ctx, q, id), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCinemaNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListAll returns all cinemas ordered by id.
func (r *CinemaRepo) ListAll(ctx context.Context) ([]model.Cinema, error) {
	const q = "SELECT " + cinemaColumns + " FROM cinemas ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Cinema{}
	for rows.Next() {
		var c model.Cinema
		if err := scanCinema(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies the non-nil fields of p.
func (r *CinemaRepo) Update(ctx context.Context, id uint64, p model.CinemaPatch) error {
	var up patch
	if p.Name != nil {
		up.set("name", *p.Name)
	}
	if p.Location != nil {
		up.set("location", *p.Location)
	}
	return up.apply(ctx, r.db, TableCinemas, id, ErrCinemaNotFound)
}

// UpdateStats writes the denormalized room statistics of a cinema.
func (r *CinemaRepo) UpdateStats(ctx context.Context, id uint64, s model.CinemaStats) error {
	var up patch
	up.set("total_rooms", s.TotalRooms)
	up.set("active_rooms", s.ActiveRooms)
	up.set("availability", s.Availability)
	return up.apply(ctx, r.db, TableCinemas, id, ErrCinemaNotFound)
}
