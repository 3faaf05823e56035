package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-maintenance/internal/model"
)

// MaintenanceRepo stores maintenance records.
type MaintenanceRepo struct {
	db DBTX
}

func NewMaintenanceRepo(db DBTX) *MaintenanceRepo { return &MaintenanceRepo{db: db} }

const maintenanceColumns = `id, equipment_id, room_id, cinema_id, type, category, description,
	cost, downtime, technician, start_time, end_time, status, notes`

func scanMaintenance(sc interface{ Scan(...any) error }, m *model.MaintenanceRecord) error {
	return sc.Scan(&m.ID, &m.EquipmentID, &m.RoomID, &m.CinemaID, &m.Type, &m.Category, &m.Description,
		&m.Cost, &m.Downtime, &m.Technician, &m.StartTime, &m.EndTime, &m.Status, &m.Notes)
}

func (r *MaintenanceRepo) Create(ctx context.Context, m *model.MaintenanceRecord) error {
	const q = `INSERT INTO maintenance_records (equipment_id, room_id, cinema_id, type, category, description,
		cost, downtime, technician, start_time, end_time, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.EquipmentID, m.RoomID, m.CinemaID, m.Type, m.Category, m.Description,
		m.Cost, m.Downtime, m.Technician, m.StartTime, m.EndTime, m.Status, m.Notes)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

func (r *MaintenanceRepo) GetByID(ctx context.Context, id uint64) (*model.MaintenanceRecord, error) {
	var m model.MaintenanceRecord
	err := scanMaintenance(r.db.QueryRowContext(ctx, "SELECT "+maintenanceColumns+" FROM maintenance_records WHERE id = ?", id), &m)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMaintenanceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns the records matching f, newest start time first.  The
// time window only applies when both ends are set.
func (r *MaintenanceRepo) List(ctx context.Context, f model.MaintenanceFilter) ([]model.MaintenanceRecord, error) {
	var w where
	if f.CinemaID != nil {
		w.add("cinema_id = ?", *f.CinemaID)
	}
	if f.RoomID != nil {
		w.add("room_id = ?", *f.RoomID)
	}
	if f.Start != nil && f.End != nil {
		w.add("start_time >= ?", *f.Start)
		w.add("start_time <= ?", *f.End)
	}
	if f.Type != nil {
		w.add("type = ?", *f.Type)
	}
	if f.Category != nil {
		w.add("category = ?", *f.Category)
	}
	q := "SELECT " + maintenanceColumns + " FROM maintenance_records WHERE " + w.String() + " ORDER BY start_time DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.MaintenanceRecord{}
	for rows.Next() {
		var m model.MaintenanceRecord
		if err := scanMaintenance(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MaintenanceRepo) Update(ctx context.Context, id uint64, p model.MaintenancePatch) error {
	var up patch
	if p.EndTime != nil {
		up.set("end_time", *p.EndTime)
	}
	if p.Status != nil {
		up.set("status", *p.Status)
	}
	if p.Cost != nil {
		up.set("cost", *p.Cost)
	}
	if p.Downtime != nil {
		up.set("downtime", *p.Downtime)
	}
	if p.Notes != nil {
		up.set("notes", *p.Notes)
	}
	return up.apply(ctx, r.db, TableMaintenance, id, ErrMaintenanceNotFound)
}
