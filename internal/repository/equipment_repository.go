package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-maintenance/internal/model"
)

// EquipmentRepo provides CRUD operations on room equipment.
type EquipmentRepo struct {
	db DBTX
}

func NewEquipmentRepo(db DBTX) *EquipmentRepo { return &EquipmentRepo{db: db} }

const equipmentColumns = `id, room_id, cinema_id, name, description, ip_address, status, category,
	install_date, last_maintenance, next_maintenance, warranty_expiry, cost`

func scanEquipment(sc interface{ Scan(...any) error }, e *model.Equipment) error {
	return sc.Scan(&e.ID, &e.RoomID, &e.CinemaID, &e.Name, &e.Description, &e.IPAddress, &e.Status, &e.Category,
		&e.InstallDate, &e.LastMaintenance, &e.NextMaintenance, &e.WarrantyExpiry, &e.Cost)
}

func (r *EquipmentRepo) Create(ctx context.Context, e *model.Equipment) error {
	const q = `INSERT INTO equipment (room_id, cinema_id, name, description, ip_address, status, category,
		install_date, last_maintenance, next_maintenance, warranty_expiry, cost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, e.RoomID, e.CinemaID, e.Name, e.Description, e.IPAddress, e.Status, e.Category,
		e.InstallDate, e.LastMaintenance, e.NextMaintenance, e.WarrantyExpiry, e.Cost)
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

func (r *EquipmentRepo) GetByID(ctx context.Context, id uint64) (*model.Equipment, error) {
	var e model.Equipment
	err := scanEquipment(r.db.QueryRowContext(ctx, "SELECT "+equipmentColumns+" FROM equipment WHERE id = ?", id), &e)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEquipmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepo) ListAll(ctx context.Context) ([]model.Equipment, error) {
	return r.list(ctx, "SELECT "+equipmentColumns+" FROM equipment ORDER BY id")
}

func (r *EquipmentRepo) ListByRoom(ctx context.Context, roomID uint64) ([]model.Equipment, error) {
	return r.list(ctx, "SELECT "+equipmentColumns+" FROM equipment WHERE room_id = ? ORDER BY id", roomID)
}

func (r *EquipmentRepo) ListByCinema(ctx context.Context, cinemaID uint64) ([]model.Equipment, error) {
	return r.list(ctx, "SELECT "+equipmentColumns+" FROM equipment WHERE cinema_id = ? ORDER BY id", cinemaID)
}

func (r *EquipmentRepo) list(ctx context.Context, q string, args ...any) ([]model.Equipment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Equipment{}
	for rows.Next() {
		var e model.Equipment
		if err := scanEquipment(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EquipmentRepo) Update(ctx context.Context, id uint64, p model.EquipmentPatch) error {
	var up patch
	if p.Name != nil {
		up.set("name", *p.Name)
	}
	if p.Description != nil {
		up.set("description", *p.Description)
	}
	if p.IPAddress != nil {
		up.set("ip_address", *p.IPAddress)
	}
	if p.Status != nil {
		up.set("status", *p.Status)
	}
	if p.Category != nil {
		up.set("category", *p.Category)
	}
	if p.LastMaintenance != nil {
		up.set("last_maintenance", *p.LastMaintenance)
	}
	if p.NextMaintenance != nil {
		up.set("next_maintenance", *p.NextMaintenance)
	}
	if p.WarrantyExpiry != nil {
		up.set("warranty_expiry", *p.WarrantyExpiry)
	}
	if p.Cost != nil {
		up.set("cost", *p.Cost)
	}
	return up.apply(ctx, r.db, TableEquipment, id, ErrEquipmentNotFound)
}

// Delete removes a single piece of equipment.  Maintenance records and
// tasks pointing at it keep their rows; the foreign key nulls the link.
func (r *EquipmentRepo) Delete(ctx context.Context, id uint64) error {
	if err := deleteByID(ctx, r.db, TableEquipment, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrEquipmentNotFound
		}
		return err
	}
	return nil
}
