package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-maintenance/internal/model"
)

// RoomRepo provides CRUD operations on screening rooms.
type RoomRepo struct {
	db DBTX
}

func NewRoomRepo(db DBTX) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, cinema_id, number, status, projector, sound_system,
	projector_lamp_model, projector_lamp_hours, projector_lamp_max_hours, projector_type,
	last_maintenance_a, last_maintenance_b, last_maintenance_c,
	additional_info, amplifiers, projector_ip, server, server_ip`

func scanRoom(sc interface{ Scan(...any) error }, r *model.Room) error {
	return sc.Scan(&r.ID, &r.CinemaID, &r.Number, &r.Status, &r.Projector, &r.SoundSystem,
		&r.ProjectorLampModel, &r.ProjectorLampHours, &r.ProjectorLampMaxHours, &r.ProjectorType,
		&r.LastMaintenanceA, &r.LastMaintenanceB, &r.LastMaintenanceC,
		&r.AdditionalInfo, &r.Amplifiers, &r.ProjectorIP, &r.Server, &r.ServerIP)
}

// Create inserts a room and fills its ID.  A room number that already
// exists in the same cinema yields ErrConflict; an unknown cinema yields
// ErrNotFound.
func (r *RoomRepo) Create(ctx context.Context, m *model.Room) error {
	const q = `INSERT INTO rooms (cinema_id, number, status, projector, sound_system,
		projector_lamp_model, projector_lamp_hours, projector_lamp_max_hours, projector_type,
		last_maintenance_a, last_maintenance_b, last_maintenance_c,
		additional_info, amplifiers, projector_ip, server, server_ip)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.CinemaID, m.Number, m.Status, m.Projector, m.SoundSystem,
		m.ProjectorLampModel, m.ProjectorLampHours, m.ProjectorLampMaxHours, m.ProjectorType,
		m.LastMaintenanceA, m.LastMaintenanceB, m.LastMaintenanceC,
		m.AdditionalInfo, m.Amplifiers, m.ProjectorIP, m.Server, m.ServerIP)
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

// GetByID returns ErrRoomNotFound when the room does not exist.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	var m model.Room
	err := scanRoom(r.db.QueryRowContext(ctx, "SELECT "+roomColumns+" FROM rooms WHERE id = ?", id), &m)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListAll returns every room ordered by cinema and number.
func (r *RoomRepo) ListAll(ctx context.Context) ([]model.Room, error) {
	return r.list(ctx, "SELECT "+roomColumns+" FROM rooms ORDER BY cinema_id, number")
}

// ListByCinema returns the rooms of one cinema ordered by number.
func (r *RoomRepo) ListByCinema(ctx context.Context, cinemaID uint64) ([]model.Room, error) {
	return r.list(ctx, "SELECT "+roomColumns+" FROM rooms WHERE cinema_id = ? ORDER BY number", cinemaID)
}

func (r *RoomRepo) list(ctx context.Context, q string, args ...any) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Room{}
	for rows.Next() {
		var m model.Room
		if err := scanRoom(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update writes the non-nil fields of p.
func (r *RoomRepo) Update(ctx context.Context, id uint64, p model.RoomPatch) error {
	var up patch
	if p.Number != nil {
		up.set("number", *p.Number)
	}
	if p.Status != nil {
		up.set("status", *p.Status)
	}
	if p.Projector != nil {
		up.set("projector", *p.Projector)
	}
	if p.SoundSystem != nil {
		up.set("sound_system", *p.SoundSystem)
	}
	if p.ProjectorLampModel != nil {
		up.set("projector_lamp_model", *p.ProjectorLampModel)
	}
	if p.ProjectorLampHours != nil {
		up.set("projector_lamp_hours", *p.ProjectorLampHours)
	}
	if p.ProjectorLampMaxHours != nil {
		up.set("projector_lamp_max_hours", *p.ProjectorLampMaxHours)
	}
	if p.ProjectorType != nil {
		up.set("projector_type", *p.ProjectorType)
	}
	if p.LastMaintenanceA != nil {
		up.set("last_maintenance_a", *p.LastMaintenanceA)
	}
	if p.LastMaintenanceB != nil {
		up.set("last_maintenance_b", *p.LastMaintenanceB)
	}
	if p.LastMaintenanceC != nil {
		up.set("last_maintenance_c", *p.LastMaintenanceC)
	}
	if p.AdditionalInfo != nil {
		up.set("additional_info", *p.AdditionalInfo)
	}
	if p.Amplifiers != nil {
		up.set("amplifiers", *p.Amplifiers)
	}
	if p.ProjectorIP != nil {
		up.set("projector_ip", *p.ProjectorIP)
	}
	if p.Server != nil {
		up.set("server", *p.Server)
	}
	if p.ServerIP != nil {
		up.set("server_ip", *p.ServerIP)
	}
	return up.apply(ctx, r.db, TableRooms, id, ErrRoomNotFound)
}
