package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// DBTX is the subset of *sql.DB and *sql.Tx the repositories need.  Every
// repository is built on a DBTX so the same code runs inside or outside a
// transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Table names a collection of the entity store.  Only the constants below
// are valid; they are interpolated into SQL so the set must stay closed.
type Table string

const (
	TableCinemas     Table = "cinemas"
	TableRooms       Table = "rooms"
	TableEquipment   Table = "equipment"
	TableMaintenance Table = "maintenance_records"
	TableImpacts     Table = "session_impacts"
	TableTasks       Table = "tasks"
	TableEvents      Table = "events"
	TableSettings    Table = "settings"
)

// RefColumn names an indexed parent reference column.
type RefColumn string

const (
	RefCinema RefColumn = "cinema_id"
	RefRoom   RefColumn = "room_id"
)

var knownTables = map[Table]bool{
	TableCinemas: true, TableRooms: true, TableEquipment: true, TableMaintenance: true,
	TableImpacts: true, TableTasks: true, TableEvents: true, TableSettings: true,
}

// tableRefs lists which reference columns each table carries.
var tableRefs = map[Table][]RefColumn{
	TableRooms:       {RefCinema},
	TableEquipment:   {RefCinema, RefRoom},
	TableMaintenance: {RefCinema, RefRoom},
	TableImpacts:     {RefCinema, RefRoom},
	TableTasks:       {RefCinema, RefRoom},
	TableEvents:      {RefCinema, RefRoom},
}

// Tables is the row-level surface of the entity store: existence checks,
// index lookups by parent reference and deletes by primary key.  Cascading
// deletes are expressed purely in these terms.
type Tables interface {
	Exists(ctx context.Context, t Table, id uint64) (bool, error)
	IDsByRef(ctx context.Context, t Table, col RefColumn, id uint64) ([]uint64, error)
	DeleteByID(ctx context.Context, t Table, id uint64) error
}

// Store bundles every repository over one DBTX.  A Store created with
// NewStore owns the connection pool and can open transactions; the Store
// handed to a WithinTx callback is bound to that transaction.
type Store struct {
	conn *sql.DB
	db   DBTX

	Cinemas     *CinemaRepo
	Rooms       *RoomRepo
	Equipment   *EquipmentRepo
	Maintenance *MaintenanceRepo
	Impacts     *ImpactRepo
	Tasks       *TaskRepo
	Events      *EventRepo
	Settings    *SettingRepo
}

// NewStore constructs a Store over the given connection pool.
func NewStore(db *sql.DB) *Store {
	s := newStore(db)
	s.conn = db
	return s
}

func newStore(db DBTX) *Store {
	return &Store{
		db:          db,
		Cinemas:     &CinemaRepo{db: db},
		Rooms:       &RoomRepo{db: db},
		Equipment:   &EquipmentRepo{db: db},
		Maintenance: &MaintenanceRepo{db: db},
		Impacts:     &ImpactRepo{db: db},
		Tasks:       &TaskRepo{db: db},
		Events:      &EventRepo{db: db},
		Settings:    &SettingRepo{db: db},
	}
}

// WithinTx runs fn against a transaction-bound Store.  The transaction is
// committed when fn returns nil and rolled back otherwise.  Calling
// WithinTx on a Store that is already transaction-bound simply reuses the
// running transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(tx *Store) error) (err error) {
	if s.conn == nil {
		return fn(s)
	}
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(newStore(tx)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// WithinTables is WithinTx narrowed to the Tables surface.
func (s *Store) WithinTables(ctx context.Context, fn func(Tables) error) error {
	return s.WithinTx(ctx, func(tx *Store) error { return fn(tx) })
}

// Exists reports whether a row with the given primary key exists.
func (s *Store) Exists(ctx context.Context, t Table, id uint64) (bool, error) {
	if err := checkTable(t); err != nil {
		return false, err
	}
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM "+string(t)+" WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IDsByRef returns the primary keys of every row in t whose reference
// column equals id, in ascending order.
func (s *Store) IDsByRef(ctx context.Context, t Table, col RefColumn, id uint64) ([]uint64, error) {
	if err := checkRef(t, col); err != nil {
		return nil, err
	}
	q := "SELECT id FROM " + string(t) + " WHERE " + string(col) + " = ? ORDER BY id"
	rows, err := s.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uint64
	for rows.Next() {
		var rid uint64
		if err := rows.Scan(&rid); err != nil {
			return nil, err
		}
		out = append(out, rid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByID removes one row.  It returns ErrNotFound when nothing was
// deleted.
func (s *Store) DeleteByID(ctx context.Context, t Table, id uint64) error {
	if err := checkTable(t); err != nil {
		return err
	}
	return deleteByID(ctx, s.db, t, id)
}

func deleteByID(ctx context.Context, db DBTX, t Table, id uint64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM "+string(t)+" WHERE id = ?", id)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s %d: %w", t, id, ErrNotFound)
	}
	return nil
}

// DeleteAll empties a table.  It is only used when wiping sample data.
func (s *Store) DeleteAll(ctx context.Context, t Table) error {
	if err := checkTable(t); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM "+string(t))
	return translate(err)
}

func checkTable(t Table) error {
	if !knownTables[t] {
		return fmt.Errorf("unknown table %q", t)
	}
	return nil
}

func checkRef(t Table, col RefColumn) error {
	if err := checkTable(t); err != nil {
		return err
	}
	for _, c := range tableRefs[t] {
		if c == col {
			return nil
		}
	}
	return fmt.Errorf("table %q has no reference column %q", t, col)
}

// patch accumulates SET clauses for a partial update.
type patch struct {
	sets []string
	args []any
}

func (p *patch) set(col string, v any) {
	p.sets = append(p.sets, col+" = ?")
	p.args = append(p.args, v)
}

func (p *patch) empty() bool { return len(p.sets) == 0 }

// apply runs the UPDATE for the accumulated fields.  An empty patch or an
// update that changed nothing still succeeds as long as the row exists;
// notFound is returned otherwise.
func (p *patch) apply(ctx context.Context, db DBTX, t Table, id uint64, notFound error) error {
	if !p.empty() {
		q := "UPDATE " + string(t) + " SET " + strings.Join(p.sets, ", ") + " WHERE id = ?"
		res, err := db.ExecContext(ctx, q, append(p.args, id)...)
		if err != nil {
			return translate(err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			return nil
		}
	}
	var one int
	err := db.QueryRowContext(ctx, "SELECT 1 FROM "+string(t)+" WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return err
}

// where accumulates AND-ed conditions for a filtered listing, the same way
// the show search builds its WHERE clause.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, arg)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return "1=1"
	}
	return strings.Join(w.conds, " AND ")
}
