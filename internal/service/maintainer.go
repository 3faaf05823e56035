package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/cinema-maintenance/internal/repository"
)

// roomChildren is the order in which rows hanging off a room are removed
// before the room itself.
var roomChildren = []repository.Table{
	repository.TableEquipment,
	repository.TableMaintenance,
	repository.TableImpacts,
	repository.TableTasks,
	repository.TableEvents,
}

// cinemaChildren are the cinema-level rows removed after every room of the
// cinema is gone.  Tasks and events may reference a cinema without a room.
var cinemaChildren = []repository.Table{
	repository.TableTasks,
	repository.TableEvents,
}

// Maintainer deletes cinemas and rooms together with every dependent row.
// Each cascade runs in a single transaction: either the parent and all of
// its children are removed or nothing is.
type Maintainer struct {
	tx  TxRunner
	log *zap.Logger
}

func NewMaintainer(tx TxRunner, log *zap.Logger) *Maintainer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Maintainer{tx: tx, log: log}
}

// DeleteRoom removes a room after its equipment, maintenance records,
// session impacts, tasks and events.  It returns ErrRoomNotFound when the
// room does not exist.
func (m *Maintainer) DeleteRoom(ctx context.Context, roomID uint64) error {
	return m.tx.WithinTables(ctx, func(t repository.Tables) error {
		ok, err := t.Exists(ctx, repository.TableRooms, roomID)
		if err != nil {
			return fmt.Errorf("lookup room %d: %w", roomID, err)
		}
		if !ok {
			return repository.ErrRoomNotFound
		}
		return m.deleteRoom(ctx, t, roomID)
	})
}

// DeleteCinema removes every room of the cinema (each with its full room
// cascade), then the cinema-level tasks and events, then the cinema.
func (m *Maintainer) DeleteCinema(ctx context.Context, cinemaID uint64) error {
	return m.tx.WithinTables(ctx, func(t repository.Tables) error {
		ok, err := t.Exists(ctx, repository.TableCinemas, cinemaID)
		if err != nil {
			return fmt.Errorf("lookup cinema %d: %w", cinemaID, err)
		}
		if !ok {
			return repository.ErrCinemaNotFound
		}

		rooms, err := t.IDsByRef(ctx, repository.TableRooms, repository.RefCinema, cinemaID)
		if err != nil {
			return fmt.Errorf("list rooms of cinema %d: %w", cinemaID, err)
		}
		for _, id := range rooms {
			if err := m.deleteRoom(ctx, t, id); err != nil {
				return err
			}
		}
		for _, table := range cinemaChildren {
			if err := m.deleteChildren(ctx, t, table, repository.RefCinema, cinemaID); err != nil {
				return err
			}
		}
		if err := t.DeleteByID(ctx, repository.TableCinemas, cinemaID); err != nil {
			return fmt.Errorf("delete cinema %d: %w", cinemaID, err)
		}
		m.log.Debug("cinema cascade done", zap.Uint64("cinema_id", cinemaID), zap.Int("rooms", len(rooms)))
		return nil
	})
}

func (m *Maintainer) deleteRoom(ctx context.Context, t repository.Tables, roomID uint64) error {
	for _, table := range roomChildren {
		if err := m.deleteChildren(ctx, t, table, repository.RefRoom, roomID); err != nil {
			return err
		}
	}
	if err := t.DeleteByID(ctx, repository.TableRooms, roomID); err != nil {
		return fmt.Errorf("delete room %d: %w", roomID, err)
	}
	m.log.Debug("room cascade done", zap.Uint64("room_id", roomID))
	return nil
}

// deleteChildren fetches the ids of table rows referencing parent and
// deletes them one by one, stopping at the first failure.
func (m *Maintainer) deleteChildren(ctx context.Context, t repository.Tables, table repository.Table,
	col repository.RefColumn, parent uint64) error {
	ids, err := t.IDsByRef(ctx, table, col, parent)
	if err != nil {
		return fmt.Errorf("list %s by %s=%d: %w", table, col, parent, err)
	}
	for _, id := range ids {
		if err := t.DeleteByID(ctx, table, id); err != nil {
			return fmt.Errorf("delete %s %d: %w", table, id, err)
		}
	}
	if len(ids) > 0 {
		m.log.Debug("children deleted", zap.String("table", string(table)),
			zap.String("ref", string(col)), zap.Uint64("parent", parent), zap.Int("count", len(ids)))
	}
	return nil
}
