package service

import (
	"context"

	"github.com/iliyamo/cinema-maintenance/internal/model"
	"github.com/iliyamo/cinema-maintenance/internal/queue"
	"github.com/iliyamo/cinema-maintenance/internal/repository"
)

// TxRunner opens a transaction and exposes its row-level table surface.
// *repository.Store satisfies it.
type TxRunner interface {
	WithinTables(ctx context.Context, fn func(repository.Tables) error) error
}

type RoomLister interface {
	ListByCinema(ctx context.Context, cinemaID uint64) ([]model.Room, error)
}

type StatsWriter interface {
	UpdateStats(ctx context.Context, id uint64, s model.CinemaStats) error
}

// EventPublisher delivers facility events.  *queue.Publisher and
// queue.Discard satisfy it.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.FacilityEvent) error
}

// Report readers.  Each is a narrow view over one repository so the
// report service can be exercised with fakes.

type CinemaReader interface {
	ListAll(ctx context.Context) ([]model.Cinema, error)
}

type RoomReader interface {
	ListAll(ctx context.Context) ([]model.Room, error)
	ListByCinema(ctx context.Context, cinemaID uint64) ([]model.Room, error)
}

type EquipmentReader interface {
	ListAll(ctx context.Context) ([]model.Equipment, error)
	ListByCinema(ctx context.Context, cinemaID uint64) ([]model.Equipment, error)
}

type MaintenanceReader interface {
	List(ctx context.Context, f model.MaintenanceFilter) ([]model.MaintenanceRecord, error)
}

type ImpactReader interface {
	List(ctx context.Context, f model.ImpactFilter) ([]model.SessionImpact, error)
}
