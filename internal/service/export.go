package service

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/cinema-maintenance/internal/model"
	"github.com/iliyamo/cinema-maintenance/internal/repository"
)

// Export is a complete dump of the entity store.
type Export struct {
	ExportDate         int64                     `json:"export_date"`
	Cinemas            []model.Cinema            `json:"cinemas"`
	Rooms              []model.Room              `json:"rooms"`
	Equipment          []model.Equipment         `json:"equipment"`
	MaintenanceRecords []model.MaintenanceRecord `json:"maintenance_records"`
	SessionImpacts     []model.SessionImpact     `json:"session_impacts"`
	Tasks              []model.Task              `json:"tasks"`
	Events             []model.Event             `json:"events"`
	Settings           []model.Setting           `json:"settings"`
}

type ExportService struct {
	store *repository.Store
	now   func() time.Time
}

func NewExportService(store *repository.Store) *ExportService {
	return &ExportService{store: store, now: time.Now}
}

// Complete reads every collection inside one transaction so the dump is
// a consistent snapshot.
func (s *ExportService) Complete(ctx context.Context) (*Export, error) {
	out := &Export{ExportDate: s.now().UnixMilli()}
	err := s.store.WithinTx(ctx, func(tx *repository.Store) error {
		var err error
		if out.Cinemas, err = tx.Cinemas.ListAll(ctx); err != nil {
			return fmt.Errorf("export cinemas: %w", err)
		}
		if out.Rooms, err = tx.Rooms.ListAll(ctx); err != nil {
			return fmt.Errorf("export rooms: %w", err)
		}
		if out.Equipment, err = tx.Equipment.ListAll(ctx); err != nil {
			return fmt.Errorf("export equipment: %w", err)
		}
		if out.MaintenanceRecords, err = tx.Maintenance.List(ctx, model.MaintenanceFilter{}); err != nil {
			return fmt.Errorf("export maintenance records: %w", err)
		}
		if out.SessionImpacts, err = tx.Impacts.List(ctx, model.ImpactFilter{}); err != nil {
			return fmt.Errorf("export session impacts: %w", err)
		}
		if out.Tasks, err = tx.Tasks.ListAll(ctx); err != nil {
			return fmt.Errorf("export tasks: %w", err)
		}
		if out.Events, err = tx.Events.ListAll(ctx); err != nil {
			return fmt.Errorf("export events: %w", err)
		}
		if out.Settings, err = tx.Settings.ListAll(ctx); err != nil {
			return fmt.Errorf("export settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
