package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/cinema-maintenance/internal/model"
	"github.com/iliyamo/cinema-maintenance/internal/repository"
)

// clearOrder empties the store children first so no foreign key is ever
// violated.  Settings are configuration, not facility data, and survive.
var clearOrder = []repository.Table{
	repository.TableEvents,
	repository.TableTasks,
	repository.TableImpacts,
	repository.TableMaintenance,
	repository.TableEquipment,
	repository.TableRooms,
	repository.TableCinemas,
}

type sampleRoom struct {
	number    int
	status    model.RoomStatus
	projector string
	sound     string
	lamp      string
	hours     int64
	maxHours  int64
	kind      model.ProjectorType
}

type sampleCinema struct {
	name     string
	location string
	rooms    []sampleRoom
}

var sampleCinemas = []sampleCinema{
	{
		name: "Morumbi Town", location: "Shopping Morumbi Town",
		rooms: []sampleRoom{
			{1, model.RoomActive, "Christie CP2230", "Dolby Atmos 7.1", "CDXL-30SP", 1200, 2000, model.ProjectorLamp},
			{2, model.RoomActive, "Christie CP2230", "Dolby Atmos 7.1", "CDXL-30SP", 800, 2000, model.ProjectorLamp},
			{3, model.RoomMaintenance, "IMAX GT Laser", "IMAX 12-Channel", "RGB Laser Module", 15000, 25000, model.ProjectorLaser},
		},
	},
	{
		name: "Frei Caneca", location: "Shopping Frei Caneca",
		rooms: []sampleRoom{
			{1, model.RoomActive, "Barco DP2K-32B", "Dolby 7.1", "CDXL-30SP", 1500, 2000, model.ProjectorLamp},
			{2, model.RoomActive, "Barco DP2K-32B", "Dolby 7.1", "CDXL-30SP", 900, 2000, model.ProjectorLamp},
		},
	},
	{
		name: "Hortolândia", location: "Shopping Hortolândia",
		rooms: []sampleRoom{
			{1, model.RoomActive, "Sony SRX-R320", "Dolby 5.1", "LMP-F331", 1800, 2000, model.ProjectorLamp},
			{2, model.RoomStopped, "Sony SRX-R320", "Dolby 5.1", "LMP-F331", 1950, 2000, model.ProjectorLamp},
		},
	},
}

// SampleData loads or wipes the demonstration data set.
type SampleData struct {
	store *repository.Store
	log   *zap.Logger
}

func NewSampleData(store *repository.Store, log *zap.Logger) *SampleData {
	if log == nil {
		log = zap.NewNop()
	}
	return &SampleData{store: store, log: log}
}

// Seed inserts three cinemas with their rooms and refreshes their stats.
// It does nothing and reports false when any cinema already exists.
func (s *SampleData) Seed(ctx context.Context) (bool, error) {
	seeded := false
	err := s.store.WithinTx(ctx, func(tx *repository.Store) error {
		existing, err := tx.Cinemas.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list cinemas: %w", err)
		}
		if len(existing) > 0 {
			return nil
		}

		stats := NewStatsService(tx.Rooms, tx.Cinemas)
		for _, sc := range sampleCinemas {
			c := &model.Cinema{Name: sc.name, Location: sc.location}
			if err := tx.Cinemas.Create(ctx, c); err != nil {
				return fmt.Errorf("create cinema %q: %w", sc.name, err)
			}
			for _, sr := range sc.rooms {
				kind, lamp := sr.kind, sr.lamp
				hours, maxHours := sr.hours, sr.maxHours
				r := &model.Room{
					CinemaID:              c.ID,
					Number:                sr.number,
					Status:                sr.status,
					Projector:             sr.projector,
					SoundSystem:           sr.sound,
					ProjectorLampModel:    &lamp,
					ProjectorLampHours:    &hours,
					ProjectorLampMaxHours: &maxHours,
					ProjectorType:         &kind,
				}
				if err := tx.Rooms.Create(ctx, r); err != nil {
					return fmt.Errorf("create room %d of %q: %w", sr.number, sc.name, err)
				}
			}
			if _, err := stats.Recompute(ctx, c.ID); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if seeded {
		s.log.Info("sample data created", zap.Int("cinemas", len(sampleCinemas)))
	} else {
		s.log.Info("sample data skipped, store not empty")
	}
	return seeded, nil
}

// Clear deletes every facility row in one transaction.
func (s *SampleData) Clear(ctx context.Context) error {
	err := s.store.WithinTx(ctx, func(tx *repository.Store) error {
		for _, t := range clearOrder {
			if err := tx.DeleteAll(ctx, t); err != nil {
				return fmt.Errorf("clear %s: %w", t, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("all facility data cleared")
	return nil
}
