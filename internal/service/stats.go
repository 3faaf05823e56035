package service

import (
	"context"
	"fmt"
	"math"

	"github.com/iliyamo/cinema-maintenance/internal/model"
)

// ComputeCinemaStats derives the cached room counters of a cinema.
// Availability is the rounded share of active rooms, 0 when there are none.
func ComputeCinemaStats(rooms []model.Room) model.CinemaStats {
	s := model.CinemaStats{TotalRooms: len(rooms)}
	for _, r := range rooms {
		if r.Status == model.RoomActive {
			s.ActiveRooms++
		}
	}
	if s.TotalRooms > 0 {
		s.Availability = int(math.Round(float64(s.ActiveRooms) / float64(s.TotalRooms) * 100))
	}
	return s
}

// StatsService refreshes the denormalized counters stored on a cinema.
// It never runs implicitly; callers invoke Recompute after room writes.
type StatsService struct {
	rooms  RoomLister
	writer StatsWriter
}

func NewStatsService(rooms RoomLister, writer StatsWriter) *StatsService {
	return &StatsService{rooms: rooms, writer: writer}
}

// Recompute reloads the rooms of cinemaID and persists the derived stats.
// Running it twice without room changes writes the same values.
func (s *StatsService) Recompute(ctx context.Context, cinemaID uint64) (model.CinemaStats, error) {
	rooms, err := s.rooms.ListByCinema(ctx, cinemaID)
	if err != nil {
		return model.CinemaStats{}, fmt.Errorf("list rooms of cinema %d: %w", cinemaID, err)
	}
	stats := ComputeCinemaStats(rooms)
	if err := s.writer.UpdateStats(ctx, cinemaID, stats); err != nil {
		return model.CinemaStats{}, fmt.Errorf("update stats of cinema %d: %w", cinemaID, err)
	}
	return stats, nil
}
