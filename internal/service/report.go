package service

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/cinema-maintenance/internal/model"
	"github.com/iliyamo/cinema-maintenance/internal/report"
)

// ReportService loads the store collections a report needs and hands them
// to the pure builders in package report.
type ReportService struct {
	cinemas     CinemaReader
	rooms       RoomReader
	equipment   EquipmentReader
	maintenance MaintenanceReader
	impacts     ImpactReader
	now         func() time.Time
}

func NewReportService(c CinemaReader, r RoomReader, e EquipmentReader,
	m MaintenanceReader, i ImpactReader) *ReportService {
	return &ReportService{cinemas: c, rooms: r, equipment: e, maintenance: m, impacts: i, now: time.Now}
}

// WithClock replaces the evaluation clock.  Used by tests.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// Technical builds the technical report for w, optionally scoped to one
// cinema.  An unknown cinema yields a report with no cinemas rather than an
// error.
func (s *ReportService) Technical(ctx context.Context, cinemaID *uint64, w report.Window) (report.Technical, error) {
	cinemas, err := s.cinemas.ListAll(ctx)
	if err != nil {
		return report.Technical{}, fmt.Errorf("list cinemas: %w", err)
	}
	rooms, err := s.loadRooms(ctx, cinemaID)
	if err != nil {
		return report.Technical{}, err
	}
	equipment, err := s.loadEquipment(ctx, cinemaID)
	if err != nil {
		return report.Technical{}, err
	}
	maintenance, err := s.maintenance.List(ctx, model.MaintenanceFilter{CinemaID: cinemaID, Start: &w.Start, End: &w.End})
	if err != nil {
		return report.Technical{}, fmt.Errorf("list maintenance: %w", err)
	}
	impacts, err := s.impacts.List(ctx, model.ImpactFilter{CinemaID: cinemaID, Start: &w.Start, End: &w.End})
	if err != nil {
		return report.Technical{}, fmt.Errorf("list impacts: %w", err)
	}

	return report.BuildTechnical(report.Input{
		Window:      w,
		CinemaID:    cinemaID,
		EvaluatedAt: s.now(),
		Cinemas:     cinemas,
		Rooms:       rooms,
		Equipment:   equipment,
		Maintenance: maintenance,
		Impacts:     impacts,
	}), nil
}

// EquipmentAlerts lists equipment that is due for maintenance within 30
// days or already out of service.
func (s *ReportService) EquipmentAlerts(ctx context.Context, cinemaID *uint64) ([]model.Equipment, error) {
	equipment, err := s.loadEquipment(ctx, cinemaID)
	if err != nil {
		return nil, err
	}
	return report.CriticalEquipment(equipment, s.now()), nil
}

// RoomAlerts lists rooms with overdue preventive maintenance or a worn lamp.
func (s *ReportService) RoomAlerts(ctx context.Context, cinemaID *uint64) ([]model.Room, error) {
	rooms, err := s.loadRooms(ctx, cinemaID)
	if err != nil {
		return nil, err
	}
	return report.RoomMaintenanceAlerts(rooms, s.now()), nil
}

func (s *ReportService) MaintenanceStats(ctx context.Context, cinemaID *uint64, w report.Window) (report.MaintenanceStats, error) {
	records, err := s.maintenance.List(ctx, model.MaintenanceFilter{CinemaID: cinemaID, Start: &w.Start, End: &w.End})
	if err != nil {
		return report.MaintenanceStats{}, fmt.Errorf("list maintenance: %w", err)
	}
	return report.MaintenanceStatistics(records, w, cinemaID), nil
}

func (s *ReportService) ImpactStats(ctx context.Context, cinemaID *uint64, w report.Window) (report.ImpactStats, error) {
	impacts, err := s.impacts.List(ctx, model.ImpactFilter{CinemaID: cinemaID, Start: &w.Start, End: &w.End})
	if err != nil {
		return report.ImpactStats{}, fmt.Errorf("list impacts: %w", err)
	}
	return report.ImpactStatistics(impacts, w, cinemaID), nil
}

func (s *ReportService) loadRooms(ctx context.Context, cinemaID *uint64) ([]model.Room, error) {
	var (
		rooms []model.Room
		err   error
	)
	if cinemaID != nil {
		rooms, err = s.rooms.ListByCinema(ctx, *cinemaID)
	} else {
		rooms, err = s.rooms.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (s *ReportService) loadEquipment(ctx context.Context, cinemaID *uint64) ([]model.Equipment, error) {
	var (
		equipment []model.Equipment
		err       error
	)
	if cinemaID != nil {
		equipment, err = s.equipment.ListByCinema(ctx, *cinemaID)
	} else {
		equipment, err = s.equipment.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return equipment, nil
}
