package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-maintenance/internal/model"
	"github.com/iliyamo/cinema-maintenance/internal/report"
)

type MockCinemas struct{ mock.Mock }

func (m *MockCinemas) ListAll(ctx context.Context) ([]model.Cinema, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Cinema), args.Error(1)
}

type MockEquipment struct{ mock.Mock }

func (m *MockEquipment) ListAll(ctx context.Context) ([]model.Equipment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Equipment), args.Error(1)
}

func (m *MockEquipment) ListByCinema(ctx context.Context, cinemaID uint64) ([]model.Equipment, error) {
	args := m.Called(ctx, cinemaID)
	return args.Get(0).([]model.Equipment), args.Error(1)
}

type MockMaintenance struct{ mock.Mock }

func (m *MockMaintenance) List(ctx context.Context, f model.MaintenanceFilter) ([]model.MaintenanceRecord, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.MaintenanceRecord), args.Error(1)
}

type MockImpacts struct{ mock.Mock }

func (m *MockImpacts) List(ctx context.Context, f model.ImpactFilter) ([]model.SessionImpact, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.SessionImpact), args.Error(1)
}

var clock = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

type reportMocks struct {
	cinemas     *MockCinemas
	rooms       *MockRooms
	equipment   *MockEquipment
	maintenance *MockMaintenance
	impacts     *MockImpacts
}

func newReportService() (*ReportService, reportMocks) {
	m := reportMocks{new(MockCinemas), new(MockRooms), new(MockEquipment), new(MockMaintenance), new(MockImpacts)}
	svc := NewReportService(m.cinemas, m.rooms, m.equipment, m.maintenance, m.impacts).
		WithClock(func() time.Time { return clock })
	return svc, m
}

func TestTechnical_ScopedToCinema(t *testing.T) {
	ctx := context.Background()
	svc, m := newReportService()
	w := report.Window{Start: clock.AddDate(0, 0, -30).UnixMilli(), End: clock.UnixMilli()}
	cinema := uint64(1)

	m.cinemas.On("ListAll", ctx).Return([]model.Cinema{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, nil)
	m.rooms.On("ListByCinema", ctx, cinema).Return([]model.Room{{ID: 10, CinemaID: 1, Status: model.RoomActive}}, nil)
	m.equipment.On("ListByCinema", ctx, cinema).Return([]model.Equipment{
		{ID: 1, CinemaID: 1, Status: model.EquipmentOperational, NextMaintenance: ptr(clock.UnixMilli() + 24*time.Hour.Milliseconds())},
	}, nil)
	m.maintenance.On("List", ctx, model.MaintenanceFilter{CinemaID: &cinema, Start: &w.Start, End: &w.End}).
		Return([]model.MaintenanceRecord{{ID: 1, RoomID: 10, CinemaID: 1, StartTime: w.Start, Downtime: ptr(int64(120))}}, nil)
	m.impacts.On("List", ctx, model.ImpactFilter{CinemaID: &cinema, Start: &w.Start, End: &w.End}).
		Return([]model.SessionImpact{}, nil)

	rep, err := svc.Technical(ctx, &cinema, w)

	require.NoError(t, err)
	assert.Equal(t, 1, rep.Summary.TotalCinemas)
	assert.Equal(t, 1, rep.Summary.CriticalAlerts)
	assert.Equal(t, 1, rep.Summary.TotalMaintenance)
	require.Len(t, rep.RoomAvailability, 1)
	assert.Equal(t, int64(2), rep.RoomAvailability[0].TotalDowntime)
	m.rooms.AssertNotCalled(t, "ListAll", mock.Anything)
}

func TestTechnical_UnknownCinemaIsEmpty(t *testing.T) {
	ctx := context.Background()
	svc, m := newReportService()
	w := report.Window{Start: 0, End: clock.UnixMilli()}
	cinema := uint64(99)

	m.cinemas.On("ListAll", ctx).Return([]model.Cinema{{ID: 1}}, nil)
	m.rooms.On("ListByCinema", ctx, cinema).Return([]model.Room{}, nil)
	m.equipment.On("ListByCinema", ctx, cinema).Return([]model.Equipment{}, nil)
	m.maintenance.On("List", ctx, mock.Anything).Return([]model.MaintenanceRecord{}, nil)
	m.impacts.On("List", ctx, mock.Anything).Return([]model.SessionImpact{}, nil)

	rep, err := svc.Technical(ctx, &cinema, w)

	require.NoError(t, err)
	assert.Equal(t, 0, rep.Summary.TotalCinemas)
	assert.Empty(t, rep.CinemaComparison)
}

func TestTechnical_LoadErrorIsWrapped(t *testing.T) {
	ctx := context.Background()
	svc, m := newReportService()
	m.cinemas.On("ListAll", ctx).Return(nil, errors.New("db down"))

	_, err := svc.Technical(ctx, nil, report.Window{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "list cinemas")
}

func TestEquipmentAlerts_UsesClock(t *testing.T) {
	ctx := context.Background()
	svc, m := newReportService()
	due := clock.AddDate(0, 0, 20).UnixMilli()
	m.equipment.On("ListAll", ctx).Return([]model.Equipment{
		{ID: 1, Status: model.EquipmentOperational, NextMaintenance: &due},
		{ID: 2, Status: model.EquipmentOperational},
		{ID: 3, Status: model.EquipmentReplacement},
	}, nil)

	got, err := svc.EquipmentAlerts(ctx, nil)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].ID)
	assert.Equal(t, uint64(3), got[1].ID)
}

func TestRoomAlerts(t *testing.T) {
	ctx := context.Background()
	svc, m := newReportService()
	old := clock.AddDate(0, 0, -40).UnixMilli()
	m.rooms.On("ListByCinema", ctx, uint64(3)).Return([]model.Room{
		{ID: 1, CinemaID: 3, LastMaintenanceA: &old},
		{ID: 2, CinemaID: 3},
	}, nil)

	cinema := uint64(3)
	got, err := svc.RoomAlerts(ctx, &cinema)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].ID)
}

func TestMaintenanceAndImpactStats(t *testing.T) {
	ctx := context.Background()
	svc, m := newReportService()
	w := report.Window{Start: 1000, End: 2000}

	m.maintenance.On("List", ctx, model.MaintenanceFilter{Start: &w.Start, End: &w.End}).Return([]model.MaintenanceRecord{
		{ID: 1, StartTime: 1500, Status: model.MaintenanceCompleted, Category: model.MaintenanceSound, Type: model.MaintenanceCorrective, Cost: ptr(10.5)},
	}, nil)
	m.impacts.On("List", ctx, model.ImpactFilter{Start: &w.Start, End: &w.End}).Return([]model.SessionImpact{
		{ID: 1, Date: 1200, Cause: model.CauseSound, ImpactType: model.ImpactDelayed, DelayMinutes: ptr(int64(5)), Resolved: true},
	}, nil)

	ms, err := svc.MaintenanceStats(ctx, nil, w)
	require.NoError(t, err)
	assert.Equal(t, 1, ms.TotalRecords)
	assert.Equal(t, 1, ms.CompletedRecords)
	assert.InDelta(t, 10.5, ms.TotalCost, 0.0001)

	is, err := svc.ImpactStats(ctx, nil, w)
	require.NoError(t, err)
	assert.Equal(t, 1, is.TotalImpacts)
	assert.Equal(t, 1, is.ResolvedImpacts)
	assert.Equal(t, int64(5), is.TotalDelayMinutes)
}
