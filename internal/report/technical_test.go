package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-maintenance/internal/model"
)

func ptr[T any](v T) *T { return &v }

var evalAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// thirtyDays is a 30 day window starting at a fixed instant.
func thirtyDays() Window {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	return Window{Start: start, End: start + 30*msPerDay}
}

func record(id, room, cinema uint64, start int64, downtime int64) model.MaintenanceRecord {
	return model.MaintenanceRecord{
		ID: id, RoomID: room, CinemaID: cinema,
		Type: model.MaintenanceCorrective, Category: model.MaintenanceProjection,
		StartTime: start, Downtime: ptr(downtime), Status: model.MaintenanceScheduled,
	}
}

func TestAvailability(t *testing.T) {
	w := thirtyDays()
	require.InDelta(t, 43200.0, w.Minutes(), 0.0001)

	tests := []struct {
		name     string
		downtime int64
		want     float64
	}{
		{"no downtime", 0, 100},
		{"ten percent", 4320, 90},
		{"more than the window clamps to zero", 50000, 0},
		{"rounded to two decimals", 1, 100 - round2(1.0/43200*100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Availability(tt.downtime, w))
		})
	}
}

func TestAvailability_DegenerateWindow(t *testing.T) {
	w := Window{Start: 500, End: 500}
	assert.Equal(t, 100.0, Availability(0, w))
	assert.Equal(t, 0.0, Availability(10, w))
	assert.Equal(t, 100.0, Availability(0, Window{Start: 600, End: 500}))
}

func TestBuildTechnical_EmptyStore(t *testing.T) {
	rep := BuildTechnical(Input{Window: thirtyDays(), EvaluatedAt: evalAt})

	assert.Equal(t, 0, rep.Summary.TotalCinemas)
	assert.NotNil(t, rep.RoomAvailability)
	assert.Empty(t, rep.RoomAvailability)
	assert.NotNil(t, rep.CinemaComparison)
	assert.Empty(t, rep.CinemaComparison)
	assert.Equal(t, 0.0, rep.Summary.AvgResolutionTimeHours)

	raw, err := json.Marshal(rep)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, []any{}, decoded["room_availability"])
	assert.Equal(t, []any{}, decoded["critical_equipment"])
	assert.Equal(t, []any{}, decoded["cinema_comparison"])
	stats := decoded["maintenance_stats"].(map[string]any)
	assert.Equal(t, map[string]any{}, stats["by_category"])
}

func TestBuildTechnical_RoomAvailabilityAndComparison(t *testing.T) {
	w := thirtyDays()
	in := Input{
		Window:      w,
		EvaluatedAt: evalAt,
		Cinemas: []model.Cinema{
			{ID: 1, Name: "Morumbi Town"},
			{ID: 2, Name: "Frei Caneca"},
			{ID: 3, Name: "Empty"},
		},
		Rooms: []model.Room{
			{ID: 10, CinemaID: 1, Number: 1, Status: model.RoomActive},
			{ID: 11, CinemaID: 1, Number: 2, Status: model.RoomMaintenance},
			{ID: 20, CinemaID: 2, Number: 1, Status: model.RoomActive},
		},
		Maintenance: []model.MaintenanceRecord{
			record(1, 10, 1, w.Start, 4320),
			record(2, 11, 1, w.End, 60),
			record(3, 20, 2, w.Start-1, 1000), // outside the window
		},
		Impacts: []model.SessionImpact{
			{ID: 1, RoomID: 10, CinemaID: 1, Date: w.Start, ImpactType: model.ImpactDelayed, Cause: model.CauseProjection, DelayMinutes: ptr(int64(15))},
			{ID: 2, RoomID: 20, CinemaID: 2, Date: w.End + 1, ImpactType: model.ImpactCancelled, Cause: model.CauseSound},
		},
	}

	rep := BuildTechnical(in)

	require.Len(t, rep.RoomAvailability, 3)
	assert.Equal(t, 90.0, rep.RoomAvailability[0].AvailabilityPercent)
	assert.Equal(t, int64(72), rep.RoomAvailability[0].TotalDowntime)
	assert.Equal(t, 1, rep.RoomAvailability[0].MaintenanceCount)
	assert.Equal(t, 99.86, rep.RoomAvailability[1].AvailabilityPercent)
	assert.Equal(t, int64(1), rep.RoomAvailability[1].TotalDowntime)
	assert.Equal(t, 100.0, rep.RoomAvailability[2].AvailabilityPercent)
	assert.Equal(t, 0, rep.RoomAvailability[2].MaintenanceCount)

	assert.Equal(t, 2, rep.Summary.TotalMaintenance)
	assert.Equal(t, 1, rep.Summary.TotalImpacts)
	assert.Equal(t, int64(73), rep.MaintenanceStats.TotalDowntime)
	assert.Equal(t, int64(15), rep.SessionImpacts.TotalDelayMinutes)

	require.Len(t, rep.CinemaComparison, 3)
	a := rep.CinemaComparison[0]
	assert.Equal(t, 2, a.RoomCount)
	assert.Equal(t, 1, a.OperationalRooms)
	assert.Equal(t, 2, a.MaintenanceCount)
	assert.Equal(t, 1, a.ImpactCount)
	assert.Equal(t, round2((90.0+99.86)/2), a.AvgAvailability)

	b := rep.CinemaComparison[1]
	assert.Equal(t, 1, b.RoomCount)
	assert.Equal(t, 0, b.MaintenanceCount)
	assert.Equal(t, 0, b.ImpactCount)
	assert.Equal(t, 100.0, b.AvgAvailability)

	empty := rep.CinemaComparison[2]
	assert.Equal(t, 0, empty.RoomCount)
	assert.Equal(t, 0.0, empty.AvgAvailability)
}

func TestBuildTechnical_CinemaFilter(t *testing.T) {
	w := thirtyDays()
	cinema := uint64(2)
	in := Input{
		Window:      w,
		CinemaID:    &cinema,
		EvaluatedAt: evalAt,
		Cinemas:     []model.Cinema{{ID: 1}, {ID: 2}},
		Rooms:       []model.Room{{ID: 10, CinemaID: 1}, {ID: 20, CinemaID: 2}},
		Equipment: []model.Equipment{
			{ID: 1, CinemaID: 1, Status: model.EquipmentReplacement},
			{ID: 2, CinemaID: 2, Status: model.EquipmentOperational},
		},
		Maintenance: []model.MaintenanceRecord{record(1, 10, 1, w.Start, 10), record(2, 20, 2, w.Start, 20)},
	}

	rep := BuildTechnical(in)

	assert.Equal(t, 1, rep.Summary.TotalCinemas)
	assert.Equal(t, 1, rep.Summary.TotalRooms)
	assert.Equal(t, 1, rep.Summary.TotalEquipment)
	assert.Equal(t, 0, rep.Summary.CriticalAlerts)
	assert.Equal(t, 1, rep.Summary.TotalMaintenance)
	require.Len(t, rep.CinemaComparison, 1)
	assert.Equal(t, uint64(2), rep.CinemaComparison[0].ID)
}

func TestBuildTechnical_InclusiveBounds(t *testing.T) {
	start := int64(1_000_000)
	w := Window{Start: start, End: start}
	in := Input{
		Window:      w,
		EvaluatedAt: evalAt,
		Maintenance: []model.MaintenanceRecord{
			record(1, 10, 1, start, 0),
			record(2, 10, 1, start-1, 0),
		},
	}
	rep := BuildTechnical(in)
	assert.Equal(t, 1, rep.Summary.TotalMaintenance)

	in.Window = Window{Start: start, End: start - 1}
	rep = BuildTechnical(in)
	assert.Equal(t, 0, rep.Summary.TotalMaintenance)
}

func TestBuildTechnical_GroupedCountsSumToTotals(t *testing.T) {
	w := thirtyDays()
	in := Input{Window: w, EvaluatedAt: evalAt}
	cats := []model.MaintenanceCategory{model.MaintenanceSound, model.MaintenanceSound, model.MaintenanceCleaning, model.MaintenanceOther}
	types := []model.MaintenanceType{model.MaintenancePreventive, model.MaintenanceEmergency, model.MaintenanceEmergency, model.MaintenanceCorrective}
	for i := range cats {
		m := record(uint64(i+1), 10, 1, w.Start+int64(i), 0)
		m.Category = cats[i]
		m.Type = types[i]
		if i%2 == 0 {
			m.Cost = ptr(100.25)
		}
		in.Maintenance = append(in.Maintenance, m)
	}
	causes := []model.ImpactCause{model.CauseClimate, model.CauseNetwork, model.CauseClimate}
	for i, c := range causes {
		in.Impacts = append(in.Impacts, model.SessionImpact{ID: uint64(i + 1), CinemaID: 1, RoomID: 10, Date: w.Start, Cause: c, ImpactType: model.ImpactInterrupted})
	}

	rep := BuildTechnical(in)

	sum := func(m map[model.MaintenanceCategory]int) (n int) {
		for _, v := range m {
			n += v
		}
		return
	}
	assert.Equal(t, rep.Summary.TotalMaintenance, sum(rep.MaintenanceStats.ByCategory))
	assert.Equal(t, 2, rep.MaintenanceStats.ByCategory[model.MaintenanceSound])
	assert.Equal(t, 2, rep.MaintenanceStats.ByType[model.MaintenanceEmergency])
	assert.InDelta(t, 200.5, rep.MaintenanceStats.TotalCost, 0.0001)

	var causeTotal int
	for _, v := range rep.SessionImpacts.ByCause {
		causeTotal += v
	}
	assert.Equal(t, rep.Summary.TotalImpacts, causeTotal)
	assert.Equal(t, 3, rep.SessionImpacts.ByType[model.ImpactInterrupted])
}

func TestBuildTechnical_AvgResolution(t *testing.T) {
	w := thirtyDays()
	done := record(1, 10, 1, w.Start, 0)
	done.Status = model.MaintenanceCompleted
	done.EndTime = ptr(w.Start + 90*msPerMinute)

	slow := record(2, 10, 1, w.Start, 0)
	slow.Status = model.MaintenanceCompleted
	slow.EndTime = ptr(w.Start + 3*msPerHour)

	open := record(3, 10, 1, w.Start, 0)
	open.Status = model.MaintenanceCompleted // no end time, ignored

	rep := BuildTechnical(Input{Window: w, EvaluatedAt: evalAt, Maintenance: []model.MaintenanceRecord{done, slow, open}})
	assert.Equal(t, 2.25, rep.Summary.AvgResolutionTimeHours)
}
