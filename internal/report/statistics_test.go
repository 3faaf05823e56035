package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/cinema-maintenance/internal/model"
)

func TestMaintenanceStatistics(t *testing.T) {
	w := thirtyDays()
	a := record(1, 10, 1, w.Start, 90)
	a.Status = model.MaintenanceCompleted
	a.EndTime = ptr(w.Start + 5*msPerHour)
	a.Cost = ptr(250.0)

	b := record(2, 11, 1, w.Start+msPerDay, 30)
	b.Type = model.MaintenancePreventive
	b.Category = model.MaintenanceCleaning

	other := record(3, 20, 2, w.Start, 600)

	cinema := uint64(1)
	got := MaintenanceStatistics([]model.MaintenanceRecord{a, b, other}, w, &cinema)

	assert.Equal(t, 2, got.TotalRecords)
	assert.Equal(t, 1, got.CompletedRecords)
	assert.Equal(t, int64(5), got.AvgResolutionTime)
	assert.Equal(t, 1, got.ByCategory[model.MaintenanceProjection])
	assert.Equal(t, 1, got.ByCategory[model.MaintenanceCleaning])
	assert.Equal(t, 1, got.ByType[model.MaintenancePreventive])
	assert.InDelta(t, 250.0, got.TotalCost, 0.0001)
	assert.Equal(t, int64(2), got.TotalDowntime)

	all := MaintenanceStatistics([]model.MaintenanceRecord{a, b, other}, w, nil)
	assert.Equal(t, 3, all.TotalRecords)
	assert.Equal(t, int64(12), all.TotalDowntime)
}

func TestImpactStatistics(t *testing.T) {
	w := thirtyDays()
	impacts := []model.SessionImpact{
		{ID: 1, CinemaID: 1, Date: w.Start, ImpactType: model.ImpactDelayed, Cause: model.CauseSound, DelayMinutes: ptr(int64(20)), Resolved: true},
		{ID: 2, CinemaID: 1, Date: w.End, ImpactType: model.ImpactCancelled, Cause: model.CauseSound},
		{ID: 3, CinemaID: 1, Date: w.End + 1, ImpactType: model.ImpactCancelled, Cause: model.CauseClimate},
	}

	got := ImpactStatistics(impacts, w, nil)

	assert.Equal(t, 2, got.TotalImpacts)
	assert.Equal(t, 2, got.ByCause[model.CauseSound])
	assert.Equal(t, 0, got.ByCause[model.CauseClimate])
	assert.Equal(t, 1, got.ByType[model.ImpactDelayed])
	assert.Equal(t, int64(20), got.TotalDelayMinutes)
	assert.Equal(t, 1, got.ResolvedImpacts)
}

func TestDays(t *testing.T) {
	w := Days(evalAt, 30)
	assert.Equal(t, evalAt.UnixMilli(), w.End)
	assert.InDelta(t, 43200.0, w.Minutes(), 0.0001)
}
