package report

import (
	"math"

	"github.com/iliyamo/cinema-maintenance/internal/model"
)

// MaintenanceStats summarises the maintenance records of a window.
type MaintenanceStats struct {
	TotalRecords      int                               `json:"total_records"`
	CompletedRecords  int                               `json:"completed_records"`
	AvgResolutionTime int64                             `json:"avg_resolution_time"` // hours, rounded
	ByCategory        map[model.MaintenanceCategory]int `json:"by_category"`
	ByType            map[model.MaintenanceType]int     `json:"by_type"`
	TotalCost         float64                           `json:"total_cost"`
	TotalDowntime     int64                             `json:"total_downtime"` // hours, rounded
}

// ImpactStats summarises the session impacts of a window.
type ImpactStats struct {
	TotalImpacts      int                       `json:"total_impacts"`
	ByCause           map[model.ImpactCause]int `json:"by_cause"`
	ByType            map[model.ImpactType]int  `json:"by_type"`
	TotalDelayMinutes int64                     `json:"total_delay_minutes"`
	ResolvedImpacts   int                       `json:"resolved_impacts"`
}

// FilterMaintenance keeps the records that started inside w and, when
// cinemaID is set, belong to that cinema.
func FilterMaintenance(records []model.MaintenanceRecord, w Window, cinemaID *uint64) []model.MaintenanceRecord {
	out := []model.MaintenanceRecord{}
	for _, m := range records {
		if w.Contains(m.StartTime) && matchesCinema(cinemaID, m.CinemaID) {
			out = append(out, m)
		}
	}
	return out
}

// FilterImpacts keeps the impacts dated inside w and, when cinemaID is
// set, belonging to that cinema.
func FilterImpacts(impacts []model.SessionImpact, w Window, cinemaID *uint64) []model.SessionImpact {
	out := []model.SessionImpact{}
	for _, i := range impacts {
		if w.Contains(i.Date) && matchesCinema(cinemaID, i.CinemaID) {
			out = append(out, i)
		}
	}
	return out
}

// completed returns the records that count towards the resolution time
// average: status completed with a non-zero end time.
func completed(records []model.MaintenanceRecord) []model.MaintenanceRecord {
	var out []model.MaintenanceRecord
	for _, m := range records {
		if m.Status == model.MaintenanceCompleted && deref(m.EndTime) != 0 {
			out = append(out, m)
		}
	}
	return out
}

// avgResolutionMs is the mean end-start span in milliseconds, 0 when
// nothing is completed.
func avgResolutionMs(done []model.MaintenanceRecord) float64 {
	if len(done) == 0 {
		return 0
	}
	var sum int64
	for _, m := range done {
		sum += *m.EndTime - m.StartTime
	}
	return float64(sum) / float64(len(done))
}

type maintenanceTotals struct {
	byCategory map[model.MaintenanceCategory]int
	byType     map[model.MaintenanceType]int
	cost       float64
	downtime   int64 // minutes
}

func sumMaintenance(records []model.MaintenanceRecord) maintenanceTotals {
	t := maintenanceTotals{
		byCategory: map[model.MaintenanceCategory]int{},
		byType:     map[model.MaintenanceType]int{},
	}
	for _, m := range records {
		t.byCategory[m.Category]++
		t.byType[m.Type]++
		t.cost += deref(m.Cost)
		t.downtime += deref(m.Downtime)
	}
	return t
}

// MaintenanceStatistics computes the maintenance summary over the records
// of w, optionally restricted to one cinema.
func MaintenanceStatistics(records []model.MaintenanceRecord, w Window, cinemaID *uint64) MaintenanceStats {
	in := FilterMaintenance(records, w, cinemaID)
	done := completed(in)
	t := sumMaintenance(in)
	return MaintenanceStats{
		TotalRecords:      len(in),
		CompletedRecords:  len(done),
		AvgResolutionTime: int64(math.Round(avgResolutionMs(done) / msPerHour)),
		ByCategory:        t.byCategory,
		ByType:            t.byType,
		TotalCost:         t.cost,
		TotalDowntime:     minutesToHours(t.downtime),
	}
}

type impactTotals struct {
	byCause  map[model.ImpactCause]int
	byType   map[model.ImpactType]int
	delay    int64
	resolved int
}

func sumImpacts(impacts []model.SessionImpact) impactTotals {
	t := impactTotals{
		byCause: map[model.ImpactCause]int{},
		byType:  map[model.ImpactType]int{},
	}
	for _, i := range impacts {
		t.byCause[i.Cause]++
		t.byType[i.ImpactType]++
		t.delay += deref(i.DelayMinutes)
		if i.Resolved {
			t.resolved++
		}
	}
	return t
}

// ImpactStatistics computes the session impact summary over the impacts
// of w, optionally restricted to one cinema.
func ImpactStatistics(impacts []model.SessionImpact, w Window, cinemaID *uint64) ImpactStats {
	in := FilterImpacts(impacts, w, cinemaID)
	t := sumImpacts(in)
	return ImpactStats{
		TotalImpacts:      len(in),
		ByCause:           t.byCause,
		ByType:            t.byType,
		TotalDelayMinutes: t.delay,
		ResolvedImpacts:   t.resolved,
	}
}
