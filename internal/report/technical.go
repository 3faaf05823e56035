package report

import (
	"math"
	"time"

	"github.com/iliyamo/cinema-maintenance/internal/model"
)

// Input carries everything BuildTechnical needs.  The collections may be
// wider than the requested scope; the cinema and window filters are
// applied by BuildTechnical itself.
type Input struct {
	Window      Window
	CinemaID    *uint64   // nil means every cinema
	EvaluatedAt time.Time // instant the critical-equipment check runs at

	Cinemas     []model.Cinema
	Rooms       []model.Room
	Equipment   []model.Equipment
	Maintenance []model.MaintenanceRecord
	Impacts     []model.SessionImpact
}

// Technical is the assembled technical report.
type Technical struct {
	Period            Period             `json:"period"`
	Summary           Summary            `json:"summary"`
	RoomAvailability  []RoomAvailability `json:"room_availability"`
	CriticalEquipment []model.Equipment  `json:"critical_equipment"`
	MaintenanceStats  MaintenanceSummary `json:"maintenance_stats"`
	SessionImpacts    ImpactSummary      `json:"session_impacts"`
	CinemaComparison  []CinemaComparison `json:"cinema_comparison"`
}

type Period struct {
	StartDate int64 `json:"start_date"`
	EndDate   int64 `json:"end_date"`
}

type Summary struct {
	TotalCinemas           int     `json:"total_cinemas"`
	TotalRooms             int     `json:"total_rooms"`
	TotalEquipment         int     `json:"total_equipment"`
	CriticalAlerts         int     `json:"critical_alerts"`
	TotalMaintenance       int     `json:"total_maintenance"`
	TotalImpacts           int     `json:"total_impacts"`
	AvgResolutionTimeHours float64 `json:"avg_resolution_time_hours"`
}

// RoomAvailability is a room annotated with its availability over the
// report window.
type RoomAvailability struct {
	model.Room
	AvailabilityPercent float64 `json:"availability_percent"`
	TotalDowntime       int64   `json:"total_downtime"` // hours
	MaintenanceCount    int     `json:"maintenance_count"`
}

type MaintenanceSummary struct {
	ByCategory    map[model.MaintenanceCategory]int `json:"by_category"`
	ByType        map[model.MaintenanceType]int     `json:"by_type"`
	TotalCost     float64                           `json:"total_cost"`
	TotalDowntime int64                             `json:"total_downtime"` // hours
}

type ImpactSummary struct {
	ByType            map[model.ImpactType]int  `json:"by_type"`
	ByCause           map[model.ImpactCause]int `json:"by_cause"`
	TotalDelayMinutes int64                     `json:"total_delay_minutes"`
}

// CinemaComparison is a cinema annotated with its in-window figures.
type CinemaComparison struct {
	model.Cinema
	RoomCount        int     `json:"room_count"`
	OperationalRooms int     `json:"operational_rooms"`
	MaintenanceCount int     `json:"maintenance_count"`
	ImpactCount      int     `json:"impact_count"`
	AvgAvailability  float64 `json:"avg_availability"`
}

// Availability returns the percentage of the window a room was not down,
// rounded to two decimals and never below zero.  A window of zero or
// negative length is fully available unless it carries downtime.
func Availability(downtimeMinutes int64, w Window) float64 {
	period := w.Minutes()
	if period <= 0 {
		if downtimeMinutes > 0 {
			return 0
		}
		return 100
	}
	return round2(math.Max(0, 100-float64(downtimeMinutes)/period*100))
}

// BuildTechnical assembles the technical report from in.
func BuildTechnical(in Input) Technical {
	cinemas := []model.Cinema{}
	for _, c := range in.Cinemas {
		if matchesCinema(in.CinemaID, c.ID) {
			cinemas = append(cinemas, c)
		}
	}
	rooms := []model.Room{}
	for _, r := range in.Rooms {
		if matchesCinema(in.CinemaID, r.CinemaID) {
			rooms = append(rooms, r)
		}
	}
	equipment := []model.Equipment{}
	for _, e := range in.Equipment {
		if matchesCinema(in.CinemaID, e.CinemaID) {
			equipment = append(equipment, e)
		}
	}
	maintenance := FilterMaintenance(in.Maintenance, in.Window, in.CinemaID)
	impacts := FilterImpacts(in.Impacts, in.Window, in.CinemaID)

	// per-room availability
	byRoom := map[uint64][]model.MaintenanceRecord{}
	for _, m := range maintenance {
		byRoom[m.RoomID] = append(byRoom[m.RoomID], m)
	}
	availability := make([]RoomAvailability, 0, len(rooms))
	for _, r := range rooms {
		var downtime int64
		for _, m := range byRoom[r.ID] {
			downtime += deref(m.Downtime)
		}
		availability = append(availability, RoomAvailability{
			Room:                r,
			AvailabilityPercent: Availability(downtime, in.Window),
			TotalDowntime:       minutesToHours(downtime),
			MaintenanceCount:    len(byRoom[r.ID]),
		})
	}

	critical := CriticalEquipment(equipment, in.EvaluatedAt)
	done := completed(maintenance)
	mt := sumMaintenance(maintenance)
	it := sumImpacts(impacts)

	return Technical{
		Period: Period{StartDate: in.Window.Start, EndDate: in.Window.End},
		Summary: Summary{
			TotalCinemas:           len(cinemas),
			TotalRooms:             len(rooms),
			TotalEquipment:         len(equipment),
			CriticalAlerts:         len(critical),
			TotalMaintenance:       len(maintenance),
			TotalImpacts:           len(impacts),
			AvgResolutionTimeHours: round2(avgResolutionMs(done) / msPerHour),
		},
		RoomAvailability:  availability,
		CriticalEquipment: critical,
		MaintenanceStats: MaintenanceSummary{
			ByCategory:    mt.byCategory,
			ByType:        mt.byType,
			TotalCost:     mt.cost,
			TotalDowntime: minutesToHours(mt.downtime),
		},
		SessionImpacts: ImpactSummary{
			ByType:            it.byType,
			ByCause:           it.byCause,
			TotalDelayMinutes: it.delay,
		},
		CinemaComparison: compareCinemas(cinemas, availability, maintenance, impacts),
	}
}

func compareCinemas(cinemas []model.Cinema, rooms []RoomAvailability,
	maintenance []model.MaintenanceRecord, impacts []model.SessionImpact) []CinemaComparison {
	out := make([]CinemaComparison, 0, len(cinemas))
	for _, c := range cinemas {
		cmp := CinemaComparison{Cinema: c}
		var sum float64
		for _, r := range rooms {
			if r.CinemaID != c.ID {
				continue
			}
			cmp.RoomCount++
			sum += r.AvailabilityPercent
			if r.Status == model.RoomActive {
				cmp.OperationalRooms++
			}
		}
		for _, m := range maintenance {
			if m.CinemaID == c.ID {
				cmp.MaintenanceCount++
			}
		}
		for _, i := range impacts {
			if i.CinemaID == c.ID {
				cmp.ImpactCount++
			}
		}
		if cmp.RoomCount > 0 {
			cmp.AvgAvailability = round2(sum / float64(cmp.RoomCount))
		}
		out = append(out, cmp)
	}
	return out
}
