package report

import (
	"time"

	"github.com/iliyamo/cinema-maintenance/internal/model"
)

// Preventive maintenance cadence for the three room tiers and the lamp
// usage threshold above which a room is flagged.
const (
	criticalHorizon  = 30 * msPerDay
	tierAInterval    = 30 * msPerDay
	tierBInterval    = 90 * msPerDay
	tierCInterval    = 365 * msPerDay
	lampUsageWarnPct = 80.0
)

// IsCritical reports whether a piece of equipment needs attention at now:
// its next maintenance is due within 30 days (or overdue), or it is
// already out of service.  An unset or zero next maintenance never counts.
func IsCritical(e model.Equipment, now time.Time) bool {
	if next := deref(e.NextMaintenance); next != 0 && next <= now.UnixMilli()+criticalHorizon {
		return true
	}
	return e.Status.OutOfService()
}

// CriticalEquipment filters the equipment list down to the critical rows,
// preserving order.
func CriticalEquipment(equipment []model.Equipment, now time.Time) []model.Equipment {
	out := []model.Equipment{}
	for _, e := range equipment {
		if IsCritical(e, now) {
			out = append(out, e)
		}
	}
	return out
}

// NeedsMaintenance reports whether a room has an overdue preventive tier
// or a projector lamp past 80% of its rated hours.
func NeedsMaintenance(r model.Room, now time.Time) bool {
	ms := now.UnixMilli()
	if a := deref(r.LastMaintenanceA); a != 0 && a < ms-tierAInterval {
		return true
	}
	if b := deref(r.LastMaintenanceB); b != 0 && b < ms-tierBInterval {
		return true
	}
	if c := deref(r.LastMaintenanceC); c != 0 && c < ms-tierCInterval {
		return true
	}
	hours, rated := deref(r.ProjectorLampHours), deref(r.ProjectorLampMaxHours)
	if hours != 0 && rated != 0 {
		if float64(hours)/float64(rated)*100 > lampUsageWarnPct {
			return true
		}
	}
	return false
}

// RoomMaintenanceAlerts returns the rooms for which NeedsMaintenance holds.
func RoomMaintenanceAlerts(rooms []model.Room, now time.Time) []model.Room {
	out := []model.Room{}
	for _, r := range rooms {
		if NeedsMaintenance(r, now) {
			out = append(out, r)
		}
	}
	return out
}
