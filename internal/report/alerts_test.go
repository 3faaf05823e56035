package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/cinema-maintenance/internal/model"
)

func TestIsCritical(t *testing.T) {
	now := evalAt.UnixMilli()
	tests := []struct {
		name string
		eq   model.Equipment
		want bool
	}{
		{"operational without schedule", model.Equipment{Status: model.EquipmentOperational}, false},
		{"due within thirty days", model.Equipment{Status: model.EquipmentOperational, NextMaintenance: ptr(now + 29*msPerDay)}, true},
		{"due exactly at the horizon", model.Equipment{Status: model.EquipmentOperational, NextMaintenance: ptr(now + 30*msPerDay)}, true},
		{"due after the horizon", model.Equipment{Status: model.EquipmentOperational, NextMaintenance: ptr(now + 31*msPerDay)}, false},
		{"overdue", model.Equipment{Status: model.EquipmentOperational, NextMaintenance: ptr(now - msPerDay)}, true},
		{"zero schedule is unset", model.Equipment{Status: model.EquipmentOperational, NextMaintenance: ptr(int64(0))}, false},
		{"in maintenance", model.Equipment{Status: model.EquipmentInService}, true},
		{"awaiting replacement", model.Equipment{Status: model.EquipmentReplacement}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCritical(tt.eq, evalAt))
		})
	}
}

func TestCriticalEquipment_UsesEvaluationInstantNotWindow(t *testing.T) {
	due := evalAt.UnixMilli() + 10*msPerDay
	eq := []model.Equipment{
		{ID: 1, Status: model.EquipmentOperational, NextMaintenance: ptr(due)},
		{ID: 2, Status: model.EquipmentOperational},
	}
	rep := BuildTechnical(Input{
		Window:      Window{Start: 0, End: 1},
		EvaluatedAt: evalAt,
		Equipment:   eq,
	})
	assert.Equal(t, 1, rep.Summary.CriticalAlerts)
	assert.Equal(t, uint64(1), rep.CriticalEquipment[0].ID)

	later := evalAt.AddDate(1, 0, 0)
	assert.Len(t, CriticalEquipment(eq, later), 1)
	assert.Empty(t, CriticalEquipment(eq[1:], later))
}

func TestRoomMaintenanceAlerts(t *testing.T) {
	now := evalAt.UnixMilli()
	rooms := []model.Room{
		{ID: 1, LastMaintenanceA: ptr(now - 31*msPerDay)},
		{ID: 2, LastMaintenanceA: ptr(now - 10*msPerDay), LastMaintenanceB: ptr(now - 91*msPerDay)},
		{ID: 3, LastMaintenanceC: ptr(now - 366*msPerDay)},
		{ID: 4, ProjectorLampHours: ptr(int64(1700)), ProjectorLampMaxHours: ptr(int64(2000))},
		{ID: 5, ProjectorLampHours: ptr(int64(1600)), ProjectorLampMaxHours: ptr(int64(2000))},
		{ID: 6, LastMaintenanceA: ptr(now - 29*msPerDay), LastMaintenanceC: ptr(now - 300*msPerDay)},
		{ID: 7},
	}

	alerts := RoomMaintenanceAlerts(rooms, evalAt)

	var ids []uint64
	for _, r := range alerts {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []uint64{1, 2, 3, 4}, ids)
}
