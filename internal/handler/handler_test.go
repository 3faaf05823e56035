package handler

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-maintenance/internal/config"
	"github.com/iliyamo/cinema-maintenance/internal/queue"
	"github.com/iliyamo/cinema-maintenance/internal/repository"
	"github.com/iliyamo/cinema-maintenance/internal/utils"
)

// recorder is an EventPublisher that keeps every event.
type recorder struct {
	mu     sync.Mutex
	events []queue.FacilityEvent
}

func (r *recorder) Publish(_ context.Context, ev queue.FacilityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Entity+"."+ev.Action)
	}
	return out
}

// waitFor polls until the publisher saw n events.
func (r *recorder) waitFor(t *testing.T, n int) []string {
	t.Helper()
	require.Eventually(t, func() bool { return len(r.kinds()) >= n }, time.Second, 5*time.Millisecond)
	return r.kinds()
}

var q = regexp.QuoteMeta

func setup(t *testing.T) (*echo.Echo, sqlmock.Sqlmock, *recorder) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rec := &recorder{}
	h := New(repository.NewStore(db), rec, zap.NewNop())

	e := echo.New()
	v1 := e.Group("/v1")
	v1.GET("/cinemas/:id", h.GetCinema)
	v1.POST("/cinemas/:id/stats", h.RecomputeStats)
	v1.POST("/rooms", h.CreateRoom)
	v1.DELETE("/rooms/:id", h.DeleteRoom)
	v1.POST("/equipment", h.CreateEquipment)
	v1.GET("/maintenance", h.ListMaintenance)
	v1.POST("/maintenance", h.CreateMaintenance)
	v1.PATCH("/maintenance/:id", h.UpdateMaintenance)
	v1.POST("/tasks", h.CreateTask)
	v1.PUT("/settings/:key", h.PutSetting)
	v1.GET("/reports/technical", h.TechnicalReport)
	return e, mock, rec
}

func call(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

var roomCols = []string{"id", "cinema_id", "number", "status", "projector", "sound_system",
	"projector_lamp_model", "projector_lamp_hours", "projector_lamp_max_hours", "projector_type",
	"last_maintenance_a", "last_maintenance_b", "last_maintenance_c",
	"additional_info", "amplifiers", "projector_ip", "server", "server_ip"}

func roomRow(id, cinema uint64, number int, status string) []driver.Value {
	return []driver.Value{id, cinema, number, status, "Barco", "Dolby 7.1", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil}
}

func TestGetCinema_BadID(t *testing.T) {
	e, _, _ := setup(t)
	rec := call(e, http.MethodGet, "/v1/cinemas/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, rec), "id")
}

func TestGetCinema_NotFound(t *testing.T) {
	e, mock, _ := setup(t)
	mock.ExpectQuery("FROM cinemas WHERE id = ?").WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec := call(e, http.MethodGet, "/v1/cinemas/5", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "cinema not found", errorOf(t, rec))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRoom_RejectsUnknownProjectorType(t *testing.T) {
	e, mock, _ := setup(t)
	rec := call(e, http.MethodPost, "/v1/rooms",
		`{"cinema_id":1,"number":4,"projector":"Barco","sound_system":"Dolby","projector_type":"plasma"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, rec), "projector_type")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRoom_RecomputesStats(t *testing.T) {
	e, mock, events := setup(t)
	mock.ExpectExec("INSERT INTO rooms").WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectQuery("FROM rooms WHERE cinema_id = ?").WithArgs(1).
		WillReturnRows(sqlmock.NewRows(roomCols).
			AddRow(roomRow(11, 1, 1, "maintenance")...).
			AddRow(roomRow(12, 1, 4, "active")...))
	mock.ExpectExec("UPDATE cinemas SET total_rooms").WithArgs(2, 1, 50, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := call(e, http.MethodPost, "/v1/rooms",
		`{"cinema_id":1,"number":4,"projector":"Barco","sound_system":"Dolby 7.1","projector_type":"laser"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var room map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &room))
	assert.Equal(t, float64(12), room["id"])
	assert.Equal(t, "active", room["status"])
	assert.Equal(t, "laser", room["projector_type"])
	require.NoError(t, mock.ExpectationsWereMet())
	assert.ElementsMatch(t, []string{"cinema.stats_recomputed", "room.created"}, events.waitFor(t, 2))
}

func TestCreateRoom_DuplicateNumberIsConflict(t *testing.T) {
	e, mock, _ := setup(t)
	mock.ExpectExec("INSERT INTO rooms").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-4' for key 'uq_rooms_cinema_number'"})

	rec := call(e, http.MethodPost, "/v1/rooms",
		`{"cinema_id":1,"number":4,"projector":"Barco","sound_system":"Dolby 7.1"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRoom_CascadesThenRecomputes(t *testing.T) {
	e, mock, events := setup(t)
	mock.ExpectQuery("FROM rooms WHERE id = ?").WithArgs(7).
		WillReturnRows(sqlmock.NewRows(roomCols).AddRow(roomRow(7, 2, 1, "active")...))
	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT 1 FROM rooms WHERE id = ?")).WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	for _, table := range []string{"equipment", "maintenance_records", "session_impacts", "tasks", "events"} {
		mock.ExpectQuery(q("SELECT id FROM " + table + " WHERE room_id = ?")).WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
	}
	mock.ExpectExec(q("DELETE FROM rooms WHERE id = ?")).WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM rooms WHERE cinema_id = ?").WithArgs(2).
		WillReturnRows(sqlmock.NewRows(roomCols))
	mock.ExpectExec("UPDATE cinemas SET total_rooms").WithArgs(0, 0, 0, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := call(e, http.MethodDelete, "/v1/rooms/7", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, events.waitFor(t, 2), "room.deleted")
}

func TestDeleteRoom_Missing(t *testing.T) {
	e, mock, events := setup(t)
	mock.ExpectQuery("FROM rooms WHERE id = ?").WithArgs(9).
		WillReturnRows(sqlmock.NewRows(roomCols))

	rec := call(e, http.MethodDelete, "/v1/rooms/9", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, events.kinds())
}

func TestCreateEquipment_RoomMustBelongToCinema(t *testing.T) {
	e, mock, _ := setup(t)
	mock.ExpectQuery("FROM rooms WHERE id = ?").WithArgs(7).
		WillReturnRows(sqlmock.NewRows(roomCols).AddRow(roomRow(7, 2, 1, "active")...))

	rec := call(e, http.MethodPost, "/v1/equipment",
		`{"room_id":7,"cinema_id":1,"name":"Amp","category":"sound"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, rec), "room does not belong to cinema")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListMaintenance_RejectsUnknownCategory(t *testing.T) {
	e, _, _ := setup(t)
	rec := call(e, http.MethodGet, "/v1/maintenance?category=plumbing", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPutSetting_Upserts(t *testing.T) {
	e, mock, events := setup(t)
	mock.ExpectExec("INSERT INTO settings").WithArgs("lamp_alert_pct", "85").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("FROM settings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "key", "value"}).AddRow(3, "lamp_alert_pct", "85"))

	rec := call(e, http.MethodPut, "/v1/settings/lamp_alert_pct", `{"value":"85"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":3,"key":"lamp_alert_pct","value":"85"}`, rec.Body.String())
	assert.Equal(t, []string{"setting.updated"}, events.waitFor(t, 1))
}

func TestTechnicalReport_WindowParsing(t *testing.T) {
	e, _, _ := setup(t)
	rec := call(e, http.MethodGet, "/v1/reports/technical?start=100", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(e, http.MethodGet, "/v1/reports/technical?start=abc&end=5", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTechnicalReport_InvertedWindowMatchesNothing(t *testing.T) {
	e, mock, _ := setup(t)
	mock.ExpectQuery("FROM cinemas").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("FROM rooms").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("FROM equipment").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("FROM maintenance_records").WithArgs(2000, 1000).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("FROM session_impacts").WithArgs(2000, 1000).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec := call(e, http.MethodGet, "/v1/reports/technical?start=2000&end=1000", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	summary := body["summary"].(map[string]any)
	assert.Equal(t, float64(0), summary["total_maintenance"])
	assert.Equal(t, []any{}, body["room_availability"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSession(t *testing.T) {
	cfg := config.Config{JWTSecret: "s3cret", AdminPassword: "letmein", AccessTTLMin: 5, BcryptCost: 4}
	a, err := NewAuthHandler(cfg)
	require.NoError(t, err)
	e := echo.New()
	e.POST("/v1/admin/session", a.CreateSession)

	rec := call(e, http.MethodPost, "/v1/admin/session", `{"password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(e, http.MethodPost, "/v1/admin/session", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(e, http.MethodPost, "/v1/admin/session", `{"password":"letmein"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp sessionResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	claims, err := utils.ParseAccessToken(cfg.JWTSecret, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, utils.RoleAdmin, claims.Role)
	assert.Equal(t, adminSubject, claims.Subject)
}

func TestHealth(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	e := echo.New()
	e.GET("/healthz", Health(db))

	mock.ExpectPing()
	rec := call(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	mock.ExpectPing().WillReturnError(assert.AnError)
	rec = call(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

var equipmentCols = []string{"id", "room_id", "cinema_id", "name", "description", "ip_address", "status", "category",
	"install_date", "last_maintenance", "next_maintenance", "warranty_expiry", "cost"}

func equipmentRow(id, room, cinema uint64) []driver.Value {
	return []driver.Value{id, room, cinema, "Amp", "", nil, "operational", "sound", nil, nil, nil, nil, nil}
}

var maintenanceCols = []string{"id", "equipment_id", "room_id", "cinema_id", "type", "category", "description",
	"cost", "downtime", "technician", "start_time", "end_time", "status", "notes"}

func TestCreateMaintenance_EndBeforeStart(t *testing.T) {
	e, mock, _ := setup(t)
	rec := call(e, http.MethodPost, "/v1/maintenance",
		`{"room_id":7,"type":"corrective","category":"sound","description":"amp hum","start_time":2000,"end_time":1000}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, rec), "end_time")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMaintenance_EndBeforeStoredStart(t *testing.T) {
	e, mock, _ := setup(t)
	mock.ExpectQuery("FROM maintenance_records WHERE id = ?").WithArgs(3).
		WillReturnRows(sqlmock.NewRows(maintenanceCols).
			AddRow(3, nil, 7, 2, "corrective", "sound", "amp hum", nil, nil, nil, 5000, nil, "in-progress", nil))

	rec := call(e, http.MethodPatch, "/v1/maintenance/3", `{"end_time":4000}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, rec), "end_time")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMaintenance_EquipmentFromOtherCinema(t *testing.T) {
	e, mock, _ := setup(t)
	mock.ExpectQuery("FROM rooms WHERE id = ?").WithArgs(7).
		WillReturnRows(sqlmock.NewRows(roomCols).AddRow(roomRow(7, 2, 1, "active")...))
	mock.ExpectQuery("FROM equipment WHERE id = ?").WithArgs(30).
		WillReturnRows(sqlmock.NewRows(equipmentCols).AddRow(equipmentRow(30, 4, 1)...))

	rec := call(e, http.MethodPost, "/v1/maintenance",
		`{"room_id":7,"equipment_id":30,"type":"corrective","category":"sound","description":"amp hum","start_time":2000}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, rec), "equipment does not belong to cinema")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMaintenance_LinksEquipmentOfSameRoom(t *testing.T) {
	e, mock, events := setup(t)
	mock.ExpectQuery("FROM rooms WHERE id = ?").WithArgs(7).
		WillReturnRows(sqlmock.NewRows(roomCols).AddRow(roomRow(7, 2, 1, "active")...))
	mock.ExpectQuery("FROM equipment WHERE id = ?").WithArgs(30).
		WillReturnRows(sqlmock.NewRows(equipmentCols).AddRow(equipmentRow(30, 7, 2)...))
	mock.ExpectExec("INSERT INTO maintenance_records").WillReturnResult(sqlmock.NewResult(15, 1))

	rec := call(e, http.MethodPost, "/v1/maintenance",
		`{"room_id":7,"equipment_id":30,"type":"corrective","category":"sound","description":"amp hum","start_time":2000,"end_time":2000}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"equipment_id":30`)
	assert.Contains(t, rec.Body.String(), `"status":"scheduled"`)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, []string{"maintenance.created"}, events.waitFor(t, 1))
}

func TestCreateTask_EquipmentFromOtherRoom(t *testing.T) {
	e, mock, _ := setup(t)
	mock.ExpectQuery("FROM rooms WHERE id = ?").WithArgs(7).
		WillReturnRows(sqlmock.NewRows(roomCols).AddRow(roomRow(7, 2, 1, "active")...))
	mock.ExpectQuery("FROM equipment WHERE id = ?").WithArgs(31).
		WillReturnRows(sqlmock.NewRows(equipmentCols).AddRow(equipmentRow(31, 8, 2)...))

	rec := call(e, http.MethodPost, "/v1/tasks",
		`{"room_id":7,"equipment_id":31,"title":"Swap lamp","priority":"high"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, rec), "equipment does not belong to room")
	require.NoError(t, mock.ExpectationsWereMet())
}
