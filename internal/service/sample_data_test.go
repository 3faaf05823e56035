package service

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-maintenance/internal/repository"
)

var cinemaCols = []string{"id", "name", "location", "total_rooms", "active_rooms", "availability"}

var roomCols = []string{"id", "cinema_id", "number", "status", "projector", "sound_system",
	"projector_lamp_model", "projector_lamp_hours", "projector_lamp_max_hours", "projector_type",
	"last_maintenance_a", "last_maintenance_b", "last_maintenance_c",
	"additional_info", "amplifiers", "projector_ip", "server", "server_ip"}

func roomRow(id, cinema uint64, number int, status string) []driver.Value {
	return []driver.Value{id, cinema, number, status, "p", "s", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil}
}

func TestSeed_SkipsWhenDataExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM cinemas ORDER BY id").
		WillReturnRows(sqlmock.NewRows(cinemaCols).AddRow(1, "X", "Y", 0, 0, 0))
	mock.ExpectCommit()

	seeded, err := NewSampleData(repository.NewStore(db), nil).Seed(context.Background())

	require.NoError(t, err)
	assert.False(t, seeded)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeed_CreatesCinemasRoomsAndStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM cinemas ORDER BY id").WillReturnRows(sqlmock.NewRows(cinemaCols))

	want := []struct{ total, active, availability int }{
		{3, 2, 67},
		{2, 2, 100},
		{2, 1, 50},
	}
	var roomID uint64
	for i, sc := range sampleCinemas {
		cinemaID := uint64(i + 1)
		mock.ExpectExec("INSERT INTO cinemas").WithArgs(sc.name, sc.location, 0, 0, 0).
			WillReturnResult(sqlmock.NewResult(int64(cinemaID), 1))
		rows := sqlmock.NewRows(roomCols)
		for _, sr := range sc.rooms {
			roomID++
			mock.ExpectExec("INSERT INTO rooms").WillReturnResult(sqlmock.NewResult(int64(roomID), 1))
			rows.AddRow(roomRow(roomID, cinemaID, sr.number, string(sr.status))...)
		}
		mock.ExpectQuery("FROM rooms WHERE cinema_id = ?").WithArgs(cinemaID).WillReturnRows(rows)
		mock.ExpectExec("UPDATE cinemas SET total_rooms").
			WithArgs(want[i].total, want[i].active, want[i].availability, cinemaID).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	seeded, err := NewSampleData(repository.NewStore(db), nil).Seed(context.Background())

	require.NoError(t, err)
	assert.True(t, seeded)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClear_DeletesChildrenFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	for _, table := range []string{"events", "tasks", "session_impacts", "maintenance_records", "equipment", "rooms", "cinemas"} {
		mock.ExpectExec(q("DELETE FROM " + table)).WillReturnResult(sqlmock.NewResult(0, 3))
	}
	mock.ExpectCommit()

	require.NoError(t, NewSampleData(repository.NewStore(db), nil).Clear(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
