package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-maintenance/internal/repository"
)

func TestExportComplete_EmptyStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	for _, from := range []string{"FROM cinemas", "FROM rooms", "FROM equipment", "FROM maintenance_records",
		"FROM session_impacts", "FROM tasks", "FROM events", "FROM settings"} {
		mock.ExpectQuery(from).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	}
	mock.ExpectCommit()

	svc := NewExportService(repository.NewStore(db))
	svc.now = func() time.Time { return clock }

	out, err := svc.Complete(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, clock.UnixMilli(), out.ExportDate)
	raw, err := json.Marshal(out)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"cinemas", "rooms", "equipment", "maintenance_records",
		"session_impacts", "tasks", "events", "settings"} {
		assert.Equal(t, []any{}, decoded[key], key)
	}
}
