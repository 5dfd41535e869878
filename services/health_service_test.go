package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	checker := NewHealthChecker(db)
	started := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	checker.started = started
	checker.now = func() time.Time { return started.Add(90 * time.Second) }

	mock.ExpectPing()
	resp, ok := checker.Check(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "connected", resp.Database)
	assert.Equal(t, 90.0, resp.Uptime)
	assert.Equal(t, "2026-01-01T00:01:30Z", resp.Timestamp)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	resp, ok = checker.Check(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "disconnected", resp.Database)

	assert.NoError(t, mock.ExpectationsWereMet())
}
