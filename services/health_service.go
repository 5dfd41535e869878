package services

import (
	"context"
	"time"

	"github.com/projecthub/database"
	"github.com/projecthub/dto"
)

// HealthChecker reports process uptime and store reachability
type HealthChecker struct {
	db      database.Pinger
	started time.Time
	now     func() time.Time
}

func NewHealthChecker(db database.Pinger) *HealthChecker {
	return &HealthChecker{db: db, started: time.Now(), now: time.Now}
}

// Check pings the store and reports whether the service is healthy
func (h *HealthChecker) Check(ctx context.Context) (dto.HealthResponse, bool) {
	now := h.now()
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: now.UTC().Format(time.RFC3339),
		Uptime:    now.Sub(h.started).Seconds(),
		Database:  "connected",
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if h.db == nil || h.db.PingContext(ctx) != nil {
		resp.Status = "error"
		resp.Database = "disconnected"
		return resp, false
	}
	return resp, true
}
