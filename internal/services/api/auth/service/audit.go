package service

import (
	"context"
	"time"

	"promptstash/internal/platform/logger"
	"promptstash/internal/platform/store"
)

// Audit event names in the auth_events stream
const (
	EventLoginOK     = "login_ok"
	EventLoginDenied = "login_denied"
	EventLogout      = "logout"
	EventAdminUpdate = "admin_update"
)

// Audit appends auth events to the columnar sink, best effort
type Audit struct {
	sink store.Clickhouse
	log  *logger.Logger
}

// NewAudit wraps a sink; a nil sink disables recording
func NewAudit(sink store.Clickhouse, log *logger.Logger) *Audit {
	return &Audit{sink: sink, log: log}
}

// Record appends one event; failures are logged, never surfaced to callers
func (a *Audit) Record(ctx context.Context, event string, userID int64, detail string) {
	if a == nil || a.sink == nil {
		return
	}
	row := []any{time.Now().UTC(), event, userID, detail}
	if err := a.sink.Insert(ctx, "auth_events", [][]any{row}); err != nil {
		a.log.Warn().Err(err).Str("event", event).Msg("auth audit insert failed")
	}
}
