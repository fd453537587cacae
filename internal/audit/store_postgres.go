package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresSink appends events to an audit_events table. It uses the
// plain database/sql interface so the table can live in a separate
// database from the tenant store if operations wants that.
type PostgresSink struct {
	db *sql.DB
}

func NewPostgresSink(db *sql.DB) *PostgresSink {
	return &PostgresSink{db: db}
}

// EnsureSchema creates the audit table if it does not exist.
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS audit_events (
	id         BIGSERIAL PRIMARY KEY,
	ts         TIMESTAMPTZ NOT NULL,
	tenant_id  TEXT NOT NULL,
	user_id    TEXT NOT NULL DEFAULT '',
	action     TEXT NOT NULL,
	resource   TEXT NOT NULL DEFAULT '',
	detail     TEXT NOT NULL DEFAULT '',
	client_ip  TEXT NOT NULL DEFAULT '',
	user_agent TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS audit_events_tenant_ts_idx ON audit_events (tenant_id, ts);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

func (s *PostgresSink) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO audit_events (ts, tenant_id, user_id, action, resource, detail, client_ip, user_agent)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.db.ExecContext(ctx, q,
		e.Timestamp.UTC(), e.TenantID, e.UserID, e.Action,
		e.Resource, e.Detail, e.ClientIP, e.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// ListByTenant returns a tenant's events ordered by timestamp.
func (s *PostgresSink) ListByTenant(ctx context.Context, tenantID string) ([]Event, error) {
	const q = `
SELECT ts, tenant_id, user_id, action, resource, detail, client_ip, user_agent
FROM audit_events
WHERE tenant_id = $1
ORDER BY ts, id`
	rows, err := s.db.QueryContext(ctx, q, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var ts time.Time
		if err := rows.Scan(&ts, &e.TenantID, &e.UserID, &e.Action,
			&e.Resource, &e.Detail, &e.ClientIP, &e.UserAgent); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Timestamp = ts.UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return out, nil
}
