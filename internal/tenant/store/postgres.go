package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"daybound/internal/tenant/models"
	id "daybound/pkg/domain"
	"daybound/pkg/platform/sentinel"
)

const pgUniqueViolation = "23505"

// Postgres persists tenants in PostgreSQL via a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the tenant tables when they do not exist yet.
// Deployments own real migrations; this keeps integration tests and
// first-boot development environments self-contained.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tenants (
			id         UUID PRIMARY KEY,
			name       TEXT NOT NULL,
			timezone   TEXT NOT NULL,
			status     TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS tenants_name_lower_idx ON tenants (lower(name));
		CREATE TABLE IF NOT EXISTS tenant_api_keys (
			id          UUID PRIMARY KEY,
			tenant_id   UUID NOT NULL REFERENCES tenants(id),
			label       TEXT NOT NULL,
			secret_hash TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("ensure tenant schema: %w", err)
	}
	return nil
}

// CreateIfNameAvailable inserts the tenant; the unique index on
// lower(name) turns races into ErrConflict instead of duplicates.
func (s *Postgres) CreateIfNameAvailable(ctx context.Context, tenant *models.Tenant) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tenants (id, name, timezone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.UUID(tenant.ID), tenant.Name, tenant.Timezone, string(tenant.Status), tenant.CreatedAt, tenant.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create tenant: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	return s.scanTenant(s.pool.QueryRow(ctx, `
		SELECT id, name, timezone, status, created_at, updated_at
		FROM tenants WHERE id = $1
	`, uuid.UUID(tenantID)))
}

func (s *Postgres) FindByName(ctx context.Context, name string) (*models.Tenant, error) {
	return s.scanTenant(s.pool.QueryRow(ctx, `
		SELECT id, name, timezone, status, created_at, updated_at
		FROM tenants WHERE lower(name) = lower($1)
	`, name))
}

// Execute validates and mutates a tenant inside a transaction holding a
// row lock, the SQL counterpart of the in-memory store's locked callback.
func (s *Postgres) Execute(ctx context.Context, tenantID id.TenantID, validate func(*models.Tenant) error, apply func(*models.Tenant)) (*models.Tenant, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tenant update: %w", err)
	}
	defer tx.Rollback(ctx)

	tenant, err := s.scanTenant(tx.QueryRow(ctx, `
		SELECT id, name, timezone, status, created_at, updated_at
		FROM tenants WHERE id = $1 FOR UPDATE
	`, uuid.UUID(tenantID)))
	if err != nil {
		return nil, err
	}
	if err := validate(tenant); err != nil {
		return nil, err
	}
	apply(tenant)

	_, err = tx.Exec(ctx, `
		UPDATE tenants SET name = $2, timezone = $3, status = $4, updated_at = $5
		WHERE id = $1
	`, uuid.UUID(tenant.ID), tenant.Name, tenant.Timezone, string(tenant.Status), tenant.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update tenant: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tenant update: %w", err)
	}
	return tenant, nil
}

// TimezoneByID returns the timezone setting of an active tenant.
func (s *Postgres) TimezoneByID(ctx context.Context, tenantID id.TenantID) (string, error) {
	var tz, status string
	err := s.pool.QueryRow(ctx, `
		SELECT timezone, status FROM tenants WHERE id = $1
	`, uuid.UUID(tenantID)).Scan(&tz, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("load tenant timezone: %w", err)
	}
	if models.TenantStatus(status) != models.TenantStatusActive {
		return "", sentinel.ErrInvalidState
	}
	return tz, nil
}

func (s *Postgres) CreateAPIKey(ctx context.Context, key *models.APIKey) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tenant_api_keys (id, tenant_id, label, secret_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, key.ID, uuid.UUID(key.TenantID), key.Label, key.SecretHash, key.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("create api key: %w", err)
	}
	return nil
}

func (s *Postgres) APIKeysByTenant(ctx context.Context, tenantID id.TenantID) ([]*models.APIKey, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, tenant_id, label, secret_hash, created_at
		FROM tenant_api_keys WHERE tenant_id = $1 ORDER BY created_at
	`, uuid.UUID(tenantID))
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer rows.Close()

	var keys []*models.APIKey
	for rows.Next() {
		var key models.APIKey
		var tid uuid.UUID
		if err := rows.Scan(&key.ID, &tid, &key.Label, &key.SecretHash, &key.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		key.TenantID = id.TenantID(tid)
		keys = append(keys, &key)
	}
	return keys, rows.Err()
}

func (s *Postgres) scanTenant(row pgx.Row) (*models.Tenant, error) {
	var tenant models.Tenant
	var tid uuid.UUID
	var status string
	err := row.Scan(&tid, &tenant.Name, &tenant.Timezone, &status, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan tenant: %w", err)
	}
	tenant.ID = id.TenantID(tid)
	tenant.Status = models.TenantStatus(status)
	return &tenant, nil
}
