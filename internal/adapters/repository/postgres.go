package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/poyrazK/dnsgate/internal/core/domain"
)

// PostgresStore implements ports.RecordStore using PostgreSQL. Two
// independent tables back it: dns_record_states keyed by name and api_keys
// keyed by api_key. Writes are full overwrites; there is no optimistic
// concurrency check, the last writer wins.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates and returns a new PostgresStore instance.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (r *PostgresStore) GetRecord(ctx context.Context, name string) (*domain.RecordState, error) {
	query := `SELECT name, created_at, deleted, deleted_at FROM dns_record_states WHERE name = $1`

	var state domain.RecordState
	var deletedAt sql.NullTime
	errRow := r.db.QueryRowContext(ctx, query, name).Scan(&state.Name, &state.CreatedAt, &state.Deleted, &deletedAt)
	if errors.Is(errRow, sql.ErrNoRows) {
		return nil, nil
	}
	if errRow != nil {
		return nil, errRow
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		state.DeletedAt = &t
	}
	return &state, nil
}

func (r *PostgresStore) PutRecord(ctx context.Context, state *domain.RecordState) error {
	query := `INSERT INTO dns_record_states (name, created_at, deleted, deleted_at) VALUES ($1, $2, $3, $4)
	          ON CONFLICT (name) DO UPDATE SET created_at = EXCLUDED.created_at, deleted = EXCLUDED.deleted, deleted_at = EXCLUDED.deleted_at`
	var deletedAt sql.NullTime
	if state.DeletedAt != nil {
		deletedAt = sql.NullTime{Time: *state.DeletedAt, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query, state.Name, state.CreatedAt, state.Deleted, deletedAt)
	return err
}

func (r *PostgresStore) ListRecords(ctx context.Context) ([]domain.RecordState, error) {
	query := `SELECT name, created_at, deleted, deleted_at FROM dns_record_states`
	rows, errQuery := r.db.QueryContext(ctx, query)
	if errQuery != nil {
		return nil, errQuery
	}
	defer func() {
		if errClose := rows.Close(); errClose != nil {
			log.Printf("failed to close rows: %v", errClose)
		}
	}()

	var records []domain.RecordState
	for rows.Next() {
		var state domain.RecordState
		var deletedAt sql.NullTime
		if errScan := rows.Scan(&state.Name, &state.CreatedAt, &state.Deleted, &deletedAt); errScan != nil {
			return nil, errScan
		}
		if deletedAt.Valid {
			t := deletedAt.Time
			state.DeletedAt = &t
		}
		records = append(records, state)
	}
	return records, rows.Err()
}

func (r *PostgresStore) GetPrincipal(ctx context.Context, apiKey string) (*domain.Principal, error) {
	query := `SELECT api_key, name_regex, deleted FROM api_keys WHERE api_key = $1`

	var p domain.Principal
	errRow := r.db.QueryRowContext(ctx, query, apiKey).Scan(&p.APIKey, &p.Regex, &p.Deleted)
	if errors.Is(errRow, sql.ErrNoRows) {
		return nil, nil
	}
	if errRow != nil {
		return nil, errRow
	}
	return &p, nil
}

// CreatePrincipal provisions a new API key principal. Used by the apikey
// CLI, not by the orchestrator.
func (r *PostgresStore) CreatePrincipal(ctx context.Context, principal *domain.Principal) error {
	query := `INSERT INTO api_keys (api_key, name_regex, deleted) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, principal.APIKey, principal.Regex, principal.Deleted)
	return err
}

// ListPrincipals returns every provisioned key, revoked ones included.
func (r *PostgresStore) ListPrincipals(ctx context.Context) ([]domain.Principal, error) {
	query := `SELECT api_key, name_regex, deleted FROM api_keys`
	rows, errQuery := r.db.QueryContext(ctx, query)
	if errQuery != nil {
		return nil, errQuery
	}
	defer func() {
		if errClose := rows.Close(); errClose != nil {
			log.Printf("failed to close rows: %v", errClose)
		}
	}()

	var principals []domain.Principal
	for rows.Next() {
		var p domain.Principal
		if errScan := rows.Scan(&p.APIKey, &p.Regex, &p.Deleted); errScan != nil {
			return nil, errScan
		}
		principals = append(principals, p)
	}
	return principals, rows.Err()
}

// RevokePrincipal soft-deletes a key; the row is kept so the key can never
// be silently re-provisioned with a different policy.
func (r *PostgresStore) RevokePrincipal(ctx context.Context, apiKey string) error {
	query := `UPDATE api_keys SET deleted = TRUE WHERE api_key = $1`
	res, err := r.db.ExecContext(ctx, query, apiKey)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresStore) SaveAuditLog(ctx context.Context, entry *domain.AuditLog) error {
	query := `INSERT INTO audit_logs (id, action, record_name, details, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, entry.ID, entry.Action, entry.RecordName, entry.Details, entry.CreatedAt)
	return err
}

func (r *PostgresStore) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
