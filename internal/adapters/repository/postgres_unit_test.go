package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/poyrazK/dnsgate/internal/core/domain"
)

func TestPostgresStore_Unit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	store := NewPostgresStore(db)
	ctx := context.Background()

	t.Run("GetRecord", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"name", "created_at", "deleted", "deleted_at"}).
			AddRow("abc.test.com", time.Now(), false, nil)

		mock.ExpectQuery(`SELECT name, created_at, deleted, deleted_at FROM dns_record_states WHERE name = \$1`).
			WithArgs("abc.test.com").
			WillReturnRows(rows)

		state, err := store.GetRecord(ctx, "abc.test.com")
		if err != nil {
			t.Errorf("GetRecord failed: %v", err)
		}
		if state == nil || state.Name != "abc.test.com" || state.Deleted {
			t.Errorf("Unexpected state: %+v", state)
		}
		if state.DeletedAt != nil {
			t.Errorf("Expected nil DeletedAt, got %v", state.DeletedAt)
		}
	})

	t.Run("GetRecord absent", func(t *testing.T) {
		mock.ExpectQuery(`SELECT name, created_at, deleted, deleted_at FROM dns_record_states WHERE name = \$1`).
			WithArgs("missing.test.com").
			WillReturnRows(sqlmock.NewRows([]string{"name", "created_at", "deleted", "deleted_at"}))

		state, err := store.GetRecord(ctx, "missing.test.com")
		if err != nil {
			t.Errorf("GetRecord failed: %v", err)
		}
		if state != nil {
			t.Errorf("Expected nil for absent record, got %+v", state)
		}
	})

	t.Run("GetRecord soft-deleted", func(t *testing.T) {
		deletedAt := time.Now()
		rows := sqlmock.NewRows([]string{"name", "created_at", "deleted", "deleted_at"}).
			AddRow("old.test.com", time.Now().Add(-time.Hour), true, deletedAt)

		mock.ExpectQuery(`SELECT name, created_at, deleted, deleted_at FROM dns_record_states WHERE name = \$1`).
			WithArgs("old.test.com").
			WillReturnRows(rows)

		state, err := store.GetRecord(ctx, "old.test.com")
		if err != nil {
			t.Errorf("GetRecord failed: %v", err)
		}
		if state == nil || !state.Deleted || state.DeletedAt == nil {
			t.Errorf("Unexpected state: %+v", state)
		}
	})

	t.Run("PutRecord", func(t *testing.T) {
		state := &domain.RecordState{Name: "abc.test.com", CreatedAt: time.Now()}
		mock.ExpectExec(`INSERT INTO dns_record_states`).
			WithArgs(state.Name, state.CreatedAt, false, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := store.PutRecord(ctx, state); err != nil {
			t.Errorf("PutRecord failed: %v", err)
		}
	})

	t.Run("ListRecords", func(t *testing.T) {
		deletedAt := time.Now()
		rows := sqlmock.NewRows([]string{"name", "created_at", "deleted", "deleted_at"}).
			AddRow("a.test.com", time.Now(), false, nil).
			AddRow("b.test.com", time.Now(), true, deletedAt)

		mock.ExpectQuery(`SELECT name, created_at, deleted, deleted_at FROM dns_record_states`).
			WillReturnRows(rows)

		records, err := store.ListRecords(ctx)
		if err != nil {
			t.Errorf("ListRecords failed: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("Expected 2 records, got %d", len(records))
		}
		if records[1].DeletedAt == nil {
			t.Errorf("Expected DeletedAt on soft-deleted record")
		}
	})

	t.Run("GetPrincipal", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"api_key", "name_regex", "deleted"}).
			AddRow("Test123123", "^[^.]+[.][^.]+[.][^.]+$", false)

		mock.ExpectQuery(`SELECT api_key, name_regex, deleted FROM api_keys WHERE api_key = \$1`).
			WithArgs("Test123123").
			WillReturnRows(rows)

		principal, err := store.GetPrincipal(ctx, "Test123123")
		if err != nil {
			t.Errorf("GetPrincipal failed: %v", err)
		}
		if principal == nil || principal.Regex != "^[^.]+[.][^.]+[.][^.]+$" {
			t.Errorf("Unexpected principal: %+v", principal)
		}
	})

	t.Run("GetPrincipal absent", func(t *testing.T) {
		mock.ExpectQuery(`SELECT api_key, name_regex, deleted FROM api_keys WHERE api_key = \$1`).
			WithArgs("unknown").
			WillReturnRows(sqlmock.NewRows([]string{"api_key", "name_regex", "deleted"}))

		principal, err := store.GetPrincipal(ctx, "unknown")
		if err != nil {
			t.Errorf("GetPrincipal failed: %v", err)
		}
		if principal != nil {
			t.Errorf("Expected nil for absent principal, got %+v", principal)
		}
	})

	t.Run("CreatePrincipal", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO api_keys`).
			WithArgs("newkey", "^.*$", false).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.CreatePrincipal(ctx, &domain.Principal{APIKey: "newkey", Regex: "^.*$"})
		if err != nil {
			t.Errorf("CreatePrincipal failed: %v", err)
		}
	})

	t.Run("RevokePrincipal", func(t *testing.T) {
		mock.ExpectExec(`UPDATE api_keys SET deleted = TRUE WHERE api_key = \$1`).
			WithArgs("Test123123").
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := store.RevokePrincipal(ctx, "Test123123"); err != nil {
			t.Errorf("RevokePrincipal failed: %v", err)
		}
	})

	t.Run("RevokePrincipal unknown key", func(t *testing.T) {
		mock.ExpectExec(`UPDATE api_keys SET deleted = TRUE WHERE api_key = \$1`).
			WithArgs("nope").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.RevokePrincipal(ctx, "nope")
		if !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("Expected sql.ErrNoRows, got %v", err)
		}
	})

	t.Run("SaveAuditLog", func(t *testing.T) {
		entry := &domain.AuditLog{
			ID:         "550e8400-e29b-41d4-a716-446655440000",
			Action:     "CREATE",
			RecordName: "abc.test.com",
			Details:    "Action: CREATE - abc.test.com",
			CreatedAt:  time.Now(),
		}
		mock.ExpectExec(`INSERT INTO audit_logs`).
			WithArgs(entry.ID, entry.Action, entry.RecordName, entry.Details, entry.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := store.SaveAuditLog(ctx, entry); err != nil {
			t.Errorf("SaveAuditLog failed: %v", err)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
