package ports

import (
	"context"

	"github.com/poyrazK/dnsgate/internal/core/domain"
)

// RecordStore is the persistence boundary for record claim state and API key
// principals. GetRecord and GetPrincipal return (nil, nil) when no row
// exists; PutRecord is a full overwrite by name with last-writer-wins
// semantics and no conditional check.
type RecordStore interface {
	GetRecord(ctx context.Context, name string) (*domain.RecordState, error)
	PutRecord(ctx context.Context, state *domain.RecordState) error
	ListRecords(ctx context.Context) ([]domain.RecordState, error)
	GetPrincipal(ctx context.Context, apiKey string) (*domain.Principal, error)
	SaveAuditLog(ctx context.Context, entry *domain.AuditLog) error
	Ping(ctx context.Context) error
}

// DNSProvider issues a single record-set mutation against the authoritative
// DNS service. Exactly one change batch with exactly one change entry is
// submitted per call. The returned string is a human-readable confirmation.
type DNSProvider interface {
	ChangeRecordSet(ctx context.Context, action domain.ChangeAction, recordSet domain.ResourceRecordSet, hostedZoneID string) (string, error)
}

// ChangeService orchestrates authorization, claim-state checks, the provider
// mutation and the local state commit for one change request.
type ChangeService interface {
	Create(ctx context.Context, req domain.ChangeRequest) (string, error)
	Upsert(ctx context.Context, req domain.ChangeRequest) (string, error)
	Delete(ctx context.Context, req domain.ChangeRequest) (string, error)
	ListRecords(ctx context.Context) ([]domain.RecordState, error)
	HealthCheck(ctx context.Context) map[string]error
}
