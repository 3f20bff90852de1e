package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/poyrazK/dnsgate/internal/core/domain"
	"github.com/poyrazK/dnsgate/internal/core/ports"
	"github.com/poyrazK/dnsgate/internal/infrastructure/metrics"
)

type changeService struct {
	store    ports.RecordStore
	provider ports.DNSProvider
	logger   *slog.Logger
}

// NewChangeService wires the orchestrator with its store and provider
// adapters. The logger must not be nil.
func NewChangeService(store ports.RecordStore, provider ports.DNSProvider, logger *slog.Logger) ports.ChangeService {
	return &changeService{store: store, provider: provider, logger: logger}
}

// authorize resolves the API key to a principal and validates the record
// name against the principal's pattern. The pattern is matched as a search,
// not implicitly anchored, so principals wanting exact-name control must
// anchor their own patterns.
func (s *changeService) authorize(ctx context.Context, apiKey, name string) (*domain.Principal, error) {
	principal, err := s.store.GetPrincipal(ctx, apiKey)
	if err != nil {
		metrics.StoreErrors.Inc()
		return nil, domain.WrapError(domain.KindStore, err, "principal lookup failed")
	}
	if !principal.Usable() {
		return nil, domain.NewError(domain.KindAuthorization, "API Key not valid")
	}

	re, err := regexp.Compile(principal.Regex)
	if err != nil || !re.MatchString(name) {
		return nil, domain.Errorf(domain.KindPolicy, "%q does not match regex %q", name, principal.Regex)
	}

	return principal, nil
}

type providerOutcome struct {
	result string
	err    error
}

// dispatchChange issues the provider mutation without waiting for it to
// settle. The local state commit happens after the call is issued, not
// after it is confirmed: a provider rejection still leaves committed local
// state. Callers receive the outcome only after their commit.
func (s *changeService) dispatchChange(ctx context.Context, action domain.ChangeAction, recordSet domain.ResourceRecordSet, hostedZoneID string) <-chan providerOutcome {
	ch := make(chan providerOutcome, 1)
	go func() {
		result, err := s.provider.ChangeRecordSet(ctx, action, recordSet, hostedZoneID)
		ch <- providerOutcome{result: result, err: err}
	}()
	return ch
}

func (s *changeService) Create(ctx context.Context, req domain.ChangeRequest) (string, error) {
	name := req.RecordSet.Name
	if _, err := s.authorize(ctx, req.APIKey, name); err != nil {
		return "", err
	}

	state, err := s.store.GetRecord(ctx, name)
	if err != nil {
		metrics.StoreErrors.Inc()
		return "", domain.WrapError(domain.KindStore, err, "record state lookup failed")
	}
	if state != nil && state.Lifecycle() == domain.LifecycleActive {
		return "", domain.Errorf(domain.KindConflict, "DNS Record %q exists already.", name)
	}

	outcome := s.dispatchChange(ctx, domain.ActionCreate, req.RecordSet, req.HostedZoneID)

	fresh := &domain.RecordState{Name: name, CreatedAt: time.Now()}
	if err := s.store.PutRecord(ctx, fresh); err != nil {
		metrics.StoreErrors.Inc()
		return "", domain.WrapError(domain.KindStore, err, "record state commit failed")
	}
	s.audit(ctx, domain.ActionCreate, name)

	res := <-outcome
	if res.err != nil {
		return "", res.err
	}
	s.logger.Info("dns change applied", "action", domain.ActionCreate, "name", name)
	return res.result, nil
}

func (s *changeService) Upsert(ctx context.Context, req domain.ChangeRequest) (string, error) {
	name := req.RecordSet.Name
	if _, err := s.authorize(ctx, req.APIKey, name); err != nil {
		return "", err
	}

	// Upsert is unconditional; no existence pre-check.
	outcome := s.dispatchChange(ctx, domain.ActionUpsert, req.RecordSet, req.HostedZoneID)

	fresh := &domain.RecordState{Name: name, CreatedAt: time.Now()}
	if err := s.store.PutRecord(ctx, fresh); err != nil {
		metrics.StoreErrors.Inc()
		return "", domain.WrapError(domain.KindStore, err, "record state commit failed")
	}
	s.audit(ctx, domain.ActionUpsert, name)

	res := <-outcome
	if res.err != nil {
		return "", res.err
	}
	s.logger.Info("dns change applied", "action", domain.ActionUpsert, "name", name)
	return res.result, nil
}

func (s *changeService) Delete(ctx context.Context, req domain.ChangeRequest) (string, error) {
	name := req.RecordSet.Name
	if _, err := s.authorize(ctx, req.APIKey, name); err != nil {
		return "", err
	}

	state, err := s.store.GetRecord(ctx, name)
	if err != nil {
		metrics.StoreErrors.Inc()
		return "", domain.WrapError(domain.KindStore, err, "record state lookup failed")
	}
	if state == nil {
		return "", domain.Errorf(domain.KindNotFound, "DNS Record %q not found.", name)
	}
	if state.Lifecycle() == domain.LifecycleDeleted {
		return "", domain.Errorf(domain.KindAlreadyDeleted, "DNS Record %q already deleted.", name)
	}

	outcome := s.dispatchChange(ctx, domain.ActionDelete, req.RecordSet, req.HostedZoneID)

	now := time.Now()
	state.Deleted = true
	state.DeletedAt = &now
	if err := s.store.PutRecord(ctx, state); err != nil {
		metrics.StoreErrors.Inc()
		return "", domain.WrapError(domain.KindStore, err, "record state commit failed")
	}
	s.audit(ctx, domain.ActionDelete, name)

	res := <-outcome
	if res.err != nil {
		return "", res.err
	}
	s.logger.Info("dns change applied", "action", domain.ActionDelete, "name", name)
	return res.result, nil
}

func (s *changeService) ListRecords(ctx context.Context) ([]domain.RecordState, error) {
	records, err := s.store.ListRecords(ctx)
	if err != nil {
		metrics.StoreErrors.Inc()
		return nil, domain.WrapError(domain.KindStore, err, "record listing failed")
	}
	return records, nil
}

func (s *changeService) HealthCheck(ctx context.Context) map[string]error {
	return map[string]error{
		"store": s.store.Ping(ctx),
	}
}

// audit is best-effort: a failed audit write is logged and never alters the
// outcome of an already-committed change.
func (s *changeService) audit(ctx context.Context, action domain.ChangeAction, name string) {
	entry := &domain.AuditLog{
		ID:         uuid.New().String(),
		Action:     string(action),
		RecordName: name,
		Details:    fmt.Sprintf("Action: %s - %s", action, name),
		CreatedAt:  time.Now(),
	}
	if err := s.store.SaveAuditLog(ctx, entry); err != nil {
		s.logger.Warn("audit log write failed", "action", action, "name", name, "error", err)
	}
}
