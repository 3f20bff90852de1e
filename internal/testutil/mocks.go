// Package testutil provides shared testify mocks for the store interfaces.
package testutil

import (
	"context"

	"github.com/poyrazK/dnsgate/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockStore implements ports.RecordStore for testing.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetRecord(ctx context.Context, name string) (*domain.RecordState, error) {
	args := m.Called(name)
	if v := args.Get(0); v != nil {
		return v.(*domain.RecordState), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) PutRecord(ctx context.Context, state *domain.RecordState) error {
	args := m.Called(state)
	return args.Error(0)
}

func (m *MockStore) ListRecords(ctx context.Context) ([]domain.RecordState, error) {
	args := m.Called()
	if v := args.Get(0); v != nil {
		return v.([]domain.RecordState), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetPrincipal(ctx context.Context, apiKey string) (*domain.Principal, error) {
	args := m.Called(apiKey)
	if v := args.Get(0); v != nil {
		return v.(*domain.Principal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) SaveAuditLog(ctx context.Context, entry *domain.AuditLog) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called()
	return args.Error(0)
}

// MockPrincipalStore implements the apikey CLI's store interface.
type MockPrincipalStore struct {
	mock.Mock
}

func (m *MockPrincipalStore) CreatePrincipal(ctx context.Context, principal *domain.Principal) error {
	args := m.Called(principal)
	return args.Error(0)
}

func (m *MockPrincipalStore) ListPrincipals(ctx context.Context) ([]domain.Principal, error) {
	args := m.Called()
	if v := args.Get(0); v != nil {
		return v.([]domain.Principal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPrincipalStore) RevokePrincipal(ctx context.Context, apiKey string) error {
	args := m.Called(apiKey)
	return args.Error(0)
}
