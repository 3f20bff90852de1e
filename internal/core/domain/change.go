// Package domain contains the core entities and business rules for dnsgate.
package domain

import (
	"time"
)

// ChangeAction represents the kind of mutation requested against the
// authoritative DNS provider.
type ChangeAction string

const (
	// ActionCreate creates a record set that must not already be claimed.
	ActionCreate ChangeAction = "CREATE"
	// ActionUpsert creates or overwrites a record set unconditionally.
	ActionUpsert ChangeAction = "UPSERT"
	// ActionDelete removes a record set that is currently claimed.
	ActionDelete ChangeAction = "DELETE"
)

// Valid reports whether the action is one of the three supported mutations.
func (a ChangeAction) Valid() bool {
	switch a {
	case ActionCreate, ActionUpsert, ActionDelete:
		return true
	}
	return false
}

// ResourceRecord is a single value within a record set.
type ResourceRecord struct {
	Value string `json:"Value"`
}

// ResourceRecordSet is the provider-facing payload describing a DNS change.
// It is passed through to the provider adapter verbatim; only Name is
// interpreted by the gateway itself.
type ResourceRecordSet struct {
	Name            string           `json:"Name"`
	Type            string           `json:"Type,omitempty"`
	TTL             int64            `json:"TTL,omitempty"`
	ResourceRecords []ResourceRecord `json:"ResourceRecords,omitempty"`
}

// ChangeRequest bundles one orchestration invocation's inputs.
type ChangeRequest struct {
	Action       ChangeAction
	RecordSet    ResourceRecordSet
	HostedZoneID string
	APIKey       string
}

// Lifecycle is the claim status of a record name.
type Lifecycle string

const (
	LifecycleActive  Lifecycle = "active"
	LifecycleDeleted Lifecycle = "deleted"
)

// RecordState is the gateway's belief about a name's current claim status.
// States are never physically removed; a DELETE flips the record into the
// deleted lifecycle and a later CREATE or UPSERT may reclaim the name.
type RecordState struct {
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	Deleted   bool       `json:"deleted"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// Lifecycle returns the tagged claim status of the record.
func (s *RecordState) Lifecycle() Lifecycle {
	if s.Deleted {
		return LifecycleDeleted
	}
	return LifecycleActive
}

// AuditLog records a successfully committed change for later inspection.
type AuditLog struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	RecordName string    `json:"record_name"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}
