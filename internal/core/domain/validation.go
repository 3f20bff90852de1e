package domain

import (
	"strings"
)

// ValidateChangeRequest checks the request shape before any orchestration
// happens. Failures are schema errors and map to a client-side status at
// the entry point. Unknown record-set fields are tolerated; the payload is
// handed to the provider verbatim.
func ValidateChangeRequest(action string, recordSet ResourceRecordSet, apiKey string) error {
	if !ChangeAction(action).Valid() {
		return Errorf(KindSchema, "Action must be one of CREATE, UPSERT, DELETE; got %q", action)
	}
	if strings.TrimSpace(recordSet.Name) == "" {
		return NewError(KindSchema, "ResourceRecordSet.Name is required")
	}
	if len(recordSet.Name) > 253 {
		return NewError(KindSchema, "record name exceeds 253 characters")
	}
	if apiKey == "" {
		return NewError(KindSchema, "x-api-key header is required")
	}
	return nil
}
