package audit

import (
	"context"
	"time"
)

// Event is emitted from domain logic to capture a mutation. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	Action    string
	// Entity and EntityID name the record the action touched.
	Entity   string
	EntityID int64
	// RequestID and ClientIP correlate the event with the HTTP request.
	RequestID string
	ClientIP  string
}

type AuditEvent string

const (
	EventDistrictCreated AuditEvent = "district_created"
	EventDistrictUpdated AuditEvent = "district_updated"
	EventDistrictDeleted AuditEvent = "district_deleted"

	EventDistributorTypeCreated AuditEvent = "distributor_type_created"
	EventDistributorTypeUpdated AuditEvent = "distributor_type_updated"
	EventDistributorTypeDeleted AuditEvent = "distributor_type_deleted"

	EventDistributorCreated AuditEvent = "distributor_created"
	EventDistributorUpdated AuditEvent = "distributor_updated"
	EventDistributorDeleted AuditEvent = "distributor_deleted"

	EventRegulationCreated AuditEvent = "regulation_created"
	EventRegulationUpdated AuditEvent = "regulation_updated"
	EventRegulationDeleted AuditEvent = "regulation_deleted"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByEntity(ctx context.Context, entity string, entityID int64) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
