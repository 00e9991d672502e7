package domain

import "context"

// Kind names an entity collection. Used in not-found errors and event
// payloads.
type Kind string

const (
	KindAccount       Kind = "account"
	KindListing       Kind = "listing"
	KindTenancy       Kind = "tenancy"
	KindTransaction   Kind = "transaction"
	KindServiceTicket Kind = "service_ticket"
)

// Event represents a ledger mutation that external systems may react to.
type Event string

const (
	EventAccountRegistered    Event = "account.registered"
	EventAccountStatusChanged Event = "account.status_changed"
	EventListingCreated       Event = "listing.created"
	EventListingUpdated       Event = "listing.updated"
	EventTenancyCreated       Event = "tenancy.created"
	EventTenancyTerminated    Event = "tenancy.terminated"
	EventTransactionRecorded  Event = "transaction.recorded"
	EventTicketFiled          Event = "ticket.filed"
)

// EntityRef identifies the record an event is about.
type EntityRef struct {
	Kind Kind
	ID   string
}

// EventPublisher defines the contract for emitting domain events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event, ref EntityRef) error
}

// TransitionValidator checks tenancy lifecycle changes.
type TransitionValidator interface {
	Apply(ctx context.Context, current TenancyState, event TenancyEvent) (TenancyState, error)
}
