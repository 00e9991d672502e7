package river

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"

	"github.com/simbahq/nyumba/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// EventJobArgs carries a ledger event into the job queue. River
// serializes this as JSON into its job table. Workers receive the
// entity reference, not a snapshot; anything deeper re-reads the
// ledger.
type EventJobArgs struct {
	Event      string `json:"event"`
	EntityKind string `json:"entity_kind"`
	EntityID   string `json:"entity_id"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (EventJobArgs) Kind() string { return "ledger.event" }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues a ledger event as an async job in River.
func (p *Publisher) Publish(ctx context.Context, event domain.Event, ref domain.EntityRef) error {
	_, err := p.client.Insert(ctx, EventJobArgs{
		Event:      string(event),
		EntityKind: string(ref.Kind),
		EntityID:   ref.ID,
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing event job: %w", err)
	}
	return nil
}
