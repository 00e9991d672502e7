package river

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"
)

// EventWorker processes ledger event jobs from the River queue. For
// now it logs the event; future versions will dispatch to notification
// or reporting systems.
type EventWorker struct {
	river.WorkerDefaults[EventJobArgs]
}

// Work processes a single event job.
func (w *EventWorker) Work(ctx context.Context, job *river.Job[EventJobArgs]) error {
	slog.InfoContext(ctx, "processing ledger event",
		"event", job.Args.Event,
		"entity_kind", job.Args.EntityKind,
		"entity_id", job.Args.EntityID,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)
	return nil
}
