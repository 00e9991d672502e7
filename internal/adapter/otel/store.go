package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/simbahq/nyumba/internal/store"
)

const tracerName = "github.com/simbahq/nyumba/internal/adapter/otel"

// TracingStore wraps a store.Store with OpenTelemetry tracing. Each
// call creates a span naming the tables touched and records errors.
type TracingStore struct {
	next   store.Store
	tracer trace.Tracer
}

// Compile-time check: TracingStore implements store.Store.
var _ store.Store = (*TracingStore)(nil)

// NewTracingStore creates a tracing decorator around the given store.
func NewTracingStore(next store.Store) *TracingStore {
	return &TracingStore{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (s *TracingStore) Read(ctx context.Context, table store.Table) ([]store.Record, error) {
	ctx, span := s.tracer.Start(ctx, "TableStore.Read",
		trace.WithAttributes(attribute.String("store.table", string(table))),
	)
	defer span.End()

	records, err := s.next.Read(ctx, table)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("store.record_count", len(records)))
	}
	return records, err
}

func (s *TracingStore) Write(ctx context.Context, writes ...store.TableWrite) error {
	tables := make([]string, len(writes))
	total := 0
	for i, w := range writes {
		tables[i] = string(w.Table)
		total += len(w.Records)
	}

	ctx, span := s.tracer.Start(ctx, "TableStore.Write",
		trace.WithAttributes(
			attribute.StringSlice("store.tables", tables),
			attribute.Int("store.record_count", total),
		),
	)
	defer span.End()

	err := s.next.Write(ctx, writes...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
