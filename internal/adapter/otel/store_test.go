package otel_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	adapter "github.com/simbahq/nyumba/internal/adapter/otel"
	"github.com/simbahq/nyumba/internal/domain"
	"github.com/simbahq/nyumba/internal/store"
)

// --- Test tracer setup ---

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter
}

// --- Mock store ---

type mockStore struct {
	tables map[store.Table][]store.Record
	fail   bool
}

func newMockStore() *mockStore {
	return &mockStore{tables: make(map[store.Table][]store.Record)}
}

func (m *mockStore) Read(_ context.Context, table store.Table) ([]store.Record, error) {
	if m.fail {
		return nil, domain.ErrStorageUnavailable
	}
	return m.tables[table], nil
}

func (m *mockStore) Write(_ context.Context, writes ...store.TableWrite) error {
	if m.fail {
		return domain.ErrStorageUnavailable
	}
	for _, w := range writes {
		m.tables[w.Table] = w.Records
	}
	return nil
}

// --- Tests ---

func TestTracingStore_Read_RecordsSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := newMockStore()
	inner.tables[store.TableAccounts] = []store.Record{
		json.RawMessage(`{"id":"acc-1"}`),
		json.RawMessage(`{"id":"acc-2"}`),
	}
	st := adapter.NewTracingStore(inner)

	records, err := st.Read(context.Background(), store.TableAccounts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2", len(records))
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "TableStore.Read" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "TableStore.Read")
	}

	assertAttribute(t, spans[0], "store.table", "accounts")
	assertAttribute(t, spans[0], "store.record_count", "2")
}

func TestTracingStore_Read_RecordsError(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := newMockStore()
	inner.fail = true
	st := adapter.NewTracingStore(inner)

	_, err := st.Read(context.Background(), store.TableAccounts)
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want %v", spans[0].Status.Code, codes.Error)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected error event on span")
	}
}

func TestTracingStore_Write_RecordsTables(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := newMockStore()
	st := adapter.NewTracingStore(inner)

	err := st.Write(context.Background(),
		store.TableWrite{Table: store.TableTenancies, Records: []store.Record{json.RawMessage(`{"id":"ten-1"}`)}},
		store.TableWrite{Table: store.TableListings, Records: []store.Record{json.RawMessage(`{"id":"lst-1"}`)}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "TableStore.Write" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "TableStore.Write")
	}

	assertAttribute(t, spans[0], "store.tables", "[tenancies listings]")
	assertAttribute(t, spans[0], "store.record_count", "2")

	if len(inner.tables[store.TableTenancies]) != 1 {
		t.Error("write should pass through to the inner store")
	}
}

func TestTracingStore_Write_RecordsError(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := newMockStore()
	inner.fail = true
	st := adapter.NewTracingStore(inner)

	err := st.Write(context.Background(),
		store.TableWrite{Table: store.TableAccounts, Records: nil},
	)
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want %v", spans[0].Status.Code, codes.Error)
	}
}

// assertAttribute checks that a span has an attribute with the given key and value.
func assertAttribute(t *testing.T, span tracetest.SpanStub, key, want string) {
	t.Helper()
	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			got := attr.Value.Emit()
			if got != want {
				t.Errorf("attribute %q = %q, want %q", key, got, want)
			}
			return
		}
	}
	t.Errorf("attribute %q not found on span %q", key, span.Name)
}
