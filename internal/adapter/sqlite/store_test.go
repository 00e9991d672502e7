package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/simbahq/nyumba/internal/adapter/sqlite"
	"github.com/simbahq/nyumba/internal/domain"
	"github.com/simbahq/nyumba/internal/store"
)

// newTestStore creates an in-memory SQLite store for testing.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func rec(s string) store.Record {
	return store.Record(s)
}

func TestRead_EmptyTable(t *testing.T) {
	st := newTestStore(t)

	records, err := st.Read(context.Background(), store.TableAccounts)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestWrite_And_Read_PreservesOrder(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	docs := []store.Record{rec(`{"id":"a"}`), rec(`{"id":"b"}`), rec(`{"id":"c"}`)}
	if err := st.Write(ctx, store.TableWrite{Table: store.TableListings, Records: docs}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := st.Read(ctx, store.TableListings)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}
	for i, want := range docs {
		if string(got[i]) != string(want) {
			t.Errorf("record %d = %s, want %s", i, got[i], want)
		}
	}
}

func TestWrite_ReplacesWholeTable(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if err := st.Write(ctx, store.TableWrite{
		Table:   store.TableAccounts,
		Records: []store.Record{rec(`{"id":"a"}`), rec(`{"id":"b"}`)},
	}); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}

	if err := st.Write(ctx, store.TableWrite{
		Table:   store.TableAccounts,
		Records: []store.Record{rec(`{"id":"c"}`)},
	}); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	got, err := st.Read(ctx, store.TableAccounts)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if string(got[0]) != `{"id":"c"}` {
		t.Errorf("record = %s, want %s", got[0], `{"id":"c"}`)
	}
}

func TestWrite_MultipleTablesInOneCall(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	err := st.Write(ctx,
		store.TableWrite{Table: store.TableTenancies, Records: []store.Record{rec(`{"id":"ten-1"}`)}},
		store.TableWrite{Table: store.TableListings, Records: []store.Record{rec(`{"id":"lst-1"}`)}},
	)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	tenancies, err := st.Read(ctx, store.TableTenancies)
	if err != nil {
		t.Fatalf("Read tenancies failed: %v", err)
	}
	listings, err := st.Read(ctx, store.TableListings)
	if err != nil {
		t.Fatalf("Read listings failed: %v", err)
	}

	if len(tenancies) != 1 || len(listings) != 1 {
		t.Errorf("got %d tenancies and %d listings, want 1 and 1", len(tenancies), len(listings))
	}
}

func TestWrite_TablesAreIndependent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if err := st.Write(ctx, store.TableWrite{
		Table:   store.TableAccounts,
		Records: []store.Record{rec(`{"id":"a"}`)},
	}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// Replacing listings must not touch accounts.
	if err := st.Write(ctx, store.TableWrite{Table: store.TableListings}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	accounts, err := st.Read(ctx, store.TableAccounts)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(accounts) != 1 {
		t.Errorf("got %d accounts, want 1", len(accounts))
	}
}

func TestClosedStore_ReportsStorageUnavailable(t *testing.T) {
	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	st.Close()

	ctx := context.Background()

	if _, err := st.Read(ctx, store.TableAccounts); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Errorf("Read after close: got %v, want ErrStorageUnavailable", err)
	}
	if err := st.Write(ctx, store.TableWrite{Table: store.TableAccounts}); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Errorf("Write after close: got %v, want ErrStorageUnavailable", err)
	}
}

func TestWrite_ManyRecords(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	records := make([]store.Record, 100)
	for i := range records {
		records[i] = rec(fmt.Sprintf(`{"id":"txn-%03d"}`, i))
	}
	if err := st.Write(ctx, store.TableWrite{Table: store.TableTransactions, Records: records}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := st.Read(ctx, store.TableTransactions)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got) != 100 {
		t.Fatalf("got %d records, want 100", len(got))
	}
	if string(got[42]) != `{"id":"txn-042"}` {
		t.Errorf("record 42 = %s, want %s", got[42], `{"id":"txn-042"}`)
	}
}
