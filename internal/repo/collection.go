// Package repo provides typed repositories over the Table Store: thin
// codec wrappers with no cross-entity validation. Consistency rules
// live in the app layer.
package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/simbahq/nyumba/internal/domain"
	"github.com/simbahq/nyumba/internal/store"
)

// Collection is a typed view of one store table. Identifiers are
// caller-supplied; the collection only formats records for the store.
type Collection[T any] struct {
	store store.Store
	table store.Table
	kind  domain.Kind
	id    func(T) string
}

// NewCollection creates a typed collection over the given table. The id
// function extracts a record's identifier for lookups.
func NewCollection[T any](st store.Store, table store.Table, kind domain.Kind, id func(T) string) *Collection[T] {
	return &Collection[T]{store: st, table: table, kind: kind, id: id}
}

// All returns every record in insertion order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	raw, err := c.store.Read(ctx, c.table)
	if err != nil {
		return nil, err
	}

	records := make([]T, len(raw))
	for i, doc := range raw {
		if err := json.Unmarshal(doc, &records[i]); err != nil {
			return nil, fmt.Errorf("decoding %s record: %w", c.kind, err)
		}
	}
	return records, nil
}

// FindByID returns the record with the given identifier.
func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T
	records, err := c.All(ctx)
	if err != nil {
		return zero, err
	}
	for _, rec := range records {
		if c.id(rec) == id {
			return rec, nil
		}
	}
	return zero, &domain.NotFoundError{Kind: c.kind, ID: id}
}

// FindWhere returns all records satisfying the predicate, in insertion
// order.
func (c *Collection[T]) FindWhere(ctx context.Context, pred func(T) bool) ([]T, error) {
	records, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	var out []T
	for _, rec := range records {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Insert appends a record and commits it.
func (c *Collection[T]) Insert(ctx context.Context, rec T) error {
	w, err := c.StageInsert(ctx, rec)
	if err != nil {
		return err
	}
	return c.store.Write(ctx, w)
}

// Replace overwrites the record with the given identifier and commits.
func (c *Collection[T]) Replace(ctx context.Context, id string, rec T) error {
	w, err := c.StageReplace(ctx, id, rec)
	if err != nil {
		return err
	}
	return c.store.Write(ctx, w)
}

// StageInsert builds the table write for an append without committing
// it. The engine combines staged writes from several collections into
// one atomic store write.
func (c *Collection[T]) StageInsert(ctx context.Context, rec T) (store.TableWrite, error) {
	records, err := c.All(ctx)
	if err != nil {
		return store.TableWrite{}, err
	}
	return c.encode(append(records, rec))
}

// StageReplace builds the table write for an in-place overwrite without
// committing it.
func (c *Collection[T]) StageReplace(ctx context.Context, id string, rec T) (store.TableWrite, error) {
	records, err := c.All(ctx)
	if err != nil {
		return store.TableWrite{}, err
	}
	for i, existing := range records {
		if c.id(existing) == id {
			records[i] = rec
			return c.encode(records)
		}
	}
	return store.TableWrite{}, &domain.NotFoundError{Kind: c.kind, ID: id}
}

func (c *Collection[T]) encode(records []T) (store.TableWrite, error) {
	raw := make([]store.Record, len(records))
	for i, rec := range records {
		doc, err := json.Marshal(rec)
		if err != nil {
			return store.TableWrite{}, fmt.Errorf("encoding %s record: %w", c.kind, err)
		}
		raw[i] = doc
	}
	return store.TableWrite{Table: c.table, Records: raw}, nil
}
