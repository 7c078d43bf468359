// AngelaMos | 2026
// collection.go

package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/carterperez-dev/drycleaning-api/internal/core"
)

// Collection is a keyed list of records stored as a single JSON array
// document. Every write rewrites the whole document.
type Collection[T Record] struct {
	store DocumentStore
	key   string
	name  string
}

func NewCollection[T Record](
	store DocumentStore,
	prefix, name string,
) *Collection[T] {
	return &Collection[T]{
		store: store,
		key:   prefix + ":" + name,
		name:  name,
	}
}

func (c *Collection[T]) Name() string {
	return c.name
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	doc, err := c.store.Load(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}

	records, err := c.decode(doc)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	return records, nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	records, err := c.List(ctx)
	if err != nil {
		return zero, err
	}

	for _, rec := range records {
		if rec.RecordID() == id {
			return rec, nil
		}
	}

	return zero, fmt.Errorf("get %s %q: %w", c.name, id, core.ErrNotFound)
}

// Insert appends rec. An existing record with the same id is a conflict.
func (c *Collection[T]) Insert(ctx context.Context, rec T) error {
	return c.mutate(ctx, func(records []T) ([]T, error) {
		for _, existing := range records {
			if existing.RecordID() == rec.RecordID() {
				return nil, fmt.Errorf(
					"insert %s %q: %w",
					c.name, rec.RecordID(), core.ErrConflict,
				)
			}
		}
		return append(records, rec), nil
	})
}

// Replace overwrites the record with rec's id in place.
func (c *Collection[T]) Replace(ctx context.Context, rec T) error {
	_, err := c.Modify(ctx, rec.RecordID(), func(current *T) error {
		*current = rec
		return nil
	})
	return err
}

// Modify applies fn to the stored record with the given id and persists
// the result. fn runs inside the document update and may run more than
// once.
func (c *Collection[T]) Modify(
	ctx context.Context,
	id string,
	fn func(current *T) error,
) (T, error) {
	var updated T

	err := c.mutate(ctx, func(records []T) ([]T, error) {
		for i := range records {
			if records[i].RecordID() != id {
				continue
			}
			if err := fn(&records[i]); err != nil {
				return nil, err
			}
			if records[i].RecordID() != id {
				return nil, fmt.Errorf(
					"modify %s %q: id changed: %w",
					c.name, id, core.ErrInvalidInput,
				)
			}
			updated = records[i]
			return records, nil
		}
		return nil, fmt.Errorf("modify %s %q: %w", c.name, id, core.ErrNotFound)
	})

	return updated, err
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.mutate(ctx, func(records []T) ([]T, error) {
		for i := range records {
			if records[i].RecordID() == id {
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("delete %s %q: %w", c.name, id, core.ErrNotFound)
	})
}

func (c *Collection[T]) Len(ctx context.Context) (int, error) {
	records, err := c.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (c *Collection[T]) mutate(
	ctx context.Context,
	fn func(records []T) ([]T, error),
) error {
	return c.store.Update(ctx, c.key, func(current []byte) ([]byte, error) {
		records, err := c.decode(current)
		if err != nil {
			return nil, err
		}

		next, err := fn(records)
		if err != nil {
			return nil, err
		}

		return json.Marshal(next)
	})
}

func (c *Collection[T]) decode(doc []byte) ([]T, error) {
	records := []T{}
	if len(doc) == 0 {
		return records, nil
	}

	if err := json.Unmarshal(doc, &records); err != nil {
		return nil, fmt.Errorf("decode %s document: %w", c.name, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}
