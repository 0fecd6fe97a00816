package storage

import (
	"fmt"
	"iter"
	"math"

	"go.uber.org/zap"

	"github.com/adfharrison1/hashsync/pkg/domain"
)

// Collection is an append-only row store with a registry of secondary
// indexes. Every insert is propagated to every registered index before
// Insert returns.
//
// A Collection is not safe for concurrent use; wrap it in Locked when it is
// shared between goroutines.
type Collection[T any] struct {
	rows        []T
	indexes     []domain.Indexable[T]
	nextIndexID domain.IndexID
	logger      *zap.Logger
}

// NewCollection creates an empty collection.
func NewCollection[T any](options ...StorageOption) *Collection[T] {
	s := applyOptions(options)
	return &Collection[T]{
		rows:   make([]T, 0, s.capacity),
		logger: s.logger,
	}
}

// Insert appends row and files it in every registered index. The returned
// handle is the row's position in insertion order.
//
// Handles are uint32, so Insert panics once a collection holds 2^32 rows.
func (c *Collection[T]) Insert(row T) domain.RowID {
	if uint64(len(c.rows)) > math.MaxUint32 {
		panic(fmt.Sprintf("storage: row store full (%d rows)", len(c.rows)))
	}
	id := domain.RowID(len(c.rows))
	c.rows = append(c.rows, row)
	for _, index := range c.indexes {
		index.Insert(id, row)
	}
	return id
}

// Len returns the number of rows ever inserted.
func (c *Collection[T]) Len() int {
	return len(c.rows)
}

// Row resolves a handle returned by Insert.
func (c *Collection[T]) Row(id domain.RowID) (T, bool) {
	if int(id) >= len(c.rows) {
		var zero T
		return zero, false
	}
	return c.rows[id], true
}

// All iterates every row with its handle in insertion order. Rows inserted
// while the loop runs are not visited.
func (c *Collection[T]) All() iter.Seq2[domain.RowID, T] {
	return func(yield func(domain.RowID, T) bool) {
		rows := c.rows[:len(c.rows):len(c.rows)]
		for i, row := range rows {
			if !yield(domain.RowID(i), row) {
				return
			}
		}
	}
}

// Values iterates every row in insertion order.
func (c *Collection[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, row := range c.All() {
			if !yield(row) {
				return
			}
		}
	}
}
