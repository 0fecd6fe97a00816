package storage

import (
	"slices"
	"sync"

	"github.com/adfharrison1/hashsync/pkg/domain"
	"github.com/adfharrison1/hashsync/pkg/indexing"
)

// Locked guards a Collection and all of its indexes with a single
// read/write lock. Inserts touch every index, so one lock covers both.
type Locked[T any] struct {
	mu   sync.RWMutex
	coll *Collection[T]
}

// NewLocked creates an empty lock-guarded collection.
func NewLocked[T any](options ...StorageOption) *Locked[T] {
	return &Locked[T]{coll: NewCollection[T](options...)}
}

// withReadLock executes fn with a read lock on the collection
func (l *Locked[T]) withReadLock(fn func(c *Collection[T])) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn(l.coll)
}

// withWriteLock executes fn with a write lock on the collection
func (l *Locked[T]) withWriteLock(fn func(c *Collection[T])) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.coll)
}

// Insert appends a row and propagates it to every index.
func (l *Locked[T]) Insert(row T) domain.RowID {
	var id domain.RowID
	l.withWriteLock(func(c *Collection[T]) {
		id = c.Insert(row)
	})
	return id
}

// InsertMany appends rows under one lock acquisition, so readers observe
// either none or all of them.
func (l *Locked[T]) InsertMany(rows []T) []domain.RowID {
	ids := make([]domain.RowID, len(rows))
	l.withWriteLock(func(c *Collection[T]) {
		for i, row := range rows {
			ids[i] = c.Insert(row)
		}
	})
	return ids
}

// Len returns the current row count.
func (l *Locked[T]) Len() int {
	var n int
	l.withReadLock(func(c *Collection[T]) {
		n = c.Len()
	})
	return n
}

// Row resolves a handle returned by Insert.
func (l *Locked[T]) Row(id domain.RowID) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.coll.Row(id)
}

// Snapshot copies the current rows in insertion order. Iterating the copy
// does not hold the lock.
func (l *Locked[T]) Snapshot() []T {
	var rows []T
	l.withReadLock(func(c *Collection[T]) {
		rows = slices.Clone(c.rows)
	})
	return rows
}

// DropIndex unregisters an index; see Collection.DropIndex.
func (l *Locked[T]) DropIndex(id domain.IndexID) bool {
	var ok bool
	l.withWriteLock(func(c *Collection[T]) {
		ok = c.DropIndex(id)
	})
	return ok
}

// IndexCount returns the number of registered indexes.
func (l *Locked[T]) IndexCount() int {
	var n int
	l.withReadLock(func(c *Collection[T]) {
		n = c.IndexCount()
	})
	return n
}

// LockedIndex is an index handle whose queries take the owning
// collection's read lock.
type LockedIndex[K comparable, T any] struct {
	mu    *sync.RWMutex
	index *indexing.Index[K, T]
}

// CreateLockedIndex is CreateIndex for a lock-guarded collection.
func CreateLockedIndex[T any, K comparable](l *Locked[T], key func(T) K) *LockedIndex[K, T] {
	return CreateLockedMultiIndex(l, indexing.Single(key))
}

// CreateLockedMultiIndex is CreateMultiIndex for a lock-guarded collection.
func CreateLockedMultiIndex[T any, K comparable](l *Locked[T], keys indexing.KeysFunc[K, T]) *LockedIndex[K, T] {
	var index *indexing.Index[K, T]
	l.withWriteLock(func(c *Collection[T]) {
		index = CreateMultiIndex(c, keys)
	})
	return &LockedIndex[K, T]{mu: &l.mu, index: index}
}

func (li *LockedIndex[K, T]) ID() domain.IndexID {
	return li.index.ID()
}

func (li *LockedIndex[K, T]) GetValues(key K) []T {
	li.mu.RLock()
	defer li.mu.RUnlock()
	return li.index.GetValues(key)
}

func (li *LockedIndex[K, T]) Entries(key K) []indexing.Entry[T] {
	li.mu.RLock()
	defer li.mu.RUnlock()
	return li.index.Entries(key)
}

func (li *LockedIndex[K, T]) Count(key K) int {
	li.mu.RLock()
	defer li.mu.RUnlock()
	return li.index.Count(key)
}

func (li *LockedIndex[K, T]) Len() int {
	li.mu.RLock()
	defer li.mu.RUnlock()
	return li.index.Len()
}
