package indexing

import (
	"iter"

	"github.com/RoaringBitmap/roaring"

	"github.com/adfharrison1/hashsync/pkg/domain"
)

// RowSource resolves row handles back to row values. The row store that
// owns an index implements it.
type RowSource[T any] interface {
	Row(id domain.RowID) (T, bool)
}

// KeysFunc derives the keys a row is filed under. Most indexes file a row
// under exactly one key; see Single.
type KeysFunc[K comparable, T any] func(row T) []K

// Single adapts a one-key extraction function to a KeysFunc.
func Single[K comparable, T any](key func(T) K) KeysFunc[K, T] {
	return func(row T) []K {
		return []K{key(row)}
	}
}

// Entry pairs a row with the handle it was inserted under.
type Entry[T any] struct {
	ID    domain.RowID
	Value T
}

// Index stores a mapping from a derived key to the handles of every row
// filed under it. Posting lists are roaring bitmaps, so iterating a bucket
// yields rows in insertion order.
type Index[K comparable, T any] struct {
	id       domain.IndexID
	keys     KeysFunc[K, T]
	rows     RowSource[T]
	postings map[K]*roaring.Bitmap
	dropped  bool
}

// NewIndex creates an empty index. It does not see any rows until Build or
// Insert is called.
func NewIndex[K comparable, T any](id domain.IndexID, rows RowSource[T], keys KeysFunc[K, T]) *Index[K, T] {
	return &Index[K, T]{
		id:       id,
		keys:     keys,
		rows:     rows,
		postings: make(map[K]*roaring.Bitmap),
	}
}

// ID returns the registry handle of the index.
func (idx *Index[K, T]) ID() domain.IndexID {
	return idx.id
}

// Build files every row yielded by rows.
func (idx *Index[K, T]) Build(rows iter.Seq2[domain.RowID, T]) {
	for id, row := range rows {
		idx.Insert(id, row)
	}
}

// Insert files a single row under each of its derived keys. A key returned
// more than once for the same row is filed once.
func (idx *Index[K, T]) Insert(id domain.RowID, row T) {
	if idx.dropped {
		return
	}
	for _, key := range idx.keys(row) {
		bucket, ok := idx.postings[key]
		if !ok {
			bucket = roaring.New()
			idx.postings[key] = bucket
		}
		bucket.Add(uint32(id))
	}
}

// Drop releases the postings. A dropped index answers every query as if
// it were empty and ignores further inserts.
func (idx *Index[K, T]) Drop() {
	idx.dropped = true
	idx.postings = nil
}

// Dropped reports whether Drop has been called.
func (idx *Index[K, T]) Dropped() bool {
	return idx.dropped
}

// Get returns the handles of the rows filed under key, in insertion order.
func (idx *Index[K, T]) Get(key K) []domain.RowID {
	bucket, ok := idx.postings[key]
	if !ok {
		return []domain.RowID{}
	}
	ids := make([]domain.RowID, 0, bucket.GetCardinality())
	it := bucket.Iterator()
	for it.HasNext() {
		ids = append(ids, domain.RowID(it.Next()))
	}
	return ids
}

// GetValues returns the rows filed under key, or an empty slice if no row
// has produced key. The slice is freshly allocated on every call.
func (idx *Index[K, T]) GetValues(key K) []T {
	ids := idx.Get(key)
	values := make([]T, 0, len(ids))
	for _, id := range ids {
		if row, ok := idx.rows.Row(id); ok {
			values = append(values, row)
		}
	}
	return values
}

// Entries is GetValues with each row paired with its handle.
func (idx *Index[K, T]) Entries(key K) []Entry[T] {
	ids := idx.Get(key)
	entries := make([]Entry[T], 0, len(ids))
	for _, id := range ids {
		if row, ok := idx.rows.Row(id); ok {
			entries = append(entries, Entry[T]{ID: id, Value: row})
		}
	}
	return entries
}

// Count returns the bucket size for key without resolving rows.
func (idx *Index[K, T]) Count(key K) int {
	if bucket, ok := idx.postings[key]; ok {
		return int(bucket.GetCardinality())
	}
	return 0
}

// Contains reports whether any row has been filed under key.
func (idx *Index[K, T]) Contains(key K) bool {
	_, ok := idx.postings[key]
	return ok
}

// Len returns the number of distinct keys.
func (idx *Index[K, T]) Len() int {
	return len(idx.postings)
}

// Keys returns every distinct key in no particular order.
func (idx *Index[K, T]) Keys() []K {
	keys := make([]K, 0, len(idx.postings))
	for key := range idx.postings {
		keys = append(keys, key)
	}
	return keys
}
