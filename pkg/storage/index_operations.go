package storage

import (
	"go.uber.org/zap"

	"github.com/adfharrison1/hashsync/pkg/domain"
	"github.com/adfharrison1/hashsync/pkg/indexing"
)

// CreateIndex registers an index that files each row under key(row). The
// index is backfilled from every row currently in c and then kept current
// by Insert.
//
// key must be deterministic and free of side effects; rows already filed
// are never re-keyed.
func CreateIndex[T any, K comparable](c *Collection[T], key func(T) K) *indexing.Index[K, T] {
	return CreateMultiIndex(c, indexing.Single(key))
}

// CreateMultiIndex is CreateIndex for key functions that file a row under
// zero or more keys.
func CreateMultiIndex[T any, K comparable](c *Collection[T], keys indexing.KeysFunc[K, T]) *indexing.Index[K, T] {
	c.nextIndexID++
	index := indexing.NewIndex[K, T](c.nextIndexID, c, keys)
	index.Build(c.All())
	c.indexes = append(c.indexes, index)

	c.logger.Debug("index created",
		zap.Uint64("index_id", uint64(index.ID())),
		zap.Int("rows", len(c.rows)),
		zap.Int("keys", index.Len()))
	return index
}

// DropIndex unregisters the index with the given handle and releases its
// postings. It reports false if no such index is registered.
func (c *Collection[T]) DropIndex(id domain.IndexID) bool {
	for i, index := range c.indexes {
		if index.ID() != id {
			continue
		}
		index.Drop()
		c.indexes = append(c.indexes[:i], c.indexes[i+1:]...)
		c.logger.Debug("index dropped", zap.Uint64("index_id", uint64(id)))
		return true
	}
	return false
}

// IndexCount returns the number of registered indexes.
func (c *Collection[T]) IndexCount() int {
	return len(c.indexes)
}

// IndexIDs returns the handles of all registered indexes in creation order.
func (c *Collection[T]) IndexIDs() []domain.IndexID {
	ids := make([]domain.IndexID, len(c.indexes))
	for i, index := range c.indexes {
		ids[i] = index.ID()
	}
	return ids
}
