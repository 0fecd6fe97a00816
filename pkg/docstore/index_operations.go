package docstore

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/adfharrison1/hashsync/pkg/domain"
	"github.com/adfharrison1/hashsync/pkg/storage"
)

// CreateIndex creates an index on a specific field in a collection.
// Documents lacking the field are not indexed.
func (e *Engine) CreateIndex(collName, fieldName string) error {
	if fieldName == "" {
		return fmt.Errorf("create index: %w", ErrInvalidField)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	coll, exists := e.collections[collName]
	if !exists {
		return fmt.Errorf("collection %s: %w", collName, ErrCollectionNotFound)
	}
	if _, exists := coll.indexes[fieldName]; exists {
		return fmt.Errorf("index on field %s in collection %s: %w", fieldName, collName, ErrIndexExists)
	}

	coll.indexes[fieldName] = storage.CreateLockedMultiIndex(coll.rows, storage.PresentFieldKeys(fieldName))

	e.logger.Info("index created",
		zap.String("collection", collName),
		zap.String("field", fieldName),
		zap.Int("rows", coll.rows.Len()))
	return nil
}

// DropIndex removes an index from a collection
func (e *Engine) DropIndex(collName, fieldName string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	coll, exists := e.collections[collName]
	if !exists {
		return fmt.Errorf("collection %s: %w", collName, ErrCollectionNotFound)
	}
	index, exists := coll.indexes[fieldName]
	if !exists {
		return fmt.Errorf("index on field %s in collection %s: %w", fieldName, collName, ErrIndexNotFound)
	}

	coll.rows.DropIndex(index.ID())
	delete(coll.indexes, fieldName)

	e.logger.Info("index dropped", zap.String("collection", collName), zap.String("field", fieldName))
	return nil
}

// GetIndexes returns all indexed field names for a collection, sorted
func (e *Engine) GetIndexes(collName string) ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	coll, exists := e.collections[collName]
	if !exists {
		return nil, fmt.Errorf("collection %s: %w", collName, ErrCollectionNotFound)
	}
	names := make([]string, 0, len(coll.indexes))
	for fieldName := range coll.indexes {
		names = append(names, fieldName)
	}
	sort.Strings(names)
	return names, nil
}

// getIndex returns the index on fieldName, if any
func (e *Engine) getIndex(collName, fieldName string) (*fieldIndex, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if coll, exists := e.collections[collName]; exists {
		index, ok := coll.indexes[fieldName]
		return index, ok
	}
	return nil, false
}

// FindByIndex returns one page of the documents whose indexed field equals value
func (e *Engine) FindByIndex(collName, fieldName string, value interface{}, opts *domain.PaginationOptions) (*domain.PaginationResult, error) {
	page, err := e.pageOptions(opts)
	if err != nil {
		return nil, err
	}
	if _, err := e.getCollection(collName); err != nil {
		return nil, err
	}
	index, exists := e.getIndex(collName, fieldName)
	if !exists {
		return nil, fmt.Errorf("index on field %s in collection %s: %w", fieldName, collName, ErrIndexNotFound)
	}

	docs := index.GetValues(storage.ValueKey(value))
	return domain.Paginate(cloneAll(docs), page), nil
}
