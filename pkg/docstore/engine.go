package docstore

import (
	"fmt"
	"maps"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/adfharrison1/hashsync/pkg/domain"
	"github.com/adfharrison1/hashsync/pkg/storage"
)

type fieldIndex = storage.LockedIndex[string, domain.Document]

// collection pairs a row store with its field indexes. rows carries its own
// lock; indexes is guarded by the engine lock.
type collection struct {
	rows    *storage.Locked[domain.Document]
	indexes map[string]*fieldIndex
}

// Engine implements domain.DatabaseEngine over named, append-only document
// collections with exact-match field indexes.
type Engine struct {
	mu          sync.RWMutex
	collections map[string]*collection

	logger          *zap.Logger
	initialCapacity int
	maxPageSize     int
}

// NewEngine creates an empty engine
func NewEngine(options ...EngineOption) *Engine {
	engine := &Engine{
		collections: make(map[string]*collection),
		logger:      zap.NewNop(),
		maxPageSize: domain.DefaultPaginationOptions().MaxLimit,
	}
	for _, option := range options {
		option(engine)
	}
	return engine
}

func (e *Engine) newCollection() *collection {
	return &collection{
		rows: storage.NewLocked[domain.Document](
			storage.WithCapacity(e.initialCapacity),
			storage.WithLogger(e.logger),
		),
		indexes: make(map[string]*fieldIndex),
	}
}

// CreateCollection creates an empty collection
func (e *Engine) CreateCollection(collName string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.collections[collName]; exists {
		return fmt.Errorf("collection %s: %w", collName, ErrCollectionExists)
	}
	e.collections[collName] = e.newCollection()
	e.logger.Info("collection created", zap.String("collection", collName))
	return nil
}

// GetCollections returns all collection names, sorted
func (e *Engine) GetCollections() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.collections))
	for name := range e.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Engine) getCollection(collName string) (*collection, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	coll, exists := e.collections[collName]
	if !exists {
		return nil, fmt.Errorf("collection %s: %w", collName, ErrCollectionNotFound)
	}
	return coll, nil
}

// getOrCreateCollection creates collections implicitly on first insert
func (e *Engine) getOrCreateCollection(collName string) *collection {
	e.mu.RLock()
	coll, exists := e.collections[collName]
	e.mu.RUnlock()
	if exists {
		return coll
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	// Double-check in case another goroutine created it
	if coll, exists := e.collections[collName]; exists {
		return coll
	}
	coll = e.newCollection()
	e.collections[collName] = coll
	e.logger.Info("collection created", zap.String("collection", collName))
	return coll
}

// Insert stores a copy of doc, creating the collection if needed
func (e *Engine) Insert(collName string, doc domain.Document) (domain.RowID, error) {
	coll := e.getOrCreateCollection(collName)
	return coll.rows.Insert(maps.Clone(doc)), nil
}

// BatchInsert stores copies of docs as one atomic append
func (e *Engine) BatchInsert(collName string, docs []domain.Document) ([]domain.RowID, error) {
	coll := e.getOrCreateCollection(collName)
	copies := make([]domain.Document, len(docs))
	for i, doc := range docs {
		copies[i] = maps.Clone(doc)
	}
	return coll.rows.InsertMany(copies), nil
}

// Count returns the number of documents in a collection
func (e *Engine) Count(collName string) (int, error) {
	coll, err := e.getCollection(collName)
	if err != nil {
		return 0, err
	}
	return coll.rows.Len(), nil
}

func cloneAll(docs []domain.Document) []domain.Document {
	out := make([]domain.Document, len(docs))
	for i, doc := range docs {
		out[i] = maps.Clone(doc)
	}
	return out
}
