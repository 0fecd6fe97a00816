package domain

// RowID identifies one insertion event in a row store. IDs are assigned
// densely from zero in insertion order and are never reused.
type RowID uint32

// IndexID identifies a secondary index registered on a row store.
type IndexID uint64

// Indexable is the propagation contract between a row store and the
// indexes registered on it. The store calls Insert for every row appended
// after registration and Drop when the index is unregistered.
type Indexable[T any] interface {
	ID() IndexID
	Insert(id RowID, row T)
	Drop()
}

// IndexEngine defines the interface for field index operations on document collections
type IndexEngine interface {
	CreateIndex(collName, fieldName string) error
	DropIndex(collName, fieldName string) error
	FindByIndex(collName, fieldName string, value interface{}, opts *PaginationOptions) (*PaginationResult, error)
	GetIndexes(collName string) ([]string, error)
}
