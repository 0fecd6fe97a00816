package domain

import "context"

// StorageEngine defines the interface for document row operations
type StorageEngine interface {
	CreateCollection(collName string) error
	Insert(collName string, doc Document) (RowID, error)
	BatchInsert(collName string, docs []Document) ([]RowID, error)
	Find(collName string, filter map[string]interface{}, opts *PaginationOptions) (*PaginationResult, error)
	FindAllStream(ctx context.Context, collName string) (<-chan Document, error)
	Count(collName string) (int, error)
	GetCollections() []string
}

// DatabaseEngine combines StorageEngine and IndexEngine interfaces
type DatabaseEngine interface {
	StorageEngine
	IndexEngine
}
