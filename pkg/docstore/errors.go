package docstore

import "errors"

var (
	ErrCollectionNotFound = errors.New("collection does not exist")
	ErrCollectionExists   = errors.New("collection already exists")
	ErrIndexNotFound      = errors.New("index does not exist")
	ErrIndexExists        = errors.New("index already exists")
	ErrInvalidField       = errors.New("invalid field name")
	ErrInvalidPagination  = errors.New("invalid pagination")
)
