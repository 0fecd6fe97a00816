package api

import (
	"go.uber.org/zap"

	"github.com/adfharrison1/hashsync/pkg/domain"
)

// Handler provides HTTP handlers for the database API
type Handler struct {
	storage domain.StorageEngine
	indexer domain.IndexEngine
	logger  *zap.Logger
}

// NewHandler creates a new API handler with dependency injection
func NewHandler(engine domain.DatabaseEngine, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		storage: engine,
		indexer: engine,
		logger:  logger,
	}
}
