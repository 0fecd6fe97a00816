package docstore

import "go.uber.org/zap"

type EngineOption func(*Engine)

func WithLogger(logger *zap.Logger) EngineOption {
	return func(engine *Engine) {
		if logger != nil {
			engine.logger = logger
		}
	}
}

// WithInitialCapacity pre-sizes the row store of every new collection
func WithInitialCapacity(rows int) EngineOption {
	return func(engine *Engine) {
		engine.initialCapacity = rows
	}
}

// WithMaxPageSize caps the page size accepted by Find and FindByIndex
func WithMaxPageSize(limit int) EngineOption {
	return func(engine *Engine) {
		if limit > 0 {
			engine.maxPageSize = limit
		}
	}
}
