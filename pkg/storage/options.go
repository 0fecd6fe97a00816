package storage

import "go.uber.org/zap"

type settings struct {
	capacity int
	logger   *zap.Logger
}

type StorageOption func(*settings)

// WithCapacity pre-sizes the row store for n rows.
func WithCapacity(n int) StorageOption {
	return func(s *settings) {
		s.capacity = n
	}
}

// WithLogger attaches a logger for index lifecycle events (default: no-op)
func WithLogger(logger *zap.Logger) StorageOption {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func applyOptions(options []StorageOption) settings {
	s := settings{logger: zap.NewNop()}
	for _, option := range options {
		option(&s)
	}
	if s.capacity < 0 {
		s.capacity = 0
	}
	return s
}
