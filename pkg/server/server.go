package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/adfharrison1/hashsync/pkg/api"
	"github.com/adfharrison1/hashsync/pkg/config"
	"github.com/adfharrison1/hashsync/pkg/docstore"
)

// Server holds references to the engine, router and logger
type Server struct {
	router *mux.Router
	engine *docstore.Engine
	logger *zap.Logger
}

// NewServer creates a server over a fresh engine configured from cfg
func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		router: mux.NewRouter(),
		engine: docstore.NewEngine(
			docstore.WithLogger(logger),
			docstore.WithInitialCapacity(cfg.Storage.InitialCapacity),
			docstore.WithMaxPageSize(cfg.Storage.MaxPageSize),
		),
		logger: logger,
	}

	api.NewHandler(s.engine, logger).RegisterRoutes(s.router)
	s.router.Use(s.requestLoggerMiddleware)

	// Customize NotFoundHandler to log 404s
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Warn("no route found", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		api.WriteJSONError(w, http.StatusNotFound, "no route for "+r.Method+" "+r.URL.Path)
	})

	return s
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// requestLoggerMiddleware logs the method, URL path, status and duration for each request.
func (s *Server) requestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}

// InitCollections creates the collections and indexes declared in cfg
func (s *Server) InitCollections(collections []config.CollectionConfig) error {
	for _, coll := range collections {
		if err := s.engine.CreateCollection(coll.Name); err != nil {
			return fmt.Errorf("init collection %s: %w", coll.Name, err)
		}
		for _, field := range coll.Indexes {
			if err := s.engine.CreateIndex(coll.Name, field); err != nil {
				return fmt.Errorf("init index %s.%s: %w", coll.Name, field, err)
			}
		}
	}
	return nil
}

// Engine exposes the document engine.
func (s *Server) Engine() *docstore.Engine {
	return s.engine
}

// Router exposes the internal mux.Router.
func (s *Server) Router() http.Handler {
	return s.router
}
