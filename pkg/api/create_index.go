package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// HandleCreateIndex creates an index on a specific field in a collection
func (h *Handler) HandleCreateIndex(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]
	fieldName := vars["field"]

	if err := h.indexer.CreateIndex(collName, fieldName); err != nil {
		h.logger.Warn("create index failed",
			zap.String("collection", collName),
			zap.String("field", fieldName),
			zap.Error(err))
		writeEngineError(w, err)
		return
	}

	writeResponse(w, r, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"message":    "Index created successfully",
		"collection": collName,
		"field":      fieldName,
	})
}

// HandleDropIndex removes the index on a field
func (h *Handler) HandleDropIndex(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]
	fieldName := vars["field"]

	if err := h.indexer.DropIndex(collName, fieldName); err != nil {
		h.logger.Warn("drop index failed",
			zap.String("collection", collName),
			zap.String("field", fieldName),
			zap.Error(err))
		writeEngineError(w, err)
		return
	}

	writeResponse(w, r, http.StatusOK, map[string]interface{}{
		"success":    true,
		"message":    "Index dropped successfully",
		"collection": collName,
		"field":      fieldName,
	})
}
