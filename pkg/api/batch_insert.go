package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/adfharrison1/hashsync/pkg/domain"
)

const maxBatchSize = 1000

// BatchInsertRequest represents the request body for batch insert operations
type BatchInsertRequest struct {
	Documents []map[string]interface{} `json:"documents" msgpack:"documents"`
}

// BatchInsertResponse represents the response for batch insert operations
type BatchInsertResponse struct {
	Success       bool           `json:"success" msgpack:"success"`
	Message       string         `json:"message" msgpack:"message"`
	InsertedCount int            `json:"inserted_count" msgpack:"inserted_count"`
	Collection    string         `json:"collection" msgpack:"collection"`
	RowIDs        []domain.RowID `json:"row_ids" msgpack:"row_ids"`
}

// HandleBatchInsert handles POST requests to insert multiple documents into collections
func (h *Handler) HandleBatchInsert(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]

	var req BatchInsertRequest
	if err := decodeBody(r, &req); err != nil {
		h.logger.Warn("decoding batch body failed", zap.String("collection", collName), zap.Error(err))
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Documents) == 0 {
		WriteJSONError(w, http.StatusBadRequest, "No documents provided")
		return
	}
	if len(req.Documents) > maxBatchSize {
		h.logger.Warn("batch too large", zap.String("collection", collName), zap.Int("documents", len(req.Documents)))
		WriteJSONError(w, http.StatusBadRequest, "Maximum 1000 documents allowed per batch")
		return
	}

	docs := make([]domain.Document, len(req.Documents))
	for i, doc := range req.Documents {
		if doc == nil {
			WriteJSONError(w, http.StatusBadRequest, "documents must be objects")
			return
		}
		docs[i] = domain.Document(doc)
	}

	ids, err := h.storage.BatchInsert(collName, docs)
	if err != nil {
		h.logger.Error("batch insert failed", zap.String("collection", collName), zap.Error(err))
		writeEngineError(w, err)
		return
	}

	h.logger.Info("batch insert successful", zap.String("collection", collName), zap.Int("documents", len(ids)))
	writeResponse(w, r, http.StatusCreated, BatchInsertResponse{
		Success:       true,
		Message:       "Batch insert completed successfully",
		InsertedCount: len(ids),
		Collection:    collName,
		RowIDs:        ids,
	})
}
