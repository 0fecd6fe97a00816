package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/adfharrison1/hashsync/pkg/domain"
)

// InsertResponse reports the handle assigned to an inserted document
type InsertResponse struct {
	Success    bool         `json:"success" msgpack:"success"`
	Collection string       `json:"collection" msgpack:"collection"`
	RowID      domain.RowID `json:"row_id" msgpack:"row_id"`
}

// HandleInsert handles POST requests to insert documents into collections
func (h *Handler) HandleInsert(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]

	var doc map[string]interface{}
	if err := decodeBody(r, &doc); err != nil {
		h.logger.Warn("decoding insert body failed", zap.String("collection", collName), zap.Error(err))
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if doc == nil {
		WriteJSONError(w, http.StatusBadRequest, "document must be an object")
		return
	}

	id, err := h.storage.Insert(collName, domain.Document(doc))
	if err != nil {
		h.logger.Error("insert failed", zap.String("collection", collName), zap.Error(err))
		writeEngineError(w, err)
		return
	}

	h.logger.Debug("insert successful", zap.String("collection", collName), zap.Uint32("row_id", uint32(id)))
	writeResponse(w, r, http.StatusCreated, InsertResponse{
		Success:    true,
		Collection: collName,
		RowID:      id,
	})
}
