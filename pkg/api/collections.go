package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// HandleGetCollections lists collection names
func (h *Handler) HandleGetCollections(w http.ResponseWriter, r *http.Request) {
	names := h.storage.GetCollections()
	writeResponse(w, r, http.StatusOK, map[string]interface{}{
		"collections": names,
		"count":       len(names),
	})
}

// HandleCreateCollection creates an empty collection ahead of the first insert
func (h *Handler) HandleCreateCollection(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]

	if err := h.storage.CreateCollection(collName); err != nil {
		h.logger.Warn("create collection failed", zap.String("collection", collName), zap.Error(err))
		writeEngineError(w, err)
		return
	}

	writeResponse(w, r, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"collection": collName,
	})
}
