package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// HandleStream handles GET requests to stream every document of a
// collection in insertion order as a chunked JSON array
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]

	docChan, err := h.storage.FindAllStream(r.Context(), collName)
	if err != nil {
		h.logger.Warn("stream failed", zap.String("collection", collName), zap.Error(err))
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	w.Write([]byte("[\n"))

	first := true
	docCount := 0
	for doc := range docChan {
		docJSON, err := json.Marshal(doc)
		if err != nil {
			h.logger.Error("failed to marshal document", zap.String("collection", collName), zap.Error(err))
			continue
		}

		if !first {
			w.Write([]byte(",\n"))
		}
		first = false

		if _, err := w.Write(docJSON); err != nil {
			h.logger.Warn("client went away during stream", zap.String("collection", collName), zap.Error(err))
			return
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
		docCount++
	}

	w.Write([]byte("\n]"))

	h.logger.Debug("streamed documents", zap.String("collection", collName), zap.Int("documents", docCount))
}
