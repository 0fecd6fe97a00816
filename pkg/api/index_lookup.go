package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// HandleIndexLookup answers an exact-match lookup through a field index.
// Unlike find, it fails with 404 when the field is not indexed instead of
// scanning.
func (h *Handler) HandleIndexLookup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]
	fieldName := vars["field"]

	opts, err := parsePagination(r.URL.Query())
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "limit and offset must be integers")
		return
	}

	result, err := h.indexer.FindByIndex(collName, fieldName, parseQueryValue(vars["value"]), opts)
	if err != nil {
		h.logger.Debug("index lookup failed",
			zap.String("collection", collName),
			zap.String("field", fieldName),
			zap.Error(err))
		writeEngineError(w, err)
		return
	}

	writeResponse(w, r, http.StatusOK, result)
}
