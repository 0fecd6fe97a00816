package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// CountResponse reports the number of rows in a collection
type CountResponse struct {
	Collection string `json:"collection" msgpack:"collection"`
	Count      int    `json:"count" msgpack:"count"`
}

// HandleCount handles GET requests for a collection's row count
func (h *Handler) HandleCount(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]

	count, err := h.storage.Count(collName)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeResponse(w, r, http.StatusOK, CountResponse{Collection: collName, Count: count})
}
