package api

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/adfharrison1/hashsync/pkg/domain"
)

// parseQueryValue converts a query string value to a number when it parses
// as a finite one, so ?age=30 matches documents holding the number 30.
// ParseFloat also accepts "nan" and "inf"; those stay strings.
func parseQueryValue(value string) interface{} {
	if num, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(num) && !math.IsInf(num, 0) {
		return num
	}
	return value
}

// parsePagination extracts limit/offset from the query string
func parsePagination(query url.Values) (*domain.PaginationOptions, error) {
	opts := &domain.PaginationOptions{}
	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		opts.Limit = limit
	}
	if v := query.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		opts.Offset = offset
	}
	return opts, nil
}

// HandleFind handles GET requests to find documents with optional filter
// criteria; every query parameter except limit and offset is an equality filter
func (h *Handler) HandleFind(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]
	query := r.URL.Query()

	opts, err := parsePagination(query)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "limit and offset must be integers")
		return
	}

	filter := make(map[string]interface{})
	for key, values := range query {
		if key == "limit" || key == "offset" || len(values) == 0 {
			continue
		}
		filter[key] = parseQueryValue(values[0])
	}

	result, err := h.storage.Find(collName, filter, opts)
	if err != nil {
		h.logger.Warn("find failed", zap.String("collection", collName), zap.Error(err))
		writeEngineError(w, err)
		return
	}

	h.logger.Debug("find",
		zap.String("collection", collName),
		zap.Int("filters", len(filter)),
		zap.Int("returned", len(result.Documents)),
		zap.Int64("total", result.Total))
	writeResponse(w, r, http.StatusOK, result)
}
