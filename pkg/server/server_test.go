package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/adfharrison1/hashsync/pkg/config"
	"github.com/adfharrison1/hashsync/pkg/docstore"
)

func TestServer_InitCollections(t *testing.T) {
	srv := NewServer(config.Default(), nil)
	err := srv.InitCollections([]config.CollectionConfig{
		{Name: "users", Indexes: []string{"role", "city"}},
		{Name: "events"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"events", "users"}, srv.Engine().GetCollections())
	indexes, err := srv.Engine().GetIndexes("users")
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "role"}, indexes)

	err = srv.InitCollections([]config.CollectionConfig{{Name: "users"}})
	assert.ErrorIs(t, err, docstore.ErrCollectionExists)
}

func TestServer_EndToEnd(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	srv := NewServer(config.Default(), zap.New(core))
	require.NoError(t, srv.InitCollections([]config.CollectionConfig{{Name: "users", Indexes: []string{"city"}}}))

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	for _, doc := range []string{
		`{"name":"Alice","city":"Boston"}`,
		`{"name":"Bob","city":"Chicago"}`,
		`{"name":"Carol","city":"boston"}`,
	} {
		resp, err := http.Post(ts.URL+"/collections/users", "application/json", bytes.NewBufferString(doc))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := http.Get(ts.URL + "/collections/users/indexes/city/BOSTON")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Documents []map[string]interface{} `json:"documents"`
		Total     int                      `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, "Alice", result.Documents[0]["name"])
	assert.Equal(t, "Carol", result.Documents[1]["name"])

	requests := logs.FilterMessage("request").All()
	require.NotEmpty(t, requests)
	assert.Equal(t, int64(http.StatusCreated), requests[0].ContextMap()["status"])
}

func TestServer_NotFound(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	srv := NewServer(config.Default(), zap.New(core))

	req := httptest.NewRequest("GET", "/nowhere", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no route for GET /nowhere")
	assert.Equal(t, 1, logs.FilterMessage("no route found").Len())
}
