package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newSearchTestRouter(handler *SearchHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/search", handler.Search)
	r.Get("/api/index/search", handler.SearchIndex)
	return r
}

func TestSearch(t *testing.T) {
	w := newTestWorkspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(w.Root, "AGENTS.md"), []byte("the needle lives here\n"), 0o644))

	router := newSearchTestRouter(&SearchHandler{Workspace: w})

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=needle", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp searchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, 1, resp.Total)
	require.Len(t, resp.Results, 1)
	require.Equal(t, "AGENTS.md", resp.Results[0].FileName)
	require.Equal(t, 1, resp.Results[0].LineNumber)
	require.Equal(t, w.Root, resp.Workspace)
}

func TestSearchQueryTooShort(t *testing.T) {
	router := newSearchTestRouter(&SearchHandler{Workspace: newTestWorkspace(t)})

	for _, target := range []string{"/api/search", "/api/search?q=x", "/api/search?q=%20%20"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp searchResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Empty(t, resp.Results)
		require.Equal(t, "query too short", resp.Error)
	}
}

func TestSearchIndexWithoutDatabase(t *testing.T) {
	router := newSearchTestRouter(&SearchHandler{Workspace: newTestWorkspace(t)})

	req := httptest.NewRequest(http.MethodGet, "/api/index/search?q=needle", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
