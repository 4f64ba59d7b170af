package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Clawdomoto/moto-dashboard/internal/store"
	"github.com/Clawdomoto/moto-dashboard/internal/workspace"
)

const minQueryLength = 2

// SearchHandler serves workspace file search.
type SearchHandler struct {
	Workspace *workspace.Workspace
	Index     *store.SearchIndexStore
}

type searchResponse struct {
	Results   []workspace.SearchResult `json:"results"`
	Total     int                      `json:"total"`
	Workspace string                   `json:"workspace"`
	Error     string                   `json:"error,omitempty"`
}

type indexSearchResponse struct {
	Results []store.IndexSearchResult `json:"results"`
}

// Search walks the workspace for a case-insensitive substring match. Queries
// shorter than two characters return an empty result set with an explanation,
// not an HTTP error.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if len(strings.TrimSpace(query)) < minQueryLength {
		sendJSON(w, http.StatusOK, searchResponse{
			Results: []workspace.SearchResult{},
			Error:   "query too short",
		})
		return
	}

	results, total := h.Workspace.Search(query)
	sendJSON(w, http.StatusOK, searchResponse{
		Results:   results,
		Total:     total,
		Workspace: h.Workspace.Root,
	})
}

// SearchIndex queries the persisted search index instead of the live
// filesystem.
func (h *SearchHandler) SearchIndex(w http.ResponseWriter, r *http.Request) {
	if h.Index == nil {
		sendJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "database not available"})
		return
	}

	query := r.URL.Query().Get("q")
	if len(strings.TrimSpace(query)) < minQueryLength {
		sendJSON(w, http.StatusOK, indexSearchResponse{Results: []store.IndexSearchResult{}})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.Index.Search(r.Context(), query, limit)
	if err != nil {
		sendJSON(w, http.StatusInternalServerError, errorResponse{Error: "search failed"})
		return
	}

	sendJSON(w, http.StatusOK, indexSearchResponse{Results: results})
}
