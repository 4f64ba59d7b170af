package api

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/Clawdomoto/moto-dashboard/internal/memorylog"
	"github.com/Clawdomoto/moto-dashboard/internal/store"
	"github.com/Clawdomoto/moto-dashboard/internal/workspace"
)

// ActivitiesHandler serves parsed memory-log activity.
type ActivitiesHandler struct {
	Workspace *workspace.Workspace
	Store     *store.ActivityStore
}

type activitiesResponse struct {
	Activities []memorylog.Activity `json:"activities"`
	Source     string               `json:"source"`
}

type storedActivitiesResponse struct {
	Activities []store.StoredActivity `json:"activities"`
}

// List parses the most recent memory files on demand and returns activities
// sorted by timestamp descending.
func (h *ActivitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	activities := []memorylog.Activity{}
	for _, file := range h.Workspace.MemoryFiles(0) {
		activities = append(activities, memorylog.Parse(file.Content, file.Name)...)
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp > activities[j].Timestamp
	})

	sendJSON(w, http.StatusOK, activitiesResponse{
		Activities: activities,
		Source:     h.Workspace.MemoryDir(),
	})
}

// ListStored returns the persisted activity snapshot, newest first.
func (h *ActivitiesHandler) ListStored(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		sendJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "database not available"})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	activities, err := h.Store.List(r.Context(), limit)
	if err != nil {
		sendJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list activities"})
		return
	}

	sendJSON(w, http.StatusOK, storedActivitiesResponse{Activities: activities})
}
