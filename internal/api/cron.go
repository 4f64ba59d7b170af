package api

import (
	"context"
	"net/http"

	"github.com/Clawdomoto/moto-dashboard/internal/crontab"
	"github.com/Clawdomoto/moto-dashboard/internal/store"
)

// JobLister provides the current cron jobs, normally by shelling out to the
// openclaw CLI.
type JobLister interface {
	Jobs(ctx context.Context) ([]crontab.Job, error)
}

// CronHandler serves the scheduled job listing.
type CronHandler struct {
	CLI   JobLister
	Store *store.CronJobStore
}

type cronJobsResponse struct {
	Jobs  []crontab.Job `json:"jobs"`
	Error string        `json:"error,omitempty"`
}

type storedCronJobsResponse struct {
	Jobs []store.StoredCronJob `json:"jobs"`
}

// List asks the CLI for the current job table. A missing or failing CLI is
// reported alongside an empty job list rather than as an HTTP error, so the
// dashboard renders either way.
func (h *CronHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.CLI.Jobs(r.Context())
	if err != nil {
		sendJSON(w, http.StatusOK, cronJobsResponse{
			Jobs:  []crontab.Job{},
			Error: "could not fetch cron jobs - ensure the openclaw CLI is available",
		})
		return
	}

	sendJSON(w, http.StatusOK, cronJobsResponse{Jobs: jobs})
}

// ListStored returns the persisted cron job snapshot.
func (h *CronHandler) ListStored(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		sendJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "database not available"})
		return
	}

	jobs, err := h.Store.List(r.Context())
	if err != nil {
		sendJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list cron jobs"})
		return
	}

	sendJSON(w, http.StatusOK, storedCronJobsResponse{Jobs: jobs})
}
