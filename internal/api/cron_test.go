package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Clawdomoto/moto-dashboard/internal/crontab"
)

type fakeJobLister struct {
	jobs []crontab.Job
	err  error
}

func (f *fakeJobLister) Jobs(ctx context.Context) ([]crontab.Job, error) {
	return f.jobs, f.err
}

func newCronTestRouter(handler *CronHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/cron", handler.List)
	r.Get("/api/cron/stored", handler.ListStored)
	return r
}

func TestCronList(t *testing.T) {
	nextRun := "2026-01-16 18:00"
	handler := &CronHandler{CLI: &fakeJobLister{jobs: []crontab.Job{
		{
			JobID:         "job-1",
			Name:          "Daily Report",
			Schedule:      "0 18 * * 1-5",
			ScheduleHuman: "18:00 every weekdays",
			NextRun:       &nextRun,
			Status:        "active",
			Target:        "isolated",
			Agent:         "main",
		},
	}}}
	router := newCronTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/cron", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cronJobsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Empty(t, resp.Error)
	require.Len(t, resp.Jobs, 1)
	require.Equal(t, "job-1", resp.Jobs[0].JobID)
	require.Equal(t, "18:00 every weekdays", resp.Jobs[0].ScheduleHuman)
	require.NotNil(t, resp.Jobs[0].NextRun)
}

func TestCronListCLIUnavailable(t *testing.T) {
	handler := &CronHandler{CLI: &fakeJobLister{err: errors.New("exec: openclaw: not found")}}
	router := newCronTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/cron", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Degrades to an empty listing, not an HTTP error.
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cronJobsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Jobs)
	require.Empty(t, resp.Jobs)
	require.NotEmpty(t, resp.Error)
}

func TestCronListStoredWithoutDatabase(t *testing.T) {
	handler := &CronHandler{CLI: &fakeJobLister{}}
	router := newCronTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/cron/stored", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
