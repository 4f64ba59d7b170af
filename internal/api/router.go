package api

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Clawdomoto/moto-dashboard/internal/ws"
)

var startTime = time.Now()

type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// Deps carries the handlers the router mounts. Store-backed handlers accept
// nil stores and respond with a service-unavailable error.
type Deps struct {
	Activities *ActivitiesHandler
	Cron       *CronHandler
	Search     *SearchHandler
	Hub        *ws.Hub
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/health", handleHealth)
	r.Get("/", handleRoot)

	r.Get("/api/activities", deps.Activities.List)
	r.Get("/api/activities/stored", deps.Activities.ListStored)
	r.Get("/api/cron", deps.Cron.List)
	r.Get("/api/cron/stored", deps.Cron.ListStored)
	r.Get("/api/search", deps.Search.Search)
	r.Get("/api/index/search", deps.Search.SearchIndex)

	if deps.Hub != nil {
		r.Handle("/ws", &ws.Handler{Hub: deps.Hub})
	}

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "ok",
		Uptime:    time.Since(startTime).Round(time.Second).String(),
		Version:   getVersion(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	_ = json.NewEncoder(w).Encode(resp)
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]string{
		"name":    "Mission Control",
		"tagline": "Dashboard for the OpenClaw agent runtime",
		"health":  "/health",
	})
}

func getVersion() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}
