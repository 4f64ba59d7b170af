package main

import (
	"context"
	"log"
	"net/http"

	"github.com/Clawdomoto/moto-dashboard/internal/api"
	"github.com/Clawdomoto/moto-dashboard/internal/automigrate"
	"github.com/Clawdomoto/moto-dashboard/internal/config"
	"github.com/Clawdomoto/moto-dashboard/internal/openclawcli"
	"github.com/Clawdomoto/moto-dashboard/internal/scheduler"
	"github.com/Clawdomoto/moto-dashboard/internal/store"
	"github.com/Clawdomoto/moto-dashboard/internal/workspace"
	"github.com/Clawdomoto/moto-dashboard/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	w := workspace.Resolve()
	if cfg.WorkspaceRoot != "" {
		w = &workspace.Workspace{Root: cfg.WorkspaceRoot}
	}
	cli := openclawcli.NewClient(cfg.OpenClawBin, cfg.CLITimeout)

	hub := ws.NewHub()
	go hub.Run()

	deps := api.Deps{
		Activities: &api.ActivitiesHandler{Workspace: w},
		Cron:       &api.CronHandler{CLI: cli},
		Search:     &api.SearchHandler{Workspace: w},
		Hub:        hub,
	}

	if cfg.DatabaseURL != "" {
		db, err := store.DB()
		if err != nil {
			log.Fatalf("Database connection failed: %v", err)
		}
		if err := automigrate.Run(db, "migrations"); err != nil {
			log.Fatalf("Migrations failed: %v", err)
		}

		deps.Activities.Store = store.NewActivityStore(db)
		deps.Cron.Store = store.NewCronJobStore(db)
		deps.Search.Index = store.NewSearchIndexStore(db)

		if cfg.SyncEnabled {
			worker := scheduler.NewSyncWorker(w, cli)
			worker.Activities = deps.Activities.Store
			worker.CronJobs = deps.Cron.Store
			worker.Index = deps.Search.Index
			worker.Hub = hub
			worker.Interval = cfg.SyncInterval
			worker.Logf = log.Printf
			go worker.Start(context.Background())
			log.Printf("🔄 Sync worker refreshing every %s", cfg.SyncInterval)
		}
	} else {
		log.Printf("⚠️  DATABASE_URL not set; serving live parses only")
	}

	log.Printf("🛰️  Mission Control starting on port %s (workspace: %s)", cfg.Port, w.Root)
	if err := http.ListenAndServe(":"+cfg.Port, api.NewRouter(deps)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
