package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"

	httpadapter "gridraid/internal/adapter/http"
	metricsinmem "gridraid/internal/adapter/metrics/inmemory"
	gormrepo "gridraid/internal/adapter/repo/gorm"
	"gridraid/internal/adapter/repo/memory"
	"gridraid/internal/adapter/sim"
	"gridraid/internal/app/observe"
	"gridraid/internal/app/ports"
	"gridraid/internal/app/replay"
	"gridraid/internal/app/run"
	"gridraid/internal/domain/battle"
)

func main() {
	runRepo, eventRepo, txManager := mustBuildRepos()

	scenarioRoot := resolveScenarioRoot()
	scenarios := sim.NewScenarioStore(scenarioRoot)
	if boolEnv("SCENARIO_WATCH") {
		go func() {
			if err := scenarios.Watch(context.Background()); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("scenario watcher stopped: %v", err)
			}
		}()
	}

	kpi := metricsinmem.NewRecorder()
	sessions := run.NewSessionStore()

	runUC := run.UseCase{
		TxManager: txManager,
		Runs:      runRepo,
		Events:    eventRepo,
		Scenarios: scenarios,
		Metrics:   kpi,
		Sessions:  sessions,
		Player:    intEnv("AGENT_PLAYER", 0),
		Now:       time.Now,
		Fields: func(sc battle.Scenario) (ports.Battlefield, error) {
			return sim.NewEngine(sc)
		},
	}

	h := httpadapter.Handler{
		RunUC:     runUC,
		ObserveUC: observe.UseCase{Runs: runRepo, Sessions: sessions},
		ReplayUC:  replay.UseCase{Events: eventRepo},
		Scenarios: scenarios,
		KPI:       kpi,
	}

	addr := ":" + envOr("PORT", "8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("gridraid server listening on %s (scenarios: %s)", addr, scenarioRoot)
	s.Spin()
}

func mustBuildRepos() (ports.RunRepository, ports.EventRepository, ports.TxManager) {
	dsn := strings.TrimSpace(os.Getenv("GRIDRAID_DB_DSN"))
	if dsn == "" {
		log.Println("GRIDRAID_DB_DSN not set, using in-memory repositories")
		store := memory.NewStore()
		return memory.NewRunRepo(store), memory.NewEventRepo(store), memory.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if dir := strings.TrimSpace(os.Getenv("GRIDRAID_MIGRATIONS_DIR")); dir != "" {
		if err := gormrepo.ApplyMigrations(context.Background(), db, dir); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
	}
	return gormrepo.NewRunRepo(db), gormrepo.NewEventRepo(db), gormrepo.NewTxManager(db)
}

func resolveScenarioRoot() string {
	if root := strings.TrimSpace(os.Getenv("SCENARIO_ROOT")); root != "" {
		return root
	}
	if _, err := os.Stat("./scenarios"); err == nil {
		return "./scenarios"
	}
	return "./configs/scenarios"
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func boolEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes"
}
