package main

import (
	"time"

	staticcatalog "aimapo/internal/adapter/catalog/static"
	httpadapter "aimapo/internal/adapter/http"
	metricsinmem "aimapo/internal/adapter/metrics/inmemory"
	"aimapo/internal/adapter/repo/memory"
	"aimapo/internal/app/catalog"
	"aimapo/internal/app/game"
	"aimapo/internal/app/history"
	"aimapo/internal/app/status"
	"aimapo/internal/app/turn"
	"aimapo/internal/domain/calendar"
	"aimapo/internal/domain/city"
)

type app struct {
	handler  httpadapter.Handler
	provider *staticcatalog.Provider
	metrics  *metricsinmem.Recorder
}

func buildApp(cfg Config) app {
	store := memory.NewStore()
	tx := memory.NewTxManager(store)
	sessions := memory.NewSessionRepo(store)
	journal := memory.NewJournalRepo(store)
	provider := &staticcatalog.Provider{Root: cfg.CatalogDir}
	recorder := metricsinmem.NewRecorder()
	cal := calendar.Default()

	gameUC := game.UseCase{
		TxManager: tx,
		Sessions:  sessions,
		Journal:   journal,
		Catalog:   provider,
		Calendar:  cal,
		Now:       time.Now,
	}
	if cfg.EventSeed != 0 {
		seed := cfg.EventSeed
		gameUC.Seed = func() int64 { return seed }
	}

	return app{
		handler: httpadapter.Handler{
			GameUC: gameUC,
			TurnUC: turn.UseCase{
				TxManager:  tx,
				Sessions:   sessions,
				Executions: memory.NewTurnExecutionRepo(store),
				Journal:    journal,
				Catalog:    provider,
				Metrics:    recorder,
				Engine:     city.NewTurnEngine(cal),
				Now:        time.Now,
			},
			StatusUC:  status.UseCase{TxManager: tx, Sessions: sessions},
			HistoryUC: history.UseCase{Sessions: sessions, Journal: journal},
			CatalogUC: catalog.UseCase{Provider: provider},
			KPI:       recorder,
		},
		provider: provider,
		metrics:  recorder,
	}
}
