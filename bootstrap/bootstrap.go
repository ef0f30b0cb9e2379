// Package bootstrap wires config into a ready SummaryService.
// Shared by the API server and the warm-up command.
package bootstrap

import (
	"context"
	"fmt"

	"wiki-summary/config"
	"wiki-summary/db"
	"wiki-summary/fetcher"
	"wiki-summary/parser"
	"wiki-summary/quota"
	"wiki-summary/repositories"
	"wiki-summary/services"
	"wiki-summary/summarizer"
)

type closeFunc func(ctx context.Context) error

// Pipeline owns the summary service and the storage handle behind it.
type Pipeline struct {
	Service *services.SummaryService
	close   closeFunc
}

// Close releases the storage handle.
func (p *Pipeline) Close(ctx context.Context) error {
	if p.close == nil {
		return nil
	}
	return p.close(ctx)
}

// NewStore opens the store selected by cfg.Storage.Driver.
func NewStore(ctx context.Context, cfg config.AppConfig) (services.SummaryStore, closeFunc, error) {
	switch cfg.Storage.Driver {
	case "mongo":
		if err := db.Init(ctx); err != nil {
			return nil, nil, fmt.Errorf("initialize MongoDB: %w", err)
		}
		return repositories.NewSummaryRepository(db.Database()), db.Close, nil
	case "sqlite":
		sqlDB, err := db.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize SQLite: %w", err)
		}
		return repositories.NewSQLiteSummaryRepository(sqlDB), func(context.Context) error { return sqlDB.Close() }, nil
	case "memory":
		return repositories.NewMemorySummaryRepository(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
}

// NewPipeline builds store, fetcher, extractor and summarizer from cfg.
func NewPipeline(ctx context.Context, cfg config.AppConfig) (*Pipeline, error) {
	backend, err := summarizer.NewBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	limiter := quota.NewSummaryQuotaLimiter(cfg.SummaryQuota)
	backend = summarizer.WithQuota(backend, limiter, cfg.LLMTimeout())

	store, closeStore, err := NewStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := services.NewSummaryService(
		store,
		fetcher.New(cfg),
		parser.New(cfg.Extractor),
		summarizer.New(backend, cfg.Summarizer),
	)

	config.InfoWithFields("summary pipeline ready", config.Fields{
		"storage":   cfg.Storage.Driver,
		"fetch":     cfg.Fetch.Mode,
		"extractor": cfg.Extractor.Strategy,
		"provider":  cfg.LLM.Provider,
		"model":     cfg.LLM.ModelName,
		"quota":     limiter.Enabled(),
	})
	return &Pipeline{Service: svc, close: closeStore}, nil
}
