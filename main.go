package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wiki-summary/bootstrap"
	"wiki-summary/config"
)

// truncate returns s truncated to max runes.
func truncate(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max])
}

// 캐시 워밍: config.yaml 의 warmup_urls 를 순서대로 요약해 저장해 둔다.
// 이미 저장된 문서는 저장소에서 바로 반환되므로 여러 번 실행해도 된다.
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	config.InitLogger(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline, err := bootstrap.NewPipeline(ctx, cfg)
	if err != nil {
		config.Logger.Errorf("failed to build summary pipeline: %v", err)
		os.Exit(1)
	}

	failed := 0
	for _, url := range cfg.WarmupURLs {
		if ctx.Err() != nil {
			break
		}
		start := time.Now()
		rec, err := pipeline.Service.CreateOrGet(ctx, url, cfg.Summarizer.DefaultWordLimit)
		if err != nil {
			failed++
			config.ErrorWithFields("warmup failed", config.Fields{"url": url, "error": err.Error()})
			continue
		}
		config.InfoWithFields("warmup done", config.Fields{
			"url":      url,
			"id":       rec.ID,
			"duration": time.Since(start).String(),
			"summary":  truncate(rec.Summary, 120),
		})
	}

	if err := pipeline.Close(context.Background()); err != nil {
		config.Logger.Errorf("failed to close storage: %v", err)
	}
	config.Logger.Infof("warmup finished: %d urls, %d failed", len(cfg.WarmupURLs), failed)
	if failed > 0 {
		os.Exit(1)
	}
}
