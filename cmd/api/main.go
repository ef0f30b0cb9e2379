package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"wiki-summary/api/router"
	"wiki-summary/bootstrap"
	"wiki-summary/config"
)

// @title           Wiki Summary API
// @version         1.0
// @description     Summaries of Wikipedia articles, generated on demand and cached
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	config.InitLogger(cfg.Logging)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pipeline, err := bootstrap.NewPipeline(ctx, cfg)
	if err != nil {
		config.Logger.Errorf("failed to build summary pipeline: %v", err)
		os.Exit(1)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id", "X-Span-Id"},
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           c.Handler(router.New(pipeline.Service)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Logger.Infof("api server listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Errorf("api server error: %v", err)
			cancel()
		}
	}()

	// Graceful shutdown 설정
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		config.Logger.Info("received shutdown signal, shutting down api server...")
	case <-ctx.Done():
	}

	// 요약 생성은 수십 초가 걸릴 수 있으므로 LLM timeout 만큼 기다린다
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.LLMTimeout())
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Errorf("api server shutdown error: %v", err)
	}
	if err := pipeline.Close(shutdownCtx); err != nil {
		config.Logger.Errorf("failed to close storage: %v", err)
	}

	config.Logger.Info("api server stopped")
}
