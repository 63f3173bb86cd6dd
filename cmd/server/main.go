package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/exportiq/exportiq/internal/config"
	"github.com/exportiq/exportiq/internal/httpapi"
	"github.com/exportiq/exportiq/internal/intelligence"
	"github.com/exportiq/exportiq/internal/pricing"
	"github.com/exportiq/exportiq/internal/report"
	"github.com/exportiq/exportiq/internal/store"
	"github.com/exportiq/exportiq/internal/telemetry"
	"github.com/exportiq/exportiq/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.App.Name, cfg.Telemetry.Endpoint)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warnf("tracing shutdown: %v", err)
		}
	}()

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	client := intelligence.NewAnthropicClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)

	intelRepo := store.NewIntelligenceRepo(db)
	pricingRepo := store.NewPricingRepo(db)
	productRepo := store.NewProductRepo(db)
	tradeRepo := store.NewTradeRepo(db)

	router := httpapi.NewRouter(httpapi.Deps{
		Intelligence:  intelligence.NewPipeline(client, intelRepo),
		Pricing:       pricing.NewPipeline(client, productRepo, tradeRepo, pricingRepo),
		Records:       intelRepo,
		Optimizations: pricingRepo,
		Products:      productRepo,
		Trades:        tradeRepo,
		PDF:           report.NewPDFRenderer(),
	}, cfg.HTTP.APIKey)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("http server listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
