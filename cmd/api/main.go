package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/solar-simulator/internal/config"
	"github.com/Dan9191/solar-simulator/internal/demand"
	"github.com/Dan9191/solar-simulator/internal/handler"
	"github.com/Dan9191/solar-simulator/internal/integrations/fuelprice"
	"github.com/Dan9191/solar-simulator/internal/metrics"
	"github.com/Dan9191/solar-simulator/internal/repository"
	"github.com/Dan9191/solar-simulator/internal/service"
	"github.com/Dan9191/solar-simulator/internal/utils/email"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load demand records once per session
	ctx := context.Background()
	loader, closeLoader, err := newLoader(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize demand source: %v", err)
	}
	records, err := loader.Load(ctx)
	closeLoader()
	if err != nil {
		logger.Fatalf("Failed to load demand: %v", err)
	}

	// Initialize layers
	recorder := metrics.New(prometheus.DefaultRegisterer)
	var prices service.PriceSource
	if cfg.FuelPriceURL != "" {
		prices = fuelprice.NewClient(cfg, logger)
	}
	svc := service.NewService(records, prices, recorder, logger, cfg)
	h := handler.NewHandler(svc, email.NewSender(cfg, logger), logger)

	// Schedule diesel price refresh
	scheduler := cron.New()
	if prices != nil {
		refresh := func() {
			rctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			svc.RefreshDieselPrice(rctx)
		}
		if _, err := scheduler.AddFunc(cfg.FuelPriceSchedule, refresh); err != nil {
			logger.Fatalf("Invalid FUEL_PRICE_SCHEDULE %q: %v", cfg.FuelPriceSchedule, err)
		}
		refresh()
		scheduler.Start()
	}

	// Setup router
	r := handler.NewRouter(h, cfg, promhttp.Handler())

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s with %d demand records", addr, len(records))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	<-scheduler.Stop().Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
}

// newLoader selects the demand source; the returned func releases it
func newLoader(cfg *config.Config, logger *logrus.Logger) (demand.Loader, func(), error) {
	if cfg.DemandSource != config.SourcePostgres {
		return demand.NewCSVLoader(cfg.DemandCSV, cfg.CSVDelimiter, logger), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return repository.NewRepository(db), func() { db.Close() }, nil
}
