package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Houeta/employee-registry/internal/config"
	"github.com/Houeta/employee-registry/internal/lib/logger/sl"
	"github.com/Houeta/employee-registry/internal/metrics"
	"github.com/Houeta/employee-registry/internal/repository"
	"github.com/Houeta/employee-registry/internal/server"
	"github.com/Houeta/employee-registry/internal/services/employees"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// main is the entry point of the application.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger := sl.New(cfg.Env, os.Stdout)

	// Create a separate registry for metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	dtb, err := repository.NewDatabase(
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Dbname)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	employeeRepo := repository.NewEmployeeRepository(dtb, appMetrics)
	employeeService := employees.NewService(logger, employeeRepo, appMetrics)
	handler := server.NewEmployeeHandler(employeeService, logger)

	apiServer := server.NewAPIServer(
		cfg.HTTPServer.Address,
		server.NewRouter(logger, appMetrics, handler),
		cfg.HTTPServer.Timeout,
		cfg.HTTPServer.IdleTimeout,
	)
	monitoringServer := server.NewMonitoringServer(cfg.Monitoring.Address, reg, dtb, logger)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.Run(groupCtx, logger, apiServer)
	})
	group.Go(func() error {
		return server.Run(groupCtx, logger, monitoringServer)
	})

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.", "env", cfg.Env)

	if err = group.Wait(); err != nil {
		logger.ErrorContext(ctx, "Application stopped with error", sl.Err(err))
		return
	}

	logger.InfoContext(ctx, "Application stopped gracefully...")
}
