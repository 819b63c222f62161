package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	grpcapi "fleetrent-backend/internal/api/grpc"
	httpapi "fleetrent-backend/internal/api/http"
	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/events"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/metrics"
	"fleetrent-backend/internal/notify"
	"fleetrent-backend/internal/repository/postgres"
	"fleetrent-backend/internal/security"
	"fleetrent-backend/internal/service"
	"fleetrent-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Fleetrent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "http", cfg.GetServerAddress(), "grpc", cfg.GetGRPCAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Error("Failed to run migrations", "error", err)
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Metrics
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New("fleetrent")
	}

	// Initialize Event Publisher
	publisher := events.NewNoopPublisher()
	if cfg.Events.Enabled {
		publisher, err = events.NewAMQPPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			logger.Error("Failed to connect to broker", "error", err)
			log.Fatalf("Failed to connect to broker: %v", err)
		}
	}
	defer publisher.Close()

	// Initialize Report Archive
	archive, err := storage.NewLocalArchive(cfg.Reports.BaseURL, cfg.Reports.ArchiveDir)
	if err != nil {
		logger.Error("Failed to initialize statement archive", "error", err)
		log.Fatalf("Failed to initialize statement archive: %v", err)
	}

	// Initialize Services
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	ledger := service.NewGuaranteeLedger(store.ReportRepository)
	monitoringSvc := service.NewMonitoringService(store.ReportRepository, store.Incomes, store.Outcomes, ledger, m)
	services := httpapi.Services{
		Auth:       service.NewAuthService(cfg.Auth, tokenManager),
		Rents:      service.NewRentService(store.RentRepository, publisher),
		Cars:       service.NewCarService(store.CarRepository),
		Incomes:    service.NewEntryService(store.Incomes, domain.EntryKindIncome),
		Outcomes:   service.NewEntryService(store.Outcomes, domain.EntryKindOutcome),
		Monitoring: monitoringSvc,
		Statements: service.NewStatementService(monitoringSvc, ledger, archive, notify.NewMailer(cfg.Mail), cfg.Reports.Recipients),
	}

	// Set up HTTP server
	router := httpapi.NewRouter(services, httpapi.RouterOptions{
		TokenManager: tokenManager,
		Metrics:      m,
		MetricsPath:  cfg.Metrics.Path,
		Ping:         func(r *http.Request) error { return store.Ping(r.Context()) },
	})
	httpServer := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	// Set up gRPC server
	grpcServer, healthServer := grpcapi.NewServer(monitoringSvc, grpcapi.ServerOptions{
		TokenManager: tokenManager,
		Metrics:      m,
		Reflection:   cfg.GRPC.Reflection,
	})
	lis, err := net.Listen("tcp", cfg.GetGRPCAddress())
	if err != nil {
		logger.Error("Failed to listen", "error", err, "address", cfg.GetGRPCAddress())
		log.Fatalf("Failed to listen: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("gRPC server listening", "address", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down servers...")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped. Goodbye!")
}
