package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"
	grpclib "google.golang.org/grpc"

	grpcadapter "github.com/simaogato/wealthflow-dashboard/internal/adapter/grpc"
	"github.com/simaogato/wealthflow-dashboard/internal/adapter/httpapi"
	"github.com/simaogato/wealthflow-dashboard/internal/adapter/present"
	"github.com/simaogato/wealthflow-dashboard/internal/adapter/repository/sqldb"
	"github.com/simaogato/wealthflow-dashboard/internal/adapter/source"
	"github.com/simaogato/wealthflow-dashboard/internal/config"
	"github.com/simaogato/wealthflow-dashboard/internal/domain"
	"github.com/simaogato/wealthflow-dashboard/internal/logger"
	"github.com/simaogato/wealthflow-dashboard/internal/usecase/dashboard"
	"github.com/simaogato/wealthflow-dashboard/internal/usecase/session"
	"github.com/simaogato/wealthflow-dashboard/internal/usecase/transform"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load configuration
	config.LoadEnvFile()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitLogger(cfg.LogLevel)

	// 2. Setup the optional refresh log
	var refreshRepo domain.RefreshLogRepository
	if cfg.RefreshLogDriver != "" {
		db, err := sqldb.NewDB(cfg.RefreshLogDriver, cfg.RefreshLogDSN)
		if err != nil {
			log.Fatalf("Failed to connect to refresh log database: %v", err)
		}
		defer db.Close()

		if err := db.Migrate(); err != nil {
			log.Fatalf("Failed to migrate refresh log database: %v", err)
		}
		refreshRepo = sqldb.NewRefreshLogRepository(db)
		logger.L.Info("Refresh log enabled", "driver", cfg.RefreshLogDriver)
	}

	// 3. Initialize services
	transformer, err := transform.NewTransformer(cfg.Sheet)
	if err != nil {
		log.Fatalf("Failed to create transformer: %v", err)
	}

	passwordHash, err := session.HashPassword(cfg.DashboardPassword, bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash dashboard password: %v", err)
	}
	sessionService, err := session.NewSessionService(passwordHash, cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to create session service: %v", err)
	}

	presenter, err := present.NewPresenter(cfg.Currency)
	if err != nil {
		log.Fatalf("Failed to create presenter: %v", err)
	}

	sheetSource := source.New(cfg.SheetURL, cfg.FetchTimeout, cfg.CacheTTL)
	dashboardService := dashboard.NewDashboardService(sheetSource, transformer, refreshRepo)

	loginLimiter := session.NewLoginLimiter(cfg.LoginRatePerMinute)

	// 4. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.RateLimitInterceptor(loginLimiter, grpcadapter.LoginMethod),
			grpcadapter.AuthInterceptor(sessionService, grpcadapter.LoginMethod),
		),
	)
	grpcadapter.RegisterDashboardServiceServer(grpcServer, grpcadapter.NewServer(sessionService, dashboardService, presenter))

	grpcAddr := ":" + cfg.GRPCPort
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", grpcAddr, err)
	}

	go func() {
		logger.L.Info("gRPC server listening", "address", grpcAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("Failed to serve gRPC server: %v", err)
		}
	}()

	// 5. Start HTTP Server
	handler := httpapi.NewHandler(sessionService, dashboardService, presenter)
	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      httpapi.NewRouter(handler, sessionService, loginLimiter),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.FetchTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.L.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve HTTP server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(grpcServer, httpServer)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down both servers
func waitForShutdown(grpcServer *grpclib.Server, httpServer *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Println("HTTP server stopped")

	grpcServer.GracefulStop()
	log.Println("gRPC server stopped")
}
