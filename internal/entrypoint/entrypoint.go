// Package entrypoint wires the circulation service together and runs it.
package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/circulation/internal/auth"
	"github.com/openshelf/circulation/internal/config"
	"github.com/openshelf/circulation/internal/database"
	"github.com/openshelf/circulation/internal/database/audit"
	"github.com/openshelf/circulation/internal/database/books"
	"github.com/openshelf/circulation/internal/database/loans"
	"github.com/openshelf/circulation/internal/database/members"
	"github.com/openshelf/circulation/internal/database/users"
	http_controllers "github.com/openshelf/circulation/internal/http"
	"github.com/openshelf/circulation/internal/scheduler"
	"github.com/openshelf/circulation/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down within
// the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener so in-flight tasks finish.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run opens the store, wires every component, and serves until shutdown.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting circulation service v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	booksRepo := books.NewRepository(db.DB)
	membersRepo := members.NewRepository(db.DB)
	usersRepo := users.NewRepository(db.DB)
	loansRepo := loans.NewRepository(db.DB, cfg.Fines.PerDay)
	auditRepo := audit.NewRepository(db.DB)

	authService := auth.NewService(usersRepo, cfg.Auth.BcryptCost)

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	if count, err := usersRepo.CountUsers(); err == nil && count == 0 {
		log.Printf("No staff accounts found. Run 'create-admin' to create one.")
	}

	// Task queue + overdue scan schedule
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var overdueScheduler *scheduler.OverdueScanScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewOverdueScanQueue(loansRepo, auditRepo),
			tasks.NewCleanupAuditEventsQueue(auditRepo),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		if cfg.OverdueScan.Enabled {
			overdueScheduler = scheduler.NewOverdueScanScheduler(taskClient, cfg.OverdueScan.Schedule, cfg.Audit.RetentionDays)
			if err := overdueScheduler.Start(); err != nil {
				log.Fatalf("Failed to start overdue scan scheduler: %v", err)
			}
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		Books:          booksRepo,
		Members:        membersRepo,
		Users:          usersRepo,
		Loans:          loansRepo,
		Auditor:        auditRepo,
		AuthService:    authService,
		SessionManager: sessionManager,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if overdueScheduler != nil {
			overdueScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
