package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memstore"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/redislock"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
)

// demoPassword is shared by the built-in accounts when STAFF_FILE is unset.
const demoPassword = "salon123"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// CATALOG + STAFF
	// ======================================================
	services := catalog.Default()
	if cfg.CatalogFile != "" {
		loaded, err := catalog.Load(cfg.CatalogFile)
		if err != nil {
			return err
		}
		services = loaded
	}

	var dir *auth.Directory
	if cfg.StaffFile != "" {
		loaded, err := auth.LoadDirectory(cfg.StaffFile)
		if err != nil {
			return err
		}
		dir = loaded
	} else {
		demo, err := auth.DemoDirectory(demoPassword, bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		dir = demo
		zl.Warn("STAFF_FILE not set, using demo accounts")
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)

	// ======================================================
	// STORAGE + AUDIT
	// ======================================================
	deps := routes.Deps{
		Config:    cfg,
		Log:       zl,
		Catalog:   services,
		Directory: dir,
		Tokens:    tokens,
		Health:    map[string]handlers.Pinger{},
	}

	var (
		store     domain.Store
		sink      audit.Sink
		retention *audit.Retention
	)

	switch cfg.StoreDriver {
	case config.DriverMemory:
		store = memstore.New()
		sink = audit.NewZapSink(zl)
		zl.Warn("memory store in use, appointments are lost on restart")

	default:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		store = repository.NewAppointmentGormRepository(db)
		logs := audit.New(db)
		sink = logs
		deps.AuditLogs = logs

		if cfg.AuditRetention > 0 {
			retention, err = audit.NewRetention(logs, cfg.AuditRetention, cfg.AuditCron, zl)
			if err != nil {
				return err
			}
			retention.Start()
			defer retention.Stop()
		}
	}
	deps.Store = store

	dispatcher := audit.NewDispatcher(sink, zl)
	deps.Auditor = dispatcher

	if cfg.RedisURL != "" {
		rdb, err := redislock.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()

		deps.Locker = redislock.NewScheduleLocker(rdb, cfg.LockTTL, cfg.LockTTL)
		deps.Health["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}

	// ======================================================
	// HTTP
	// ======================================================
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.String("store", cfg.StoreDriver),
			zap.String("timezone", cfg.Timezone),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("http shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		zl.Error("audit drain", zap.Error(err))
	}
	return nil
}
