package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"parking_system_go/internal/api"
	"parking_system_go/internal/api/handler"
	"parking_system_go/internal/api/middleware"
	"parking_system_go/internal/config"
	"parking_system_go/internal/domain"
	"parking_system_go/internal/repository"
	"parking_system_go/internal/repository/memory"
	"parking_system_go/internal/repository/postgresql"
	"parking_system_go/internal/repository/snapshot"
	"parking_system_go/internal/service"

	"golang.org/x/crypto/bcrypt"
)

func initLogger(debug bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

func main() {
	cfg := config.Load()
	logger := initLogger(cfg.Debug)
	defer logger.Sync()

	// Repositories: PostgreSQL when configured, in-memory otherwise. A
	// connection failure degrades to memory rather than refusing to start;
	// the gate must open either way.
	var userRepo repository.UserRepository
	var handicappedRepo, reservedRepo repository.PermitRepository

	if cfg.DBHost != "" {
		db, err := postgresql.NewDB(cfg)
		if err != nil {
			logger.Warn("database unavailable, falling back to in-memory stores", zap.Error(err))
		} else {
			defer db.Close()
			if err := postgresql.EnsureSchema(db); err != nil {
				logger.Fatal("ensuring database schema", zap.Error(err))
			}
			userRepo = postgresql.NewPgUserRepository(db)
			handicappedRepo = postgresql.NewPgHandicappedPermitRepository(db)
			reservedRepo = postgresql.NewPgReservedPermitRepository(db)
			logger.Info("connected to database", zap.String("host", cfg.DBHost))
		}
	}
	if userRepo == nil {
		userRepo = memory.NewUserStore()
		handicappedRepo = memory.NewPermitStore()
		reservedRepo = memory.NewPermitStore()
		logger.Info("using in-memory stores")
	}
	seedAdminUser(userRepo, cfg, logger)

	stateStore := snapshot.NewStore(cfg.DataDir)

	parkingService := service.NewParkingService(domain.DefaultLayout(), logger)
	fineService := service.NewFineService(logger)

	snap, err := stateStore.Load(context.Background())
	if err != nil {
		logger.Warn("could not load saved state, starting from the default layout", zap.Error(err))
	} else if snap != nil {
		parkingService.Restore(snap)
		fineService.Restore(snap.FineScheme, snap.Debts)
		logger.Info("restored saved state",
			zap.Int("spots", len(snap.Spots)),
			zap.Int("transactions", len(snap.History)),
			zap.Float64("revenue", snap.Revenue))
	}

	exitService := service.NewExitService(parkingService, fineService, handicappedRepo, reservedRepo, cfg.TimeScale, logger)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpirationHours)
	authMiddleware := middleware.NewAuthMiddleware(authService, logger)

	webSocketManager := handler.NewWebSocketManager(logger)
	go webSocketManager.Start()

	registry := prometheus.NewRegistry()
	metrics := service.NewLotMetrics(parkingService, registry)

	parkingService.Subscribe(metrics)
	parkingService.Subscribe(handler.NewLotBroadcaster(parkingService, webSocketManager))

	router := api.SetupRouter(api.RouterDeps{
		AuthService:    authService,
		ParkingService: parkingService,
		FineService:    fineService,
		ExitService:    exitService,
		AuthMw:         authMiddleware,
		WsManager:      webSocketManager,
		Handicapped:    handicappedRepo,
		Reserved:       reservedRepo,
		Metrics:        registry,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}

	saveState(shutdownCtx, stateStore, parkingService, fineService, logger)
	logger.Info("server stopped")
}

func seedAdminUser(userRepo repository.UserRepository, cfg *config.Config, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := userRepo.FindByUsername(ctx, cfg.AdminUsername); err == nil {
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		logger.Warn("checking for admin user", zap.Error(err))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("hashing admin password", zap.Error(err))
		return
	}
	_, err = userRepo.Create(ctx, &domain.User{
		Username: cfg.AdminUsername,
		Password: string(hash),
		Role:     "admin",
	})
	if err != nil && !errors.Is(err, repository.ErrDuplicateEntry) {
		logger.Error("seeding admin user", zap.Error(err))
		return
	}
	logger.Info("seeded admin user", zap.String("username", cfg.AdminUsername))
}

func saveState(ctx context.Context, store repository.StateStore, parking *service.ParkingService, fines *service.FineService, logger *zap.Logger) {
	spots, history, revenue := parking.SnapshotState()
	snap := &repository.LotSnapshot{
		Spots:      spots,
		Debts:      fines.Debts(),
		History:    history,
		FineScheme: string(fines.Scheme()),
		Revenue:    revenue,
	}
	if err := store.Save(ctx, snap); err != nil {
		logger.Error("saving state", zap.Error(err))
		return
	}
	logger.Info("state saved")
}
