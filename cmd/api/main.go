package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pawtrail/backend/config"
	"github.com/pawtrail/backend/internal/api"
	"github.com/pawtrail/backend/internal/database"
	"github.com/pawtrail/backend/internal/router"
	"github.com/pawtrail/backend/internal/server"
	"github.com/pawtrail/backend/internal/service"
	"github.com/pawtrail/backend/internal/storage"
)

func main() {
	logger := config.NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalw("failed to load configuration", "error", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatalw("failed to migrate database", "error", err)
	}

	var revocations service.TokenRevocations
	if cfg.RedisAddr != "" {
		rdb, err := database.NewRedisClient(cfg)
		if err != nil {
			logger.Fatalw("failed to connect to redis", "error", err)
		}
		revocations = service.NewRedisRevocations(rdb)
	} else {
		logger.Warnw("redis not configured, using in-process token revocation")
		revocations = service.NewMemoryRevocations()
	}

	var photoStore storage.PhotoStore
	if cfg.PhotoBackend == "s3" {
		s3cfg, err := config.NewS3Config(context.Background(), cfg.S3Bucket, cfg.AWSRegion)
		if err != nil {
			logger.Fatalw("failed to configure S3", "error", err)
		}
		photoStore = storage.NewS3Store(s3cfg.Client, s3cfg.BucketName)
	} else {
		photoStore = storage.NewLocalStore(cfg.PhotoDir)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, revocations)
	photoService := service.NewPhotoService(photoStore, logger)
	petService := service.NewPetService(db, photoService)
	healthRecordService := service.NewHealthRecordService(db)
	workoutService := service.NewWorkoutService(db)

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewPetHandler(petService),
		api.NewHealthRecordHandler(petService, healthRecordService),
		api.NewWorkoutHandler(petService, workoutService),
		api.NewDashboardHandler(db),
		authService,
		cfg.AllowedOrigins,
	)

	srv := server.New(engine, cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		logger.Infow("starting server", "port", cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatalw("server error", "error", err)
		}
	case sig := <-quit:
		logger.Infow("received signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalw("server shutdown error", "error", err)
	}
	logger.Infow("server stopped")
}
