package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/arzan03/pointboard/internal/auth"
	"github.com/arzan03/pointboard/internal/cache"
	"github.com/arzan03/pointboard/internal/config"
	"github.com/arzan03/pointboard/internal/db"
	"github.com/arzan03/pointboard/internal/handlers"
	"github.com/arzan03/pointboard/internal/logging"
	"github.com/arzan03/pointboard/internal/middleware"
	"github.com/arzan03/pointboard/internal/repository"
	"github.com/arzan03/pointboard/internal/services"
	"github.com/arzan03/pointboard/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	appLog := logging.New(cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	appLog.Info(ctx, "connected to MongoDB", "db", cfg.MongoDB)

	usersColl := mongoClient.Database(cfg.MongoDB).Collection(db.UsersCollection)
	if err := db.EnsureUserIndexes(ctx, usersColl); err != nil {
		appLog.Warn(ctx, "index setup failed", "err", err)
	}
	users := repository.NewMongoUserRepository(usersColl)

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	var opts []services.UserServiceOption
	var accountOpts []services.AccountServiceOption
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		defer rdb.Close()
		leaderboard := cache.NewRedisLeaderboard(rdb, cfg.LeaderboardTTL, appLog)
		opts = append(opts, services.WithLeaderboardCache(leaderboard))
		accountOpts = append(accountOpts, services.WithRegistrationCache(leaderboard))
		appLog.Info(ctx, "leaderboard cache enabled", "addr", cfg.RedisAddr)
	}
	if cfg.MinioEndpoint != "" {
		archive, err := storage.NewMinioArchive(ctx, storage.MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			UseSSL:    cfg.MinioUseSSL,
			Bucket:    cfg.ArchiveBucket,
		})
		if err != nil {
			log.Fatalf("Failed to connect to MinIO: %v", err)
		}
		opts = append(opts, services.WithAccountArchive(archive))
		appLog.Info(ctx, "account archive enabled", "bucket", cfg.ArchiveBucket)
	}

	userService := services.NewUserService(users, tokens, hasher, appLog, opts...)
	accountService := services.NewAccountService(users, tokens, hasher, appLog, accountOpts...)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(requestid.New())
	if cfg.Env == "dev" {
		app.Use(logger.New())
	} else {
		app.Use(middleware.RequestLogger(appLog))
	}
	app.Use(cors.New())

	handlers.NewAuthHandler(accountService).Register(app.Group("/auth"))
	handlers.NewUserHandler(userService).Register(app.Group("/users"))
	handlers.NewAdminHandler(users, appLog).Register(app.Group("/admin", middleware.AdminMiddleware(tokens)))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLog.Error(shutdownCtx, "shutdown failed", "err", err)
		}
	}()

	appLog.Info(ctx, "listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		appLog.Error(ctx, "server stopped", "err", err)
	}
}
