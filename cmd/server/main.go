package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gofiber/fiber/v2"

	"files-manager/internal/config"
	"files-manager/internal/database"
	"files-manager/internal/handlers"
	"files-manager/internal/queue"
	"files-manager/internal/repository"
	"files-manager/internal/routes"
	service "files-manager/internal/services"
	"files-manager/internal/storage"
	"files-manager/internal/token"
	"files-manager/internal/utils"
)

func main() {
	// load config
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}
	dev := cfg.App.Env == "development"

	// logger
	logger, _ := utils.NewLogger(dev)
	defer func() { _ = logger.Sync() }()

	// Mongo
	db, mc, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, logger)
	if err != nil {
		logger.Fatalf("mongo connect: %v", err)
	}
	fileRepo := repository.NewFileRepo(db)
	userRepo := repository.NewUserRepo(db)

	// Redis-backed token store
	rdb, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatalf("redis connect: %v", err)
	}
	tokens := token.NewStore(rdb, cfg.TokenTTL)

	// blob store on local disk
	blobs, err := storage.NewDiskStore(cfg.Storage.FolderPath)
	if err != nil {
		logger.Fatalf("storage init: %v", err)
	}

	// thumbnail job producer
	producer := queue.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)

	// services
	authSvc := service.NewAuthService(userRepo, tokens)
	fileSvc := service.NewFileService(tokens, fileRepo, blobs, producer, logger)
	appSvc := service.NewAppService(rdb, mc, userRepo, fileRepo)

	// fiber app & routes
	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    200 * 1024 * 1024,
	})
	h := handlers.NewHandler(authSvc, fileSvc, appSvc, logger)
	routes.Setup(app, h)

	// start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		logger.Infof("starting files-manager API on %s", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatalf("listen failed: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("shutdown requested")
	timeoutCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	_ = app.Shutdown()
	_ = producer.Close()
	_ = rdb.Close()
	_ = mc.Disconnect(timeoutCtx)
	logger.Info("shutdown completed")
}
