package main

import (
	"context"
	"os"
	"os/signal"

	"files-manager/internal/config"
	"files-manager/internal/database"
	"files-manager/internal/queue"
	"files-manager/internal/repository"
	"files-manager/internal/storage"
	"files-manager/internal/thumbnail"
	"files-manager/internal/utils"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}
	dev := cfg.App.Env == "development"

	logger, _ := utils.NewLogger(dev)
	defer func() { _ = logger.Sync() }()

	db, mc, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, logger)
	if err != nil {
		logger.Fatalf("mongo connect: %v", err)
	}
	fileRepo := repository.NewFileRepo(db)

	blobs, err := storage.NewDiskStore(cfg.Storage.FolderPath)
	if err != nil {
		logger.Fatalf("storage init: %v", err)
	}

	gen := thumbnail.NewGenerator(fileRepo, blobs, logger)
	consumer := queue.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Group, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("thumbnail worker started")
	consumer.Run(ctx, gen)

	_ = consumer.Close()
	_ = mc.Disconnect(context.Background())
	logger.Info("thumbnail worker stopped")
}
