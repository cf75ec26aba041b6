package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	importservice "mentorbooking/internal/imports/service"
	"mentorbooking/internal/imports/storage"
	mentorrepo "mentorbooking/internal/mentors/repository"
	"mentorbooking/pkg/config"
	"mentorbooking/pkg/kafka"
	kafka_config "mentorbooking/pkg/kafka/config"
	kafka_middleware "mentorbooking/pkg/kafka/middleware"
	"mentorbooking/pkg/validation"
)

const ServiceName = "mentor-importer"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	objectStore, err := storage.NewGridFSStore(cfg.Client.Mongo.Database(cfg.MongoDatabaseName), cfg.ImportBucket)
	if err != nil {
		cfg.Log.Fatal("Failed to open import bucket", "bucket", cfg.ImportBucket, "error", err)
	}
	importer := importservice.NewImporter(objectStore,
		mentorrepo.NewMongoMentorRepository(cfg),
		validation.New(),
		cfg.Log,
	)

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	consumer, err := kafka.NewConsumer(kafkaCfg, cfg.Log, kafkaCfg.Imports, importer.Handle)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	}

	cfg.Log.Info("Starting mentor importer", "topic", kafkaCfg.Imports.Topic, "bucket", cfg.ImportBucket)
	startErr := consumer.Start(ctx)

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	if startErr != nil && !errors.Is(startErr, context.Canceled) {
		cfg.Log.Fatal("Import consumer stopped", "error", startErr)
	}
	cfg.Log.Info("Mentor importer stopped")
}
