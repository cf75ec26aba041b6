package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"mentorbooking/internal/notifications"
	"mentorbooking/pkg/config"
	"mentorbooking/pkg/kafka"
	kafka_config "mentorbooking/pkg/kafka/config"
	kafka_middleware "mentorbooking/pkg/kafka/middleware"
	"mentorbooking/pkg/validation"
)

const ServiceName = "notifications"

func main() {
	cfg := config.Load(ServiceName)
	if err := cfg.ValidateEmailDelivery(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalogue, err := notifications.LoadCatalogue(cfg.NotificationTemplatesPath)
	if err != nil {
		cfg.Log.Fatal("Failed to load notification templates", "error", err)
	}
	for _, id := range []string{cfg.MentorBookingTemplate, cfg.StudentBookingTemplate} {
		if !catalogue.Has(id) {
			cfg.Log.Fatal("Notification template missing from catalogue", "template_id", id)
		}
	}

	sender, err := notifications.NewGmailSender(ctx,
		cfg.GmailCredentialsPath,
		cfg.GmailTokenPath,
		cfg.NotificationsEmail,
		cfg.EmailSendInterval,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Gmail sender", "error", err)
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	worker := notifications.NewWorker(catalogue, sender, validation.New(), cfg.Log)
	consumer, err := kafka.NewConsumer(kafkaCfg, cfg.Log, kafkaCfg.Notifications, worker.Handle)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	}

	cfg.Log.Info("Starting notification worker", "topic", kafkaCfg.Notifications.Topic)
	startErr := consumer.Start(ctx)

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	if startErr != nil && !errors.Is(startErr, context.Canceled) {
		cfg.Log.Fatal("Notification consumer stopped", "error", startErr)
	}
	cfg.Log.Info("Notification worker stopped")
}
