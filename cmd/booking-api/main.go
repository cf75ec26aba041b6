package main

import (
	bookinghandler "mentorbooking/internal/bookings/handler"
	bookingrepo "mentorbooking/internal/bookings/repository"
	bookingservice "mentorbooking/internal/bookings/service"
	importhandler "mentorbooking/internal/imports/handler"
	importservice "mentorbooking/internal/imports/service"
	"mentorbooking/internal/imports/storage"
	mentorhandler "mentorbooking/internal/mentors/handler"
	mentorrepo "mentorbooking/internal/mentors/repository"
	mentorservice "mentorbooking/internal/mentors/service"
	"mentorbooking/internal/notifications"
	timeslothandler "mentorbooking/internal/timeslots/handler"
	timeslotrepo "mentorbooking/internal/timeslots/repository"
	timeslotservice "mentorbooking/internal/timeslots/service"
	"mentorbooking/pkg/app"
	"mentorbooking/pkg/config"
	"mentorbooking/pkg/kafka"
	kafka_config "mentorbooking/pkg/kafka/config"
	kafka_middleware "mentorbooking/pkg/kafka/middleware"
	"mentorbooking/pkg/validation"
)

const ServiceName = "booking-api"

func main() {
	cfg := config.Load(ServiceName)
	if err := cfg.ValidateAuth(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.Log.Info("Starting Booking API service")
	cfg.SetMongo()
	cfg.SetRedis()

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	notificationsProducer := newProducer(cfg, kafkaCfg, kafkaCfg.Notifications)
	importsProducer := newProducer(cfg, kafkaCfg, kafkaCfg.Imports)

	validator := validation.New()

	mentorRepo := mentorrepo.NewMongoMentorRepository(cfg)
	timeSlotRepo := timeslotrepo.NewMongoTimeSlotRepository(cfg)
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)

	mentorService := mentorservice.NewMentorService(mentorRepo, validator, cfg)
	timeSlotService := timeslotservice.NewTimeSlotService(timeSlotRepo, mentorService, cfg)
	bookingService := bookingservice.NewBookingService(
		mentorRepo,
		timeSlotRepo,
		bookingRepo,
		notifications.NewKafkaDispatcher(notificationsProducer),
		validator,
		cfg,
	)

	objectStore, err := storage.NewGridFSStore(cfg.Client.Mongo.Database(cfg.MongoDatabaseName), cfg.ImportBucket)
	if err != nil {
		cfg.Log.Fatal("Failed to open import bucket", "bucket", cfg.ImportBucket, "error", err)
	}
	uploadService := importservice.NewUploadService(objectStore, importsProducer, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication(cfg).WithUploadPaths(importhandler.ImportMentorsPath)
	serverApp.OnShutdown(notificationsProducer)
	serverApp.OnShutdown(importsProducer)
	serverApp.SetApp(
		mentorhandler.NewMentorHandler(mentorService, cfg.Log),
		timeslothandler.NewTimeSlotHandler(timeSlotService, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
		importhandler.NewImportHandler(uploadService, cfg.Log),
	)
	serverApp.Run()
}

func newProducer(cfg *config.Config, kafkaCfg *kafka_config.Config, stream kafka_config.Stream) *kafka.Producer {
	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log, stream)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "stream", stream.Name, "topic", stream.Topic, "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}
	return producer
}
