package kafka_config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"mentorbooking/pkg/logger"
)

// Stream is one booking pipeline on the bus: the topic events are
// published to, the topic its poison messages are parked on, and the
// consumer group that drains it.
type Stream struct {
	Name    string
	Topic   string
	DLQ     string
	GroupID string
}

func (s Stream) validate() []string {
	var errs []string
	if s.Topic == "" {
		errs = append(errs, fmt.Sprintf("%s topic cannot be empty", s.Name))
	}
	if s.GroupID == "" {
		errs = append(errs, fmt.Sprintf("%s group ID cannot be empty", s.Name))
	}
	if s.DLQ != "" && s.DLQ == s.Topic {
		errs = append(errs, fmt.Sprintf("%s DLQ must differ from its topic, got: %s", s.Name, s.DLQ))
	}
	return errs
}

// Config holds the broker connection, the two booking streams, and the
// client settings shared by the booking-api producers and the worker consumers.
type Config struct {
	Brokers []string

	Notifications Stream
	Imports       Stream

	RequireAcks int    // -1 = all, 0 = none, 1 = leader only
	Compression string // "none", "gzip", "snappy", "lz4", "zstd"
	MaxAttempts int

	StartOffset    int64 // -1 = newest, -2 = oldest
	SessionTimeout time.Duration
	HandlerRetries int
	RetryBackoff   time.Duration

	EnableMiddleware bool
}

// Load creates a Kafka config from environment variables
func Load() (*Config, error) {
	brokers := strings.Split(getEnvStr(EnvKafkaBrokers, DefaultKafkaBrokers), ",")
	for i, broker := range brokers {
		brokers[i] = strings.TrimSpace(broker)
	}

	cfg := &Config{
		Brokers: brokers,

		Notifications: Stream{
			Name:    "notifications",
			Topic:   getEnvStr(EnvNotificationsTopic, DefaultNotificationsTopic),
			DLQ:     getEnvStr(EnvNotificationsDLQ, DefaultNotificationsDLQ),
			GroupID: getEnvStr(EnvNotificationsGroupID, DefaultNotificationsGroupID),
		},
		Imports: Stream{
			Name:    "imports",
			Topic:   getEnvStr(EnvImportsTopic, DefaultImportsTopic),
			DLQ:     getEnvStr(EnvImportsDLQ, DefaultImportsDLQ),
			GroupID: getEnvStr(EnvImportsGroupID, DefaultImportsGroupID),
		},

		RequireAcks: getEnvInt(EnvKafkaRequireAcks, DefaultRequireAcks),
		Compression: getEnvStr(EnvKafkaCompression, DefaultCompression),
		MaxAttempts: getEnvInt(EnvKafkaMaxAttempts, DefaultMaxAttempts),

		StartOffset:    getEnvInt64(EnvKafkaStartOffset, DefaultStartOffset),
		SessionTimeout: getEnvDuration(EnvKafkaSessionTimeout, DefaultSessionTimeout),
		HandlerRetries: getEnvInt(EnvKafkaHandlerRetries, DefaultHandlerRetries),
		RetryBackoff:   getEnvDuration(EnvKafkaRetryBackoff, DefaultRetryBackoff),

		EnableMiddleware: getEnvBool(EnvKafkaEnableMiddleware, DefaultEnableMiddleware),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}

	return cfg, nil
}

// Validate validates the Kafka configuration
func (cfg *Config) Validate() error {
	var errors []string

	if len(cfg.Brokers) == 0 {
		errors = append(errors, "At least one Kafka broker is required")
	}
	for i, broker := range cfg.Brokers {
		if broker == "" {
			errors = append(errors, fmt.Sprintf("Broker %d cannot be empty", i))
		}
	}

	errors = append(errors, cfg.Notifications.validate()...)
	errors = append(errors, cfg.Imports.validate()...)
	if cfg.Notifications.Topic != "" && cfg.Notifications.Topic == cfg.Imports.Topic {
		errors = append(errors, fmt.Sprintf("notifications and imports cannot share topic %s", cfg.Imports.Topic))
	}
	if cfg.Notifications.GroupID != "" && cfg.Notifications.GroupID == cfg.Imports.GroupID {
		errors = append(errors, fmt.Sprintf("notifications and imports cannot share group ID %s", cfg.Imports.GroupID))
	}

	validAcks := map[int]bool{-1: true, 0: true, 1: true}
	if !validAcks[cfg.RequireAcks] {
		errors = append(errors, fmt.Sprintf("RequireAcks must be -1, 0, or 1, got: %d", cfg.RequireAcks))
	}

	validCompressions := map[string]bool{
		"none": true, "gzip": true, "snappy": true, "lz4": true, "zstd": true,
	}
	if !validCompressions[cfg.Compression] {
		errors = append(errors, fmt.Sprintf("Compression must be one of [none, gzip, snappy, lz4, zstd], got: %s", cfg.Compression))
	}

	if cfg.MaxAttempts <= 0 {
		errors = append(errors, fmt.Sprintf("MaxAttempts must be positive, got: %d", cfg.MaxAttempts))
	}

	if cfg.StartOffset != -1 && cfg.StartOffset != -2 {
		errors = append(errors, fmt.Sprintf("StartOffset must be -1 (newest) or -2 (oldest), got: %d", cfg.StartOffset))
	}

	if cfg.SessionTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("SessionTimeout must be positive, got: %s", cfg.SessionTimeout))
	}

	if cfg.HandlerRetries < 0 {
		errors = append(errors, fmt.Sprintf("HandlerRetries cannot be negative, got: %d", cfg.HandlerRetries))
	}

	if cfg.RetryBackoff <= 0 {
		errors = append(errors, fmt.Sprintf("RetryBackoff must be positive, got: %s", cfg.RetryBackoff))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration(log *logger.Logger) {
	log.Info("Kafka configuration loaded successfully",
		"brokers", cfg.Brokers,
		"notifications_topic", cfg.Notifications.Topic,
		"notifications_dlq", cfg.Notifications.DLQ,
		"imports_topic", cfg.Imports.Topic,
		"imports_dlq", cfg.Imports.DLQ,
		"require_acks", cfg.RequireAcks,
		"compression", cfg.Compression,
		"start_offset", cfg.StartOffset,
		"handler_retries", cfg.HandlerRetries,
		"retry_backoff", cfg.RetryBackoff,
		"enable_middleware", cfg.EnableMiddleware,
	)
}

func getEnvStr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if int64Value, err := strconv.ParseInt(value, 10, 64); err == nil {
			return int64Value
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
