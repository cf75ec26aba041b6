package kafka_config

import "time"

const (
	DefaultKafkaBrokers = "localhost:9092"

	DefaultNotificationsTopic   = "booking-notifications"
	DefaultNotificationsDLQ     = "booking-notifications-dlq"
	DefaultNotificationsGroupID = "notifications-worker"

	DefaultImportsTopic   = "mentor-imports"
	DefaultImportsDLQ     = "mentor-imports-dlq"
	DefaultImportsGroupID = "mentor-importer"

	// A booking is only reported as created once every replica has its notification.
	DefaultRequireAcks = -1
	DefaultCompression = "snappy"
	DefaultMaxAttempts = 3

	// Oldest, so a fresh consumer group still delivers notifications queued before it joined.
	DefaultStartOffset    = -2
	DefaultSessionTimeout = 10 * time.Second
	DefaultHandlerRetries = 3
	DefaultRetryBackoff   = 500 * time.Millisecond

	DefaultEnableMiddleware = true
)
