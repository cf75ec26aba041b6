package kafka_config

const (
	EnvKafkaBrokers = "KAFKA_BROKERS"

	// Streams
	EnvNotificationsTopic   = "NOTIFICATIONS_TOPIC"
	EnvNotificationsDLQ     = "NOTIFICATIONS_DLQ_TOPIC"
	EnvNotificationsGroupID = "NOTIFICATIONS_GROUP_ID"

	EnvImportsTopic   = "IMPORTS_TOPIC"
	EnvImportsDLQ     = "IMPORTS_DLQ_TOPIC"
	EnvImportsGroupID = "IMPORTS_GROUP_ID"

	// Publishing (booking-api)
	EnvKafkaRequireAcks = "KAFKA_REQUIRE_ACKS"
	EnvKafkaCompression = "KAFKA_COMPRESSION"
	EnvKafkaMaxAttempts = "KAFKA_MAX_ATTEMPTS"

	// Consuming (notifications, mentor-importer)
	EnvKafkaStartOffset    = "KAFKA_START_OFFSET"
	EnvKafkaSessionTimeout = "KAFKA_SESSION_TIMEOUT"
	EnvKafkaHandlerRetries = "KAFKA_HANDLER_RETRIES"
	EnvKafkaRetryBackoff   = "KAFKA_RETRY_BACKOFF"

	EnvKafkaEnableMiddleware = "KAFKA_ENABLE_MIDDLEWARE"
)
