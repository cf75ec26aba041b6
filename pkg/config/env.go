package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvStoreReadTimeout  = "STORE_READ_TIMEOUT"
	EnvStoreWriteTimeout = "STORE_WRITE_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"
	EnvMaxUploadSize  = "MAX_UPLOAD_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvRedisAddr        = "REDIS_ADDR"
	EnvRedisPassword    = "REDIS_PASSWORD"
	EnvRedisDB          = "REDIS_DB"
	EnvRedisConnTimeout = "REDIS_CONN_TIMEOUT"

	EnvJWTSecret = "JWT_SECRET"
	EnvJWTIssuer = "JWT_ISSUER"

	EnvMentorsCollection   = "MENTORS_COLLECTION"
	EnvTimeSlotsCollection = "TIME_SLOTS_COLLECTION"
	EnvBookingsCollection  = "BOOKINGS_COLLECTION"

	EnvMentorBookingTemplate  = "MENTOR_BOOKING_TEMPLATE"
	EnvStudentBookingTemplate = "STUDENT_BOOKING_TEMPLATE"

	EnvImportBucket = "IMPORT_BUCKET"

	EnvNotificationsEmail        = "NOTIFICATIONS_EMAIL"
	EnvGmailCredentialsPath      = "GMAIL_CREDENTIALS_PATH"
	EnvGmailTokenPath            = "GMAIL_TOKEN_PATH"
	EnvEmailSendInterval         = "EMAIL_SEND_INTERVAL"
	EnvNotificationTemplatesPath = "NOTIFICATION_TEMPLATES_PATH"
)
