package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "mentor_booking"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultStoreReadTimeout  = 5 * time.Second
	DefaultStoreWriteTimeout = 5 * time.Second

	DefaultPort = "8080"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB
	DefaultMaxUploadSize  = 10 * 1024 * 1024

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultRedisDB          = 0
	DefaultRedisConnTimeout = 2 * time.Second

	DefaultMentorsCollection   = "mentors"
	DefaultTimeSlotsCollection = "time_slots"
	DefaultBookingsCollection  = "bookings"

	DefaultMentorBookingTemplate  = "MentorBookingTemplate"
	DefaultStudentBookingTemplate = "StudentBookingTemplate"

	DefaultImportBucket = "mentor_imports"

	DefaultEmailSendInterval = 3 * time.Second

	DefaultJWTIssuer = "mentorbooking"

	DefaultLogLevel = "info"
)
