package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"mentorbooking/pkg/client"
	"mentorbooking/pkg/logger"

	"github.com/joho/godotenv"
)

const minJWTSecretLength = 16

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	StoreReadTimeout  time.Duration
	StoreWriteTimeout time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int
	MaxUploadSize  int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RedisConnTimeout time.Duration

	JWTSecret string
	JWTIssuer string

	MentorsCollection   string
	TimeSlotsCollection string
	BookingsCollection  string

	MentorBookingTemplate  string
	StudentBookingTemplate string

	ImportBucket string

	NotificationsEmail        string
	GmailCredentialsPath      string
	GmailTokenPath            string
	EmailSendInterval         time.Duration
	NotificationTemplatesPath string

	Log    *logger.Logger
	Client *client.Client
}

// Load reads the environment (and a .env file when present), validates the
// result and exits on invalid configuration.
func Load(serviceName string) *Config {
	_ = godotenv.Load()

	cfg := FromEnv(serviceName)
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func FromEnv(serviceName string) *Config {
	return &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		StoreReadTimeout:  getEnvDuration(EnvStoreReadTimeout, DefaultStoreReadTimeout),
		StoreWriteTimeout: getEnvDuration(EnvStoreWriteTimeout, DefaultStoreWriteTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),
		MaxUploadSize:  getEnvNum(EnvMaxUploadSize, DefaultMaxUploadSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		RedisAddr:        getEnvStr(EnvRedisAddr, ""),
		RedisPassword:    getEnvStr(EnvRedisPassword, ""),
		RedisDB:          getEnvNum(EnvRedisDB, DefaultRedisDB),
		RedisConnTimeout: getEnvDuration(EnvRedisConnTimeout, DefaultRedisConnTimeout),

		JWTSecret: getEnvStr(EnvJWTSecret, ""),
		JWTIssuer: getEnvStr(EnvJWTIssuer, DefaultJWTIssuer),

		MentorsCollection:   getEnvStr(EnvMentorsCollection, DefaultMentorsCollection),
		TimeSlotsCollection: getEnvStr(EnvTimeSlotsCollection, DefaultTimeSlotsCollection),
		BookingsCollection:  getEnvStr(EnvBookingsCollection, DefaultBookingsCollection),

		MentorBookingTemplate:  getEnvStr(EnvMentorBookingTemplate, DefaultMentorBookingTemplate),
		StudentBookingTemplate: getEnvStr(EnvStudentBookingTemplate, DefaultStudentBookingTemplate),

		ImportBucket: getEnvStr(EnvImportBucket, DefaultImportBucket),

		NotificationsEmail:        getEnvStr(EnvNotificationsEmail, ""),
		GmailCredentialsPath:      getEnvStr(EnvGmailCredentialsPath, ""),
		GmailTokenPath:            getEnvStr(EnvGmailTokenPath, ""),
		EmailSendInterval:         getEnvDuration(EnvEmailSendInterval, DefaultEmailSendInterval),
		NotificationTemplatesPath: getEnvStr(EnvNotificationTemplatesPath, ""),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// SetRedis connects only when REDIS_ADDR is configured. Callers fall back to
// in-process stores otherwise.
func (cfg *Config) SetRedis() {
	if cfg.RedisAddr == "" {
		cfg.Log.Info("Redis address not configured, using in-memory stores")
		return
	}
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"StoreReadTimeout", cfg.StoreReadTimeout},
		{"StoreWriteTimeout", cfg.StoreWriteTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"RedisConnTimeout", cfg.RedisConnTimeout},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}
	if cfg.EmailSendInterval < 0 {
		errors = append(errors, fmt.Sprintf("EmailSendInterval cannot be negative, got: %s", cfg.EmailSendInterval))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.MaxUploadSize < cfg.MaxRequestSize {
		errors = append(errors, fmt.Sprintf("MaxUploadSize (%d) must be >= MaxRequestSize (%d)", cfg.MaxUploadSize, cfg.MaxRequestSize))
	}
	if cfg.RedisDB < 0 {
		errors = append(errors, fmt.Sprintf("RedisDB cannot be negative, got: %d", cfg.RedisDB))
	}

	required := []struct {
		name  string
		value string
	}{
		{"MentorsCollection", cfg.MentorsCollection},
		{"TimeSlotsCollection", cfg.TimeSlotsCollection},
		{"BookingsCollection", cfg.BookingsCollection},
		{"MentorBookingTemplate", cfg.MentorBookingTemplate},
		{"StudentBookingTemplate", cfg.StudentBookingTemplate},
		{"ImportBucket", cfg.ImportBucket},
	}
	for _, r := range required {
		if r.value == "" {
			errors = append(errors, fmt.Sprintf("%s cannot be empty", r.name))
		}
	}

	return validationError(errors)
}

// ValidateAuth is required by services that verify bearer tokens.
func (cfg *Config) ValidateAuth() error {
	var errors []string
	if len(cfg.JWTSecret) < minJWTSecretLength {
		errors = append(errors, fmt.Sprintf("JWTSecret must be at least %d characters", minJWTSecretLength))
	}
	return validationError(errors)
}

// ValidateEmailDelivery is required by the notification worker.
func (cfg *Config) ValidateEmailDelivery() error {
	var errors []string
	if cfg.NotificationsEmail == "" {
		errors = append(errors, "NotificationsEmail cannot be empty")
	}
	if cfg.GmailCredentialsPath == "" {
		errors = append(errors, "GmailCredentialsPath cannot be empty")
	}
	if cfg.GmailTokenPath == "" {
		errors = append(errors, "GmailTokenPath cannot be empty")
	}
	return validationError(errors)
}

func validationError(errors []string) error {
	if len(errors) == 0 {
		return nil
	}
	errMsg := "Configuration validation failed:\n"
	for i, err := range errors {
		errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
	}
	return fmt.Errorf("%s", errMsg)
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"store_read_timeout", cfg.StoreReadTimeout,
		"store_write_timeout", cfg.StoreWriteTimeout,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"max_upload_size", cfg.MaxUploadSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"redis_addr", cfg.RedisAddr,
		"redis_password_set", cfg.RedisPassword != "",
		"jwt_secret_set", cfg.JWTSecret != "",
		"mentors_collection", cfg.MentorsCollection,
		"time_slots_collection", cfg.TimeSlotsCollection,
		"bookings_collection", cfg.BookingsCollection,
		"mentor_booking_template", cfg.MentorBookingTemplate,
		"student_booking_template", cfg.StudentBookingTemplate,
		"import_bucket", cfg.ImportBucket,
		"notifications_email", cfg.NotificationsEmail,
		"email_send_interval", cfg.EmailSendInterval,
		"notification_templates_path", cfg.NotificationTemplatesPath,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}
