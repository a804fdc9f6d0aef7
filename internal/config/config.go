package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"notifysvc/internal/constants"
	"notifysvc/internal/failure"
	"notifysvc/internal/logger"

	"github.com/joho/godotenv"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	From     string
	Password string
}

type QueueConfig struct {
	MaxAttempts int
	BackoffBase time.Duration
	Concurrency int
}

type SupervisorConfig struct {
	BaseDelay time.Duration
	Growth    float64
	MaxDelay  time.Duration
}

type Config struct {
	Port         string
	DatabaseURL  string
	KafkaBrokers []string
	GroupID      string
	Topics       []string
	RedisConfig  RedisConfig
	SMTPConfig   SMTPConfig
	QueueConfig  QueueConfig
	Supervisor   SupervisorConfig
	Denylist     []string
	AuditLogFile string
}

func IsDevelopment() bool {
	return getEnv(constants.ENV, constants.DEVELOPMENT) == constants.DEVELOPMENT
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg(failure.EnvironmentLocalFileError.Message)
	}

	port := os.Getenv(constants.PORT)
	if port == "" {
		port = "5003"
		failure.EnvironmentPortError.Warn()
	}

	redisConfig := RedisConfig{
		Host:     getEnv(constants.REDIS_HOST, "localhost"),
		Port:     getEnv(constants.REDIS_PORT, "6379"),
		Password: getEnv(constants.REDIS_PASSWORD, ""),
		DB:       0,
	}

	smtpConfig := SMTPConfig{
		Host:     getEnv(constants.SMTP_HOST, "smtp.gmail.com"),
		Port:     getEnv(constants.SMTP_PORT, "587"),
		User:     getEnv(constants.SMTP_USER, "noreply"),
		From:     getEnv(constants.SMTP_FROM, "noreply@yourapp.com"),
		Password: getEnv(constants.SMTP_PASSWORD, ""),
	}

	queueConfig := QueueConfig{
		MaxAttempts: getEnvInt(constants.QUEUE_MAX_ATTEMPTS, 3),
		BackoffBase: getEnvMillis(constants.QUEUE_BACKOFF_BASE_MS, 5000),
		Concurrency: getEnvInt(constants.WORKER_CONCURRENCY, 1),
	}

	supervisorConfig := SupervisorConfig{
		BaseDelay: getEnvMillis(constants.CONSUMER_BACKOFF_BASE_MS, 2000),
		Growth:    getEnvFloat(constants.CONSUMER_BACKOFF_GROWTH, 1.5),
		MaxDelay:  getEnvMillis(constants.CONSUMER_BACKOFF_CAP_MS, 15000),
	}

	brokers := splitList(getEnv(constants.KAFKA_BROKERS, "localhost:9092"))
	if len(brokers) == 0 {
		failure.EnvironmentBrokersError.LogFatal()
	}
	topics := splitList(getEnv(constants.TOPICS, "passport.created,passport.updated,passport.deleted"))
	denylist := splitList(getEnv(constants.DENYLIST_ADDRESSES, "you@example.com,test@example.com,example@example.com"))

	return &Config{
		Port:         port,
		DatabaseURL:  getEnv(constants.DB_CONN, ""),
		KafkaBrokers: brokers,
		GroupID:      getEnv(constants.KAFKA_GROUP_ID, "notification-service"),
		Topics:       topics,
		RedisConfig:  redisConfig,
		SMTPConfig:   smtpConfig,
		QueueConfig:  queueConfig,
		Supervisor:   supervisorConfig,
		Denylist:     denylist,
		AuditLogFile: getEnv(constants.AUDIT_LOG_FILE, "notifications.log"),
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		logger.Warn().Str("key", key).Str("value", value).Msg("invalid integer env value, using default")
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logger.Warn().Str("key", key).Str("value", value).Msg("invalid float env value, using default")
		return defaultValue
	}
	return parsed
}

func getEnvMillis(key string, defaultValue int) time.Duration {
	return time.Duration(getEnvInt(key, defaultValue)) * time.Millisecond
}
