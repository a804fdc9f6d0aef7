package constants

const (
	ENV                      = "ENV"
	DEVELOPMENT              = "development"
	PORT                     = "PORT"
	DB_CONN                  = "DB_CONN"
	KAFKA_BROKERS            = "KAFKA_BROKERS"
	KAFKA_GROUP_ID           = "KAFKA_GROUP_ID"
	TOPICS                   = "TOPICS"
	REDIS_HOST               = "REDIS_HOST"
	REDIS_PORT               = "REDIS_PORT"
	REDIS_PASSWORD           = "REDIS_PASSWORD"
	SMTP_HOST                = "SMTP_HOST"
	SMTP_PORT                = "SMTP_PORT"
	SMTP_USER                = "SMTP_USER"
	SMTP_FROM                = "SMTP_FROM"
	SMTP_PASSWORD            = "SMTP_PASSWORD"
	QUEUE_MAX_ATTEMPTS       = "QUEUE_MAX_ATTEMPTS"
	QUEUE_BACKOFF_BASE_MS    = "QUEUE_BACKOFF_BASE_MS"
	WORKER_CONCURRENCY       = "WORKER_CONCURRENCY"
	CONSUMER_BACKOFF_BASE_MS = "CONSUMER_BACKOFF_BASE_MS"
	CONSUMER_BACKOFF_GROWTH  = "CONSUMER_BACKOFF_GROWTH"
	CONSUMER_BACKOFF_CAP_MS  = "CONSUMER_BACKOFF_CAP_MS"
	DENYLIST_ADDRESSES       = "DENYLIST_ADDRESSES"
	AUDIT_LOG_FILE           = "AUDIT_LOG_FILE"
)
