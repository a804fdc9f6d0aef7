package config

import (
	"testing"
	"time"

	"notifysvc/internal/logger"
)

func init() {
	logger.Init(false)
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "5003" {
		t.Errorf("expected default port '5003', got '%s'", cfg.Port)
	}
	if cfg.GroupID != "notification-service" {
		t.Errorf("expected default group id, got '%s'", cfg.GroupID)
	}
	if len(cfg.KafkaBrokers) != 1 || cfg.KafkaBrokers[0] != "localhost:9092" {
		t.Errorf("expected default broker, got %v", cfg.KafkaBrokers)
	}
	if len(cfg.Topics) != 3 {
		t.Errorf("expected 3 default topics, got %v", cfg.Topics)
	}
	if cfg.QueueConfig.MaxAttempts != 3 {
		t.Errorf("expected 3 max attempts, got %d", cfg.QueueConfig.MaxAttempts)
	}
	if cfg.QueueConfig.BackoffBase != 5*time.Second {
		t.Errorf("expected 5s backoff base, got %v", cfg.QueueConfig.BackoffBase)
	}
	if cfg.QueueConfig.Concurrency != 1 {
		t.Errorf("expected 1 worker by default, got %d", cfg.QueueConfig.Concurrency)
	}
	if cfg.Supervisor.BaseDelay != 2*time.Second {
		t.Errorf("expected 2s supervisor base, got %v", cfg.Supervisor.BaseDelay)
	}
	if cfg.Supervisor.Growth != 1.5 {
		t.Errorf("expected 1.5 growth, got %v", cfg.Supervisor.Growth)
	}
	if cfg.Supervisor.MaxDelay != 15*time.Second {
		t.Errorf("expected 15s cap, got %v", cfg.Supervisor.MaxDelay)
	}
	if len(cfg.Denylist) != 3 {
		t.Errorf("expected 3 denylisted addresses, got %v", cfg.Denylist)
	}
	if cfg.AuditLogFile != "notifications.log" {
		t.Errorf("expected default audit file, got '%s'", cfg.AuditLogFile)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOPICS", "orders.created , orders.deleted,")
	t.Setenv("QUEUE_MAX_ATTEMPTS", "5")
	t.Setenv("CONSUMER_BACKOFF_GROWTH", "2.0")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port '9090', got '%s'", cfg.Port)
	}
	if len(cfg.Topics) != 2 || cfg.Topics[0] != "orders.created" || cfg.Topics[1] != "orders.deleted" {
		t.Errorf("expected trimmed topic list, got %v", cfg.Topics)
	}
	if cfg.QueueConfig.MaxAttempts != 5 {
		t.Errorf("expected 5 max attempts, got %d", cfg.QueueConfig.MaxAttempts)
	}
	if cfg.Supervisor.Growth != 2.0 {
		t.Errorf("expected growth 2.0, got %v", cfg.Supervisor.Growth)
	}
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("QUEUE_MAX_ATTEMPTS", "many")
	t.Setenv("CONSUMER_BACKOFF_GROWTH", "fast")

	cfg := Load()

	if cfg.QueueConfig.MaxAttempts != 3 {
		t.Errorf("expected fallback to 3 attempts, got %d", cfg.QueueConfig.MaxAttempts)
	}
	if cfg.Supervisor.Growth != 1.5 {
		t.Errorf("expected fallback growth 1.5, got %v", cfg.Supervisor.Growth)
	}
}

func TestIsDevelopment(t *testing.T) {
	t.Setenv("ENV", "")
	if !IsDevelopment() {
		t.Error("expected development mode when ENV is unset")
	}

	t.Setenv("ENV", "production")
	if IsDevelopment() {
		t.Error("expected production mode when ENV=production")
	}

	t.Setenv("ENV", "staging")
	if IsDevelopment() {
		t.Error("expected non-development mode when ENV=staging")
	}
}

func TestGetEnvFallback(t *testing.T) {
	if got := getEnv("NONEXISTENT_VAR_12345", "fallback"); got != "fallback" {
		t.Errorf("expected 'fallback', got '%s'", got)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a@b.c ,, d@e.f ")
	if len(got) != 2 || got[0] != "a@b.c" || got[1] != "d@e.f" {
		t.Errorf("unexpected list: %v", got)
	}
}
