package queue

import (
	"encoding/json"
	"time"
)

const EmailQueue = "emailQueue"

// Job is the descriptor handed to the queue once per accepted event.
// It is never mutated after enqueue; only the attempt counter advances
// between re-deliveries.
type Job struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	EntityID    string          `json:"entity_id"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	UserIDs     []string        `json:"user_ids,omitempty"`
	Emails      []string        `json:"emails,omitempty"`
	Attempt     int             `json:"attempt"`
	MaxAttempts int             `json:"max_attempts"`
	CreatedAt   int64           `json:"created_at"`
}

type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   5 * time.Second,
	}
}

// Delay returns the re-delivery delay after the given attempt failed:
// BaseDelay doubled for every attempt past the first.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := p.BaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}
	return delay
}

// Exhausted reports whether a job that failed on the given attempt has
// no attempts remaining.
func (p RetryPolicy) Exhausted(attempt int) bool {
	return attempt >= p.MaxAttempts
}
