package deliverylog

import (
	"context"
	"database/sql"

	"notifysvc/internal/failure"
)

type Status string

const (
	StatusSent   Status = "sent"
	StatusFailed Status = "failed"
)

// Entry records one delivery attempt. The table is a full history, not a
// current-state view: retried attempts append again.
type Entry struct {
	Email     string
	EventType string
	Status    Status
	Error     string
	EntityID  string
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append inserts one attempt record. Rows are never updated or deleted.
func (s *Store) Append(ctx context.Context, e Entry) error {
	var errText sql.NullString
	if e.Error != "" {
		errText = sql.NullString{String: e.Error, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO delivery_logs (email, event_type, status, error, entity_id)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.Email, e.EventType, e.Status, errText, e.EntityID)
	if err != nil {
		return failure.DeliveryLogError.WithErr(err)
	}
	return nil
}
