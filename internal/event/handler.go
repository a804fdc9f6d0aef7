package event

import (
	"context"

	"notifysvc/internal/logger"
	"notifysvc/internal/metrics"
	"notifysvc/internal/queue"

	"github.com/rs/zerolog"
)

type Enqueuer interface {
	Enqueue(ctx context.Context, job queue.Job) error
}

type AuditTrail interface {
	Append(topic string, payload []byte) error
}

// Handler turns one broker record into one queued email job. Every
// failure mode is absorbed here: an unreadable payload, an unmapped
// topic, or an unreachable queue must never stop consumption of the
// records that follow.
type Handler struct {
	enqueuer Enqueuer
	audit    AuditTrail
	log      zerolog.Logger
}

func NewHandler(enqueuer Enqueuer, audit AuditTrail) *Handler {
	return &Handler{
		enqueuer: enqueuer,
		audit:    audit,
		log:      logger.Component("kafka"),
	}
}

func (h *Handler) Handle(ctx context.Context, topic string, value []byte) {
	metrics.EventsConsumed.WithLabelValues(topic).Inc()

	if err := h.audit.Append(topic, value); err != nil {
		h.log.Warn().Err(err).Str("topic", topic).Msg("audit file append failed")
	}

	eventType := ForTopic(topic)
	if eventType == TypeUnmapped {
		metrics.RecordsDiscarded.WithLabelValues("unmapped_topic").Inc()
		h.log.Debug().Str("topic", topic).Msg("unmapped topic, record dropped")
		return
	}

	env, err := Decode(value)
	if err != nil {
		metrics.RecordsDiscarded.WithLabelValues("malformed_payload").Inc()
		h.log.Warn().Err(err).Str("topic", topic).Msg("payload parse failed, record discarded")
		return
	}

	h.log.Info().
		Str("topic", topic).
		Str("entity_id", env.ID).
		Msg("event ingested")

	job := queue.Job{
		Type:     string(eventType),
		EntityID: env.ID,
		Payload:  env.Data,
		UserIDs:  env.UserIDs,
		Emails:   env.Emails,
	}

	if err := h.enqueuer.Enqueue(ctx, job); err != nil {
		h.log.Error().
			Err(err).
			Str("topic", topic).
			Str("entity_id", env.ID).
			Msg("enqueue failed, continuing consumption")
		return
	}

	metrics.JobsEnqueued.WithLabelValues(string(eventType)).Inc()
}
