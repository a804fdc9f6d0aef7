package worker

import (
	"context"
	"time"

	"notifysvc/internal/deliverylog"
	"notifysvc/internal/event"
	"notifysvc/internal/logger"
	"notifysvc/internal/mailer"
	"notifysvc/internal/metrics"
	"notifysvc/internal/queue"

	"github.com/rs/zerolog"
)

const claimTimeout = 5 * time.Second

type JobQueue interface {
	Claim(ctx context.Context, timeout time.Duration) (*queue.Job, string, error)
	Ack(ctx context.Context, raw string) error
	Fail(ctx context.Context, job *queue.Job, raw string, cause error) error
}

type Resolver interface {
	Resolve(ctx context.Context, job *queue.Job) ([]string, error)
}

type DeliveryLog interface {
	Append(ctx context.Context, e deliverylog.Entry) error
}

// Worker claims email jobs, resolves recipients, and dispatches one
// message per recipient in resolution order. A bad mailbox is expected,
// isolated noise: it is logged and the remaining recipients still get
// their message, and the job completes. Only infrastructure failures
// (directory unreachable, queue transport) escalate to the retry policy,
// so a retried job is never resent because one mailbox bounced.
type Worker struct {
	id          int
	queue       JobQueue
	resolver    Resolver
	mailer      mailer.Mailer
	deliveryLog DeliveryLog
	log         zerolog.Logger
}

func New(id int, q JobQueue, r Resolver, m mailer.Mailer, dl DeliveryLog) *Worker {
	return &Worker{
		id:          id,
		queue:       q,
		resolver:    r,
		mailer:      m,
		deliveryLog: dl,
		log:         logger.Component("worker").With().Int("worker_id", id).Logger(),
	}
}

// Run claims and processes jobs until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	w.log.Info().Msg("worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("worker shutting down")
			return
		default:
		}

		job, raw, err := w.queue.Claim(ctx, claimTimeout)
		if err != nil {
			if ctx.Err() != nil {
				w.log.Info().Msg("worker shutting down")
				return
			}
			w.log.Error().Err(err).Msg("failed to claim job")
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue
		}

		if err := w.process(ctx, job); err != nil {
			if failErr := w.queue.Fail(ctx, job, raw, err); failErr != nil {
				w.log.Error().Err(failErr).Str("job_id", job.ID).Msg("failed to report job failure")
			}
			continue
		}

		if err := w.queue.Ack(ctx, raw); err != nil {
			w.log.Error().Err(err).Str("job_id", job.ID).Msg("failed to ack job")
		}
	}
}

// process runs one job attempt. A returned error is a job-level failure
// subject to the queue's retry policy; per-recipient outcomes never
// surface here.
func (w *Worker) process(ctx context.Context, job *queue.Job) error {
	w.log.Info().
		Str("job_id", job.ID).
		Str("type", job.Type).
		Str("entity_id", job.EntityID).
		Int("attempt", job.Attempt).
		Msg("processing email job")

	recipients, err := w.resolver.Resolve(ctx, job)
	if err != nil {
		return err
	}

	if len(recipients) == 0 {
		w.log.Warn().Str("job_id", job.ID).Msg("skipped, no valid recipients")
		return nil
	}

	msg := mailer.Build(event.Type(job.Type), job.EntityID)

	for _, to := range recipients {
		entry := deliverylog.Entry{
			Email:     to,
			EventType: job.Type,
			EntityID:  job.EntityID,
		}

		if sendErr := w.mailer.Send(ctx, to, msg.Subject, msg.Body); sendErr != nil {
			entry.Status = deliverylog.StatusFailed
			entry.Error = sendErr.Error()
			metrics.DeliveryAttempts.WithLabelValues(string(deliverylog.StatusFailed)).Inc()
			w.log.Error().
				Err(sendErr).
				Str("to", to).
				Str("type", job.Type).
				Str("entity_id", job.EntityID).
				Msg("email delivery failed")
		} else {
			entry.Status = deliverylog.StatusSent
			metrics.DeliveryAttempts.WithLabelValues(string(deliverylog.StatusSent)).Inc()
			w.log.Info().
				Str("to", to).
				Str("type", job.Type).
				Str("entity_id", job.EntityID).
				Msg("email sent")
		}

		// One log entry per attempt, before the next recipient. A log
		// insert failure stays inside the per-recipient boundary so it
		// cannot abort sibling deliveries.
		if logErr := w.deliveryLog.Append(ctx, entry); logErr != nil {
			w.log.Warn().Err(logErr).Str("to", to).Msg("delivery log append failed")
		}
	}

	return nil
}
