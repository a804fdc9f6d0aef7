package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"notifysvc/internal/constants"
	"notifysvc/internal/failure"
	"notifysvc/internal/logger"
	"notifysvc/internal/metrics"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const promoteInterval = time.Second

// Commands is the subset of the Redis API the queue uses.
// *redis.Client satisfies it.
type Commands interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LRem(ctx context.Context, key string, count int64, value interface{}) *redis.IntCmd
	ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd
	ZRem(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	ZRangeByScore(ctx context.Context, key string, opt *redis.ZRangeBy) *redis.StringSliceCmd
	BRPopLPush(ctx context.Context, source, destination string, timeout time.Duration) *redis.StringCmd
	RPopLPush(ctx context.Context, source, destination string) *redis.StringCmd
	LLen(ctx context.Context, key string) *redis.IntCmd
}

// Queue is a named, durable, at-least-once work queue on Redis lists.
// Jobs wait in the ready list, sit in the processing list while a worker
// owns them, are parked in the delayed zset between retry attempts, and
// land in the failed list once the retry policy is exhausted. The failed
// list is kept for operator inspection and never purged by the service.
type Queue struct {
	client Commands
	name   string
	policy RetryPolicy
	clock  clockwork.Clock
	log    zerolog.Logger
}

func New(client Commands, name string, policy RetryPolicy, clock clockwork.Clock) *Queue {
	if policy.MaxAttempts <= 0 {
		policy = DefaultRetryPolicy()
	}

	return &Queue{
		client: client,
		name:   name,
		policy: policy,
		clock:  clock,
		log:    logger.Component("queue"),
	}
}

func (q *Queue) readyKey() string {
	return fmt.Sprintf(constants.RedisKeyQueueReady, q.name)
}

func (q *Queue) processingKey() string {
	return fmt.Sprintf(constants.RedisKeyQueueProcessing, q.name)
}

func (q *Queue) delayedKey() string {
	return fmt.Sprintf(constants.RedisKeyQueueDelayed, q.name)
}

func (q *Queue) failedKey() string {
	return fmt.Sprintf(constants.RedisKeyQueueFailed, q.name)
}

// Enqueue durably persists the job and returns once Redis acknowledges
// the push.
func (q *Queue) Enqueue(ctx context.Context, job Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Attempt == 0 {
		job.Attempt = 1
	}
	if job.MaxAttempts == 0 {
		job.MaxAttempts = q.policy.MaxAttempts
	}
	if job.CreatedAt == 0 {
		job.CreatedAt = q.clock.Now().UnixMilli()
	}

	raw, err := json.Marshal(job)
	if err != nil {
		return failure.EnqueueError.WithErr(err)
	}

	if err := q.client.LPush(ctx, q.readyKey(), raw).Err(); err != nil {
		return failure.EnqueueError.WithErr(err)
	}

	q.log.Info().
		Str("job_id", job.ID).
		Str("type", job.Type).
		Str("entity_id", job.EntityID).
		Msg("enqueued email job")

	return nil
}

// Claim blocks up to timeout for the next ready job and moves it to the
// processing list. A nil job with nil error means the wait timed out.
// The returned raw string must be passed back to Ack or Fail.
func (q *Queue) Claim(ctx context.Context, timeout time.Duration) (*Job, string, error) {
	raw, err := q.client.BRPopLPush(ctx, q.readyKey(), q.processingKey(), timeout).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, "", nil
		}
		return nil, "", err
	}

	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		// Undecodable entries cannot be retried meaningfully; park them
		// with the terminal failures so an operator can look at them.
		q.log.Error().Err(err).Msg("dropping undecodable queue entry")
		q.client.LRem(ctx, q.processingKey(), 1, raw)
		q.client.LPush(ctx, q.failedKey(), raw)
		return nil, "", nil
	}

	return &job, raw, nil
}

// Ack removes a claimed job from the processing list.
func (q *Queue) Ack(ctx context.Context, raw string) error {
	return q.client.LRem(ctx, q.processingKey(), 1, raw).Err()
}

// Fail reports a job-level failure. While attempts remain the job is
// parked in the delayed zset and re-delivered after the policy backoff;
// once exhausted it moves to the terminal failed list. The next step is
// always written before the processing claim is released: a crash or
// transport error between the two commands leaves a duplicate, never a
// lost job; the processing copy is recovered by RequeueOrphans.
func (q *Queue) Fail(ctx context.Context, job *Job, raw string, cause error) error {
	if q.policy.Exhausted(job.Attempt) {
		metrics.JobsFailed.Inc()
		q.log.Error().
			Err(cause).
			Str("job_id", job.ID).
			Int("attempt", job.Attempt).
			Msg("job failed terminally, attempts exhausted")

		if err := q.client.LPush(ctx, q.failedKey(), raw).Err(); err != nil {
			return err
		}
		return q.client.LRem(ctx, q.processingKey(), 1, raw).Err()
	}

	delay := q.policy.Delay(job.Attempt)
	retry := *job
	retry.Attempt++

	rescheduled, err := json.Marshal(retry)
	if err != nil {
		return err
	}

	readyAt := q.clock.Now().Add(delay)
	metrics.JobRetries.Inc()
	q.log.Warn().
		Err(cause).
		Str("job_id", job.ID).
		Int("attempt", job.Attempt).
		Dur("retry_in", delay).
		Msg("job failed, scheduling retry")

	if err := q.client.ZAdd(ctx, q.delayedKey(), redis.Z{
		Score:  float64(readyAt.UnixMilli()),
		Member: rescheduled,
	}).Err(); err != nil {
		return err
	}
	return q.client.LRem(ctx, q.processingKey(), 1, raw).Err()
}

// RunPromoter moves due delayed jobs back to the ready list until the
// context is cancelled.
func (q *Queue) RunPromoter(ctx context.Context) {
	ticker := q.clock.NewTicker(promoteInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if err := q.promoteDue(ctx); err != nil && !errors.Is(err, context.Canceled) {
				q.log.Error().Err(err).Msg("failed to promote delayed jobs")
			}
			if depth, err := q.FailedCount(ctx); err == nil {
				metrics.FailedJobsDepth.Set(float64(depth))
			}
		}
	}
}

func (q *Queue) promoteDue(ctx context.Context) error {
	now := strconv.FormatInt(q.clock.Now().UnixMilli(), 10)

	due, err := q.client.ZRangeByScore(ctx, q.delayedKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: now,
	}).Result()
	if err != nil {
		return err
	}

	for _, raw := range due {
		removed, err := q.client.ZRem(ctx, q.delayedKey(), raw).Result()
		if err != nil {
			return err
		}
		if removed == 0 {
			// another instance promoted it first
			continue
		}
		if err := q.client.LPush(ctx, q.readyKey(), raw).Err(); err != nil {
			return err
		}
		q.log.Debug().Msg("promoted delayed job")
	}

	return nil
}

// RequeueOrphans pushes jobs stranded in the processing list by a crashed
// worker back to the ready list. Called once on startup, before workers
// begin claiming.
func (q *Queue) RequeueOrphans(ctx context.Context) (int, error) {
	moved := 0
	for {
		_, err := q.client.RPopLPush(ctx, q.processingKey(), q.readyKey()).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return moved, nil
			}
			return moved, err
		}
		moved++
	}
}

// FailedCount reports the depth of the terminal failed list.
func (q *Queue) FailedCount(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.failedKey()).Result()
}
