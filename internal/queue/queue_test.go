package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"notifysvc/internal/logger"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
)

func init() {
	logger.Init(false)
}

// fakeCommands records every mutating command in call order so tests can
// assert the durability ordering of the queue.
type fakeCommands struct {
	ops      []string
	pushed   map[string][]string
	zadded   []redis.Z
	claimed  string
	lpushErr error
	lremErr  error
	zaddErr  error
}

func newFakeCommands() *fakeCommands {
	return &fakeCommands{pushed: map[string][]string{}}
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return ""
	}
}

func (f *fakeCommands) LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.lpushErr != nil {
		cmd.SetErr(f.lpushErr)
		return cmd
	}
	f.ops = append(f.ops, "lpush "+key)
	for _, v := range values {
		f.pushed[key] = append(f.pushed[key], asString(v))
	}
	cmd.SetVal(int64(len(values)))
	return cmd
}

func (f *fakeCommands) LRem(ctx context.Context, key string, count int64, value interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.lremErr != nil {
		cmd.SetErr(f.lremErr)
		return cmd
	}
	f.ops = append(f.ops, "lrem "+key)
	cmd.SetVal(1)
	return cmd
}

func (f *fakeCommands) ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.zaddErr != nil {
		cmd.SetErr(f.zaddErr)
		return cmd
	}
	f.ops = append(f.ops, "zadd "+key)
	f.zadded = append(f.zadded, members...)
	cmd.SetVal(int64(len(members)))
	return cmd
}

func (f *fakeCommands) ZRem(ctx context.Context, key string, members ...interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	f.ops = append(f.ops, "zrem "+key)
	cmd.SetVal(1)
	return cmd
}

func (f *fakeCommands) ZRangeByScore(ctx context.Context, key string, _ *redis.ZRangeBy) *redis.StringSliceCmd {
	cmd := redis.NewStringSliceCmd(ctx)
	cmd.SetVal(nil)
	return cmd
}

func (f *fakeCommands) BRPopLPush(ctx context.Context, source, destination string, _ time.Duration) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if f.claimed == "" {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(f.claimed)
	return cmd
}

func (f *fakeCommands) RPopLPush(ctx context.Context, source, destination string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	cmd.SetErr(redis.Nil)
	return cmd
}

func (f *fakeCommands) LLen(ctx context.Context, key string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(int64(len(f.pushed[key])))
	return cmd
}

func testQueue(f *fakeCommands) *Queue {
	return New(f, EmailQueue, RetryPolicy{MaxAttempts: 3, BaseDelay: 5 * time.Second}, clockwork.NewFakeClock())
}

func TestEnqueueSetsDefaults(t *testing.T) {
	f := newFakeCommands()
	q := testQueue(f)

	if err := q.Enqueue(context.Background(), Job{Type: "created", EntityID: "p-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw := f.pushed[q.readyKey()]
	if len(raw) != 1 {
		t.Fatalf("expected 1 envelope in ready list, got %d", len(raw))
	}

	var job Job
	if err := json.Unmarshal([]byte(raw[0]), &job); err != nil {
		t.Fatalf("envelope must decode: %v", err)
	}
	if job.ID == "" {
		t.Error("expected a generated job id")
	}
	if job.Attempt != 1 {
		t.Errorf("expected attempt 1, got %d", job.Attempt)
	}
	if job.MaxAttempts != 3 {
		t.Errorf("expected policy max attempts, got %d", job.MaxAttempts)
	}
}

func TestClaimTimeoutIsNotAnError(t *testing.T) {
	q := testQueue(newFakeCommands())

	job, raw, err := q.Claim(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("timeout must not be an error: %v", err)
	}
	if job != nil || raw != "" {
		t.Errorf("expected no job on timeout, got %v %q", job, raw)
	}
}

func TestFailSchedulesRetryBeforeReleasingClaim(t *testing.T) {
	f := newFakeCommands()
	q := testQueue(f)

	job := &Job{ID: "j1", Type: "created", EntityID: "p-1", Attempt: 1, MaxAttempts: 3}
	raw, _ := json.Marshal(job)

	if err := q.Fail(context.Background(), job, string(raw), errors.New("boom")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"zadd " + q.delayedKey(), "lrem " + q.processingKey()}
	if len(f.ops) != 2 || f.ops[0] != want[0] || f.ops[1] != want[1] {
		t.Fatalf("retry must be durable before the claim is released, got ops %v", f.ops)
	}

	if len(f.zadded) != 1 {
		t.Fatalf("expected 1 delayed envelope, got %d", len(f.zadded))
	}
	var retry Job
	if err := json.Unmarshal([]byte(asString(f.zadded[0].Member)), &retry); err != nil {
		t.Fatalf("delayed envelope must decode: %v", err)
	}
	if retry.Attempt != 2 {
		t.Errorf("expected attempt incremented to 2, got %d", retry.Attempt)
	}
	if retry.ID != job.ID || retry.Type != job.Type || retry.EntityID != job.EntityID {
		t.Errorf("retry must redeliver the identical descriptor, got %+v", retry)
	}
}

func TestFailTerminalRecordsBeforeReleasingClaim(t *testing.T) {
	f := newFakeCommands()
	q := testQueue(f)

	job := &Job{ID: "j2", Type: "updated", EntityID: "p-2", Attempt: 3, MaxAttempts: 3}
	raw, _ := json.Marshal(job)

	if err := q.Fail(context.Background(), job, string(raw), errors.New("boom")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"lpush " + q.failedKey(), "lrem " + q.processingKey()}
	if len(f.ops) != 2 || f.ops[0] != want[0] || f.ops[1] != want[1] {
		t.Fatalf("terminal record must be durable before the claim is released, got ops %v", f.ops)
	}
	if got := f.pushed[q.failedKey()]; len(got) != 1 || got[0] != string(raw) {
		t.Errorf("failed list must hold the original envelope, got %v", got)
	}
}

func TestFailKeepsClaimWhenRescheduleFails(t *testing.T) {
	f := newFakeCommands()
	f.zaddErr = errors.New("connection reset")
	q := testQueue(f)

	job := &Job{ID: "j3", Type: "created", EntityID: "p-3", Attempt: 1, MaxAttempts: 3}

	if err := q.Fail(context.Background(), job, "raw", errors.New("boom")); err == nil {
		t.Fatal("expected reschedule error to surface")
	}

	for _, op := range f.ops {
		if op == "lrem "+q.processingKey() {
			t.Fatal("claim must not be released when the retry could not be scheduled")
		}
	}
}

func TestFailTerminalKeepsClaimWhenRecordFails(t *testing.T) {
	f := newFakeCommands()
	f.lpushErr = errors.New("connection reset")
	q := testQueue(f)

	job := &Job{ID: "j4", Type: "deleted", EntityID: "p-4", Attempt: 3, MaxAttempts: 3}

	if err := q.Fail(context.Background(), job, "raw", errors.New("boom")); err == nil {
		t.Fatal("expected terminal record error to surface")
	}

	for _, op := range f.ops {
		if op == "lrem "+q.processingKey() {
			t.Fatal("claim must not be released when the terminal record could not be written")
		}
	}
}
