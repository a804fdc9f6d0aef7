package event

import (
	"context"
	"errors"
	"testing"

	"notifysvc/internal/logger"
	"notifysvc/internal/queue"
)

func init() {
	logger.Init(false)
}

type fakeEnqueuer struct {
	jobs []queue.Job
	err  error
}

func (f *fakeEnqueuer) Enqueue(_ context.Context, job queue.Job) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

type fakeTrail struct {
	lines int
	err   error
}

func (f *fakeTrail) Append(_ string, _ []byte) error {
	f.lines++
	return f.err
}

func TestHandleForwardsMappedRecord(t *testing.T) {
	enq := &fakeEnqueuer{}
	trail := &fakeTrail{}
	h := NewHandler(enq, trail)

	h.Handle(context.Background(), "passport.created",
		[]byte(`{"id":"p-1","data":{"k":"v"},"userIds":["u1"]}`))

	if len(enq.jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(enq.jobs))
	}
	job := enq.jobs[0]
	if job.Type != "created" {
		t.Errorf("expected type created, got %q", job.Type)
	}
	if job.EntityID != "p-1" {
		t.Errorf("expected entity id p-1, got %q", job.EntityID)
	}
	if len(job.UserIDs) != 1 || job.UserIDs[0] != "u1" {
		t.Errorf("expected recipient override carried, got %v", job.UserIDs)
	}
	if trail.lines != 1 {
		t.Errorf("expected 1 audit line, got %d", trail.lines)
	}
}

func TestHandleDiscardsMalformedPayload(t *testing.T) {
	enq := &fakeEnqueuer{}
	h := NewHandler(enq, &fakeTrail{})

	h.Handle(context.Background(), "passport.created", []byte("not json"))

	if len(enq.jobs) != 0 {
		t.Errorf("malformed payload must not enqueue, got %v", enq.jobs)
	}
}

func TestHandleDropsUnmappedTopic(t *testing.T) {
	enq := &fakeEnqueuer{}
	trail := &fakeTrail{}
	h := NewHandler(enq, trail)

	h.Handle(context.Background(), "passport.viewed", []byte(`{"id":"p-1"}`))

	if len(enq.jobs) != 0 {
		t.Errorf("unmapped topic must not enqueue, got %v", enq.jobs)
	}
	if trail.lines != 1 {
		t.Errorf("audit trail records every arrival, got %d lines", trail.lines)
	}
}

func TestHandleAbsorbsEnqueueFailure(t *testing.T) {
	enq := &fakeEnqueuer{err: errors.New("queue backend unreachable")}
	h := NewHandler(enq, &fakeTrail{})

	// must not panic; the failure is logged and consumption continues
	h.Handle(context.Background(), "passport.updated", []byte(`{"id":"p-2"}`))
}

func TestHandleAbsorbsAuditFailure(t *testing.T) {
	enq := &fakeEnqueuer{}
	h := NewHandler(enq, &fakeTrail{err: errors.New("disk full")})

	h.Handle(context.Background(), "passport.deleted", []byte(`{"id":"p-3"}`))

	if len(enq.jobs) != 1 {
		t.Errorf("audit append failure must never block event processing, got %d jobs", len(enq.jobs))
	}
}
