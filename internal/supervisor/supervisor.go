package supervisor

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"notifysvc/internal/config"
	"notifysvc/internal/logger"
	"notifysvc/internal/metrics"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateSubscribed
	StateConsuming
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateSubscribed:
		return "subscribed"
	case StateConsuming:
		return "consuming"
	default:
		return "disconnected"
	}
}

// Conn tracks the state of one outbound resilient connection. The ready
// flag latches true once the connection first comes up and never reverts;
// readiness means "has successfully started", not "currently connected".
type Conn struct {
	state atomic.Int32
	ready atomic.Bool
}

func (c *Conn) SetState(s ConnState) {
	c.state.Store(int32(s))
}

func (c *Conn) State() ConnState {
	return ConnState(c.state.Load())
}

func (c *Conn) Ready() bool {
	return c.ready.Load()
}

func (c *Conn) markReady() {
	c.ready.Store(true)
}

// Supervisor retries a connect function with capped exponential backoff
// until it succeeds. It never gives up: broker availability is assumed
// eventually-true for this service's uptime.
type Supervisor struct {
	conn   *Conn
	base   time.Duration
	growth float64
	max    time.Duration
	clock  clockwork.Clock
	log    zerolog.Logger
}

func New(cfg config.SupervisorConfig, clock clockwork.Clock) *Supervisor {
	return &Supervisor{
		conn:   &Conn{},
		base:   cfg.BaseDelay,
		growth: cfg.Growth,
		max:    cfg.MaxDelay,
		clock:  clock,
		log:    logger.Component("supervisor"),
	}
}

func (s *Supervisor) Conn() *Conn {
	return s.conn
}

// Delay returns the backoff before retry number attempt+1:
// min(max, base * growth^(attempt-1)).
func (s *Supervisor) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := time.Duration(float64(s.base) * math.Pow(s.growth, float64(attempt-1)))
	if delay > s.max {
		return s.max
	}
	return delay
}

// Run drives connect until the first success, then latches readiness and
// returns. Transient disconnects after that are the connection's own
// problem; the supervisor is not revisited.
func (s *Supervisor) Run(ctx context.Context, connect func(context.Context) error) error {
	attempt := 0

	for {
		s.conn.SetState(StateConnecting)

		err := connect(ctx)
		if err == nil {
			s.conn.markReady()
			s.log.Info().Int("attempts", attempt+1).Msg("broker connection established")
			return nil
		}

		attempt++
		delay := s.Delay(attempt)
		metrics.ReconnectAttempts.Inc()
		s.log.Error().
			Err(err).
			Int("attempt", attempt).
			Dur("retry_in", delay).
			Msg("broker connect failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(delay):
		}
	}
}
