package worker

import (
	"context"
	"sync"

	"notifysvc/internal/logger"
	"notifysvc/internal/mailer"
)

// Pool runs a fixed number of workers against the same queue. The queue
// backend arbitrates exclusive claim of a job, so pools can also scale
// horizontally across processes.
type Pool struct {
	workers []*Worker
}

func NewPool(size int, q JobQueue, r Resolver, m mailer.Mailer, dl DeliveryLog) *Pool {
	if size < 1 {
		size = 1
	}

	workers := make([]*Worker, size)
	for i := range workers {
		workers[i] = New(i, q, r, m, dl)
	}

	return &Pool{workers: workers}
}

// Run blocks until the context is cancelled and every worker returned.
func (p *Pool) Run(ctx context.Context) {
	log := logger.Component("worker")
	log.Info().Int("workers", len(p.workers)).Msg("worker pool started")

	var wg sync.WaitGroup
	for _, w := range p.workers {
		wg.Add(1)
		go func(w *Worker) {
			defer wg.Done()
			w.Run(ctx)
		}(w)
	}
	wg.Wait()

	log.Info().Msg("all workers shut down")
}
