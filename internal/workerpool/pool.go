// Package workerpool runs a fixed number of goroutines pulling tasks off a
// shared queue, supervised by a tomb.Tomb so a worker's fatal error brings
// the whole pool down instead of leaking a half-dead goroutine. Adapted from
// the teacher's internal/worker.go, which spun up one-shot workers in a busy
// loop with no task-submission method of its own; here Setup blocks each
// worker goroutine on the task channel directly and AddTask is the single
// entry point callers use to submit work, matching how internal/net.Server
// actually calls it.
package workerpool

import (
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

// DefaultQueueDepth bounds how many pending tasks AddTask may buffer before
// it blocks the caller.
const DefaultQueueDepth = 100

// WorkerFunction processes a single task. A non-nil error is fatal to the
// worker that returned it; the supervising tomb tears down the pool.
type WorkerFunction = func(t *tomb.Tomb, task any) error

// Pool is a fixed-size pool of workers draining a shared task queue.
type Pool struct {
	size  int
	tasks chan any
}

// New constructs a pool of size workers with a bounded task queue.
func New(size int) *Pool {
	return &Pool{
		size:  size,
		tasks: make(chan any, DefaultQueueDepth),
	}
}

// AddTask submits a task for some worker to pick up, blocking if the queue
// is full.
func (pool *Pool) AddTask(task any) {
	pool.tasks <- task
}

// Setup starts pool.size long-lived worker goroutines under t, each running
// work on every task it receives until t is dying.
func (pool *Pool) Setup(t *tomb.Tomb, work WorkerFunction) {
	log.Info().Int("workers", pool.size).Msg("starting worker pool")
	for i := 0; i < pool.size; i++ {
		t.Go(func() error {
			return pool.worker(t, work)
		})
	}
}

func (pool *Pool) worker(t *tomb.Tomb, work WorkerFunction) error {
	log.Info().Msg("worker starting")
	for {
		select {
		case <-t.Dying():
			return nil
		case task := <-pool.tasks:
			if err := work(t, task); err != nil {
				log.Error().Err(err).Msg("worker exiting")
				return err
			}
		}
	}
}
