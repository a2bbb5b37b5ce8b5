// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package resource

import (
	"sync"
	"sync/atomic"

	"github.com/devblok/litecraft/core"
	"github.com/remeh/sizedwaitgroup"
	log "github.com/sirupsen/logrus"
	"go.trai.ch/zerr"
)

// NewPool creates a loader pool running at most threads jobs at once.
func NewPool(threads int, logger log.FieldLogger) (*Pool, error) {
	if threads <= 0 {
		return nil, zerr.With(zerr.Wrap(core.ErrInvalidConfiguration, "loader threads must be positive"), "threads", threads)
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Pool{
		threads: threads,
		logger:  logger.WithField("component", "loader"),
		slots:   sizedwaitgroup.New(threads),
	}, nil
}

// Pool runs submitted jobs in the background. There is no priority and
// no cancellation, once submitted a job runs to completion. Submission
// never blocks, jobs over the thread limit wait for a free slot.
type Pool struct {
	threads int
	logger  log.FieldLogger

	slots sizedwaitgroup.SizedWaitGroup
	jobs  sync.WaitGroup

	mutex  sync.RWMutex
	closed bool

	submitted atomic.Uint64
	completed atomic.Uint64
	panicked  atomic.Uint64
}

// PoolStats are the pool counters, Submitted minus Completed
// is the amount of queued and running jobs.
type PoolStats struct {
	Threads   int
	Submitted uint64
	Completed uint64
	Panicked  uint64
}

// Submit queues job for execution. It only fails once the pool is closed.
func (p *Pool) Submit(job func()) error {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	if p.closed {
		return zerr.Wrap(ErrPoolClosed, "job rejected")
	}

	p.jobs.Add(1)
	p.submitted.Add(1)
	go p.run(job)
	return nil
}

func (p *Pool) run(job func()) {
	defer p.jobs.Done()

	p.slots.Add()
	defer p.slots.Done()

	defer func() {
		if r := recover(); r != nil {
			p.panicked.Add(1)
			p.logger.WithField("panic", r).Error("loader job panicked")
		}
		p.completed.Add(1)
	}()

	job()
}

// Wait blocks until every submitted job has finished.
func (p *Pool) Wait() {
	p.jobs.Wait()
}

// Close stops accepting jobs and waits for the submitted ones.
func (p *Pool) Close() {
	p.mutex.Lock()
	p.closed = true
	p.mutex.Unlock()

	p.jobs.Wait()
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		Threads:   p.threads,
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Panicked:  p.panicked.Load(),
	}
}
