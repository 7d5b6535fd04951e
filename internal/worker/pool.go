package worker

import (
	"errors"
	"fmt"
	"sync"

	"github.com/astaxie/beego/logs"
)

// MaxPoolSize is the largest number of workers a pool may be created with.
const MaxPoolSize = 200

var (
	// ErrInvalidPoolSize is returned by New for a size outside [1, MaxPoolSize].
	ErrInvalidPoolSize = errors.New("invalid size for pool")
	// ErrPoolClosed is returned by Submit once Shutdown has begun.
	ErrPoolClosed = errors.New("pool is shutting down")
	// ErrNilJob is returned by Submit when no job is supplied.
	ErrNilJob = errors.New("job is nil")
)

// Job is a unit of work executed by exactly one worker.
type Job interface {
	Run()
}

// JobFunc adapts an ordinary function to the Job interface.
type JobFunc func()

// Run calls f.
func (f JobFunc) Run() { f() }

// Pool runs queued jobs on a fixed set of worker goroutines.
//
// Jobs are executed in submission order. Shutdown stops accepting new jobs,
// waits for the queue to drain, then waits for every worker to finish its
// current job and exit.
type Pool struct {
	size int
	log  *logs.BeeLogger

	mu          sync.Mutex
	notEmpty    *sync.Cond // signalled when a job is queued or on termination
	empty       *sync.Cond // signalled when a draining queue reaches zero
	queue       jobQueue
	accepting   bool
	terminating bool

	wg       sync.WaitGroup
	shutdown sync.Once
}

// New creates a pool with size workers, each immediately waiting for work.
// A nil logger falls back to the beego default logger.
func New(size int, log *logs.BeeLogger) (*Pool, error) {
	if size < 1 || size > MaxPoolSize {
		return nil, fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidPoolSize, size, MaxPoolSize)
	}
	if log == nil {
		log = logs.GetBeeLogger()
	}
	p := &Pool{
		size:      size,
		log:       log,
		accepting: true,
	}
	p.notEmpty = sync.NewCond(&p.mu)
	p.empty = sync.NewCond(&p.mu)

	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.work(i)
	}
	p.log.Info("worker pool started with %d workers", size)
	return p, nil
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return p.size
}

// Pending returns the number of jobs waiting in the queue.
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Len()
}

// Submit queues j for execution and wakes one idle worker. Once Shutdown has
// begun the job is rejected with ErrPoolClosed and never runs.
func (p *Pool) Submit(j Job) error {
	if j == nil {
		p.log.Error("submit: dropping nil job")
		return ErrNilJob
	}
	p.mu.Lock()
	if !p.accepting {
		p.mu.Unlock()
		p.log.Warn("submit: pool is shutting down, job rejected")
		return ErrPoolClosed
	}
	p.queue.Push(j)
	p.mu.Unlock()
	p.notEmpty.Signal()
	return nil
}

// Shutdown stops accepting jobs, waits for every queued job to be picked up,
// then waits for all workers to finish and exit. Calls after the first return
// once the first has completed.
func (p *Pool) Shutdown() {
	p.shutdown.Do(func() {
		p.mu.Lock()
		p.accepting = false
		for p.queue.Len() > 0 {
			p.empty.Wait()
		}
		p.terminating = true
		p.mu.Unlock()
		p.notEmpty.Broadcast()

		p.wg.Wait()
		p.log.Info("worker pool stopped")
	})
}

func (p *Pool) work(id int) {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for p.queue.Len() == 0 && !p.terminating {
			p.notEmpty.Wait()
		}
		if p.terminating {
			p.mu.Unlock()
			return
		}
		j, _ := p.queue.Pop()
		if p.queue.Len() == 0 && !p.accepting {
			p.empty.Broadcast()
		}
		p.mu.Unlock()

		p.run(id, j)
	}
}

func (p *Pool) run(id int, j Job) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("worker %d: job panicked: %v", id, r)
		}
	}()
	j.Run()
}
