package analysis

import (
	"context"
	"fmt"
	"sync"

	"vsguard.ai/vision-gateway/app/utils/logger"
)

// Job is one unit of analysis work: the image, its fingerprint, and the
// client identity whose group the result must be broadcast to.
type Job struct {
	Fingerprint string
	ImageBytes  []byte
	ClientID    string

	ctx    context.Context
	result chan *Result
}

// Dispatcher executes analysis jobs on a fixed pool of workers so a burst of
// images cannot spawn unbounded goroutines. Excess jobs queue for the next
// free worker. The dispatcher is the sole writer of cache entries.
type Dispatcher struct {
	service *Service
	cache   *ResultCache
	jobs    chan *Job

	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewDispatcher(service *Service, resultCache *ResultCache, workers, queueDepth int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueDepth < 0 {
		queueDepth = 0
	}
	d := &Dispatcher{
		service: service,
		cache:   resultCache,
		jobs:    make(chan *Job, queueDepth),
	}
	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker(i)
	}
	return d
}

// Submit queues a job and returns the channel its result will be delivered
// on. The caller goroutine suspends on that channel, not on the work itself;
// frames from other connections are serviced while the job runs. A cancelled
// context before enqueue yields an immediate degraded result.
func (d *Dispatcher) Submit(ctx context.Context, job *Job) <-chan *Result {
	job.ctx = ctx
	job.result = make(chan *Result, 1)
	select {
	case d.jobs <- job:
	case <-ctx.Done():
		job.result <- DegradedResult("Error en detección")
	}
	return job.result
}

// Close stops accepting jobs and waits for in-flight work to finish.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.jobs)
	})
	d.wg.Wait()
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	for job := range d.jobs {
		result := d.process(job)
		if result.Error == "" {
			d.cache.Store(job.ctx, job.Fingerprint, result)
		}
		job.result <- result
	}
}

// process shields the worker from a panicking pipeline: the job degrades, the
// worker survives.
func (d *Dispatcher) process(job *Job) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.GetLogger().WithField("panic", fmt.Sprint(r)).Error("analysis pipeline panicked")
			result = DegradedResult("Error en detección")
		}
	}()
	return d.service.Process(job.ctx, job.ImageBytes)
}
