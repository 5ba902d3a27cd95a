package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sjperalta/billing-api/internal/metrics"
	"github.com/sjperalta/billing-api/pkg/logger"
)

// queueSize bounds pending jobs; Enqueue runs jobs inline beyond it.
const queueSize = 100

// Job represents a background task
type Job func(ctx context.Context) error

// Worker runs queued side effects (audit writes) on a fixed pool and
// scheduled maintenance (metric refreshes) outside the request path.
type Worker struct {
	ctx           context.Context
	cancel        context.CancelFunc
	schedCtx      context.Context
	schedCancel   context.CancelFunc
	wg            sync.WaitGroup
	queue         chan namedJob
	maxConcurrent int
	stats         WorkerStats
	statsMu       sync.RWMutex
	closeOnce     sync.Once
	closed        bool
	closedMu      sync.RWMutex
}

type namedJob struct {
	name string
	run  Job
}

// WorkerStats holds statistics about the worker
type WorkerStats struct {
	ActiveJobs    int   `json:"activeJobs"`
	CompletedJobs int64 `json:"completedJobs"`
	FailedJobs    int64 `json:"failedJobs"`
	QueueLength   int   `json:"queueLength"`
	MaxConcurrent int   `json:"maxConcurrent"`
}

// NewWorker creates a worker with N concurrent processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	schedCtx, schedCancel := context.WithCancel(ctx)

	w := &Worker{
		ctx:           ctx,
		cancel:        cancel,
		schedCtx:      schedCtx,
		schedCancel:   schedCancel,
		queue:         make(chan namedJob, queueSize),
		maxConcurrent: numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to be processed by the worker pool. When the queue is
// full the job runs on the caller's goroutine.
func (w *Worker) Enqueue(name string, job Job) {
	w.closedMu.RLock()
	defer w.closedMu.RUnlock()
	if w.closed {
		logger.Warn("Worker stopped, dropping job", slog.String("job", name))
		return
	}

	select {
	case w.queue <- namedJob{name: name, run: job}:
	default:
		logger.Warn("Worker queue full, running job synchronously", slog.String("job", name))
		w.run("sync", namedJob{name: name, run: job})
	}
}

// process handles jobs from the queue
func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	source := fmt.Sprintf("worker-%d", workerID)
	for job := range w.queue {
		w.run(source, job)
	}
}

// ScheduleEveryImmediate runs a job once at startup, then at fixed intervals.
func (w *Worker) ScheduleEveryImmediate(name string, interval time.Duration, job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		nj := namedJob{name: name, run: job}
		w.run("scheduler", nj)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.schedCtx.Done():
				return
			case <-ticker.C:
				w.run("scheduler", nj)
			}
		}
	}()
}

// run executes one job with panic recovery, logging, stats and metrics.
func (w *Worker) run(source string, job namedJob) {
	w.trackJobStart()
	start := time.Now()

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		err = job.run(w.ctx)
	}()

	attrs := []any{
		slog.String("job", job.name),
		slog.String("source", source),
		slog.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		logger.Error("Job failed", append(attrs, slog.String("error", err.Error()))...)
		w.trackJobFailure()
	} else {
		logger.Debug("Job completed", attrs...)
	}
	metrics.ObserveJob(job.name, err)
	w.trackJobEnd()
}

// Shutdown stops the schedulers, drains queued and in-flight jobs and
// waits for them to finish. The job context is cancelled only after every
// job has returned.
func (w *Worker) Shutdown() {
	w.closeOnce.Do(func() {
		w.closedMu.Lock()
		w.closed = true
		close(w.queue)
		w.closedMu.Unlock()

		w.schedCancel()
		w.wg.Wait()
		w.cancel()
	})
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	stats.MaxConcurrent = w.maxConcurrent
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

// trackJobEnd counts every finished job; FailedJobs is the failing subset.
func (w *Worker) trackJobEnd() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
}

func (w *Worker) trackJobFailure() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.FailedJobs++
}
