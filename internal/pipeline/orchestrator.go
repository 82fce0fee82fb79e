package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/store"
)

// Orchestrator runs uploaded documents through a bounded worker pool.
type Orchestrator struct {
	jobs  *JobStore
	queue chan *Job
	proc  *Processor
	store store.Store
	log   *slog.Logger
	cfg   config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. st may be nil, in which case
// results live only in the job registry.
func NewOrchestrator(cfg config.Config, proc *Processor, st store.Store, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:  NewJobStore(cfg.JobTTL),
		queue: make(chan *Job, cfg.MaxQueueSize),
		proc:  proc,
		store: st,
		log:   log,
		cfg:   cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Processor returns the document processor for synchronous use by API
// handlers.
func (o *Orchestrator) Processor() *Processor {
	return o.proc
}

// Store returns the configured result store, or nil.
func (o *Orchestrator) Store() store.Store {
	return o.store
}

func (o *Orchestrator) process(ctx context.Context, job *Job) {
	log := o.log.With("job_id", job.ID, "doc_id", job.DocID, "file", job.Filename)

	res := o.proc.process(ctx, job.FileData(), job.Filename, func(s JobStatus) {
		job.SetStatus(s, string(s))
	})
	job.SetFileData(nil)
	job.SetResult(res)

	if o.store != nil {
		rec := store.Record{
			ID:          job.DocID,
			File:        job.Filename,
			ContentHash: job.ContentHash,
			Result:      res,
			CreatedAt:   time.Now().UTC(),
		}
		if err := o.store.Put(ctx, rec); err != nil {
			log.Error("store result failed", "error", err)
		}
	}

	if !res.OK() {
		log.Warn("job failed", "error", res.Err.Error)
		job.SetStatus(StatusFailed, "done")
		return
	}
	log.Info("job completed", "title", res.Outline.Title, "entries", len(res.Outline.Entries))
	job.SetStatus(StatusCompleted, "done")
}
