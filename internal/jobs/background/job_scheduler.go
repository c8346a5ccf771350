package background

import (
	"context"
	"log"
	"sync"
	"time"

	"stockpulse/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the engine's background jobs. The classification sweep
// is registered in singleton mode so a slow sweep is never overlapped by the
// next tick.
type JobScheduler struct {
	scheduler gocron.Scheduler
	sweep     *jobs.SweepService
	interval  time.Duration
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates the scheduler and registers all jobs.
func NewJobScheduler(sweep *jobs.SweepService, sweepInterval time.Duration) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	if sweepInterval <= 0 {
		sweepInterval = 15 * time.Minute
	}

	js := &JobScheduler{
		scheduler: scheduler,
		sweep:     sweep,
		interval:  sweepInterval,
		jobs:      make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js, nil
}

// Start starts the job scheduler.
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler (sweep every %s)", js.interval)
	js.scheduler.Start()
}

// Stop stops the job scheduler.
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	js.mu.Lock()
	defer js.mu.Unlock()

	sweepJob, err := js.scheduler.NewJob(
		gocron.DurationJob(js.interval),
		gocron.NewTask(js.runSweep, context.Background()),
		gocron.WithName("classification-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create classification sweep job: %v", err)
	} else {
		js.jobs["classification-sweep"] = sweepJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

func (js *JobScheduler) runSweep(ctx context.Context) {
	if err := js.sweep.Run(ctx); err != nil {
		log.Printf("Classification sweep failed: %v", err)
	}
}
