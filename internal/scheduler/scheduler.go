package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Refresher reloads the forecast currently shown.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler periodically refreshes the dashboard's forecast.
type Scheduler struct {
	scheduler *gocron.Scheduler
	target    Refresher
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. A non-positive interval disables it.
func New(target Refresher, interval, timeout time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Scheduler{
		scheduler: s,
		target:    target,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens one interval after start; the initial load is done by the caller.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh disabled; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 1
	}

	_, err := s.scheduler.Every(minutes).Minutes().WaitForSchedule().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	log.Println("scheduler: running forecast refresh job")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.target.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("scheduler: refresh failed: %v", err)
		return
	}
	log.Println("scheduler: completed forecast refresh job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
