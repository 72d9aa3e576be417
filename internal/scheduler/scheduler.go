package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Reloader swaps in a fresh dataset.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Pruner drops idle interaction sessions.
type Pruner interface {
	Prune(idle time.Duration) int
}

type Config struct {
	ReloadInterval time.Duration
	LoadTimeout    time.Duration
	SessionIdle    time.Duration
}

// Scheduler periodically reloads the dataset and prunes idle sessions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	reloader  Reloader
	pruner    Pruner
	cfg       Config
}

// New creates a new Scheduler. A nil pruner disables session pruning.
func New(cfg Config, reloader Reloader, pruner Pruner) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		reloader:  reloader,
		pruner:    pruner,
		cfg:       cfg,
	}
}

// Start schedules the periodic jobs and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(minutes(s.cfg.ReloadInterval, 60)).Minutes().WaitForSchedule().Do(s.reload)
	if err != nil {
		return err
	}

	if s.pruner != nil && s.cfg.SessionIdle > 0 {
		_, err = s.scheduler.Every(minutes(s.cfg.SessionIdle/2, 1)).Minutes().WaitForSchedule().Do(s.prune)
		if err != nil {
			return err
		}
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) reload() {
	log.Println("scheduler: running dataset reload job")

	timeout := s.cfg.LoadTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.reloader.Reload(ctx); err != nil {
		log.Printf("scheduler: reload failed, keeping previous dataset: %v", err)
		return
	}
	log.Println("scheduler: completed dataset reload job")
}

func (s *Scheduler) prune() {
	if n := s.pruner.Prune(s.cfg.SessionIdle); n > 0 {
		log.Printf("scheduler: pruned %d idle sessions", n)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func minutes(d time.Duration, def int) int {
	if m := int(d.Minutes()); m > 0 {
		return m
	}
	return def
}
