// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aristath/pulse/internal/utils"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// ErrDuplicateJob is returned when a job name is registered twice.
var ErrDuplicateJob = errors.New("job already registered")

// Job represents a scheduled job
type Job interface {
	Run() error
	Name() string
}

// Scheduler owns a cron instance and the jobs registered on it, keyed by name.
// Panicking jobs are recovered and a run is skipped while the previous one
// of the same job is still in flight.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger

	mu   sync.Mutex
	jobs map[string]cron.EntryID
}

// New creates a new scheduler
func New(log zerolog.Logger) *Scheduler {
	log = log.With().Str("component", "scheduler").Logger()
	cronLog := cronLogger{log: log}

	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		log:  log,
		jobs: make(map[string]cron.EntryID),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Strs("jobs", s.Jobs()).Msg("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("Scheduler stopped")
}

// AddJob registers job under its name. Schedules carry a seconds field:
//   - "0 0 8 * * MON"  Mondays at 08:00
//   - "@weekly"        midnight between Saturday and Sunday
//   - "@every 1h"      every hour
func (s *Scheduler) AddJob(schedule string, job Job) error {
	name := job.Name()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, name)
	}

	id, err := s.cron.AddJob(schedule, cron.FuncJob(func() { _ = s.execute(job) }))
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", schedule, name, err)
	}
	s.jobs[name] = id

	s.log.Info().
		Str("schedule", schedule).
		Str("job", name).
		Msg("Job registered")

	return nil
}

// Remove unregisters a job by name. It reports whether the job existed.
func (s *Scheduler) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.jobs[name]
	if !ok {
		return false
	}
	s.cron.Remove(id)
	delete(s.jobs, name)
	return true
}

// Next returns the next activation time of the named job after now.
func (s *Scheduler) Next(name string) (time.Time, bool) {
	s.mu.Lock()
	id, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}

	entry := s.cron.Entry(id)
	if !entry.Valid() {
		return time.Time{}, false
	}
	return entry.Schedule.Next(time.Now()), true
}

// Jobs returns the registered job names in sorted order.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns the number of registered jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// RunNow executes a job immediately (outside schedule)
func (s *Scheduler) RunNow(job Job) error {
	s.log.Info().Str("job", job.Name()).Msg("Running job immediately")
	return s.execute(job)
}

func (s *Scheduler) execute(job Job) error {
	log := s.log.With().Str("job", job.Name()).Logger()
	log.Debug().Msg("Running job")

	timer := utils.NewTimer(job.Name(), log)
	err := job.Run()
	elapsed := timer.Stop()

	if err != nil {
		log.Error().Err(err).Dur("duration", elapsed).Msg("Job failed")
		return err
	}
	log.Debug().Dur("duration", elapsed).Msg("Job completed")
	return nil
}

// cronLogger routes cron's internal logging through zerolog.
type cronLogger struct {
	log zerolog.Logger
}

// Info is used by cron for routine events (start, wake, skip), so it logs at debug.
func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	withFields(l.log.Debug(), keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	withFields(l.log.Error().Err(err), keysAndValues).Msg("cron: " + msg)
}

func withFields(event *zerolog.Event, keysAndValues []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		event = event.Interface(fmt.Sprint(keysAndValues[i]), keysAndValues[i+1])
	}
	return event
}
