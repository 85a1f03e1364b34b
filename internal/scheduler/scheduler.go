// Package scheduler wires up the cron job that periodically runs the
// retention sweep.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/creolweb/jobintake/internal/logger"
	"github.com/creolweb/jobintake/internal/service"
)

// Scheduler wraps robfig/cron and manages the sweep cadence. The host
// registers it once at startup and tears it down at shutdown;
// registration is idempotent, so a second Start is a no-op.
type Scheduler struct {
	cron    *cron.Cron
	sweeper *service.Sweeper
	logger  *logger.Logger
	spec    string // cron spec, e.g. "@daily"

	mu      sync.Mutex
	entryID cron.EntryID
}

// New creates a Scheduler firing on the given cron spec.
// Parameters:
//   - sweeper: the retention sweeper to trigger.
//   - log: base logger.
//   - spec: robfig/cron schedule expression.
// Returns:
//   - *Scheduler: initialized scheduler, not yet started.
func New(sweeper *service.Sweeper, log *logger.Logger, spec string) *Scheduler {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Scheduler{
		// SkipIfStillRunning gives the sweep at-most-once-per-tick
		// semantics: a slow pass swallows the next tick instead of
		// running concurrently with itself.
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		sweeper: sweeper,
		logger:  log,
		spec:    spec,
	}
}

// Start registers the sweep job and starts the scheduler. Re-invoking
// on an already-scheduled instance does nothing, matching the
// "register only when no next run is scheduled" activation contract.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID != 0 {
		s.logger.Debug("Sweep already scheduled, skipping registration")
		return nil
	}

	id, err := s.cron.AddFunc(s.spec, func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.entryID = id

	s.cron.Start()
	s.logger.WithField("spec", s.spec).Info("Retention sweep scheduled")
	return nil
}

// Stop deregisters the sweep and shuts the scheduler down. Safe to call
// when never started.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID == 0 {
		return
	}
	s.cron.Remove(s.entryID)
	s.entryID = 0

	<-s.cron.Stop().Done()
	s.logger.Info("Retention sweep unscheduled")
}

// runSweep executes one sweep tick with a sweep-scoped logger.
func (s *Scheduler) runSweep(ctx context.Context) {
	sweepID := uuid.New().String()
	ctx = logger.SetSweepID(s.logger.WithContext(ctx), sweepID)

	logger.CtxInfo(ctx, "Sweep tick started")
	s.sweeper.Sweep(ctx)
}
