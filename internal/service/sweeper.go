package service

import (
	"context"
	"time"

	"github.com/creolweb/jobintake/internal/domain"
	"github.com/creolweb/jobintake/internal/logger"
	"github.com/creolweb/jobintake/internal/sanitize"
)

// Sweeper removes published records whose retention window has passed.
// It is stateless between runs: every sweep re-reads the stored
// duration, so re-running immediately deletes nothing new.
type Sweeper struct {
	store       ContentStore
	logger      *logger.Logger
	recordTypes []string
	defaultDays int
	now         func() time.Time
}

// SweeperConfig holds configuration for the retention sweeper.
type SweeperConfig struct {
	// RecordTypes are the entity types to sweep; defaults to the job type.
	RecordTypes []string
	// DefaultRetentionDays is substituted for missing/invalid durations.
	DefaultRetentionDays int
	// Now overrides the clock; tests use it to cross the expiry boundary.
	Now func() time.Time
}

// NewSweeper creates a retention sweeper.
// Parameters:
//   - store: persistence collaborator.
//   - log: base logger.
//   - cfg: sweeper configuration; nil uses defaults.
// Returns:
//   - *Sweeper: initialized sweeper.
func NewSweeper(store ContentStore, log *logger.Logger, cfg *SweeperConfig) *Sweeper {
	if log == nil {
		log = logger.GetDefault()
	}
	s := &Sweeper{
		store:       store,
		logger:      log,
		recordTypes: []string{domain.RecordTypeJob},
		defaultDays: domain.DefaultRetentionDays,
		now:         time.Now,
	}
	if cfg != nil {
		if len(cfg.RecordTypes) > 0 {
			s.recordTypes = cfg.RecordTypes
		}
		if cfg.DefaultRetentionDays > 0 {
			s.defaultDays = cfg.DefaultRetentionDays
		}
		if cfg.Now != nil {
			s.now = cfg.Now
		}
	}
	return s
}

func (s *Sweeper) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// SweepStats summarizes one sweep across all tracked record types.
type SweepStats struct {
	Scanned int `json:"scanned"`
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

// Sweep runs one full pass. Only published records are considered:
// pending ones are not yet visible, so their clock must not run them
// out before moderation. Per-record failures are logged and never
// abort the rest of the sweep.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - *SweepStats: counts for the completed pass.
func (s *Sweeper) Sweep(ctx context.Context) *SweepStats {
	stats := &SweepStats{}
	start := s.now()

	for _, recordType := range s.recordTypes {
		records, err := s.store.ListRecords(ctx, recordType, domain.JobStatusPublished)
		if err != nil {
			s.log(ctx).WithError(err).WithField("record_type", recordType).
				Error("Failed to list records for sweep")
			continue
		}

		for _, rec := range records {
			stats.Scanned++
			if !s.expired(ctx, &rec) {
				continue
			}
			if err := s.store.DeleteRecord(ctx, rec.ID); err != nil {
				stats.Failed++
				s.log(ctx).WithError(err).WithField(logger.FieldRecordID, rec.ID).
					Error("Failed to delete expired record, continuing sweep")
				continue
			}
			stats.Deleted++
			s.log(ctx).WithFields(logger.Fields{
				logger.FieldRecordID: rec.ID,
				"created_at":         rec.CreatedAt,
			}).Info("Expired record removed")
		}
	}

	s.log(ctx).WithFields(logger.Fields{
		"scanned":  stats.Scanned,
		"deleted":  stats.Deleted,
		"failed":   stats.Failed,
		"duration": s.now().Sub(start).String(),
	}).Info("Retention sweep completed")

	return stats
}

// expired reports whether rec's retention window has passed. The
// stored duration is re-validated on every read; a missing or mangled
// value falls back to the default window.
func (s *Sweeper) expired(ctx context.Context, rec *domain.JobRecord) bool {
	raw, err := s.store.GetMeta(ctx, rec.ID, domain.MetaDuration)
	if err != nil {
		s.log(ctx).WithError(err).WithField(logger.FieldRecordID, rec.ID).
			Error("Failed to read retention duration, using default")
		raw = ""
	}
	days := sanitize.PositiveInt(raw, s.defaultDays)
	return s.now().After(rec.ExpiresAt(days))
}
