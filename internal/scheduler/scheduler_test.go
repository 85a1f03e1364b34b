package scheduler

import (
	"context"
	"testing"

	"github.com/creolweb/jobintake/internal/logger"
	"github.com/creolweb/jobintake/internal/service"
)

func newTestScheduler(spec string) *Scheduler {
	sweeper := service.NewSweeper(nil, logger.GetDefault(), nil)
	return New(sweeper, logger.GetDefault(), spec)
}

func TestStartIsIdempotent(t *testing.T) {
	s := newTestScheduler("@daily")
	defer s.Stop()

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	firstID := s.entryID

	// Re-registering an already-scheduled sweep is a no-op.
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if s.entryID != firstID {
		t.Errorf("entry ID changed on re-registration: %v -> %v", firstID, s.entryID)
	}
}

func TestStartRejectsBadSpec(t *testing.T) {
	s := newTestScheduler("not a cron spec")
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}

func TestStopWithoutStart(t *testing.T) {
	s := newTestScheduler("@daily")
	// Must not panic or block.
	s.Stop()
	s.Stop()
}

func TestStopDeregisters(t *testing.T) {
	s := newTestScheduler("@daily")
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	s.Stop()
	if s.entryID != 0 {
		t.Error("entry should be cleared after Stop")
	}

	// A fresh Start after teardown registers again.
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("restart: %v", err)
	}
	s.Stop()
}
