package matching

import (
	"context"
	"log"
	"time"
)

// Scheduler runs the duplicate-swipe reconciliation sweep on a fixed
// interval. The incremental supersede in RecordSwipe keeps the ledger clean
// for writes going through the service, but rows inserted through other
// paths still need the periodic sweep.
type Scheduler struct {
	service  Service
	interval time.Duration
}

func NewScheduler(service Service, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Scheduler{service: service, interval: interval}
}

func (s *Scheduler) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			result, err := s.service.CleanupDuplicateSwipes(ctx)
			if err != nil {
				log.Printf("Duplicate swipe cleanup failed: %v", err)
				continue
			}
			if result.Removed > 0 {
				log.Printf("Duplicate swipe cleanup removed %d rows", result.Removed)
			}
		case <-ctx.Done():
			return
		}
	}
}
