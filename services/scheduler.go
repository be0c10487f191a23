// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartResultScheduler settles pending picks on an interval in addition to
// the manual /api/update-results trigger.
func (s *SettlementService) StartResultScheduler(interval time.Duration) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			report, err := s.RunOnce(ctx)
			if err != nil {
				log.Printf("[ResultScheduler] DB error: %v", err)
				return
			}
			if report.Updated > 0 {
				log.Printf("✅ Auto-settled %d pick(s)", report.Updated)
			}
		}),
	)
}
