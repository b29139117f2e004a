// Package jobs wires the recurring background work: refreshing market
// data and evaluating alerts against the fresh quotes.
package jobs

import (
	"log"

	"github.com/robfig/cron/v3"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// Scheduler runs the periodic price refresh cycle.
type Scheduler struct {
	cron         *cron.Cron
	priceService *service.PriceService
	alertService *service.AlertService
}

// NewScheduler creates a new Scheduler with the provided service dependencies.
func NewScheduler(priceService *service.PriceService, alertService *service.AlertService) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		priceService: priceService,
		alertService: alertService,
	}
}

// Start registers the refresh job on the given cron schedule and starts
// the scheduler in its own goroutine.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, s.refreshCycle)
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("Price refresh scheduled: %s", schedule)
	return nil
}

// Stop stops the scheduler, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// refreshCycle fetches fresh quotes and evaluates alerts against them.
// Alert evaluation runs even partially: a provider outage still leaves
// the previous quotes in the cache.
func (s *Scheduler) refreshCycle() {
	if _, err := s.priceService.RefreshQuotes(); err != nil {
		log.Printf("scheduled price refresh failed: %v", err)
	}

	fired, err := s.alertService.EvaluateAlerts()
	if err != nil {
		log.Printf("scheduled alert evaluation failed: %v", err)
		return
	}
	if len(fired) > 0 {
		log.Printf("%d alert(s) fired during scheduled evaluation", len(fired))
	}
}
