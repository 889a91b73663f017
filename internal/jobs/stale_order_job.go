package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/souqline/internal/config"
	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/logger"
	"github.com/souqline/internal/repository"
	"github.com/souqline/internal/service"

	"github.com/robfig/cron/v3"
)

const (
	defaultStaleAfterHours = 4
	defaultStaleScanCron   = "*/10 * * * *"
	staleScanBatchSize     = 100
)

// StaleOrderJob periodically scans for ready orders that have been
// waiting without delivery personnel and alerts administrators.
type StaleOrderJob struct {
	name      string
	cron      *cron.Cron
	orderRepo repository.OrderRepository
	notifySvc *service.NotificationService
	staleAge  time.Duration
	spec      string
}

// NewStaleOrderJob creates the stale order scanner.
func NewStaleOrderJob(cfg *config.DeliveryConfig, orderRepo repository.OrderRepository, notifySvc *service.NotificationService) *StaleOrderJob {
	hours := defaultStaleAfterHours
	spec := defaultStaleScanCron
	if cfg != nil {
		if cfg.StaleAfterHours > 0 {
			hours = cfg.StaleAfterHours
		}
		if cfg.StaleScanCron != "" {
			spec = cfg.StaleScanCron
		}
	}
	return &StaleOrderJob{
		name:      "stale_order_job",
		cron:      cron.New(),
		orderRepo: orderRepo,
		notifySvc: notifySvc,
		staleAge:  time.Duration(hours) * time.Hour,
		spec:      spec,
	}
}

// Name returns the service name.
func (j *StaleOrderJob) Name() string {
	if j == nil || j.name == "" {
		return "stale_order_job"
	}
	return j.name
}

// Start schedules the scan and blocks until the context is cancelled.
func (j *StaleOrderJob) Start(ctx context.Context) error {
	if j == nil || j.cron == nil || j.orderRepo == nil {
		return errors.New("stale order job not initialized")
	}
	if _, err := j.cron.AddFunc(j.spec, j.scanOnce); err != nil {
		return err
	}
	j.cron.Start()
	logger.Infow("stale_order_job_started", "cron", j.spec, "stale_after", j.staleAge.String())
	<-ctx.Done()
	return nil
}

// Stop halts the scheduler and waits for a running scan to finish.
func (j *StaleOrderJob) Stop(ctx context.Context) error {
	if j == nil || j.cron == nil {
		return nil
	}
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	logger.Infow("stale_order_job_stopped")
	return nil
}

func (j *StaleOrderJob) scanOnce() {
	cutoff := time.Now().Add(-j.staleAge)
	orders, err := j.orderRepo.ListStaleReady(cutoff, staleScanBatchSize)
	if err != nil {
		logger.Warnw("stale_order_scan_failed", "error", err)
		return
	}
	if len(orders) == 0 {
		return
	}
	logger.Infow("stale_order_scan_hits", "count", len(orders), "cutoff", cutoff)
	if j.notifySvc == nil {
		return
	}
	for _, order := range orders {
		since := "an unknown time"
		if order.DeliveryScheduledAt != nil {
			since = order.DeliveryScheduledAt.Format(time.RFC3339)
		}
		j.notifySvc.NotifyAdmins(constants.NotificationKindOrderStale,
			fmt.Sprintf("order %s has waited for delivery assignment since %s", order.OrderNo, since),
			fmt.Sprintf("/admin/orders/%d", order.ID))
	}
}
