package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"workshop-manager/internal/config"
	"workshop-manager/internal/core"
)

// Scheduler runs the daily business reminder: a morning summary of pending
// payments and materials that have fallen below their low-stock threshold.
type Scheduler struct {
	cron   *cron.Cron
	store  *core.Store
	cfg    config.ReminderConfig
	logger *zap.Logger
}

// NewScheduler creates a scheduler in the configured timezone, falling back
// to the server's local time when the zone cannot be loaded.
func NewScheduler(cfg config.ReminderConfig, store *core.Store, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, using local time", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.Local
	}

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the reminder job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.dailyReminder); err != nil {
		s.logger.Error("failed to schedule daily reminder", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) dailyReminder() {
	d := s.store.RecomputeDashboard()

	s.logger.Info("daily business reminder",
		zap.String("total_sales", d.TotalSales.String()),
		zap.Int("pending_payments", d.PendingPaymentCount),
		zap.Int("low_stock_materials", d.LowStockCount),
		zap.String("this_month_production", d.ThisMonthProductionQty.String()))

	for _, m := range s.store.Materials() {
		if m.Quantity.LessThanOrEqual(m.LowStockThreshold) {
			s.logger.Warn("material low on stock",
				zap.String("material", m.Name),
				zap.String("quantity", m.Quantity.String()),
				zap.String("threshold", m.LowStockThreshold.String()))
		}
	}
}
