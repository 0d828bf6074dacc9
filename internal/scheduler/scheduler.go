package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/nutriwatch/internal/config"
	"github.com/mamadbah2/nutriwatch/internal/domain/models"
	"github.com/mamadbah2/nutriwatch/internal/service/reporting"
)

// ReportExporter generates and exports a report.
type ReportExporter interface {
	ExportReport(ctx context.Context, reportType models.ReportType) (models.NutritionReport, error)
}

// Notifier delivers a text message.
type Notifier interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// Scheduler runs the periodic nutrition report.
type Scheduler struct {
	cron      *cron.Cron
	schedule  string
	reports   ReportExporter
	notifier  Notifier
	recipient string
	logger    *zap.Logger
}

// NewScheduler creates a scheduler using the configured cron expression and
// timezone. A nil notifier or an empty recipient skips delivery.
func NewScheduler(cfg config.Config, reports ReportExporter, notifier Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Reporting.Timezone, err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		schedule:  cfg.Reporting.CronSchedule,
		reports:   reports,
		notifier:  notifier,
		recipient: cfg.WhatsApp.ReportRecipient,
		logger:    logger,
	}, nil
}

// Start registers the report job and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.sendWeeklyReport); err != nil {
		return fmt.Errorf("schedule weekly report: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendWeeklyReport() {
	s.logger.Info("generating weekly report")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := s.reports.ExportReport(ctx, models.ReportWeekly)
	if err != nil {
		s.logger.Error("failed to export weekly report", zap.Error(err))
		return
	}

	if s.notifier == nil || s.recipient == "" {
		s.logger.Debug("weekly report delivery skipped, no recipient configured")
		return
	}

	req := models.OutboundMessageRequest{
		To:      s.recipient,
		Message: reporting.FormatReport(report),
	}

	if err := s.notifier.SendOutbound(ctx, req); err != nil {
		s.logger.Error("failed to send weekly report", zap.Error(err))
		return
	}
	s.logger.Info("weekly report sent successfully")
}
