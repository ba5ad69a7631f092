// Package scheduler runs the recurring report jobs: the end-of-month
// summary email and the end-of-year archive.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/report"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	// Fires on every day that can be the last of a month; the job itself
	// checks whether today actually is.
	monthlySpec = "0 0 28-31 * *"
	// December 31st, 23:50 - late enough to catch the whole year, early
	// enough to finish before midnight.
	yearlySpec = "50 23 31 12 *"

	jobTimeout = 5 * time.Minute
)

type Scheduler struct {
	cron       *cron.Cron
	reports    report.Service
	mailer     report.Mailer
	adminEmail string
	loc        *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

func New(reports report.Service, mailer report.Mailer, adminEmail string, loc *time.Location, logger ...*zap.Logger) *Scheduler {
	l := zap.L().Named("scheduler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		reports:    reports,
		mailer:     mailer,
		adminEmail: adminEmail,
		loc:        loc,
		now:        time.Now,
		logger:     l,
	}
}

// Start registers the jobs and launches the cron loop. Blocks until ctx
// is cancelled, then waits for any running job to finish.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(monthlySpec, s.runMonthly); err != nil {
		return fmt.Errorf("scheduler: monthly job: %w", err)
	}
	if _, err := s.cron.AddFunc(yearlySpec, s.runYearly); err != nil {
		return fmt.Errorf("scheduler: yearly job: %w", err)
	}

	s.logger.Info("scheduler started",
		zap.String("monthly", monthlySpec),
		zap.String("yearly", yearlySpec),
		zap.String("timezone", s.loc.String()),
	)
	s.cron.Start()

	<-ctx.Done()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("scheduler stopped")
	return nil
}

// runMonthly sends the monthly summary, but only on the actual last day
// of the month. The cron spec over-fires (e.g. the 28th of a 31-day
// month), so the date check lives here.
func (s *Scheduler) runMonthly() {
	today := s.now().In(s.loc)
	if !isLastDayOfMonth(today) {
		s.logger.Debug("not the last day of the month, skipping",
			zap.String("date", today.Format("2006-01-02")),
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.reports.SendMonthlySummary(ctx, today.Year(), today.Month()); err != nil {
		s.alert(ctx, "Monthly summary failed",
			fmt.Sprintf("The monthly summary for %s %d could not be sent: %v", today.Month(), today.Year(), err))
	}
}

func (s *Scheduler) runYearly() {
	today := s.now().In(s.loc)
	year := today.Year()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	rep, err := s.reports.ArchiveYear(ctx, year)
	if err != nil {
		s.alert(ctx, "Yearly archive failed",
			fmt.Sprintf("The archive of year %d failed: %v", year, err))
		return
	}

	if s.mailer != nil {
		if err := s.mailer.SendArchiveReport(ctx, s.adminEmail, rep); err != nil {
			s.logger.Error("archive report email failed", zap.Int("year", year), zap.Error(err))
		}
	}
}

// alert logs the failure and, when mail is available, tells the admin.
// Jobs are not retried; the next run or a manual trigger covers it.
func (s *Scheduler) alert(ctx context.Context, subject, body string) {
	s.logger.Error(subject, zap.String("detail", body))
	if s.mailer == nil {
		return
	}
	if err := s.mailer.SendAlert(ctx, s.adminEmail, subject, body); err != nil {
		s.logger.Error("alert email failed", zap.Error(err))
	}
}

func isLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}
