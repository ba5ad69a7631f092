package report

import (
	"context"
	"fmt"
	"time"

	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/punch"
	reporterrors "github.com/Petros-Code/Pointeuse-MeduzaStore/internal/report/errors"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/user"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Mailer delivers report emails. Defined here so the SMTP implementation
// depends on this package and not the other way round.
//
//go:generate mockgen -source=report_service.go -destination=mock/report_mock.go -package=mock
type Mailer interface {
	SendTest(ctx context.Context, to string) error
	SendDailySummary(ctx context.Context, to string, r *DailyReport) error
	SendMonthlySummary(ctx context.Context, to string, r *MonthlyReport) error
	SendArchiveReport(ctx context.Context, to string, r *ArchiveReport) error
	SendAlert(ctx context.Context, to, subject, body string) error
}

type Service interface {
	Daily(ctx context.Context, date string) (*DailyReport, error)
	Monthly(ctx context.Context, year int, month time.Month) (*MonthlyReport, error)
	// ArchiveYear moves the year's events into the archive store and
	// returns the yearly breakdown. Not idempotent: a second call on the
	// same year sees an empty live log.
	ArchiveYear(ctx context.Context, year int) (*ArchiveReport, error)

	SendTestEmail(ctx context.Context) error
	SendDailySummary(ctx context.Context, date string) (*DailyReport, error)
	SendMonthlySummary(ctx context.Context, year int, month time.Month) (*MonthlyReport, error)
}

type service struct {
	punches    punch.Repository
	users      user.Repository
	mailer     Mailer
	adminEmail string
	loc        *time.Location
	group      singleflight.Group
	now        func() time.Time
	logger     *zap.Logger
}

// NewService wires the report generator. mailer may be nil when SMTP is
// not configured; send operations then fail with a 503.
func NewService(punches punch.Repository, users user.Repository, mailer Mailer, adminEmail string, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		punches:    punches,
		users:      users,
		mailer:     mailer,
		adminEmail: adminEmail,
		loc:        loc,
		now:        time.Now,
		logger:     l,
	}
}

func (s *service) Daily(ctx context.Context, date string) (*DailyReport, error) {
	if _, err := time.Parse(punch.DateLayout, date); err != nil {
		return nil, reporterrors.ErrInvalidDate
	}

	events, err := s.punches.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	employees, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	byUser := make(map[string][]punch.ClockEvent)
	for _, e := range events {
		id := e.UserID.String()
		byUser[id] = append(byUser[id], e)
	}

	rep := &DailyReport{Date: date}
	for _, u := range employees {
		userEvents := punch.SortEvents(byUser[u.ID.String()])
		rep.Employees = append(rep.Employees, EmployeeDay{
			UserID:    u.ID.String(),
			Username:  u.Username,
			Summary:   punch.ComputeDay(userEvents),
			Anomalies: dayAnomalies(userEvents),
		})
	}
	return rep, nil
}

func (s *service) Monthly(ctx context.Context, year int, month time.Month) (*MonthlyReport, error) {
	if month < time.January || month > time.December {
		return nil, reporterrors.ErrInvalidMonth
	}

	// Collapse concurrent requests for the same month (cron firing while
	// an admin triggers the same report by hand) into one computation.
	// The computation runs on a detached context: its result is shared by
	// every collapsed waiter, so the first caller hanging up must not fail
	// the rest.
	key := fmt.Sprintf("monthly:%04d-%02d", year, month)
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.computeMonthly(context.WithoutCancel(ctx), year, month)
	})
	if err != nil {
		return nil, err
	}
	return v.(*MonthlyReport), nil
}

func (s *service) computeMonthly(ctx context.Context, year int, month time.Month) (*MonthlyReport, error) {
	events, err := s.punches.FindByMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	employees, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	byUser := make(map[string][]punch.ClockEvent)
	for _, e := range events {
		id := e.UserID.String()
		byUser[id] = append(byUser[id], e)
	}

	rep := &MonthlyReport{Year: year, Month: int(month)}
	for _, u := range employees {
		rep.Employees = append(rep.Employees, EmployeeMonth{
			UserID:   u.ID.String(),
			Username: u.Username,
			Summary:  punch.ComputeMonthly(byUser[u.ID.String()]),
		})
	}
	return rep, nil
}

func (s *service) ArchiveYear(ctx context.Context, year int) (*ArchiveReport, error) {
	events, err := s.punches.ArchiveYear(ctx, year)
	if err != nil {
		return nil, err
	}

	s.logger.Info("archived year",
		zap.Int("year", year),
		zap.Int("events", len(events)),
	)

	return &ArchiveReport{
		Year:       year,
		EventCount: len(events),
		Summary:    punch.ComputeYearly(events),
	}, nil
}

func (s *service) SendTestEmail(ctx context.Context) error {
	if s.mailer == nil {
		return reporterrors.ErrMailerNotConfigured
	}
	return s.mailer.SendTest(ctx, s.adminEmail)
}

func (s *service) SendDailySummary(ctx context.Context, date string) (*DailyReport, error) {
	if s.mailer == nil {
		return nil, reporterrors.ErrMailerNotConfigured
	}
	if date == "" {
		date = s.now().In(s.loc).Format(punch.DateLayout)
	}
	rep, err := s.Daily(ctx, date)
	if err != nil {
		return nil, err
	}
	if err := s.mailer.SendDailySummary(ctx, s.adminEmail, rep); err != nil {
		return nil, err
	}
	s.logger.Info("daily summary sent", zap.String("date", date), zap.String("to", s.adminEmail))
	return rep, nil
}

func (s *service) SendMonthlySummary(ctx context.Context, year int, month time.Month) (*MonthlyReport, error) {
	if s.mailer == nil {
		return nil, reporterrors.ErrMailerNotConfigured
	}
	if year == 0 || month == 0 {
		today := s.now().In(s.loc)
		year, month = today.Year(), today.Month()
	}
	rep, err := s.Monthly(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if err := s.mailer.SendMonthlySummary(ctx, s.adminEmail, rep); err != nil {
		return nil, err
	}
	s.logger.Info("monthly summary sent",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.String("to", s.adminEmail),
	)
	return rep, nil
}

// dayAnomalies flags incomplete days. A day with no events at all is
// not an anomaly, just an absence.
func dayAnomalies(events []punch.ClockEvent) []string {
	if len(events) == 0 {
		return nil
	}
	var hasStart, hasEnd bool
	for _, e := range events {
		switch e.Action {
		case punch.ActionStartDay:
			hasStart = true
		case punch.ActionEndDay:
			hasEnd = true
		}
	}
	var anomalies []string
	if !hasStart {
		anomalies = append(anomalies, "no start_day recorded")
	}
	if !hasEnd {
		anomalies = append(anomalies, "day never ended")
	}
	return anomalies
}
