// Package mailer is the SMTP implementation of report.Mailer, rendering
// HTML bodies from embedded templates and shipping them with gomail.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/config"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/report"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

type Mailer struct {
	dialer    *gomail.Dialer
	from      string
	templates *template.Template
	logger    *zap.Logger
}

var _ report.Mailer = (*Mailer)(nil)

// New builds the SMTP mailer. Returns an error if the embedded templates
// fail to parse, which would otherwise surface at first send.
func New(cfg config.SMTPConfig, logger ...*zap.Logger) (*Mailer, error) {
	l := zap.L().Named("mailer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}

	tmpl, err := template.New("emails").Funcs(template.FuncMap{
		"hoursMinutes": hoursMinutes,
		"monthName":    monthName,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("mailer: parse templates: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &Mailer{
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:      from,
		templates: tmpl,
		logger:    l,
	}, nil
}

func (m *Mailer) SendTest(ctx context.Context, to string) error {
	body, err := m.render("test.html", map[string]any{
		"SentAt": time.Now().Format(time.RFC1123),
	})
	if err != nil {
		return err
	}
	return m.send(ctx, to, "Time clock - test email", body)
}

func (m *Mailer) SendDailySummary(ctx context.Context, to string, r *report.DailyReport) error {
	body, err := m.render("daily_summary.html", r)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Daily summary - %s", r.Date)
	return m.send(ctx, to, subject, body)
}

func (m *Mailer) SendMonthlySummary(ctx context.Context, to string, r *report.MonthlyReport) error {
	body, err := m.render("monthly_summary.html", r)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Monthly summary - %s %d", monthName(r.Month), r.Year)
	return m.send(ctx, to, subject, body)
}

func (m *Mailer) SendArchiveReport(ctx context.Context, to string, r *report.ArchiveReport) error {
	body, err := m.render("archive_report.html", r)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Yearly archive completed - %d", r.Year)
	return m.send(ctx, to, subject, body)
}

func (m *Mailer) SendAlert(ctx context.Context, to, subject, body string) error {
	rendered, err := m.render("alert.html", map[string]any{
		"Subject": subject,
		"Body":    body,
	})
	if err != nil {
		return err
	}
	return m.send(ctx, to, "[ALERT] "+subject, rendered)
}

func (m *Mailer) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := m.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("mailer: render %s: %w", name, err)
	}
	return buf.String(), nil
}

// send respects context cancellation by running the SMTP dial in a
// goroutine; gomail has no context support of its own.
func (m *Mailer) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			m.logger.Error("smtp send failed",
				zap.String("to", to),
				zap.String("subject", subject),
				zap.Error(err),
			)
			return fmt.Errorf("mailer: send %q: %w", subject, err)
		}
		m.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
		return nil
	}
}

func hoursMinutes(minutes int) string {
	return fmt.Sprintf("%dh%02d", minutes/60, minutes%60)
}

func monthName(month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("month %d", month)
	}
	return time.Month(month).String()
}
