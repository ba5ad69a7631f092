package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/config"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/report"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/scheduler"
)

// RunScheduler is the entry point of the cron binary. It shares the
// storage and mail wiring with the HTTP app but mounts no routes.
func RunScheduler(cfg *config.Config) error {
	st, err := buildStores(cfg)
	if err != nil {
		return err
	}

	m, err := buildMailer(cfg)
	if err != nil {
		return err
	}

	reportService := report.NewService(st.punches, st.users, m, cfg.AdminEmail, cfg.Location)
	sched := scheduler.New(reportService, m, cfg.AdminEmail, cfg.Location)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return sched.Start(ctx)
}
