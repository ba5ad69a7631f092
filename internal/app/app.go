// Package app assembles the application: storage driver selection,
// optional infrastructure (postgres, redis, SMTP), and module wiring.
package app

import (
	"fmt"

	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/config"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/geofence"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/mailer"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/punch"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/report"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/shared/connection"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// stores groups the per-feature repositories so both the HTTP app and
// the scheduler build them the same way.
type stores struct {
	punches  punch.Repository
	users    user.Repository
	geofence geofence.Repository
}

func BuildApp(router *gin.Engine, cfg *config.Config) error {
	st, err := buildStores(cfg)
	if err != nil {
		return err
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
		if err != nil {
			return err
		}
		zap.L().Info("redis connection established", zap.String("addr", cfg.RedisAddr))
	}

	m, err := buildMailer(cfg)
	if err != nil {
		return err
	}

	return registerModules(router, cfg, st, rdb, m)
}

// buildStores picks the storage driver. The file driver is the default
// and needs no external services; postgres is opt-in via STORAGE_DRIVER.
func buildStores(cfg *config.Config) (*stores, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := connection.ConnectGORMWithRetry(
			cfg.DB.Host,
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Name,
			cfg.DB.Port,
			cfg.DB.SSLMode,
			5,
		)
		if err != nil {
			return nil, err
		}
		if err := migrate(db); err != nil {
			return nil, err
		}
		return &stores{
			punches:  punch.NewGormRepository(db),
			users:    user.NewGormRepository(db),
			geofence: geofence.NewGormRepository(db),
		}, nil

	case config.DriverFile:
		punchRepo, err := punch.NewFileRepository(cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		userRepo, err := user.NewFileRepository(cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		geoRepo, err := geofence.NewFileRepository(cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		zap.L().Info("file storage ready", zap.String("dir", cfg.Storage.DataDir))
		return &stores{punches: punchRepo, users: userRepo, geofence: geoRepo}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&punch.ClockEvent{},
		&punch.ArchivedClockEvent{},
		&user.User{},
	); err != nil {
		return err
	}
	return geofence.Migrate(db)
}

// buildMailer returns nil without error when SMTP is not configured;
// email endpoints then answer 503 and the scheduler only logs.
func buildMailer(cfg *config.Config) (report.Mailer, error) {
	if !cfg.SMTP.Configured() || cfg.AdminEmail == "" {
		zap.L().Warn("SMTP not configured, email delivery disabled")
		return nil, nil
	}
	m, err := mailer.New(cfg.SMTP)
	if err != nil {
		return nil, err
	}
	return m, nil
}
