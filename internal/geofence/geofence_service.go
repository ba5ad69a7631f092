package geofence

import (
	"context"

	"go.uber.org/zap"
)

//go:generate mockgen -source=geofence_service.go -destination=mock/geofence_service_mock.go -package=mock
type Service interface {
	// Check loads the current config and decides on the candidate
	// position. With geofencing disabled every position is in-zone.
	Check(ctx context.Context, lat, lon float64) (Result, error)
	GetConfig(ctx context.Context) (Config, error)
	UpdateConfig(ctx context.Context, req UpdateConfigRequest) (Config, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("geofence.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("geofence.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Check(ctx context.Context, lat, lon float64) (Result, error) {
	cfg, err := s.repo.Load(ctx)
	if err != nil {
		// Missing or broken config falls back to the safe default:
		// geofencing disabled, everything in-zone.
		s.logger.Warn("load geofence config failed, using default", zap.Error(err))
		cfg = DefaultConfig()
	}
	return cfg.Check(lat, lon), nil
}

func (s *service) GetConfig(ctx context.Context) (Config, error) {
	return s.repo.Load(ctx)
}

func (s *service) UpdateConfig(ctx context.Context, req UpdateConfigRequest) (Config, error) {
	cfg := DefaultConfig()
	cfg.Enabled = req.Enabled
	if req.Center != nil {
		cfg.Center = *req.Center
	}
	if req.Radius != nil {
		cfg.Radius = *req.Radius
	}
	if req.Description != "" {
		cfg.Description = req.Description
	}

	if err := s.repo.Save(ctx, cfg); err != nil {
		return Config{}, err
	}

	s.logger.Info("geofence config updated",
		zap.Bool("enabled", cfg.Enabled),
		zap.Float64("radius", cfg.Radius),
	)
	return cfg, nil
}
