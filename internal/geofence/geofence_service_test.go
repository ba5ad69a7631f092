package geofence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	cfg     Config
	loadErr error
	saved   *Config
	saveErr error
}

func (f *fakeRepo) Load(ctx context.Context) (Config, error) {
	if f.loadErr != nil {
		return Config{}, f.loadErr
	}
	return f.cfg, nil
}

func (f *fakeRepo) Save(ctx context.Context, cfg Config) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = &cfg
	return nil
}

func TestService_Check_UsesStoredConfig(t *testing.T) {
	repo := &fakeRepo{cfg: Config{
		Enabled: true,
		Center:  Coordinates{Latitude: 48.8606, Longitude: 2.3376},
		Radius:  100,
	}}
	svc := NewService(repo)

	result, err := svc.Check(context.Background(), 48.8606, 2.3376)
	assert.NoError(t, err)
	assert.True(t, result.InZone)

	result, err = svc.Check(context.Background(), 48.9, 2.5)
	assert.NoError(t, err)
	assert.False(t, result.InZone)
}

func TestService_Check_FallsBackToDefaultOnLoadError(t *testing.T) {
	repo := &fakeRepo{loadErr: errors.New("disk gone")}
	svc := NewService(repo)

	result, err := svc.Check(context.Background(), 48.9, 2.5)
	assert.NoError(t, err)
	assert.True(t, result.InZone)
	assert.Equal(t, "Geofencing disabled", result.Message)
}

func TestService_UpdateConfig(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	radius := 250.0
	cfg, err := svc.UpdateConfig(context.Background(), UpdateConfigRequest{
		Enabled:     true,
		Center:      &Coordinates{Latitude: 48.8606, Longitude: 2.3376},
		Radius:      &radius,
		Description: "Office",
	})

	assert.NoError(t, err)
	require.NotNil(t, repo.saved)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 250.0, cfg.Radius)
	assert.Equal(t, "Office", cfg.Description)
	assert.Equal(t, *repo.saved, cfg)
}

func TestService_UpdateConfig_DefaultsPreserved(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	cfg, err := svc.UpdateConfig(context.Background(), UpdateConfigRequest{Enabled: false})
	assert.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 100.0, cfg.Radius)
	assert.Equal(t, "Zone not configured", cfg.Description)
}

func TestService_UpdateConfig_SaveError(t *testing.T) {
	repo := &fakeRepo{saveErr: errors.New("readonly fs")}
	svc := NewService(repo)

	_, err := svc.UpdateConfig(context.Background(), UpdateConfigRequest{Enabled: true})
	assert.Error(t, err)
}
