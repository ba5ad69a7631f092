package geofence

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=geofence_repo.go -destination=mock/geofence_repo_mock.go -package=mock

// Repository persists the single zone configuration. Load falls back to
// DefaultConfig when nothing has been saved yet; it never fails on
// missing data.
type Repository interface {
	Load(ctx context.Context) (Config, error)
	Save(ctx context.Context, cfg Config) error
}

// configRow is the single-row table backing the postgres driver.
type configRow struct {
	ID          int     `gorm:"column:id;primaryKey"`
	Enabled     bool    `gorm:"column:enabled;not null"`
	Latitude    float64 `gorm:"column:latitude;not null"`
	Longitude   float64 `gorm:"column:longitude;not null"`
	Radius      float64 `gorm:"column:radius;not null"`
	Description string  `gorm:"column:description;type:varchar(200)"`
}

func (configRow) TableName() string {
	return "geofence_config"
}

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Migrate creates the config table. The row type is unexported, so the
// postgres bootstrap calls this instead of AutoMigrate directly.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&configRow{})
}

func (r *gormRepository) Load(ctx context.Context) (Config, error) {
	var row configRow
	err := r.db.WithContext(ctx).First(&row, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, err
	}

	return Config{
		Enabled:     row.Enabled,
		Center:      Coordinates{Latitude: row.Latitude, Longitude: row.Longitude},
		Radius:      row.Radius,
		Description: row.Description,
	}, nil
}

func (r *gormRepository) Save(ctx context.Context, cfg Config) error {
	row := configRow{
		ID:          1,
		Enabled:     cfg.Enabled,
		Latitude:    cfg.Center.Latitude,
		Longitude:   cfg.Center.Longitude,
		Radius:      cfg.Radius,
		Description: cfg.Description,
	}
	return r.db.WithContext(ctx).Save(&row).Error
}
