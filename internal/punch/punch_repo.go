package punch

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=punch_repo.go -destination=mock/punch_repo_mock.go -package=mock

// Repository is the append-only event store. Events are immutable once
// written; there is no update or delete except the yearly archive move.
type Repository interface {
	Append(ctx context.Context, e *ClockEvent) error
	FindByUserAndDate(ctx context.Context, userID, date string) ([]ClockEvent, error)
	// FindByUser returns a user's events within [from, to] (inclusive,
	// YYYY-MM-DD). Empty bounds leave that side open.
	FindByUser(ctx context.Context, userID, from, to string) ([]ClockEvent, error)
	FindByDate(ctx context.Context, date string) ([]ClockEvent, error)
	FindByMonth(ctx context.Context, year int, month time.Month) ([]ClockEvent, error)
	// ArchiveYear moves every event dated in the given year out of the
	// live log and returns the moved events.
	ArchiveYear(ctx context.Context, year int) ([]ClockEvent, error)
	FindArchivedYear(ctx context.Context, year int) ([]ClockEvent, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGormRepository is the postgres-backed store, used when
// STORAGE_DRIVER=postgres.
func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Append(ctx context.Context, e *ClockEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *gormRepository) FindByUserAndDate(ctx context.Context, userID, date string) ([]ClockEvent, error) {
	var rows []ClockEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("event_date = ?", date).
		Order("recorded_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *gormRepository) FindByUser(ctx context.Context, userID, from, to string) ([]ClockEvent, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if from != "" {
		q = q.Where("event_date >= ?", from)
	}
	if to != "" {
		q = q.Where("event_date <= ?", to)
	}

	var rows []ClockEvent
	err := q.Order("recorded_at ASC").Find(&rows).Error
	return rows, err
}

func (r *gormRepository) FindByDate(ctx context.Context, date string) ([]ClockEvent, error) {
	var rows []ClockEvent
	err := r.db.WithContext(ctx).
		Where("event_date = ?", date).
		Order("recorded_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *gormRepository) FindByMonth(ctx context.Context, year int, month time.Month) ([]ClockEvent, error) {
	var rows []ClockEvent
	err := r.db.WithContext(ctx).
		Where("event_date LIKE ?", fmt.Sprintf("%04d-%02d-%%", year, int(month))).
		Order("recorded_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *gormRepository) ArchiveYear(ctx context.Context, year int) ([]ClockEvent, error) {
	prefix := fmt.Sprintf("%04d-%%", year)

	var moved []ClockEvent
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_date LIKE ?", prefix).Order("recorded_at ASC").Find(&moved).Error; err != nil {
			return err
		}
		if len(moved) == 0 {
			return nil
		}

		archived := make([]ArchivedClockEvent, len(moved))
		for i, e := range moved {
			archived[i] = ArchivedClockEvent(e)
		}
		if err := tx.Create(&archived).Error; err != nil {
			return err
		}
		return tx.Where("event_date LIKE ?", prefix).Delete(&ClockEvent{}).Error
	})
	return moved, err
}

func (r *gormRepository) FindArchivedYear(ctx context.Context, year int) ([]ClockEvent, error) {
	var rows []ArchivedClockEvent
	err := r.db.WithContext(ctx).
		Where("event_date LIKE ?", fmt.Sprintf("%04d-%%", year)).
		Order("recorded_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	events := make([]ClockEvent, len(rows))
	for i, e := range rows {
		events[i] = ClockEvent(e)
	}
	return events, nil
}
