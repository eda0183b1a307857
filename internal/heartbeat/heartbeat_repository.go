package heartbeat

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrNoDatabase is returned when the heartbeat runs without a database.
var ErrNoDatabase = errors.New("database not configured")

// Pinger reports the database clock.
type Pinger interface {
	Now(ctx context.Context) (time.Time, error)
}

type heartbeatRepository struct {
	db *gorm.DB
}

// NewHeartbeatRepository creates a Pinger over db. A nil db yields a Pinger
// that always fails with ErrNoDatabase.
func NewHeartbeatRepository(db *gorm.DB) Pinger {
	return &heartbeatRepository{db: db}
}

func (r *heartbeatRepository) Now(ctx context.Context) (time.Time, error) {
	if r.db == nil {
		return time.Time{}, ErrNoDatabase
	}
	var row struct {
		Time time.Time
	}
	if err := r.db.WithContext(ctx).Raw("SELECT NOW() AS time").Scan(&row).Error; err != nil {
		return time.Time{}, err
	}
	return row.Time, nil
}
