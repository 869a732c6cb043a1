package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shiftplate/shiftplate-backend/pkg/enums"
)

// Job is a shift posting owned by a restaurant.
type Job struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RestaurantID uuid.UUID       `gorm:"column:restaurant_id;type:uuid;not null;index"`
	Title        string          `gorm:"column:title;not null"`
	Description  string          `gorm:"column:description;not null"`
	Requirements *string         `gorm:"column:requirements"`
	HourlyRate   decimal.Decimal `gorm:"column:hourly_rate;type:numeric(8,2);not null"`
	StartsAt     time.Time       `gorm:"column:starts_at;not null"`
	EndsAt       time.Time       `gorm:"column:ends_at;not null"`
	MaxWorkers   int             `gorm:"column:max_workers;not null;default:1"`
	Status       enums.JobStatus `gorm:"column:status;type:job_status;not null;default:'active'"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
