package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// WorkerProfile is the worker-side profile. Exactly one per worker user.
type WorkerProfile struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID        `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Bio          *string          `gorm:"column:bio"`
	Skills       pq.StringArray   `gorm:"column:skills;type:text[]"`
	HourlyRate   *decimal.Decimal `gorm:"column:hourly_rate;type:numeric(8,2)"`
	Availability *string          `gorm:"column:availability"`
	Phone        *string          `gorm:"column:phone"`
	City         *string          `gorm:"column:city"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
