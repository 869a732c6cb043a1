package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shiftplate/shiftplate-backend/pkg/enums"
)

// Device is a push delivery target registered by a user. Rows are targets
// only; no delivery pipeline lives in this service.
type Device struct {
	ID        uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	Token     string               `gorm:"column:token;not null;uniqueIndex"`
	Platform  enums.DevicePlatform `gorm:"column:platform;type:device_platform;not null"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
