package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/shiftplate/shiftplate-backend/pkg/db/types"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
)

// Notification stores in-app notification payloads scoped to a recipient user.
// Data is an opaque jsonb payload echoing the references the client needs to
// deep-link (application id, job title, sender id, ...).
type Notification struct {
	ID        uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index"`
	Type      enums.NotificationType `gorm:"type:notification_type;not null"`
	Title     string                 `gorm:"type:text;not null"`
	Message   string                 `gorm:"type:text;not null"`
	Data      dbtypes.JSONMap        `gorm:"column:data;type:jsonb;not null;default:'{}'"`
	ReadAt    *time.Time             `gorm:"column:read_at"`
	CreatedAt time.Time              `gorm:"column:created_at;default:now()"`
}
