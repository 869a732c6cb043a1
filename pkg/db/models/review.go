package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shiftplate/shiftplate-backend/pkg/enums"
)

// Review is feedback between a restaurant and a worker after working together.
// AuthorRole records which side wrote it.
type Review struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RestaurantID    uuid.UUID  `gorm:"column:restaurant_id;type:uuid;not null;index"`
	WorkerProfileID uuid.UUID  `gorm:"column:worker_profile_id;type:uuid;not null;index"`
	AuthorRole      enums.Role `gorm:"column:author_role;type:user_role;not null"`
	Rating          int        `gorm:"column:rating;not null"`
	Comment         *string    `gorm:"column:comment"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
}
