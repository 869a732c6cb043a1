package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shiftplate/shiftplate-backend/pkg/enums"
)

// Application links a worker profile to a job. The composite unique index is
// the only guard against concurrent duplicate submissions; there is no
// transaction around the handler's check-then-insert sequence.
//
// RestaurantID is denormalized from the job so owner-side queries avoid a join.
type Application struct {
	ID              uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	JobID           uuid.UUID               `gorm:"column:job_id;type:uuid;not null;uniqueIndex:idx_applications_job_worker"`
	WorkerProfileID uuid.UUID               `gorm:"column:worker_profile_id;type:uuid;not null;uniqueIndex:idx_applications_job_worker"`
	RestaurantID    uuid.UUID               `gorm:"column:restaurant_id;type:uuid;not null;index"`
	Status          enums.ApplicationStatus `gorm:"column:status;type:application_status;not null;default:'pending'"`
	Message         *string                 `gorm:"column:message"`
	AppliedAt       time.Time               `gorm:"column:applied_at;not null;default:now()"`
	RemindedAt      *time.Time              `gorm:"column:reminded_at"`
	UpdatedAt       time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
