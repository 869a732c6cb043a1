package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedJob is a worker's bookmark on a job. Persisted as a real relation so
// bookmarks survive restarts and scale past a single process.
type SavedJob struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_saved_jobs_user_job"`
	JobID     uuid.UUID `gorm:"column:job_id;type:uuid;not null;uniqueIndex:idx_saved_jobs_user_job"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
