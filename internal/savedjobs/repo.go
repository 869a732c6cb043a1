package savedjobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shiftplate/shiftplate-backend/internal/jobs"
	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
)

// Repository encapsulates saved-job persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a saved-jobs repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Add bookmarks a job for the user. Saving twice is a no-op thanks to the
// conflict clause on the (user, job) index.
func (r *Repository) Add(ctx context.Context, userID, jobID uuid.UUID) error {
	saved := &models.SavedJob{UserID: userID, JobID: jobID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(saved).Error
}

// Remove deletes the bookmark and reports how many rows went away.
func (r *Repository) Remove(ctx context.Context, userID, jobID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Delete(&models.SavedJob{})
	return result.RowsAffected, result.Error
}

// Exists reports whether the user bookmarked the job.
func (r *Repository) Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SavedJob{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error
	return count > 0, err
}

type savedJobRecord struct {
	models.Job
	RestaurantName string    `gorm:"column:restaurant_name"`
	SavedAt        time.Time `gorm:"column:saved_at"`
}

// List returns the user's bookmarked jobs, most recently saved first.
func (r *Repository) List(ctx context.Context, userID uuid.UUID) ([]SavedJobDTO, error) {
	var records []savedJobRecord
	err := r.db.WithContext(ctx).
		Table("saved_jobs sj").
		Select("j.*, rst.name AS restaurant_name, sj.created_at AS saved_at").
		Joins("JOIN jobs j ON j.id = sj.job_id").
		Joins("JOIN restaurants rst ON rst.id = j.restaurant_id").
		Where("sj.user_id = ?", userID).
		Order("sj.created_at DESC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	items := make([]SavedJobDTO, 0, len(records))
	for i := range records {
		job := jobs.FromModel(&records[i].Job)
		job.RestaurantName = records[i].RestaurantName
		items = append(items, SavedJobDTO{Job: *job, SavedAt: records[i].SavedAt})
	}
	return items, nil
}

// CountByUser counts the user's bookmarks. Used by the worker dashboard.
func (r *Repository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SavedJob{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
