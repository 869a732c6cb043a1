package applications

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
)

// UniqueJobWorkerConstraint is the Postgres constraint guarding one
// application per worker per job.
const UniqueJobWorkerConstraint = "idx_applications_job_worker"

// Repository encapsulates application persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an applications repo bound to the provided GORM DB.
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

// Create inserts an application row. Duplicate (job, worker) pairs surface as
// a unique violation on UniqueJobWorkerConstraint.
func (r *Repository) Create(ctx context.Context, application *models.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

// FindByID loads an application by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var application models.Application
	if err := r.db.WithContext(ctx).First(&application, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// ExistsForJobWorker reports whether the worker already applied to the job.
func (r *Repository) ExistsForJobWorker(ctx context.Context, jobID, workerProfileID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("job_id = ? AND worker_profile_id = ?", jobID, workerProfileID).
		Count(&count).Error
	return count > 0, err
}

// ExistsAcceptedForPair reports whether the restaurant ever accepted one of
// the worker's applications. Reviews are gated on it.
func (r *Repository) ExistsAcceptedForPair(ctx context.Context, restaurantID, workerProfileID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("restaurant_id = ? AND worker_profile_id = ? AND status = ?", restaurantID, workerProfileID, enums.ApplicationStatusAccepted).
		Count(&count).Error
	return count > 0, err
}

// UpdateStatus flips the application status directly.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ApplicationStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	return result.RowsAffected, result.Error
}

type workerApplicationRecord struct {
	models.Application
	JobTitle       string `gorm:"column:job_title"`
	RestaurantName string `gorm:"column:restaurant_name"`
}

// ListByWorker returns the worker's applications with job and restaurant
// context, newest first.
func (r *Repository) ListByWorker(ctx context.Context, workerProfileID uuid.UUID) ([]ApplicationDTO, error) {
	var records []workerApplicationRecord
	err := r.db.WithContext(ctx).
		Table("applications a").
		Select("a.*, j.title AS job_title, rst.name AS restaurant_name").
		Joins("JOIN jobs j ON j.id = a.job_id").
		Joins("JOIN restaurants rst ON rst.id = a.restaurant_id").
		Where("a.worker_profile_id = ?", workerProfileID).
		Order("a.applied_at DESC, a.id DESC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	items := make([]ApplicationDTO, 0, len(records))
	for i := range records {
		dto := FromModel(&records[i].Application)
		dto.JobTitle = records[i].JobTitle
		dto.RestaurantName = records[i].RestaurantName
		items = append(items, *dto)
	}
	return items, nil
}

type jobApplicationRecord struct {
	models.Application
	JobTitle        string `gorm:"column:job_title"`
	WorkerFirstName string `gorm:"column:worker_first_name"`
	WorkerLastName  string `gorm:"column:worker_last_name"`
}

// ListByJob returns all applications for a job with the applicant's name.
func (r *Repository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]ApplicationDTO, error) {
	var records []jobApplicationRecord
	err := r.db.WithContext(ctx).
		Table("applications a").
		Select("a.*, j.title AS job_title, u.first_name AS worker_first_name, u.last_name AS worker_last_name").
		Joins("JOIN jobs j ON j.id = a.job_id").
		Joins("JOIN worker_profiles wp ON wp.id = a.worker_profile_id").
		Joins("JOIN users u ON u.id = wp.user_id").
		Where("a.job_id = ?", jobID).
		Order("a.applied_at DESC, a.id DESC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	items := make([]ApplicationDTO, 0, len(records))
	for i := range records {
		dto := FromModel(&records[i].Application)
		dto.JobTitle = records[i].JobTitle
		dto.WorkerName = records[i].WorkerFirstName + " " + records[i].WorkerLastName
		items = append(items, *dto)
	}
	return items, nil
}

// CountByRestaurantStatus counts applications for a restaurant in the given
// status. Used by the owner dashboard.
func (r *Repository) CountByRestaurantStatus(ctx context.Context, restaurantID uuid.UUID, status enums.ApplicationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("restaurant_id = ? AND status = ?", restaurantID, status).
		Count(&count).Error
	return count, err
}

// CountByWorkerStatus counts the worker's applications in the given status.
func (r *Repository) CountByWorkerStatus(ctx context.Context, workerProfileID uuid.UUID, status enums.ApplicationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("worker_profile_id = ? AND status = ?", workerProfileID, status).
		Count(&count).Error
	return count, err
}

// CountByWorker counts all of the worker's applications.
func (r *Repository) CountByWorker(ctx context.Context, workerProfileID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("worker_profile_id = ?", workerProfileID).
		Count(&count).Error
	return count, err
}

// CountUpcomingByRestaurant counts accepted applications for jobs that have
// not started yet. Feeds the owner dashboard's scheduled-shift number.
func (r *Repository) CountUpcomingByRestaurant(ctx context.Context, restaurantID uuid.UUID, after time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("applications a").
		Joins("JOIN jobs j ON j.id = a.job_id").
		Where("a.restaurant_id = ? AND a.status = ?", restaurantID, enums.ApplicationStatusAccepted).
		Where("j.starts_at > ?", after).
		Count(&count).Error
	return count, err
}

// CountUpcomingByWorker counts the worker's accepted applications for jobs
// that have not started yet.
func (r *Repository) CountUpcomingByWorker(ctx context.Context, workerProfileID uuid.UUID, after time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("applications a").
		Joins("JOIN jobs j ON j.id = a.job_id").
		Where("a.worker_profile_id = ? AND a.status = ?", workerProfileID, enums.ApplicationStatusAccepted).
		Where("j.starts_at > ?", after).
		Count(&count).Error
	return count, err
}

// FindRecentByRestaurant returns the restaurant's newest applications for the
// activity feed.
func (r *Repository) FindRecentByRestaurant(ctx context.Context, restaurantID uuid.UUID, limit int) ([]ApplicationDTO, error) {
	var records []jobApplicationRecord
	err := r.db.WithContext(ctx).
		Table("applications a").
		Select("a.*, j.title AS job_title, u.first_name AS worker_first_name, u.last_name AS worker_last_name").
		Joins("JOIN jobs j ON j.id = a.job_id").
		Joins("JOIN worker_profiles wp ON wp.id = a.worker_profile_id").
		Joins("JOIN users u ON u.id = wp.user_id").
		Where("a.restaurant_id = ?", restaurantID).
		Order("a.applied_at DESC, a.id DESC").
		Limit(limit).
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	items := make([]ApplicationDTO, 0, len(records))
	for i := range records {
		dto := FromModel(&records[i].Application)
		dto.JobTitle = records[i].JobTitle
		dto.WorkerName = records[i].WorkerFirstName + " " + records[i].WorkerLastName
		items = append(items, *dto)
	}
	return items, nil
}

// FindRecentByWorker returns the worker's newest applications for the
// activity feed.
func (r *Repository) FindRecentByWorker(ctx context.Context, workerProfileID uuid.UUID, limit int) ([]ApplicationDTO, error) {
	var records []workerApplicationRecord
	err := r.db.WithContext(ctx).
		Table("applications a").
		Select("a.*, j.title AS job_title, rst.name AS restaurant_name").
		Joins("JOIN jobs j ON j.id = a.job_id").
		Joins("JOIN restaurants rst ON rst.id = a.restaurant_id").
		Where("a.worker_profile_id = ?", workerProfileID).
		Order("a.applied_at DESC, a.id DESC").
		Limit(limit).
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	items := make([]ApplicationDTO, 0, len(records))
	for i := range records {
		dto := FromModel(&records[i].Application)
		dto.JobTitle = records[i].JobTitle
		dto.RestaurantName = records[i].RestaurantName
		items = append(items, *dto)
	}
	return items, nil
}

// ReminderRow is one accepted application whose shift starts inside the
// reminder window.
type ReminderRow struct {
	ApplicationID uuid.UUID `gorm:"column:application_id"`
	WorkerUserID  uuid.UUID `gorm:"column:worker_user_id"`
	JobID         uuid.UUID `gorm:"column:job_id"`
	JobTitle      string    `gorm:"column:job_title"`
	StartsAt      time.Time `gorm:"column:starts_at"`
}

// FindAcceptedStartingBetween returns accepted, not-yet-reminded applications
// whose job starts within (from, until].
func (r *Repository) FindAcceptedStartingBetween(ctx context.Context, from, until time.Time) ([]ReminderRow, error) {
	var rows []ReminderRow
	err := r.db.WithContext(ctx).
		Table("applications a").
		Select("a.id AS application_id, wp.user_id AS worker_user_id, j.id AS job_id, j.title AS job_title, j.starts_at").
		Joins("JOIN jobs j ON j.id = a.job_id").
		Joins("JOIN worker_profiles wp ON wp.id = a.worker_profile_id").
		Where("a.status = ? AND a.reminded_at IS NULL", enums.ApplicationStatusAccepted).
		Where("j.starts_at > ? AND j.starts_at <= ?", from, until).
		Scan(&rows).Error
	return rows, err
}

// MarkReminded stamps reminded_at so the cron never double-sends.
func (r *Repository) MarkReminded(ctx context.Context, ids []uuid.UUID, now time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id IN ?", ids).
		UpdateColumn("reminded_at", now)
	return result.RowsAffected, result.Error
}
