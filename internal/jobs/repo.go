package jobs

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	"github.com/shiftplate/shiftplate-backend/pkg/pagination"
)

// Repository encapsulates job persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a jobs repo bound to the provided GORM DB.
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

// ListFilter narrows the public job listing.
type ListFilter struct {
	RestaurantID *uuid.UUID
	Status       *enums.JobStatus
	City         *string
	Search       *string
}

// Create inserts a job row.
func (r *Repository) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// FindByID loads a job by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// Update persists the mutable job fields.
func (r *Repository) Update(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

// UpdateStatus flips the job status directly.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.JobStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	return result.RowsAffected, result.Error
}

type jobListRecord struct {
	models.Job
	RestaurantName string `gorm:"column:restaurant_name"`
}

// List returns a cursor-paginated page of jobs with the owning restaurant name.
func (r *Repository) List(ctx context.Context, filter ListFilter, cursor string, limit int) ([]JobDTO, string, error) {
	normalized := pagination.NormalizeLimit(limit)
	buffered := pagination.LimitWithBuffer(limit)

	decoded, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Table("jobs j").
		Select("j.*, r.name AS restaurant_name").
		Joins("JOIN restaurants r ON r.id = j.restaurant_id")

	if filter.RestaurantID != nil {
		query = query.Where("j.restaurant_id = ?", *filter.RestaurantID)
	}
	if filter.Status != nil {
		query = query.Where("j.status = ?", *filter.Status)
	}
	if filter.City != nil && *filter.City != "" {
		query = query.Joins("LEFT JOIN restaurant_addresses ra ON ra.restaurant_id = r.id").
			Where("ra.city ILIKE ?", *filter.City)
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		query = query.Where("j.title ILIKE ? OR j.description ILIKE ?", pattern, pattern)
	}
	if decoded != nil {
		query = query.Where("(j.created_at, j.id) < (?, ?)", decoded.CreatedAt, decoded.ID)
	}

	var records []jobListRecord
	if err := query.Order("j.created_at DESC, j.id DESC").Limit(buffered).Scan(&records).Error; err != nil {
		return nil, "", err
	}

	next := ""
	if len(records) > normalized {
		records = records[:normalized]
		last := records[len(records)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	items := make([]JobDTO, 0, len(records))
	for _, record := range records {
		dto := FromModel(&record.Job)
		dto.RestaurantName = record.RestaurantName
		items = append(items, *dto)
	}
	return items, next, nil
}

// ListByRestaurant returns all jobs owned by a restaurant, newest first.
func (r *Repository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

// FindInterestedWorkerIDs returns user ids of workers who previously applied
// to this restaurant. Used as the audience for new-job notifications.
func (r *Repository) FindInterestedWorkerIDs(ctx context.Context, restaurantID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("applications a").
		Distinct("wp.user_id").
		Joins("JOIN worker_profiles wp ON wp.id = a.worker_profile_id").
		Where("a.restaurant_id = ?", restaurantID).
		Scan(&ids).Error
	return ids, err
}

// CountByRestaurantStatus counts jobs for a restaurant in the given status.
func (r *Repository) CountByRestaurantStatus(ctx context.Context, restaurantID uuid.UUID, status enums.JobStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("restaurant_id = ? AND status = ?", restaurantID, status).
		Count(&count).Error
	return count, err
}

// FindRecentByRestaurant returns the most recent jobs for the activity feed.
func (r *Repository) FindRecentByRestaurant(ctx context.Context, restaurantID uuid.UUID, limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

// FindStartingWithin returns accepted-application jobs starting inside the
// reminder window that have not yet been reminded.
func (r *Repository) FindStartingWithin(ctx context.Context, from, until time.Time) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("status = ? AND starts_at > ? AND starts_at <= ?", enums.JobStatusActive, from, until).
		Find(&jobs).Error
	return jobs, err
}
