package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
)

// Repository encapsulates review persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a reviews repo bound to the provided GORM DB.
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

// Create inserts a review row.
func (r *Repository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// ListForRestaurant returns worker-authored reviews of the restaurant,
// newest first.
func (r *Repository) ListForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND author_role = ?", restaurantID, enums.RoleWorker).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// ListForWorker returns owner-authored reviews of the worker, newest first.
func (r *Repository) ListForWorker(ctx context.Context, workerProfileID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("worker_profile_id = ? AND author_role = ?", workerProfileID, enums.RoleRestaurantOwner).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

type ratingSummary struct {
	Average float64 `gorm:"column:average"`
	Count   int64   `gorm:"column:count"`
}

// AverageForWorker returns the worker's average rating and review count.
func (r *Repository) AverageForWorker(ctx context.Context, workerProfileID uuid.UUID) (float64, int64, error) {
	var summary ratingSummary
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("worker_profile_id = ? AND author_role = ?", workerProfileID, enums.RoleRestaurantOwner).
		Scan(&summary).Error
	return summary.Average, summary.Count, err
}

// AverageForRestaurant returns the restaurant's average rating and review count.
func (r *Repository) AverageForRestaurant(ctx context.Context, restaurantID uuid.UUID) (float64, int64, error) {
	var summary ratingSummary
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("restaurant_id = ? AND author_role = ?", restaurantID, enums.RoleWorker).
		Scan(&summary).Error
	return summary.Average, summary.Count, err
}
