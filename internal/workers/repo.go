package workers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
)

// Repository encapsulates worker profile persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a workers repo bound to the provided GORM DB.
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

// Create inserts a worker profile row.
func (r *Repository) Create(ctx context.Context, profile *models.WorkerProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// FindByID loads a profile by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.WorkerProfile, error) {
	var profile models.WorkerProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByUser loads the profile owned by the provided user.
func (r *Repository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.WorkerProfile, error) {
	var profile models.WorkerProfile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update persists the mutable profile fields.
func (r *Repository) Update(ctx context.Context, profile *models.WorkerProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
