package devices

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
)

// Repository encapsulates push device persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a devices repo bound to the provided GORM DB.
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

// Upsert registers the token, reassigning it when another user re-registers
// the same device.
func (r *Repository) Upsert(ctx context.Context, device *models.Device) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "platform", "updated_at"}),
		}).
		Create(device).Error
}

// DeleteByToken removes the token for the given user only.
func (r *Repository) DeleteByToken(ctx context.Context, userID uuid.UUID, token string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&models.Device{})
	return result.RowsAffected, result.Error
}

// ListByUser returns the user's registered devices, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Device, error) {
	var devices []models.Device
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&devices).Error
	return devices, err
}
