package restaurants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
)

// Repository encapsulates restaurant persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a restaurants repo bound to the provided GORM DB.
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

// Create inserts a restaurant row.
func (r *Repository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	return r.db.WithContext(ctx).Create(restaurant).Error
}

// FindByID loads a restaurant with its address and photos.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).
		Preload("Address").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// FindByOwner loads the restaurant belonging to the provided owner user.
func (r *Repository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).
		Preload("Address").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		First(&restaurant, "owner_id = ?", ownerID).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// Update persists the mutable restaurant fields.
func (r *Repository) Update(ctx context.Context, restaurant *models.Restaurant) error {
	return r.db.WithContext(ctx).Save(restaurant).Error
}

// UpsertAddress creates or replaces the restaurant's address record.
func (r *Repository) UpsertAddress(ctx context.Context, address *models.RestaurantAddress) error {
	return r.db.WithContext(ctx).
		Where("restaurant_id = ?", address.RestaurantID).
		Assign(map[string]any{
			"line1":       address.Line1,
			"line2":       address.Line2,
			"city":        address.City,
			"state":       address.State,
			"postal_code": address.PostalCode,
			"country":     address.Country,
		}).
		FirstOrCreate(&models.RestaurantAddress{RestaurantID: address.RestaurantID}).Error
}

// AddPhoto appends a gallery photo.
func (r *Repository) AddPhoto(ctx context.Context, photo *models.RestaurantPhoto) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

// RemovePhoto deletes a photo scoped to the restaurant.
func (r *Repository) RemovePhoto(ctx context.Context, restaurantID, photoID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND restaurant_id = ?", photoID, restaurantID).
		Delete(&models.RestaurantPhoto{})
	return result.RowsAffected, result.Error
}
