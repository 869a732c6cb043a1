package models

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is the owner-side tenant. Exactly one per restaurant_owner user.
type Restaurant struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID      uuid.UUID `gorm:"column:owner_id;type:uuid;not null;uniqueIndex"`
	Name         string    `gorm:"column:name;not null"`
	BusinessType string    `gorm:"column:business_type;not null"`
	CuisineType  *string   `gorm:"column:cuisine_type"`
	Description  *string   `gorm:"column:description"`
	Phone        *string   `gorm:"column:phone"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Address *RestaurantAddress `gorm:"foreignKey:RestaurantID"`
	Photos  []RestaurantPhoto  `gorm:"foreignKey:RestaurantID"`
}

// RestaurantAddress is the optional one-to-one address record.
type RestaurantAddress struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RestaurantID uuid.UUID `gorm:"column:restaurant_id;type:uuid;not null;uniqueIndex"`
	Line1        string    `gorm:"column:line1;not null"`
	Line2        *string   `gorm:"column:line2"`
	City         string    `gorm:"column:city;not null"`
	State        string    `gorm:"column:state;not null"`
	PostalCode   string    `gorm:"column:postal_code;not null"`
	Country      string    `gorm:"column:country;not null;default:'US'"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// RestaurantPhoto stores an uploaded gallery image reference.
type RestaurantPhoto struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RestaurantID uuid.UUID `gorm:"column:restaurant_id;type:uuid;not null;index"`
	URL          string    `gorm:"column:url;not null"`
	Position     int       `gorm:"column:position;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

// PaymentProfile holds opaque billing provider references for a restaurant.
// No payment logic lives in this service.
type PaymentProfile struct {
	ID                  uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RestaurantID        uuid.UUID `gorm:"column:restaurant_id;type:uuid;not null;uniqueIndex"`
	ProviderCustomerRef *string   `gorm:"column:provider_customer_ref"`
	PayoutAccountRef    *string   `gorm:"column:payout_account_ref"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
