package restaurants

import (
	"time"

	"github.com/google/uuid"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
)

// RestaurantDTO is the transport shape for a restaurant profile.
type RestaurantDTO struct {
	ID           uuid.UUID   `json:"id"`
	OwnerID      uuid.UUID   `json:"owner_id"`
	Name         string      `json:"name"`
	BusinessType string      `json:"business_type"`
	CuisineType  *string     `json:"cuisine_type,omitempty"`
	Description  *string     `json:"description,omitempty"`
	Phone        *string     `json:"phone,omitempty"`
	Address      *AddressDTO `json:"address,omitempty"`
	Photos       []PhotoDTO  `json:"photos"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// AddressDTO mirrors the restaurant's one-to-one address record.
type AddressDTO struct {
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2,omitempty"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country"`
}

// PhotoDTO is a gallery image reference.
type PhotoDTO struct {
	ID       uuid.UUID `json:"id"`
	URL      string    `json:"url"`
	Position int       `json:"position"`
}

func FromModel(m *models.Restaurant) *RestaurantDTO {
	if m == nil {
		return nil
	}

	dto := &RestaurantDTO{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		Name:         m.Name,
		BusinessType: m.BusinessType,
		CuisineType:  m.CuisineType,
		Description:  m.Description,
		Phone:        m.Phone,
		Photos:       make([]PhotoDTO, 0, len(m.Photos)),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}

	if m.Address != nil {
		dto.Address = &AddressDTO{
			Line1:      m.Address.Line1,
			Line2:      m.Address.Line2,
			City:       m.Address.City,
			State:      m.Address.State,
			PostalCode: m.Address.PostalCode,
			Country:    m.Address.Country,
		}
	}

	for _, photo := range m.Photos {
		dto.Photos = append(dto.Photos, PhotoDTO{
			ID:       photo.ID,
			URL:      photo.URL,
			Position: photo.Position,
		})
	}

	return dto
}
