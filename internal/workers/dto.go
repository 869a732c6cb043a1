package workers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
)

// WorkerProfileDTO is the transport shape for a worker profile.
type WorkerProfileDTO struct {
	ID           uuid.UUID        `json:"id"`
	UserID       uuid.UUID        `json:"user_id"`
	Bio          *string          `json:"bio,omitempty"`
	Skills       []string         `json:"skills"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"`
	Availability *string          `json:"availability,omitempty"`
	Phone        *string          `json:"phone,omitempty"`
	City         *string          `json:"city,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func FromModel(m *models.WorkerProfile) *WorkerProfileDTO {
	if m == nil {
		return nil
	}

	skills := make([]string, 0, len(m.Skills))
	skills = append(skills, m.Skills...)

	return &WorkerProfileDTO{
		ID:           m.ID,
		UserID:       m.UserID,
		Bio:          m.Bio,
		Skills:       skills,
		HourlyRate:   m.HourlyRate,
		Availability: m.Availability,
		Phone:        m.Phone,
		City:         m.City,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
