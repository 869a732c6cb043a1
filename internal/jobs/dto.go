package jobs

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
)

// JobDTO is the transport shape for a job posting.
type JobDTO struct {
	ID             uuid.UUID       `json:"id"`
	RestaurantID   uuid.UUID       `json:"restaurant_id"`
	RestaurantName string          `json:"restaurant_name,omitempty"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Requirements   *string         `json:"requirements,omitempty"`
	HourlyRate     decimal.Decimal `json:"hourly_rate"`
	StartsAt       time.Time       `json:"starts_at"`
	EndsAt         time.Time       `json:"ends_at"`
	MaxWorkers     int             `json:"max_workers"`
	Status         enums.JobStatus `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// JobPageDTO wraps a page of jobs plus the cursor for the next page.
type JobPageDTO struct {
	Items  []JobDTO `json:"items"`
	Cursor string   `json:"cursor"`
}

func FromModel(m *models.Job) *JobDTO {
	if m == nil {
		return nil
	}
	return &JobDTO{
		ID:           m.ID,
		RestaurantID: m.RestaurantID,
		Title:        m.Title,
		Description:  m.Description,
		Requirements: m.Requirements,
		HourlyRate:   m.HourlyRate,
		StartsAt:     m.StartsAt,
		EndsAt:       m.EndsAt,
		MaxWorkers:   m.MaxWorkers,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
