package applications

import (
	"time"

	"github.com/google/uuid"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
)

// ApplicationDTO is the transport shape for a job application.
type ApplicationDTO struct {
	ID              uuid.UUID               `json:"id"`
	JobID           uuid.UUID               `json:"job_id"`
	JobTitle        string                  `json:"job_title,omitempty"`
	RestaurantID    uuid.UUID               `json:"restaurant_id"`
	RestaurantName  string                  `json:"restaurant_name,omitempty"`
	WorkerProfileID uuid.UUID               `json:"worker_profile_id"`
	WorkerName      string                  `json:"worker_name,omitempty"`
	Status          enums.ApplicationStatus `json:"status"`
	Message         *string                 `json:"message,omitempty"`
	AppliedAt       time.Time               `json:"applied_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

func FromModel(m *models.Application) *ApplicationDTO {
	if m == nil {
		return nil
	}
	return &ApplicationDTO{
		ID:              m.ID,
		JobID:           m.JobID,
		RestaurantID:    m.RestaurantID,
		WorkerProfileID: m.WorkerProfileID,
		Status:          m.Status,
		Message:         m.Message,
		AppliedAt:       m.AppliedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
