package workers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
)

// Service exposes worker profile operations.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*WorkerProfileDTO, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*WorkerProfileDTO, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*WorkerProfileDTO, error)
}

// UpdateProfileInput captures the allowed worker profile fields for mutation.
type UpdateProfileInput struct {
	Bio          *string
	Skills       *[]string
	HourlyRate   *decimal.Decimal
	Availability *string
	Phone        *string
	City         *string
}

type service struct {
	repo *Repository
}

// NewService builds a worker profile service with the provided repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "workers repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*WorkerProfileDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile id is required")
	}
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLoadError(err)
	}
	return FromModel(profile), nil
}

func (s *service) GetByUser(ctx context.Context, userID uuid.UUID) (*WorkerProfileDTO, error) {
	profile, err := s.ownedProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FromModel(profile), nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*WorkerProfileDTO, error) {
	profile, err := s.ownedProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Bio != nil {
		profile.Bio = input.Bio
	}
	if input.Skills != nil {
		profile.Skills = pq.StringArray(*input.Skills)
	}
	if input.HourlyRate != nil {
		if input.HourlyRate.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "hourly rate cannot be negative")
		}
		profile.HourlyRate = input.HourlyRate
	}
	if input.Availability != nil {
		profile.Availability = input.Availability
	}
	if input.Phone != nil {
		profile.Phone = input.Phone
	}
	if input.City != nil {
		profile.City = input.City
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	return FromModel(profile), nil
}

func (s *service) ownedProfile(ctx context.Context, userID uuid.UUID) (*models.WorkerProfile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	profile, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, mapLoadError(err)
	}
	return profile, nil
}

func mapLoadError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "worker profile not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load worker profile")
}
