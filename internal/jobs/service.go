package jobs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/internal/notifications"
	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
	"github.com/shiftplate/shiftplate-backend/pkg/logger"
	"github.com/shiftplate/shiftplate-backend/pkg/pagination"
)

type restaurantFinder interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Restaurant, error)
}

type jobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.JobStatus) (int64, error)
	List(ctx context.Context, filter ListFilter, cursor string, limit int) ([]JobDTO, string, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Job, error)
	FindInterestedWorkerIDs(ctx context.Context, restaurantID uuid.UUID) ([]uuid.UUID, error)
}

// ServiceParams groups dependencies for the jobs service.
type ServiceParams struct {
	Repo        jobRepository
	Restaurants restaurantFinder
	Dispatcher  notifications.Dispatcher
	Logger      *logger.Logger
}

// Service exposes job posting operations.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateJobInput) (*JobDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*JobDTO, error)
	List(ctx context.Context, filter ListFilter, cursor string, limit int) (*JobPageDTO, error)
	ListOwn(ctx context.Context, ownerID uuid.UUID) ([]JobDTO, error)
	Update(ctx context.Context, ownerID, jobID uuid.UUID, input UpdateJobInput) (*JobDTO, error)
	UpdateStatus(ctx context.Context, ownerID, jobID uuid.UUID, status enums.JobStatus) (*JobDTO, error)
}

// CreateJobInput captures the fields required to post a job.
type CreateJobInput struct {
	Title        string
	Description  string
	Requirements *string
	HourlyRate   decimal.Decimal
	StartsAt     time.Time
	EndsAt       time.Time
	MaxWorkers   int
}

// UpdateJobInput captures the mutable job fields.
type UpdateJobInput struct {
	Title        *string
	Description  *string
	Requirements *string
	HourlyRate   *decimal.Decimal
	StartsAt     *time.Time
	EndsAt       *time.Time
	MaxWorkers   *int
}

type service struct {
	repo        jobRepository
	restaurants restaurantFinder
	dispatcher  notifications.Dispatcher
	logg        *logger.Logger
}

// NewService builds a jobs service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "jobs repository required")
	}
	if params.Restaurants == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "restaurants repository required")
	}
	if params.Dispatcher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notification dispatcher required")
	}
	return &service{
		repo:        params.Repo,
		restaurants: params.Restaurants,
		dispatcher:  params.Dispatcher,
		logg:        params.Logger,
	}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input CreateJobInput) (*JobDTO, error) {
	restaurant, err := s.ownedRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.HourlyRate.IsNegative() || input.HourlyRate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hourly rate must be positive")
	}
	if !input.EndsAt.After(input.StartsAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shift must end after it starts")
	}
	maxWorkers := input.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	job := &models.Job{
		RestaurantID: restaurant.ID,
		Title:        title,
		Description:  strings.TrimSpace(input.Description),
		Requirements: input.Requirements,
		HourlyRate:   input.HourlyRate,
		StartsAt:     input.StartsAt,
		EndsAt:       input.EndsAt,
		MaxWorkers:   maxWorkers,
		Status:       enums.JobStatusActive,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create job")
	}

	s.notifyInterestedWorkers(ctx, restaurant, job)

	dto := FromModel(job)
	dto.RestaurantName = restaurant.Name
	return dto, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*JobDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "job id is required")
	}
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "job not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job")
	}
	return FromModel(job), nil
}

func (s *service) List(ctx context.Context, filter ListFilter, cursor string, limit int) (*JobPageDTO, error) {
	if _, err := pagination.ParseCursor(strings.TrimSpace(cursor)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	items, next, err := s.repo.List(ctx, filter, cursor, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list jobs")
	}
	return &JobPageDTO{Items: items, Cursor: next}, nil
}

func (s *service) ListOwn(ctx context.Context, ownerID uuid.UUID) ([]JobDTO, error) {
	restaurant, err := s.ownedRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByRestaurant(ctx, restaurant.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list jobs")
	}
	items := make([]JobDTO, 0, len(rows))
	for i := range rows {
		dto := FromModel(&rows[i])
		dto.RestaurantName = restaurant.Name
		items = append(items, *dto)
	}
	return items, nil
}

func (s *service) Update(ctx context.Context, ownerID, jobID uuid.UUID, input UpdateJobInput) (*JobDTO, error) {
	restaurant, job, err := s.ownedJob(ctx, ownerID, jobID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		job.Title = title
	}
	if input.Description != nil {
		job.Description = strings.TrimSpace(*input.Description)
	}
	if input.Requirements != nil {
		job.Requirements = input.Requirements
	}
	if input.HourlyRate != nil {
		if input.HourlyRate.IsNegative() || input.HourlyRate.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "hourly rate must be positive")
		}
		job.HourlyRate = *input.HourlyRate
	}
	if input.StartsAt != nil {
		job.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		job.EndsAt = *input.EndsAt
	}
	if !job.EndsAt.After(job.StartsAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shift must end after it starts")
	}
	if input.MaxWorkers != nil {
		if *input.MaxWorkers <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "max workers must be positive")
		}
		job.MaxWorkers = *input.MaxWorkers
	}

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update job")
	}
	dto := FromModel(job)
	dto.RestaurantName = restaurant.Name
	return dto, nil
}

func (s *service) UpdateStatus(ctx context.Context, ownerID, jobID uuid.UUID, status enums.JobStatus) (*JobDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid job status")
	}
	restaurant, job, err := s.ownedJob(ctx, ownerID, jobID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.UpdateStatus(ctx, job.ID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update job status")
	}
	job.Status = status
	dto := FromModel(job)
	dto.RestaurantName = restaurant.Name
	return dto, nil
}

// notifyInterestedWorkers is best-effort: failures are logged and the job
// creation stands.
func (s *service) notifyInterestedWorkers(ctx context.Context, restaurant *models.Restaurant, job *models.Job) {
	workerIDs, err := s.repo.FindInterestedWorkerIDs(ctx, restaurant.ID)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "job_id", job.ID.String()), "job.notify.audience_lookup_failed")
		}
		return
	}

	events := make([]notifications.Event, 0, len(workerIDs))
	for _, workerID := range workerIDs {
		events = append(events, notifications.Event{
			Kind:           enums.NotificationTypeNewJob,
			RecipientID:    workerID,
			JobID:          job.ID,
			JobTitle:       job.Title,
			RestaurantName: restaurant.Name,
		})
	}
	if err := s.dispatcher.DispatchAll(ctx, events); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "job_id", job.ID.String()), "job.notify.dispatch_failed")
	}
}

func (s *service) ownedRestaurant(ctx context.Context, ownerID uuid.UUID) (*models.Restaurant, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}
	restaurant, err := s.restaurants.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}
	return restaurant, nil
}

func (s *service) ownedJob(ctx context.Context, ownerID, jobID uuid.UUID) (*models.Restaurant, *models.Job, error) {
	restaurant, err := s.ownedRestaurant(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	if jobID == uuid.Nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "job id is required")
	}
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "job not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job")
	}
	if job.RestaurantID != restaurant.ID {
		return nil, nil, pkgerrors.New(pkgerrors.CodeForbidden, "job belongs to another restaurant")
	}
	return restaurant, job, nil
}
