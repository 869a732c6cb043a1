package applications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/internal/notifications"
	"github.com/shiftplate/shiftplate-backend/pkg/db"
	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
	"github.com/shiftplate/shiftplate-backend/pkg/logger"
)

type applicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ExistsForJobWorker(ctx context.Context, jobID, workerProfileID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ApplicationStatus) (int64, error)
	ListByWorker(ctx context.Context, workerProfileID uuid.UUID) ([]ApplicationDTO, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]ApplicationDTO, error)
}

type workerProfileFinder interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.WorkerProfile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.WorkerProfile, error)
}

type jobFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
}

type restaurantFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Restaurant, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ServiceParams groups dependencies for the applications service.
type ServiceParams struct {
	Repo        applicationRepository
	Workers     workerProfileFinder
	Jobs        jobFinder
	Restaurants restaurantFinder
	Users       userFinder
	Dispatcher  notifications.Dispatcher
	Logger      *logger.Logger
}

// Service exposes application operations for workers and restaurant owners.
type Service interface {
	Submit(ctx context.Context, workerUserID, jobID uuid.UUID, message *string) (*ApplicationDTO, error)
	Withdraw(ctx context.Context, workerUserID, applicationID uuid.UUID) (*ApplicationDTO, error)
	UpdateStatus(ctx context.Context, ownerID, applicationID uuid.UUID, status enums.ApplicationStatus) (*ApplicationDTO, error)
	ListMine(ctx context.Context, workerUserID uuid.UUID) ([]ApplicationDTO, error)
	ListForJob(ctx context.Context, ownerID, jobID uuid.UUID) ([]ApplicationDTO, error)
}

type service struct {
	repo        applicationRepository
	workers     workerProfileFinder
	jobs        jobFinder
	restaurants restaurantFinder
	users       userFinder
	dispatcher  notifications.Dispatcher
	logg        *logger.Logger
}

// NewService builds an applications service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "applications repository required")
	}
	if params.Workers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "workers repository required")
	}
	if params.Jobs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "jobs repository required")
	}
	if params.Restaurants == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "restaurants repository required")
	}
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	}
	if params.Dispatcher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notification dispatcher required")
	}
	return &service{
		repo:        params.Repo,
		workers:     params.Workers,
		jobs:        params.Jobs,
		restaurants: params.Restaurants,
		users:       params.Users,
		dispatcher:  params.Dispatcher,
		logg:        params.Logger,
	}, nil
}

func (s *service) Submit(ctx context.Context, workerUserID, jobID uuid.UUID, message *string) (*ApplicationDTO, error) {
	profile, err := s.workerProfile(ctx, workerUserID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "job not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job")
	}
	if job.Status != enums.JobStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "job is not accepting applications")
	}

	exists, err := s.repo.ExistsForJobWorker(ctx, job.ID, profile.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing application")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "already applied to this job")
	}

	if message != nil {
		trimmed := strings.TrimSpace(*message)
		if trimmed == "" {
			message = nil
		} else {
			message = &trimmed
		}
	}

	application := &models.Application{
		JobID:           job.ID,
		WorkerProfileID: profile.ID,
		RestaurantID:    job.RestaurantID,
		Status:          enums.ApplicationStatusPending,
		Message:         message,
		AppliedAt:       time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, application); err != nil {
		// The unique index closes the race the existence check leaves open.
		if db.IsUniqueViolation(err, UniqueJobWorkerConstraint) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "already applied to this job")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create application")
	}

	dto := FromModel(application)
	dto.JobTitle = job.Title

	workerName := "A worker"
	if user, err := s.users.FindByID(ctx, workerUserID); err == nil {
		workerName = strings.TrimSpace(user.FirstName + " " + user.LastName)
	}
	dto.WorkerName = workerName

	restaurant, err := s.restaurants.FindByID(ctx, job.RestaurantID)
	if err != nil {
		s.warn(ctx, application.ID, "application.notify.restaurant_lookup_failed")
		return dto, nil
	}
	dto.RestaurantName = restaurant.Name

	s.notifyOwner(ctx, application, job, restaurant, workerName)

	return dto, nil
}

func (s *service) Withdraw(ctx context.Context, workerUserID, applicationID uuid.UUID) (*ApplicationDTO, error) {
	profile, err := s.workerProfile(ctx, workerUserID)
	if err != nil {
		return nil, err
	}

	application, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if application.WorkerProfileID != profile.ID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "application belongs to another worker")
	}
	if application.Status == enums.ApplicationStatusWithdrawn {
		return FromModel(application), nil
	}

	if _, err := s.repo.UpdateStatus(ctx, application.ID, enums.ApplicationStatusWithdrawn); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "withdraw application")
	}
	application.Status = enums.ApplicationStatusWithdrawn
	return FromModel(application), nil
}

func (s *service) UpdateStatus(ctx context.Context, ownerID, applicationID uuid.UUID, status enums.ApplicationStatus) (*ApplicationDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid application status")
	}

	restaurant, err := s.ownedRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	application, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if application.RestaurantID != restaurant.ID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "application belongs to another restaurant")
	}

	if _, err := s.repo.UpdateStatus(ctx, application.ID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update application status")
	}
	application.Status = status

	s.notifyWorker(ctx, application)

	return FromModel(application), nil
}

func (s *service) ListMine(ctx context.Context, workerUserID uuid.UUID) ([]ApplicationDTO, error) {
	profile, err := s.workerProfile(ctx, workerUserID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListByWorker(ctx, profile.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list applications")
	}
	return items, nil
}

func (s *service) ListForJob(ctx context.Context, ownerID, jobID uuid.UUID) ([]ApplicationDTO, error) {
	restaurant, err := s.ownedRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "job not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job")
	}
	if job.RestaurantID != restaurant.ID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "job belongs to another restaurant")
	}

	items, err := s.repo.ListByJob(ctx, job.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list applications")
	}
	return items, nil
}

// notifyOwner is best-effort: a notification failure never fails the submit.
func (s *service) notifyOwner(ctx context.Context, application *models.Application, job *models.Job, restaurant *models.Restaurant, workerName string) {
	err := s.dispatcher.Dispatch(ctx, notifications.Event{
		Kind:          enums.NotificationTypeNewApplication,
		RecipientID:   restaurant.OwnerID,
		JobID:         job.ID,
		JobTitle:      job.Title,
		ApplicationID: application.ID,
		SenderName:    workerName,
	})
	if err != nil {
		s.warn(ctx, application.ID, "application.notify.dispatch_failed")
	}
}

// notifyWorker is best-effort: a notification failure never fails the update.
func (s *service) notifyWorker(ctx context.Context, application *models.Application) {
	profile, err := s.workers.FindByID(ctx, application.WorkerProfileID)
	if err != nil {
		s.warn(ctx, application.ID, "application.notify.worker_lookup_failed")
		return
	}

	jobTitle := ""
	if job, err := s.jobs.FindByID(ctx, application.JobID); err == nil {
		jobTitle = job.Title
	}

	err = s.dispatcher.Dispatch(ctx, notifications.Event{
		Kind:          enums.NotificationTypeApplicationStatus,
		RecipientID:   profile.UserID,
		JobID:         application.JobID,
		JobTitle:      jobTitle,
		ApplicationID: application.ID,
		Status:        application.Status,
	})
	if err != nil {
		s.warn(ctx, application.ID, "application.notify.dispatch_failed")
	}
}

func (s *service) warn(ctx context.Context, applicationID uuid.UUID, event string) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "application_id", applicationID.String()), event)
}

func (s *service) workerProfile(ctx context.Context, workerUserID uuid.UUID) (*models.WorkerProfile, error) {
	if workerUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "worker id is required")
	}
	profile, err := s.workers.FindByUser(ctx, workerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "worker profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load worker profile")
	}
	return profile, nil
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

func (s *service) findApplication(ctx context.Context, applicationID uuid.UUID) (*models.Application, error) {
	if applicationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "application id is required")
	}
	application, err := s.repo.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "application not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load application")
	}
	return application, nil
}
