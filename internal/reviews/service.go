package reviews

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/internal/notifications"
	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
	"github.com/shiftplate/shiftplate-backend/pkg/logger"
)

type reviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Review, error)
	ListForWorker(ctx context.Context, workerProfileID uuid.UUID) ([]models.Review, error)
	AverageForWorker(ctx context.Context, workerProfileID uuid.UUID) (float64, int64, error)
	AverageForRestaurant(ctx context.Context, restaurantID uuid.UUID) (float64, int64, error)
}

type workerProfileFinder interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.WorkerProfile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.WorkerProfile, error)
}

type restaurantFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Restaurant, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type acceptedHireChecker interface {
	ExistsAcceptedForPair(ctx context.Context, restaurantID, workerProfileID uuid.UUID) (bool, error)
}

// ServiceParams groups dependencies for the reviews service.
type ServiceParams struct {
	Repo         reviewRepository
	Workers      workerProfileFinder
	Restaurants  restaurantFinder
	Users        userFinder
	Applications acceptedHireChecker
	Dispatcher   notifications.Dispatcher
	Logger       *logger.Logger
}

// RatingSummaryDTO is an aggregate rating for one side of the marketplace.
type RatingSummaryDTO struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// Service exposes cross-review operations between owners and workers.
type Service interface {
	ReviewWorker(ctx context.Context, ownerID, workerProfileID uuid.UUID, rating int, comment *string) (*models.Review, error)
	ReviewRestaurant(ctx context.Context, workerUserID, restaurantID uuid.UUID, rating int, comment *string) (*models.Review, error)
	ListForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Review, RatingSummaryDTO, error)
	ListForWorker(ctx context.Context, workerProfileID uuid.UUID) ([]models.Review, RatingSummaryDTO, error)
}

type service struct {
	repo         reviewRepository
	workers      workerProfileFinder
	restaurants  restaurantFinder
	users        userFinder
	applications acceptedHireChecker
	dispatcher   notifications.Dispatcher
	logg         *logger.Logger
}

// NewService builds a reviews service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reviews repository required")
	}
	if params.Workers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "workers repository required")
	}
	if params.Restaurants == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "restaurants repository required")
	}
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	}
	if params.Applications == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "applications repository required")
	}
	if params.Dispatcher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notification dispatcher required")
	}
	return &service{
		repo:         params.Repo,
		workers:      params.Workers,
		restaurants:  params.Restaurants,
		users:        params.Users,
		applications: params.Applications,
		dispatcher:   params.Dispatcher,
		logg:         params.Logger,
	}, nil
}

func (s *service) ReviewWorker(ctx context.Context, ownerID, workerProfileID uuid.UUID, rating int, comment *string) (*models.Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	restaurant, err := s.restaurants.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}

	profile, err := s.workers.FindByID(ctx, workerProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "worker profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load worker profile")
	}

	if err := s.requireAcceptedHire(ctx, restaurant.ID, profile.ID); err != nil {
		return nil, err
	}

	review := &models.Review{
		RestaurantID:    restaurant.ID,
		WorkerProfileID: profile.ID,
		AuthorRole:      enums.RoleRestaurantOwner,
		Rating:          rating,
		Comment:         trimComment(comment),
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}

	s.notify(ctx, review.ID, notifications.Event{
		Kind:        enums.NotificationTypeNewReview,
		RecipientID: profile.UserID,
		AuthorName:  restaurant.Name,
		Rating:      rating,
	})
	return review, nil
}

func (s *service) ReviewRestaurant(ctx context.Context, workerUserID, restaurantID uuid.UUID, rating int, comment *string) (*models.Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	profile, err := s.workers.FindByUser(ctx, workerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "worker profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load worker profile")
	}

	restaurant, err := s.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}

	if err := s.requireAcceptedHire(ctx, restaurant.ID, profile.ID); err != nil {
		return nil, err
	}

	review := &models.Review{
		RestaurantID:    restaurant.ID,
		WorkerProfileID: profile.ID,
		AuthorRole:      enums.RoleWorker,
		Rating:          rating,
		Comment:         trimComment(comment),
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}

	authorName := "A worker"
	if user, err := s.users.FindByID(ctx, workerUserID); err == nil {
		authorName = strings.TrimSpace(user.FirstName + " " + user.LastName)
	}
	s.notify(ctx, review.ID, notifications.Event{
		Kind:        enums.NotificationTypeNewReview,
		RecipientID: restaurant.OwnerID,
		AuthorName:  authorName,
		Rating:      rating,
	})
	return review, nil
}

func (s *service) ListForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Review, RatingSummaryDTO, error) {
	reviews, err := s.repo.ListForRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, RatingSummaryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	average, count, err := s.repo.AverageForRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, RatingSummaryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rating summary")
	}
	return reviews, RatingSummaryDTO{Average: average, Count: count}, nil
}

func (s *service) ListForWorker(ctx context.Context, workerProfileID uuid.UUID) ([]models.Review, RatingSummaryDTO, error) {
	reviews, err := s.repo.ListForWorker(ctx, workerProfileID)
	if err != nil {
		return nil, RatingSummaryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	average, count, err := s.repo.AverageForWorker(ctx, workerProfileID)
	if err != nil {
		return nil, RatingSummaryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rating summary")
	}
	return reviews, RatingSummaryDTO{Average: average, Count: count}, nil
}

// requireAcceptedHire gates reviews on a completed hire: both sides may only
// review each other after the restaurant accepted one of the worker's
// applications.
func (s *service) requireAcceptedHire(ctx context.Context, restaurantID, workerProfileID uuid.UUID) error {
	hired, err := s.applications.ExistsAcceptedForPair(ctx, restaurantID, workerProfileID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check hire history")
	}
	if !hired {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "no accepted application between the parties")
	}
	return nil
}

// notify is best-effort: a notification failure never fails the review.
func (s *service) notify(ctx context.Context, reviewID uuid.UUID, event notifications.Event) {
	if err := s.dispatcher.Dispatch(ctx, event); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "review_id", reviewID.String()), "review.notify.dispatch_failed")
	}
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	return nil
}

func trimComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
