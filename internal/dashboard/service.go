package dashboard

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/internal/applications"
	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
	"github.com/shiftplate/shiftplate-backend/pkg/timeutil"
)

const activityLimit = 5

type restaurantFinder interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Restaurant, error)
}

type workerFinder interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.WorkerProfile, error)
}

type jobCounter interface {
	CountByRestaurantStatus(ctx context.Context, restaurantID uuid.UUID, status enums.JobStatus) (int64, error)
	FindRecentByRestaurant(ctx context.Context, restaurantID uuid.UUID, limit int) ([]models.Job, error)
}

type applicationCounter interface {
	CountByRestaurantStatus(ctx context.Context, restaurantID uuid.UUID, status enums.ApplicationStatus) (int64, error)
	CountByWorker(ctx context.Context, workerProfileID uuid.UUID) (int64, error)
	CountByWorkerStatus(ctx context.Context, workerProfileID uuid.UUID, status enums.ApplicationStatus) (int64, error)
	CountUpcomingByRestaurant(ctx context.Context, restaurantID uuid.UUID, after time.Time) (int64, error)
	CountUpcomingByWorker(ctx context.Context, workerProfileID uuid.UUID, after time.Time) (int64, error)
	FindRecentByRestaurant(ctx context.Context, restaurantID uuid.UUID, limit int) ([]applications.ApplicationDTO, error)
	FindRecentByWorker(ctx context.Context, workerProfileID uuid.UUID, limit int) ([]applications.ApplicationDTO, error)
}

type savedJobCounter interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type messageCounter interface {
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

// OwnerStatsDTO is the restaurant-side dashboard summary.
type OwnerStatsDTO struct {
	ActiveJobs           int64 `json:"active_jobs"`
	FilledJobs           int64 `json:"filled_jobs"`
	PendingApplications  int64 `json:"pending_applications"`
	AcceptedApplications int64 `json:"accepted_applications"`
	UpcomingShifts       int64 `json:"upcoming_shifts"`
	UnreadMessages       int64 `json:"unread_messages"`
}

// WorkerStatsDTO is the worker-side dashboard summary.
type WorkerStatsDTO struct {
	TotalApplications    int64 `json:"total_applications"`
	PendingApplications  int64 `json:"pending_applications"`
	AcceptedApplications int64 `json:"accepted_applications"`
	UpcomingShifts       int64 `json:"upcoming_shifts"`
	SavedJobs            int64 `json:"saved_jobs"`
	UnreadMessages       int64 `json:"unread_messages"`
}

// StatsDTO carries exactly one side's stats depending on the caller's role.
type StatsDTO struct {
	Role   enums.Role      `json:"role"`
	Owner  *OwnerStatsDTO  `json:"owner,omitempty"`
	Worker *WorkerStatsDTO `json:"worker,omitempty"`
}

// ActivityItemDTO is one entry in the recent-activity feed.
type ActivityItemDTO struct {
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	OccurredAt   time.Time `json:"occurred_at"`
	RelativeTime string    `json:"relative_time"`
}

// ServiceParams groups dependencies for the dashboard service.
type ServiceParams struct {
	Restaurants  restaurantFinder
	Workers      workerFinder
	Jobs         jobCounter
	Applications applicationCounter
	SavedJobs    savedJobCounter
	Messages     messageCounter
}

// Service aggregates per-role stats and recent activity.
type Service interface {
	Stats(ctx context.Context, userID uuid.UUID, role enums.Role) (*StatsDTO, error)
	Activity(ctx context.Context, userID uuid.UUID, role enums.Role) ([]ActivityItemDTO, error)
}

type service struct {
	restaurants  restaurantFinder
	workers      workerFinder
	jobs         jobCounter
	applications applicationCounter
	savedJobs    savedJobCounter
	messages     messageCounter
	now          func() time.Time
}

// NewService builds a dashboard service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Restaurants == nil || params.Workers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profile repositories required")
	}
	if params.Jobs == nil || params.Applications == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "jobs and applications repositories required")
	}
	if params.SavedJobs == nil || params.Messages == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "saved jobs and messages repositories required")
	}
	return &service{
		restaurants:  params.Restaurants,
		workers:      params.Workers,
		jobs:         params.Jobs,
		applications: params.Applications,
		savedJobs:    params.SavedJobs,
		messages:     params.Messages,
		now:          time.Now,
	}, nil
}

func (s *service) Stats(ctx context.Context, userID uuid.UUID, role enums.Role) (*StatsDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	switch role {
	case enums.RoleRestaurantOwner:
		return s.ownerStats(ctx, userID)
	case enums.RoleWorker:
		return s.workerStats(ctx, userID)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown role")
	}
}

func (s *service) ownerStats(ctx context.Context, userID uuid.UUID) (*StatsDTO, error) {
	restaurant, err := s.ownerRestaurant(ctx, userID)
	if err != nil {
		return nil, err
	}

	var stats OwnerStatsDTO
	now := s.now()
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		count, err := s.jobs.CountByRestaurantStatus(groupCtx, restaurant.ID, enums.JobStatusActive)
		stats.ActiveJobs = count
		return err
	})
	group.Go(func() error {
		count, err := s.jobs.CountByRestaurantStatus(groupCtx, restaurant.ID, enums.JobStatusFilled)
		stats.FilledJobs = count
		return err
	})
	group.Go(func() error {
		count, err := s.applications.CountByRestaurantStatus(groupCtx, restaurant.ID, enums.ApplicationStatusPending)
		stats.PendingApplications = count
		return err
	})
	group.Go(func() error {
		count, err := s.applications.CountByRestaurantStatus(groupCtx, restaurant.ID, enums.ApplicationStatusAccepted)
		stats.AcceptedApplications = count
		return err
	})
	group.Go(func() error {
		count, err := s.applications.CountUpcomingByRestaurant(groupCtx, restaurant.ID, now)
		stats.UpcomingShifts = count
		return err
	})
	group.Go(func() error {
		count, err := s.messages.CountUnread(groupCtx, userID)
		stats.UnreadMessages = count
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "owner stats")
	}

	return &StatsDTO{Role: enums.RoleRestaurantOwner, Owner: &stats}, nil
}

func (s *service) workerStats(ctx context.Context, userID uuid.UUID) (*StatsDTO, error) {
	profile, err := s.workerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	var stats WorkerStatsDTO
	now := s.now()
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		count, err := s.applications.CountByWorker(groupCtx, profile.ID)
		stats.TotalApplications = count
		return err
	})
	group.Go(func() error {
		count, err := s.applications.CountByWorkerStatus(groupCtx, profile.ID, enums.ApplicationStatusPending)
		stats.PendingApplications = count
		return err
	})
	group.Go(func() error {
		count, err := s.applications.CountByWorkerStatus(groupCtx, profile.ID, enums.ApplicationStatusAccepted)
		stats.AcceptedApplications = count
		return err
	})
	group.Go(func() error {
		count, err := s.applications.CountUpcomingByWorker(groupCtx, profile.ID, now)
		stats.UpcomingShifts = count
		return err
	})
	group.Go(func() error {
		count, err := s.savedJobs.CountByUser(groupCtx, userID)
		stats.SavedJobs = count
		return err
	})
	group.Go(func() error {
		count, err := s.messages.CountUnread(groupCtx, userID)
		stats.UnreadMessages = count
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "worker stats")
	}

	return &StatsDTO{Role: enums.RoleWorker, Worker: &stats}, nil
}

func (s *service) Activity(ctx context.Context, userID uuid.UUID, role enums.Role) ([]ActivityItemDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	switch role {
	case enums.RoleRestaurantOwner:
		return s.ownerActivity(ctx, userID)
	case enums.RoleWorker:
		return s.workerActivity(ctx, userID)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown role")
	}
}

func (s *service) ownerActivity(ctx context.Context, userID uuid.UUID) ([]ActivityItemDTO, error) {
	restaurant, err := s.ownerRestaurant(ctx, userID)
	if err != nil {
		return nil, err
	}

	recentApplications, err := s.applications.FindRecentByRestaurant(ctx, restaurant.ID, activityLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recent applications")
	}
	recentJobs, err := s.jobs.FindRecentByRestaurant(ctx, restaurant.ID, activityLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recent jobs")
	}

	now := s.now()
	items := make([]ActivityItemDTO, 0, len(recentApplications)+len(recentJobs))
	for _, application := range recentApplications {
		items = append(items, ActivityItemDTO{
			Type:         "application_received",
			Title:        application.WorkerName + " applied to " + application.JobTitle,
			OccurredAt:   application.AppliedAt,
			RelativeTime: timeutil.Relative(now, application.AppliedAt),
		})
	}
	for _, job := range recentJobs {
		items = append(items, ActivityItemDTO{
			Type:         "job_posted",
			Title:        "Posted " + job.Title,
			OccurredAt:   job.CreatedAt,
			RelativeTime: timeutil.Relative(now, job.CreatedAt),
		})
	}
	return capChronological(items), nil
}

func (s *service) workerActivity(ctx context.Context, userID uuid.UUID) ([]ActivityItemDTO, error) {
	profile, err := s.workerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.applications.FindRecentByWorker(ctx, profile.ID, activityLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recent applications")
	}

	now := s.now()
	items := make([]ActivityItemDTO, 0, len(recent))
	for _, application := range recent {
		items = append(items, ActivityItemDTO{
			Type:         "application_sent",
			Title:        "Applied to " + application.JobTitle + " at " + application.RestaurantName,
			OccurredAt:   application.AppliedAt,
			RelativeTime: timeutil.Relative(now, application.AppliedAt),
		})
	}
	return capChronological(items), nil
}

// capChronological sorts newest first and keeps the top activityLimit items.
func capChronological(items []ActivityItemDTO) []ActivityItemDTO {
	sort.Slice(items, func(i, j int) bool {
		return items[i].OccurredAt.After(items[j].OccurredAt)
	})
	if len(items) > activityLimit {
		items = items[:activityLimit]
	}
	return items
}

func (s *service) ownerRestaurant(ctx context.Context, userID uuid.UUID) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.FindByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}
	return restaurant, nil
}

func (s *service) workerProfile(ctx context.Context, userID uuid.UUID) (*models.WorkerProfile, error) {
	profile, err := s.workers.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "worker profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load worker profile")
	}
	return profile, nil
}
