package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/internal/applications"
	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
)

type fakeRestaurantFinder struct {
	restaurant *models.Restaurant
}

func (f *fakeRestaurantFinder) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Restaurant, error) {
	if f.restaurant == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.restaurant, nil
}

type fakeWorkerFinder struct {
	profile *models.WorkerProfile
}

func (f *fakeWorkerFinder) FindByUser(ctx context.Context, userID uuid.UUID) (*models.WorkerProfile, error) {
	if f.profile == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.profile, nil
}

type fakeJobCounter struct {
	counts map[enums.JobStatus]int64
	recent []models.Job
}

func (f *fakeJobCounter) CountByRestaurantStatus(ctx context.Context, restaurantID uuid.UUID, status enums.JobStatus) (int64, error) {
	return f.counts[status], nil
}

func (f *fakeJobCounter) FindRecentByRestaurant(ctx context.Context, restaurantID uuid.UUID, limit int) ([]models.Job, error) {
	return f.recent, nil
}

type fakeApplicationCounter struct {
	restaurantCounts   map[enums.ApplicationStatus]int64
	workerCounts       map[enums.ApplicationStatus]int64
	workerTotal        int64
	upcomingRestaurant int64
	upcomingWorker     int64
	recentRestaurant   []applications.ApplicationDTO
	recentWorker       []applications.ApplicationDTO
}

func (f *fakeApplicationCounter) CountByRestaurantStatus(ctx context.Context, restaurantID uuid.UUID, status enums.ApplicationStatus) (int64, error) {
	return f.restaurantCounts[status], nil
}

func (f *fakeApplicationCounter) CountByWorker(ctx context.Context, workerProfileID uuid.UUID) (int64, error) {
	return f.workerTotal, nil
}

func (f *fakeApplicationCounter) CountByWorkerStatus(ctx context.Context, workerProfileID uuid.UUID, status enums.ApplicationStatus) (int64, error) {
	return f.workerCounts[status], nil
}

func (f *fakeApplicationCounter) CountUpcomingByRestaurant(ctx context.Context, restaurantID uuid.UUID, after time.Time) (int64, error) {
	return f.upcomingRestaurant, nil
}

func (f *fakeApplicationCounter) CountUpcomingByWorker(ctx context.Context, workerProfileID uuid.UUID, after time.Time) (int64, error) {
	return f.upcomingWorker, nil
}

func (f *fakeApplicationCounter) FindRecentByRestaurant(ctx context.Context, restaurantID uuid.UUID, limit int) ([]applications.ApplicationDTO, error) {
	return f.recentRestaurant, nil
}

func (f *fakeApplicationCounter) FindRecentByWorker(ctx context.Context, workerProfileID uuid.UUID, limit int) ([]applications.ApplicationDTO, error) {
	return f.recentWorker, nil
}

type fakeSavedJobCounter struct {
	count int64
}

func (f *fakeSavedJobCounter) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return f.count, nil
}

type fakeMessageCounter struct {
	count int64
}

func (f *fakeMessageCounter) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return f.count, nil
}

type dashboardFixture struct {
	restaurants *fakeRestaurantFinder
	workers     *fakeWorkerFinder
	jobs        *fakeJobCounter
	apps        *fakeApplicationCounter
	saved       *fakeSavedJobCounter
	messages    *fakeMessageCounter
}

func (fx *dashboardFixture) build(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Restaurants:  fx.restaurants,
		Workers:      fx.workers,
		Jobs:         fx.jobs,
		Applications: fx.apps,
		SavedJobs:    fx.saved,
		Messages:     fx.messages,
	})
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func defaultFixture() *dashboardFixture {
	return &dashboardFixture{
		restaurants: &fakeRestaurantFinder{},
		workers:     &fakeWorkerFinder{},
		jobs:        &fakeJobCounter{counts: map[enums.JobStatus]int64{}},
		apps: &fakeApplicationCounter{
			restaurantCounts: map[enums.ApplicationStatus]int64{},
			workerCounts:     map[enums.ApplicationStatus]int64{},
		},
		saved:    &fakeSavedJobCounter{},
		messages: &fakeMessageCounter{},
	}
}

func TestOwnerStats(t *testing.T) {
	fx := defaultFixture()
	fx.restaurants.restaurant = &models.Restaurant{ID: uuid.New()}
	fx.jobs.counts = map[enums.JobStatus]int64{
		enums.JobStatusActive: 3,
		enums.JobStatusFilled: 2,
	}
	fx.apps.restaurantCounts = map[enums.ApplicationStatus]int64{
		enums.ApplicationStatusPending:  7,
		enums.ApplicationStatusAccepted: 4,
	}
	fx.apps.upcomingRestaurant = 3
	fx.messages.count = 6
	svc := fx.build(t)

	stats, err := svc.Stats(context.Background(), uuid.New(), enums.RoleRestaurantOwner)
	if err != nil {
		t.Fatalf("unexpected stats error: %v", err)
	}
	if stats.Worker != nil {
		t.Fatal("owner stats must not carry worker numbers")
	}
	owner := stats.Owner
	if owner.ActiveJobs != 3 || owner.FilledJobs != 2 {
		t.Fatalf("unexpected job counts %+v", owner)
	}
	if owner.PendingApplications != 7 || owner.AcceptedApplications != 4 {
		t.Fatalf("unexpected application counts %+v", owner)
	}
	if owner.UpcomingShifts != 3 {
		t.Fatalf("unexpected upcoming shift count %d", owner.UpcomingShifts)
	}
	if owner.UnreadMessages != 6 {
		t.Fatalf("unexpected unread count %d", owner.UnreadMessages)
	}
}

func TestWorkerStatsCountsUpcomingShifts(t *testing.T) {
	fx := defaultFixture()
	fx.workers.profile = &models.WorkerProfile{ID: uuid.New()}
	fx.apps.workerTotal = 5
	fx.apps.workerCounts = map[enums.ApplicationStatus]int64{
		enums.ApplicationStatusAccepted: 2,
	}
	fx.apps.upcomingWorker = 2
	svc := fx.build(t)

	stats, err := svc.Stats(context.Background(), uuid.New(), enums.RoleWorker)
	if err != nil {
		t.Fatalf("unexpected stats error: %v", err)
	}
	worker := stats.Worker
	if worker == nil {
		t.Fatal("expected worker stats")
	}
	if worker.UpcomingShifts != 2 {
		t.Fatalf("unexpected upcoming shift count %d", worker.UpcomingShifts)
	}
}

func TestWorkerStatsZeroData(t *testing.T) {
	fx := defaultFixture()
	fx.workers.profile = &models.WorkerProfile{ID: uuid.New()}
	svc := fx.build(t)

	stats, err := svc.Stats(context.Background(), uuid.New(), enums.RoleWorker)
	if err != nil {
		t.Fatalf("unexpected stats error: %v", err)
	}
	worker := stats.Worker
	if worker == nil {
		t.Fatal("expected worker stats")
	}
	if worker.TotalApplications != 0 || worker.PendingApplications != 0 || worker.SavedJobs != 0 || worker.UpcomingShifts != 0 {
		t.Fatalf("fresh accounts must report zeros, got %+v", worker)
	}
}

func TestStatsUnknownRole(t *testing.T) {
	svc := defaultFixture().build(t)

	_, err := svc.Stats(context.Background(), uuid.New(), enums.Role("admin"))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestOwnerActivityMergedAndCapped(t *testing.T) {
	now := time.Now()
	fx := defaultFixture()
	fx.restaurants.restaurant = &models.Restaurant{ID: uuid.New()}
	for i := 0; i < 4; i++ {
		fx.apps.recentRestaurant = append(fx.apps.recentRestaurant, applications.ApplicationDTO{
			JobTitle:   "Line Cook",
			WorkerName: "Dana Reyes",
			AppliedAt:  now.Add(-time.Duration(i) * time.Hour),
		})
	}
	fx.jobs.recent = []models.Job{
		{Title: "Host", CreatedAt: now.Add(-30 * time.Minute)},
		{Title: "Server", CreatedAt: now.Add(-8 * time.Hour)},
	}
	svc := fx.build(t)

	items, err := svc.Activity(context.Background(), uuid.New(), enums.RoleRestaurantOwner)
	if err != nil {
		t.Fatalf("unexpected activity error: %v", err)
	}
	if len(items) != activityLimit {
		t.Fatalf("expected feed capped at %d, got %d", activityLimit, len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].OccurredAt.After(items[i-1].OccurredAt) {
			t.Fatal("activity must be newest first")
		}
	}
	if items[0].Type != "application_received" {
		t.Fatalf("newest item should be the fresh application, got %s", items[0].Type)
	}
	if items[1].Type != "job_posted" || items[1].Title != "Posted Host" {
		t.Fatalf("unexpected second item %+v", items[1])
	}
	for _, item := range items {
		if item.RelativeTime == "" {
			t.Fatal("expected relative time on every item")
		}
	}
}

func TestWorkerActivity(t *testing.T) {
	now := time.Now()
	fx := defaultFixture()
	fx.workers.profile = &models.WorkerProfile{ID: uuid.New()}
	fx.apps.recentWorker = []applications.ApplicationDTO{
		{JobTitle: "Line Cook", RestaurantName: "Blue Door", AppliedAt: now.Add(-2 * time.Minute)},
	}
	svc := fx.build(t)

	items, err := svc.Activity(context.Background(), uuid.New(), enums.RoleWorker)
	if err != nil {
		t.Fatalf("unexpected activity error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}
	if items[0].Title != "Applied to Line Cook at Blue Door" {
		t.Fatalf("unexpected title %q", items[0].Title)
	}
	if items[0].RelativeTime != "2 minutes ago" {
		t.Fatalf("unexpected relative time %q", items[0].RelativeTime)
	}
}
