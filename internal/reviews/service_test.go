package reviews

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/internal/notifications"
	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
)

type fakeReviewRepo struct {
	createFn func(ctx context.Context, review *models.Review) error
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *models.Review) error {
	if f.createFn != nil {
		return f.createFn(ctx, review)
	}
	review.ID = uuid.New()
	return nil
}

func (f *fakeReviewRepo) ListForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Review, error) {
	return nil, nil
}

func (f *fakeReviewRepo) ListForWorker(ctx context.Context, workerProfileID uuid.UUID) ([]models.Review, error) {
	return nil, nil
}

func (f *fakeReviewRepo) AverageForWorker(ctx context.Context, workerProfileID uuid.UUID) (float64, int64, error) {
	return 0, 0, nil
}

func (f *fakeReviewRepo) AverageForRestaurant(ctx context.Context, restaurantID uuid.UUID) (float64, int64, error) {
	return 0, 0, nil
}

type fakeWorkerFinder struct {
	byUser map[uuid.UUID]*models.WorkerProfile
	byID   map[uuid.UUID]*models.WorkerProfile
}

func (f *fakeWorkerFinder) FindByUser(ctx context.Context, userID uuid.UUID) (*models.WorkerProfile, error) {
	if profile, ok := f.byUser[userID]; ok {
		return profile, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWorkerFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.WorkerProfile, error) {
	if profile, ok := f.byID[id]; ok {
		return profile, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeRestaurantStore struct {
	byID    map[uuid.UUID]*models.Restaurant
	byOwner map[uuid.UUID]*models.Restaurant
}

func (f *fakeRestaurantStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	if restaurant, ok := f.byID[id]; ok {
		return restaurant, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRestaurantStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Restaurant, error) {
	if restaurant, ok := f.byOwner[ownerID]; ok {
		return restaurant, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeUserFinder struct {
	users map[uuid.UUID]*models.User
}

func (f *fakeUserFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeHireChecker struct {
	hired bool
	err   error
}

func (f *fakeHireChecker) ExistsAcceptedForPair(ctx context.Context, restaurantID, workerProfileID uuid.UUID) (bool, error) {
	return f.hired, f.err
}

type captureDispatcher struct {
	events []notifications.Event
	err    error
}

func (c *captureDispatcher) Dispatch(ctx context.Context, event notifications.Event) error {
	c.events = append(c.events, event)
	return c.err
}

func (c *captureDispatcher) DispatchAll(ctx context.Context, events []notifications.Event) error {
	c.events = append(c.events, events...)
	return c.err
}

type reviewFixture struct {
	ownerID      uuid.UUID
	workerUserID uuid.UUID
	profile      *models.WorkerProfile
	restaurant   *models.Restaurant
	hires        *fakeHireChecker
	dispatcher   *captureDispatcher
	svc          Service
}

func newReviewFixture(t *testing.T, repo *fakeReviewRepo) *reviewFixture {
	t.Helper()

	ownerID := uuid.New()
	workerUserID := uuid.New()
	profile := &models.WorkerProfile{ID: uuid.New(), UserID: workerUserID}
	restaurant := &models.Restaurant{ID: uuid.New(), OwnerID: ownerID, Name: "Blue Door"}
	hires := &fakeHireChecker{hired: true}
	dispatcher := &captureDispatcher{}

	svc, err := NewService(ServiceParams{
		Repo:    repo,
		Workers: &fakeWorkerFinder{byUser: map[uuid.UUID]*models.WorkerProfile{workerUserID: profile}, byID: map[uuid.UUID]*models.WorkerProfile{profile.ID: profile}},
		Restaurants: &fakeRestaurantStore{
			byID:    map[uuid.UUID]*models.Restaurant{restaurant.ID: restaurant},
			byOwner: map[uuid.UUID]*models.Restaurant{ownerID: restaurant},
		},
		Users:        &fakeUserFinder{users: map[uuid.UUID]*models.User{workerUserID: {ID: workerUserID, FirstName: "Dana", LastName: "Reyes"}}},
		Applications: hires,
		Dispatcher:   dispatcher,
	})
	if err != nil {
		t.Fatalf("building service: %v", err)
	}

	return &reviewFixture{
		ownerID:      ownerID,
		workerUserID: workerUserID,
		profile:      profile,
		restaurant:   restaurant,
		hires:        hires,
		dispatcher:   dispatcher,
		svc:          svc,
	}
}

func TestReviewWorkerNotifies(t *testing.T) {
	fx := newReviewFixture(t, &fakeReviewRepo{})

	review, err := fx.svc.ReviewWorker(context.Background(), fx.ownerID, fx.profile.ID, 5, nil)
	if err != nil {
		t.Fatalf("unexpected review error: %v", err)
	}
	if review.AuthorRole != enums.RoleRestaurantOwner {
		t.Fatalf("unexpected author role %s", review.AuthorRole)
	}

	if len(fx.dispatcher.events) != 1 {
		t.Fatalf("expected one notification event, got %d", len(fx.dispatcher.events))
	}
	event := fx.dispatcher.events[0]
	if event.Kind != enums.NotificationTypeNewReview {
		t.Fatalf("unexpected event kind %s", event.Kind)
	}
	if event.RecipientID != fx.workerUserID {
		t.Fatal("review notification must target the worker user")
	}
	if event.Rating != 5 {
		t.Fatalf("unexpected rating %d", event.Rating)
	}
}

func TestReviewRestaurantNotifiesOwner(t *testing.T) {
	fx := newReviewFixture(t, &fakeReviewRepo{})

	review, err := fx.svc.ReviewRestaurant(context.Background(), fx.workerUserID, fx.restaurant.ID, 4, nil)
	if err != nil {
		t.Fatalf("unexpected review error: %v", err)
	}
	if review.AuthorRole != enums.RoleWorker {
		t.Fatalf("unexpected author role %s", review.AuthorRole)
	}

	event := fx.dispatcher.events[0]
	if event.RecipientID != fx.ownerID {
		t.Fatal("review notification must target the restaurant owner")
	}
	if event.AuthorName != "Dana Reyes" {
		t.Fatalf("unexpected author name %q", event.AuthorName)
	}
}

func TestReviewRequiresAcceptedHire(t *testing.T) {
	repo := &fakeReviewRepo{createFn: func(ctx context.Context, review *models.Review) error {
		t.Fatal("review must not be persisted without an accepted application")
		return nil
	}}
	fx := newReviewFixture(t, repo)
	fx.hires.hired = false

	_, err := fx.svc.ReviewWorker(context.Background(), fx.ownerID, fx.profile.ID, 5, nil)
	if err == nil {
		t.Fatal("expected owner review to be rejected")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	_, err = fx.svc.ReviewRestaurant(context.Background(), fx.workerUserID, fx.restaurant.ID, 4, nil)
	if err == nil {
		t.Fatal("expected worker review to be rejected")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	if len(fx.dispatcher.events) != 0 {
		t.Fatalf("no notifications expected, got %d", len(fx.dispatcher.events))
	}
}

func TestReviewRatingBounds(t *testing.T) {
	fx := newReviewFixture(t, &fakeReviewRepo{})

	for _, rating := range []int{0, 6, -1} {
		_, err := fx.svc.ReviewWorker(context.Background(), fx.ownerID, fx.profile.ID, rating, nil)
		if err == nil {
			t.Fatalf("expected validation error for rating %d", rating)
		}
		if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation code for rating %d, got %v", rating, err)
		}
	}
}
