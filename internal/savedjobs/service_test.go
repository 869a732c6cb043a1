package savedjobs

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
)

type fakeSavedJobRepo struct {
	addFn    func(ctx context.Context, userID, jobID uuid.UUID) error
	removeFn func(ctx context.Context, userID, jobID uuid.UUID) (int64, error)
	listFn   func(ctx context.Context, userID uuid.UUID) ([]SavedJobDTO, error)
}

func (f *fakeSavedJobRepo) Add(ctx context.Context, userID, jobID uuid.UUID) error {
	if f.addFn != nil {
		return f.addFn(ctx, userID, jobID)
	}
	return nil
}

func (f *fakeSavedJobRepo) Remove(ctx context.Context, userID, jobID uuid.UUID) (int64, error) {
	if f.removeFn != nil {
		return f.removeFn(ctx, userID, jobID)
	}
	return 1, nil
}

func (f *fakeSavedJobRepo) List(ctx context.Context, userID uuid.UUID) ([]SavedJobDTO, error) {
	if f.listFn != nil {
		return f.listFn(ctx, userID)
	}
	return nil, nil
}

type fakeJobFinder struct {
	jobs map[uuid.UUID]*models.Job
}

func (f *fakeJobFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	if job, ok := f.jobs[id]; ok {
		return job, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestSaveUnknownJob(t *testing.T) {
	svc, err := NewService(&fakeSavedJobRepo{}, &fakeJobFinder{})
	if err != nil {
		t.Fatalf("building service: %v", err)
	}

	saveErr := svc.Save(context.Background(), uuid.New(), uuid.New())
	if saveErr == nil {
		t.Fatal("expected not found error")
	}
	if pkgerrors.As(saveErr).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", saveErr)
	}
}

func TestSaveIdempotent(t *testing.T) {
	jobID := uuid.New()
	adds := 0
	repo := &fakeSavedJobRepo{
		addFn: func(ctx context.Context, userID, id uuid.UUID) error {
			adds++
			return nil
		},
	}
	svc, err := NewService(repo, &fakeJobFinder{jobs: map[uuid.UUID]*models.Job{jobID: {ID: jobID}}})
	if err != nil {
		t.Fatalf("building service: %v", err)
	}

	userID := uuid.New()
	if err := svc.Save(context.Background(), userID, jobID); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := svc.Save(context.Background(), userID, jobID); err != nil {
		t.Fatalf("second save must be a no-op, got %v", err)
	}
	if adds != 2 {
		t.Fatalf("expected 2 repo calls, got %d", adds)
	}
}

func TestRemoveMissingBookmark(t *testing.T) {
	repo := &fakeSavedJobRepo{
		removeFn: func(ctx context.Context, userID, jobID uuid.UUID) (int64, error) {
			return 0, nil
		},
	}
	svc, err := NewService(repo, &fakeJobFinder{})
	if err != nil {
		t.Fatalf("building service: %v", err)
	}

	removeErr := svc.Remove(context.Background(), uuid.New(), uuid.New())
	if removeErr == nil {
		t.Fatal("expected not found error")
	}
	if pkgerrors.As(removeErr).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", removeErr)
	}
}
