package savedjobs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/internal/jobs"
	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
)

// SavedJobDTO is a bookmarked job with the moment it was saved.
type SavedJobDTO struct {
	Job     jobs.JobDTO `json:"job"`
	SavedAt time.Time   `json:"saved_at"`
}

type savedJobRepository interface {
	Add(ctx context.Context, userID, jobID uuid.UUID) error
	Remove(ctx context.Context, userID, jobID uuid.UUID) (int64, error)
	List(ctx context.Context, userID uuid.UUID) ([]SavedJobDTO, error)
}

type jobFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
}

// Service exposes job bookmark operations for workers.
type Service interface {
	Save(ctx context.Context, userID, jobID uuid.UUID) error
	Remove(ctx context.Context, userID, jobID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]SavedJobDTO, error)
}

type service struct {
	repo savedJobRepository
	jobs jobFinder
}

// NewService builds a saved-jobs service with the required dependencies.
func NewService(repo savedJobRepository, jobFinder jobFinder) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "saved jobs repository required")
	}
	if jobFinder == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "jobs repository required")
	}
	return &service{repo: repo, jobs: jobFinder}, nil
}

// Save bookmarks a job. Saving an already-saved job is a no-op.
func (s *service) Save(ctx context.Context, userID, jobID uuid.UUID) error {
	if userID == uuid.Nil || jobID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user and job ids are required")
	}
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "job not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job")
	}
	if err := s.repo.Add(ctx, userID, jobID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save job")
	}
	return nil
}

// Remove deletes the bookmark. Removing a job that was never saved is a
// not-found.
func (s *service) Remove(ctx context.Context, userID, jobID uuid.UUID) error {
	if userID == uuid.Nil || jobID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user and job ids are required")
	}
	removed, err := s.repo.Remove(ctx, userID, jobID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove saved job")
	}
	if removed == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "saved job not found")
	}
	return nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]SavedJobDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list saved jobs")
	}
	return items, nil
}
