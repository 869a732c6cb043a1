package devices

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
)

type deviceRepository interface {
	Upsert(ctx context.Context, device *models.Device) error
	DeleteByToken(ctx context.Context, userID uuid.UUID, token string) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Device, error)
}

// Service exposes push device registration.
type Service interface {
	Register(ctx context.Context, userID uuid.UUID, token string, platform enums.DevicePlatform) (*models.Device, error)
	Unregister(ctx context.Context, userID uuid.UUID, token string) error
	List(ctx context.Context, userID uuid.UUID) ([]models.Device, error)
}

type service struct {
	repo deviceRepository
}

// NewService builds a devices service with the required repository.
func NewService(repo deviceRepository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "devices repository required")
	}
	return &service{repo: repo}, nil
}

// Register upserts the token. Re-registering an existing token reassigns it
// to the caller.
func (s *service) Register(ctx context.Context, userID uuid.UUID, token string, platform enums.DevicePlatform) (*models.Device, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "device token is required")
	}
	if !platform.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid device platform")
	}

	device := &models.Device{UserID: userID, Token: token, Platform: platform}
	if err := s.repo.Upsert(ctx, device); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register device")
	}
	return device, nil
}

func (s *service) Unregister(ctx context.Context, userID uuid.UUID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "device token is required")
	}
	removed, err := s.repo.DeleteByToken(ctx, userID, token)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unregister device")
	}
	if removed == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "device not found")
	}
	return nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.Device, error) {
	devices, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list devices")
	}
	return devices, nil
}
