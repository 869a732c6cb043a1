package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/internal/restaurants"
	"github.com/shiftplate/shiftplate-backend/internal/users"
	"github.com/shiftplate/shiftplate-backend/internal/workers"
	"github.com/shiftplate/shiftplate-backend/pkg/config"
	"github.com/shiftplate/shiftplate-backend/pkg/db"
	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
	"github.com/shiftplate/shiftplate-backend/pkg/security"
)

// RegisterRequest contains the payload for onboarding either side of the
// marketplace. RestaurantName and BusinessType are required for owners only.
type RegisterRequest struct {
	FirstName      string     `json:"first_name" validate:"required"`
	LastName       string     `json:"last_name" validate:"required"`
	Email          string     `json:"email" validate:"required,email"`
	Password       string     `json:"password" validate:"required,min=8"`
	Phone          *string    `json:"phone,omitempty"`
	Role           enums.Role `json:"role" validate:"required"`
	RestaurantName string     `json:"restaurant_name,omitempty"`
	BusinessType   string     `json:"business_type,omitempty"`
}

// RegisterService handles the onboarding transaction.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) error
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &registerService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// Register creates the user plus the role-side profile in one transaction so
// a half-onboarded account can never exist.
func (s *registerService) Register(ctx context.Context, req RegisterRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if !req.Role.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}

	restaurantName := strings.TrimSpace(req.RestaurantName)
	businessType := strings.TrimSpace(req.BusinessType)
	if req.Role == enums.RoleRestaurantOwner {
		if restaurantName == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "restaurant_name is required")
		}
		if businessType == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "business_type is required")
		}
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			Role:         req.Role,
			Phone:        req.Phone,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		switch req.Role {
		case enums.RoleRestaurantOwner:
			restaurant := &models.Restaurant{
				OwnerID:      user.ID,
				Name:         restaurantName,
				BusinessType: businessType,
			}
			if err := restaurants.NewRepository(tx).Create(ctx, restaurant); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create restaurant")
			}
		case enums.RoleWorker:
			profile := &models.WorkerProfile{UserID: user.ID, Phone: req.Phone}
			if err := workers.NewRepository(tx).Create(ctx, profile); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create worker profile")
			}
		}
		return nil
	})
}
