package restaurants

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
)

// Service exposes restaurant profile operations.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RestaurantDTO, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*RestaurantDTO, error)
	Update(ctx context.Context, ownerID uuid.UUID, input UpdateRestaurantInput) (*RestaurantDTO, error)
	SetAddress(ctx context.Context, ownerID uuid.UUID, input AddressInput) (*RestaurantDTO, error)
	AddPhoto(ctx context.Context, ownerID uuid.UUID, url string, position int) (*RestaurantDTO, error)
	RemovePhoto(ctx context.Context, ownerID, photoID uuid.UUID) error
}

// UpdateRestaurantInput captures the allowed restaurant fields for mutation.
type UpdateRestaurantInput struct {
	Name         *string
	BusinessType *string
	CuisineType  *string
	Description  *string
	Phone        *string
}

// AddressInput captures the address fields for create-or-replace.
type AddressInput struct {
	Line1      string
	Line2      *string
	City       string
	State      string
	PostalCode string
	Country    string
}

type service struct {
	repo *Repository
}

// NewService builds a restaurant service with the provided repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "restaurants repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*RestaurantDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	restaurant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}
	return FromModel(restaurant), nil
}

func (s *service) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*RestaurantDTO, error) {
	restaurant, err := s.ownedRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return FromModel(restaurant), nil
}

func (s *service) Update(ctx context.Context, ownerID uuid.UUID, input UpdateRestaurantInput) (*RestaurantDTO, error) {
	restaurant, err := s.ownedRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		restaurant.Name = name
	}
	if input.BusinessType != nil {
		bt := strings.TrimSpace(*input.BusinessType)
		if bt == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "business type cannot be empty")
		}
		restaurant.BusinessType = bt
	}
	if input.CuisineType != nil {
		restaurant.CuisineType = input.CuisineType
	}
	if input.Description != nil {
		restaurant.Description = input.Description
	}
	if input.Phone != nil {
		restaurant.Phone = input.Phone
	}

	if err := s.repo.Update(ctx, restaurant); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update restaurant")
	}
	return s.GetByID(ctx, restaurant.ID)
}

func (s *service) SetAddress(ctx context.Context, ownerID uuid.UUID, input AddressInput) (*RestaurantDTO, error) {
	restaurant, err := s.ownedRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	country := input.Country
	if country == "" {
		country = "US"
	}

	address := &models.RestaurantAddress{
		RestaurantID: restaurant.ID,
		Line1:        input.Line1,
		Line2:        input.Line2,
		City:         input.City,
		State:        input.State,
		PostalCode:   input.PostalCode,
		Country:      country,
	}
	if err := s.repo.UpsertAddress(ctx, address); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save address")
	}
	return s.GetByID(ctx, restaurant.ID)
}

func (s *service) AddPhoto(ctx context.Context, ownerID uuid.UUID, url string, position int) (*RestaurantDTO, error) {
	restaurant, err := s.ownedRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if url == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "photo url is required")
	}

	photo := &models.RestaurantPhoto{
		RestaurantID: restaurant.ID,
		URL:          url,
		Position:     position,
	}
	if err := s.repo.AddPhoto(ctx, photo); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add photo")
	}
	return s.GetByID(ctx, restaurant.ID)
}

func (s *service) RemovePhoto(ctx context.Context, ownerID, photoID uuid.UUID) error {
	restaurant, err := s.ownedRestaurant(ctx, ownerID)
	if err != nil {
		return err
	}
	affected, err := s.repo.RemovePhoto(ctx, restaurant.ID, photoID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove photo")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "photo not found")
	}
	return nil
}

func (s *service) ownedRestaurant(ctx context.Context, ownerID uuid.UUID) (*models.Restaurant, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}
	restaurant, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}
	return restaurant, nil
}
