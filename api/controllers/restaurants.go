package controllers

import (
	"net/http"
	"strings"

	"github.com/shiftplate/shiftplate-backend/api/responses"
	"github.com/shiftplate/shiftplate-backend/api/validators"
	"github.com/shiftplate/shiftplate-backend/internal/restaurants"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
	"github.com/shiftplate/shiftplate-backend/pkg/logger"
)

type restaurantUpdatePayload struct {
	Name         *string `json:"name,omitempty"`
	BusinessType *string `json:"business_type,omitempty"`
	CuisineType  *string `json:"cuisine_type,omitempty"`
	Description  *string `json:"description,omitempty"`
	Phone        *string `json:"phone,omitempty"`
}

type restaurantAddressPayload struct {
	Line1      string  `json:"line1" validate:"required"`
	Line2      *string `json:"line2,omitempty"`
	City       string  `json:"city" validate:"required"`
	State      string  `json:"state" validate:"required"`
	PostalCode string  `json:"postal_code" validate:"required"`
	Country    string  `json:"country,omitempty"`
}

type restaurantPhotoPayload struct {
	URL      string `json:"url" validate:"required,url"`
	Position int    `json:"position"`
}

// GetMyRestaurant returns the caller's restaurant profile.
func GetMyRestaurant(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurants service unavailable"))
			return
		}

		ownerID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.GetByOwner(ctx, ownerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// GetRestaurant returns a restaurant's public profile.
func GetRestaurant(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurants service unavailable"))
			return
		}

		restaurantID, err := uuidURLParam(r, "restaurantId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.GetByID(ctx, restaurantID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// UpdateMyRestaurant applies a partial update to the caller's restaurant.
func UpdateMyRestaurant(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurants service unavailable"))
			return
		}

		ownerID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body restaurantUpdatePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Update(ctx, ownerID, restaurants.UpdateRestaurantInput{
			Name:         body.Name,
			BusinessType: body.BusinessType,
			CuisineType:  body.CuisineType,
			Description:  body.Description,
			Phone:        body.Phone,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// SetRestaurantAddress creates or replaces the restaurant's address.
func SetRestaurantAddress(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurants service unavailable"))
			return
		}

		ownerID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body restaurantAddressPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.SetAddress(ctx, ownerID, restaurants.AddressInput{
			Line1:      strings.TrimSpace(body.Line1),
			Line2:      body.Line2,
			City:       strings.TrimSpace(body.City),
			State:      strings.TrimSpace(body.State),
			PostalCode: strings.TrimSpace(body.PostalCode),
			Country:    strings.TrimSpace(body.Country),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// AddRestaurantPhoto appends a photo to the restaurant's gallery.
func AddRestaurantPhoto(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurants service unavailable"))
			return
		}

		ownerID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body restaurantPhotoPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.AddPhoto(ctx, ownerID, strings.TrimSpace(body.URL), body.Position)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// RemoveRestaurantPhoto deletes a photo from the caller's restaurant.
func RemoveRestaurantPhoto(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurants service unavailable"))
			return
		}

		ownerID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		photoID, err := uuidURLParam(r, "photoId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.RemovePhoto(ctx, ownerID, photoID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"removed": true})
	}
}
