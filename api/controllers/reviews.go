package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/shiftplate/shiftplate-backend/api/middleware"
	"github.com/shiftplate/shiftplate-backend/api/responses"
	"github.com/shiftplate/shiftplate-backend/api/validators"
	"github.com/shiftplate/shiftplate-backend/internal/reviews"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
	"github.com/shiftplate/shiftplate-backend/pkg/logger"
)

type createReviewPayload struct {
	WorkerProfileID *uuid.UUID `json:"worker_profile_id,omitempty"`
	RestaurantID    *uuid.UUID `json:"restaurant_id,omitempty"`
	Rating          int        `json:"rating" validate:"required"`
	Comment         *string    `json:"comment,omitempty"`
}

// CreateReview files a review for the other side of a hire. Owners review
// workers, workers review restaurants; the caller's role decides which target
// field is read.
func CreateReview(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		userID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		role, err := enums.ParseRole(middleware.RoleFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "unknown role"))
			return
		}

		var body createReviewPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		switch role {
		case enums.RoleRestaurantOwner:
			if body.WorkerProfileID == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "worker_profile_id is required"))
				return
			}
			review, err := svc.ReviewWorker(ctx, userID, *body.WorkerProfileID, body.Rating, body.Comment)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccessStatus(w, http.StatusCreated, review)
		case enums.RoleWorker:
			if body.RestaurantID == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "restaurant_id is required"))
				return
			}
			review, err := svc.ReviewRestaurant(ctx, userID, *body.RestaurantID, body.Rating, body.Comment)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccessStatus(w, http.StatusCreated, review)
		default:
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "unknown role"))
		}
	}
}

// ListReviews returns reviews for either a restaurant or a worker profile,
// selected by query parameter, together with the rating summary.
func ListReviews(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		restaurantRaw := strings.TrimSpace(r.URL.Query().Get("restaurant"))
		workerRaw := strings.TrimSpace(r.URL.Query().Get("worker"))
		if (restaurantRaw == "") == (workerRaw == "") {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "exactly one of restaurant or worker is required"))
			return
		}

		if restaurantRaw != "" {
			restaurantID, err := uuid.Parse(restaurantRaw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid restaurant id"))
				return
			}
			items, summary, err := svc.ListForRestaurant(ctx, restaurantID)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{"items": items, "summary": summary})
			return
		}

		workerID, err := uuid.Parse(workerRaw)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid worker id"))
			return
		}
		items, summary, err := svc.ListForWorker(ctx, workerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": items, "summary": summary})
	}
}
