package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/shiftplate/shiftplate-backend/api/responses"
	"github.com/shiftplate/shiftplate-backend/api/validators"
	"github.com/shiftplate/shiftplate-backend/internal/workers"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
	"github.com/shiftplate/shiftplate-backend/pkg/logger"
)

type workerUpdatePayload struct {
	Bio          *string          `json:"bio,omitempty"`
	Skills       *[]string        `json:"skills,omitempty"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"`
	Availability *string          `json:"availability,omitempty"`
	Phone        *string          `json:"phone,omitempty"`
	City         *string          `json:"city,omitempty"`
}

// GetMyWorkerProfile returns the caller's worker profile.
func GetMyWorkerProfile(svc workers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workers service unavailable"))
			return
		}

		userID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.GetByUser(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// GetWorkerProfile returns a worker's public profile.
func GetWorkerProfile(svc workers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workers service unavailable"))
			return
		}

		profileID, err := uuidURLParam(r, "workerId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.GetByID(ctx, profileID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// UpdateMyWorkerProfile applies a partial update to the caller's profile.
func UpdateMyWorkerProfile(svc workers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workers service unavailable"))
			return
		}

		userID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body workerUpdatePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Update(ctx, userID, workers.UpdateProfileInput{
			Bio:          body.Bio,
			Skills:       body.Skills,
			HourlyRate:   body.HourlyRate,
			Availability: body.Availability,
			Phone:        body.Phone,
			City:         body.City,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
