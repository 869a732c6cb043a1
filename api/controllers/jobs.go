package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shiftplate/shiftplate-backend/api/responses"
	"github.com/shiftplate/shiftplate-backend/api/validators"
	"github.com/shiftplate/shiftplate-backend/internal/jobs"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
	"github.com/shiftplate/shiftplate-backend/pkg/logger"
)

type jobPayload struct {
	Title        string          `json:"title" validate:"required"`
	Description  string          `json:"description"`
	Requirements *string         `json:"requirements,omitempty"`
	HourlyRate   decimal.Decimal `json:"hourly_rate" validate:"required"`
	StartsAt     time.Time       `json:"starts_at" validate:"required"`
	EndsAt       time.Time       `json:"ends_at" validate:"required"`
	MaxWorkers   int             `json:"max_workers"`
}

type jobUpdatePayload struct {
	Title        *string          `json:"title,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Requirements *string          `json:"requirements,omitempty"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"`
	StartsAt     *time.Time       `json:"starts_at,omitempty"`
	EndsAt       *time.Time       `json:"ends_at,omitempty"`
	MaxWorkers   *int             `json:"max_workers,omitempty"`
}

type jobStatusPayload struct {
	Status string `json:"status" validate:"required"`
}

// CreateJob posts a new shift for the caller's restaurant.
func CreateJob(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "jobs service unavailable"))
			return
		}

		ownerID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body jobPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Create(ctx, ownerID, jobs.CreateJobInput{
			Title:        body.Title,
			Description:  body.Description,
			Requirements: body.Requirements,
			HourlyRate:   body.HourlyRate,
			StartsAt:     body.StartsAt,
			EndsAt:       body.EndsAt,
			MaxWorkers:   body.MaxWorkers,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// GetJob returns a single job; publicly readable.
func GetJob(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "jobs service unavailable"))
			return
		}

		jobID, err := uuidURLParam(r, "jobId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.GetByID(ctx, jobID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ListJobs returns the public, cursor-paginated job board.
func ListJobs(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "jobs service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		filter := jobs.ListFilter{}
		if city := strings.TrimSpace(r.URL.Query().Get("city")); city != "" {
			filter.City = &city
		}
		if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
			filter.Search = &search
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseJobStatus(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid job status"))
				return
			}
			filter.Status = &status
		} else {
			active := enums.JobStatusActive
			filter.Status = &active
		}

		cursor := strings.TrimSpace(r.URL.Query().Get("cursor"))
		page, err := svc.List(ctx, filter, cursor, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// ListOwnJobs returns every job posted by the caller's restaurant.
func ListOwnJobs(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "jobs service unavailable"))
			return
		}

		ownerID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items, err := svc.ListOwn(ctx, ownerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

// UpdateJob applies a partial update to an owned job.
func UpdateJob(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "jobs service unavailable"))
			return
		}

		ownerID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		jobID, err := uuidURLParam(r, "jobId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body jobUpdatePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Update(ctx, ownerID, jobID, jobs.UpdateJobInput{
			Title:        body.Title,
			Description:  body.Description,
			Requirements: body.Requirements,
			HourlyRate:   body.HourlyRate,
			StartsAt:     body.StartsAt,
			EndsAt:       body.EndsAt,
			MaxWorkers:   body.MaxWorkers,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// UpdateJobStatus moves an owned job between active/filled/closed/cancelled.
func UpdateJobStatus(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "jobs service unavailable"))
			return
		}

		ownerID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		jobID, err := uuidURLParam(r, "jobId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body jobStatusPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status, err := enums.ParseJobStatus(body.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid job status"))
			return
		}

		dto, err := svc.UpdateStatus(ctx, ownerID, jobID, status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CancelJob is the DELETE verb: the row stays, the status flips.
func CancelJob(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "jobs service unavailable"))
			return
		}

		ownerID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		jobID, err := uuidURLParam(r, "jobId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.UpdateStatus(ctx, ownerID, jobID, enums.JobStatusCancelled)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
