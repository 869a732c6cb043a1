package controllers

import (
	"net/http"

	"github.com/shiftplate/shiftplate-backend/api/responses"
	"github.com/shiftplate/shiftplate-backend/api/validators"
	"github.com/shiftplate/shiftplate-backend/internal/applications"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
	"github.com/shiftplate/shiftplate-backend/pkg/logger"
)

type submitApplicationPayload struct {
	Message *string `json:"message,omitempty"`
}

type applicationStatusPayload struct {
	Status string `json:"status" validate:"required"`
}

// SubmitApplication lets a worker apply to a job.
func SubmitApplication(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "applications service unavailable"))
			return
		}

		workerUserID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		jobID, err := uuidURLParam(r, "jobId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body submitApplicationPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Submit(ctx, workerUserID, jobID, body.Message)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// ListMyApplications returns the caller's applications, newest first.
func ListMyApplications(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "applications service unavailable"))
			return
		}

		workerUserID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items, err := svc.ListMine(ctx, workerUserID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

// ListJobApplications returns applications for a job the caller owns.
func ListJobApplications(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "applications service unavailable"))
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

		items, err := svc.ListForJob(ctx, ownerID, jobID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

// WithdrawApplication lets the applicant pull an application back.
func WithdrawApplication(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "applications service unavailable"))
			return
		}

		workerUserID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		applicationID, err := uuidURLParam(r, "applicationId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Withdraw(ctx, workerUserID, applicationID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// UpdateApplicationStatus lets the job owner accept/reject/interview.
func UpdateApplicationStatus(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "applications service unavailable"))
			return
		}

		ownerID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		applicationID, err := uuidURLParam(r, "applicationId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body applicationStatusPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status, err := enums.ParseApplicationStatus(body.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid application status"))
			return
		}

		dto, err := svc.UpdateStatus(ctx, ownerID, applicationID, status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
