package controllers

import (
	"net/http"

	"github.com/shiftplate/shiftplate-backend/api/middleware"
	"github.com/shiftplate/shiftplate-backend/api/responses"
	"github.com/shiftplate/shiftplate-backend/internal/dashboard"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
	"github.com/shiftplate/shiftplate-backend/pkg/logger"
)

// DashboardStats returns role-shaped counts for the landing screen.
func DashboardStats(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
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

		stats, err := svc.Stats(ctx, userID, role)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// DashboardActivity returns the five most recent events for the caller.
func DashboardActivity(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
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

		items, err := svc.Activity(ctx, userID, role)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}
