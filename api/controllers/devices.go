package controllers

import (
	"net/http"
	"strings"

	"github.com/shiftplate/shiftplate-backend/api/responses"
	"github.com/shiftplate/shiftplate-backend/api/validators"
	"github.com/shiftplate/shiftplate-backend/internal/devices"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
	"github.com/shiftplate/shiftplate-backend/pkg/logger"
)

type registerDevicePayload struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"required"`
}

type unregisterDevicePayload struct {
	Token string `json:"token" validate:"required"`
}

// RegisterDevice stores a push token for the caller; re-registering an
// existing token moves it to the caller.
func RegisterDevice(svc devices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "devices service unavailable"))
			return
		}

		userID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body registerDevicePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		platform, err := enums.ParseDevicePlatform(strings.TrimSpace(body.Platform))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid platform"))
			return
		}

		device, err := svc.Register(ctx, userID, body.Token, platform)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, device)
	}
}

// ListDevices returns the caller's registered push targets.
func ListDevices(svc devices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "devices service unavailable"))
			return
		}

		userID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items, err := svc.List(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

// UnregisterDevice removes a push token owned by the caller.
func UnregisterDevice(svc devices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "devices service unavailable"))
			return
		}

		userID, err := currentUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body unregisterDevicePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Unregister(ctx, userID, body.Token); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"removed": true})
	}
}
