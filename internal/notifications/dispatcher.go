package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	dbtypes "github.com/shiftplate/shiftplate-backend/pkg/db/types"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
	"github.com/shiftplate/shiftplate-backend/pkg/logger"
)

const messagePreviewLen = 50

// Event carries the references needed to render a notification for one
// recipient. Only the fields relevant to the kind are read.
type Event struct {
	Kind        enums.NotificationType
	RecipientID uuid.UUID

	JobID         uuid.UUID
	JobTitle      string
	ApplicationID uuid.UUID
	Status        enums.ApplicationStatus

	SenderID    uuid.UUID
	SenderName  string
	MessageID   uuid.UUID
	MessageBody string

	RestaurantName string
	AuthorName     string
	Rating         int

	StartsAt string
}

// Dispatcher renders notification templates and persists the rows. Delivery
// stops at the database; push and email transports live elsewhere.
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event) error
	DispatchAll(ctx context.Context, events []Event) error
}

type dispatcher struct {
	repo Repository
	logg *logger.Logger
}

// NewDispatcher wires the dispatcher dependencies.
func NewDispatcher(repo Repository, logg *logger.Logger) (Dispatcher, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &dispatcher{repo: repo, logg: logg}, nil
}

// Dispatch persists one notification row for the event. Failures are returned
// so callers can log them, but primary flows treat dispatch as best-effort and
// never roll back on a dispatch error.
func (d *dispatcher) Dispatch(ctx context.Context, event Event) error {
	if event.RecipientID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient id required")
	}

	title, message, data, err := render(event)
	if err != nil {
		return err
	}

	row := &models.Notification{
		UserID:  event.RecipientID,
		Type:    event.Kind,
		Title:   title,
		Message: message,
		Data:    data,
	}
	if err := d.repo.Create(ctx, row); err != nil {
		if d.logg != nil {
			logCtx := d.logg.WithFields(ctx, map[string]any{
				"kind":      string(event.Kind),
				"recipient": event.RecipientID.String(),
			})
			d.logg.Error(logCtx, "notification.dispatch.failed", err)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist notification")
	}
	return nil
}

// DispatchAll fans one event shape out to many recipients, collecting failures
// without aborting the remainder.
func (d *dispatcher) DispatchAll(ctx context.Context, events []Event) error {
	var errs error
	for _, event := range events {
		errs = multierr.Append(errs, d.Dispatch(ctx, event))
	}
	return errs
}

func render(event Event) (string, string, dbtypes.JSONMap, error) {
	switch event.Kind {
	case enums.NotificationTypeNewApplication:
		return "New application received",
			fmt.Sprintf("%s applied to %s", event.SenderName, event.JobTitle),
			dbtypes.JSONMap{
				"applicationId": event.ApplicationID.String(),
				"jobId":         event.JobID.String(),
				"jobTitle":      event.JobTitle,
			}, nil

	case enums.NotificationTypeApplicationStatus:
		return "Application update",
			fmt.Sprintf("Your application for %s is now %s", event.JobTitle, event.Status),
			dbtypes.JSONMap{
				"applicationId": event.ApplicationID.String(),
				"status":        string(event.Status),
				"jobTitle":      event.JobTitle,
			}, nil

	case enums.NotificationTypeNewMessage:
		return "New message",
			fmt.Sprintf("%s: %s", event.SenderName, previewBody(event.MessageBody)),
			dbtypes.JSONMap{
				"messageId": event.MessageID.String(),
				"senderId":  event.SenderID.String(),
			}, nil

	case enums.NotificationTypeNewJob:
		return "New shift posted",
			fmt.Sprintf("%s posted %s", event.RestaurantName, event.JobTitle),
			dbtypes.JSONMap{
				"jobId":    event.JobID.String(),
				"jobTitle": event.JobTitle,
			}, nil

	case enums.NotificationTypeShiftReminder:
		return "Upcoming shift",
			fmt.Sprintf("Your shift %s starts %s", event.JobTitle, event.StartsAt),
			dbtypes.JSONMap{
				"applicationId": event.ApplicationID.String(),
				"jobId":         event.JobID.String(),
				"jobTitle":      event.JobTitle,
			}, nil

	case enums.NotificationTypeNewReview:
		return "New review",
			fmt.Sprintf("%s left you a %d-star review", event.AuthorName, event.Rating),
			dbtypes.JSONMap{
				"rating": event.Rating,
			}, nil
	}

	return "", "", nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown notification kind")
}

func previewBody(body string) string {
	runes := []rune(body)
	if len(runes) <= messagePreviewLen {
		return body
	}
	return string(runes[:messagePreviewLen]) + "..."
}
