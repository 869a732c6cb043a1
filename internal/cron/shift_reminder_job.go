package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shiftplate/shiftplate-backend/internal/applications"
	"github.com/shiftplate/shiftplate-backend/internal/notifications"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	"github.com/shiftplate/shiftplate-backend/pkg/logger"
)

const defaultReminderWindow = 24 * time.Hour

type ShiftReminderJobParams struct {
	Logger     *logger.Logger
	Repository shiftReminderRepo
	Dispatcher notifications.Dispatcher
	Window     time.Duration
}

type shiftReminderRepo interface {
	FindAcceptedStartingBetween(ctx context.Context, from, until time.Time) ([]applications.ReminderRow, error)
	MarkReminded(ctx context.Context, ids []uuid.UUID, now time.Time) (int64, error)
}

func NewShiftReminderJob(params ShiftReminderJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("applications repository required")
	}
	if params.Dispatcher == nil {
		return nil, fmt.Errorf("notification dispatcher required")
	}
	window := params.Window
	if window <= 0 {
		window = defaultReminderWindow
	}
	return &shiftReminderJob{
		logg:       params.Logger,
		repo:       params.Repository,
		dispatcher: params.Dispatcher,
		window:     window,
		now:        time.Now,
	}, nil
}

type shiftReminderJob struct {
	logg       *logger.Logger
	repo       shiftReminderRepo
	dispatcher notifications.Dispatcher
	window     time.Duration
	now        func() time.Time
}

func (j *shiftReminderJob) Name() string { return "shift-reminder" }

// Run notifies workers whose accepted shift starts inside the window. Each
// application is reminded at most once; the reminded_at stamp only advances
// for rows whose notification was actually persisted.
func (j *shiftReminderJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	rows, err := j.repo.FindAcceptedStartingBetween(ctx, now, now.Add(j.window))
	if err != nil {
		return fmt.Errorf("find upcoming shifts: %w", err)
	}
	if len(rows) == 0 {
		j.logg.Info(ctx, "no upcoming shifts to remind")
		return nil
	}

	reminded := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		event := notifications.Event{
			Kind:          enums.NotificationTypeShiftReminder,
			RecipientID:   row.WorkerUserID,
			ApplicationID: row.ApplicationID,
			JobID:         row.JobID,
			JobTitle:      row.JobTitle,
			StartsAt:      row.StartsAt.UTC().Format("Mon Jan 2 at 3:04 PM"),
		}
		if err := j.dispatcher.Dispatch(ctx, event); err != nil {
			logCtx := j.logg.WithField(ctx, "application_id", row.ApplicationID.String())
			j.logg.Error(logCtx, "shift reminder dispatch failed", err)
			continue
		}
		reminded = append(reminded, row.ApplicationID)
	}

	stamped, err := j.repo.MarkReminded(ctx, reminded, now)
	if err != nil {
		return fmt.Errorf("mark reminded: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"window":     j.window.String(),
		"candidates": len(rows),
		"reminded":   stamped,
	})
	j.logg.Info(logCtx, "shift reminders complete")
	return nil
}
