package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shiftplate/shiftplate-backend/internal/applications"
	"github.com/shiftplate/shiftplate-backend/internal/notifications"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	"github.com/shiftplate/shiftplate-backend/pkg/logger"
)

type fakeReminderRepo struct {
	rows       []applications.ReminderRow
	findErr    error
	lastFrom   time.Time
	lastUntil  time.Time
	markedIDs  []uuid.UUID
	markErr    error
	markCalled int
}

func (f *fakeReminderRepo) FindAcceptedStartingBetween(ctx context.Context, from, until time.Time) ([]applications.ReminderRow, error) {
	f.lastFrom = from
	f.lastUntil = until
	return f.rows, f.findErr
}

func (f *fakeReminderRepo) MarkReminded(ctx context.Context, ids []uuid.UUID, now time.Time) (int64, error) {
	f.markCalled++
	f.markedIDs = ids
	if f.markErr != nil {
		return 0, f.markErr
	}
	return int64(len(ids)), nil
}

type reminderDispatcher struct {
	events  []notifications.Event
	failFor uuid.UUID
}

func (d *reminderDispatcher) Dispatch(ctx context.Context, event notifications.Event) error {
	if d.failFor != uuid.Nil && event.ApplicationID == d.failFor {
		return errors.New("persist failed")
	}
	d.events = append(d.events, event)
	return nil
}

func (d *reminderDispatcher) DispatchAll(ctx context.Context, events []notifications.Event) error {
	for _, event := range events {
		if err := d.Dispatch(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func newShiftReminderJob(t *testing.T, repo *fakeReminderRepo, dispatcher notifications.Dispatcher) *shiftReminderJob {
	t.Helper()
	jobIface, err := NewShiftReminderJob(ShiftReminderJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		Repository: repo,
		Dispatcher: dispatcher,
	})
	if err != nil {
		t.Fatalf("NewShiftReminderJob: %v", err)
	}
	job, ok := jobIface.(*shiftReminderJob)
	if !ok {
		t.Fatalf("expected shiftReminderJob, got %T", jobIface)
	}
	return job
}

func reminderRow(title string, startsAt time.Time) applications.ReminderRow {
	return applications.ReminderRow{
		ApplicationID: uuid.New(),
		WorkerUserID:  uuid.New(),
		JobID:         uuid.New(),
		JobTitle:      title,
		StartsAt:      startsAt,
	}
}

func TestShiftReminderJobNotifiesUpcomingShifts(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	rows := []applications.ReminderRow{
		reminderRow("Line Cook", now.Add(3*time.Hour)),
		reminderRow("Host", now.Add(20*time.Hour)),
	}
	repo := &fakeReminderRepo{rows: rows}
	dispatcher := &reminderDispatcher{}
	job := newShiftReminderJob(t, repo, dispatcher)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !repo.lastFrom.Equal(now) || !repo.lastUntil.Equal(now.Add(defaultReminderWindow)) {
		t.Fatalf("unexpected window %s .. %s", repo.lastFrom, repo.lastUntil)
	}
	if len(dispatcher.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(dispatcher.events))
	}
	first := dispatcher.events[0]
	if first.Kind != enums.NotificationTypeShiftReminder {
		t.Fatalf("unexpected kind %s", first.Kind)
	}
	if first.RecipientID != rows[0].WorkerUserID {
		t.Fatal("reminder must target the worker user")
	}
	if first.StartsAt == "" {
		t.Fatal("expected a formatted start time")
	}
	if len(repo.markedIDs) != 2 {
		t.Fatalf("expected 2 applications stamped, got %d", len(repo.markedIDs))
	}
}

func TestShiftReminderJobSkipsStampOnDispatchFailure(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	rows := []applications.ReminderRow{
		reminderRow("Line Cook", now.Add(3*time.Hour)),
		reminderRow("Host", now.Add(20*time.Hour)),
	}
	repo := &fakeReminderRepo{rows: rows}
	dispatcher := &reminderDispatcher{failFor: rows[0].ApplicationID}
	job := newShiftReminderJob(t, repo, dispatcher)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(repo.markedIDs) != 1 || repo.markedIDs[0] != rows[1].ApplicationID {
		t.Fatalf("only the delivered reminder may be stamped, got %v", repo.markedIDs)
	}
}

func TestShiftReminderJobNoCandidates(t *testing.T) {
	repo := &fakeReminderRepo{}
	job := newShiftReminderJob(t, repo, &reminderDispatcher{})

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if repo.markCalled != 0 {
		t.Fatal("expected no stamp attempt without candidates")
	}
}

func TestShiftReminderJobPropagatesLookupErrors(t *testing.T) {
	repo := &fakeReminderRepo{findErr: errors.New("boom")}
	job := newShiftReminderJob(t, repo, &reminderDispatcher{})

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
