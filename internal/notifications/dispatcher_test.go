package notifications

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
)

func newDispatcherWithRepo(repo Repository) Dispatcher {
	d, _ := NewDispatcher(repo, nil)
	return d
}

func TestDispatchNewMessageTruncatesPreview(t *testing.T) {
	var captured *models.Notification
	repo := &fakeRepository{
		createFn: func(ctx context.Context, notification *models.Notification) error {
			captured = notification
			return nil
		},
	}

	body := strings.Repeat("a", 60)
	d := newDispatcherWithRepo(repo)
	err := d.Dispatch(context.Background(), Event{
		Kind:        enums.NotificationTypeNewMessage,
		RecipientID: uuid.New(),
		SenderID:    uuid.New(),
		SenderName:  "Dana",
		MessageID:   uuid.New(),
		MessageBody: body,
	})
	if err != nil {
		t.Fatalf("unexpected dispatch error: %v", err)
	}
	if captured == nil {
		t.Fatal("expected a persisted notification")
	}

	want := "Dana: " + strings.Repeat("a", 50) + "..."
	if captured.Message != want {
		t.Fatalf("expected preview %q, got %q", want, captured.Message)
	}
	if captured.Type != enums.NotificationTypeNewMessage {
		t.Fatalf("unexpected type %s", captured.Type)
	}
	if captured.ReadAt != nil {
		t.Fatal("new notifications must start unread")
	}
}

func TestDispatchNewMessageShortBodyUntouched(t *testing.T) {
	var captured *models.Notification
	repo := &fakeRepository{
		createFn: func(ctx context.Context, notification *models.Notification) error {
			captured = notification
			return nil
		},
	}

	d := newDispatcherWithRepo(repo)
	err := d.Dispatch(context.Background(), Event{
		Kind:        enums.NotificationTypeNewMessage,
		RecipientID: uuid.New(),
		SenderID:    uuid.New(),
		SenderName:  "Dana",
		MessageID:   uuid.New(),
		MessageBody: "see you at 5",
	})
	if err != nil {
		t.Fatalf("unexpected dispatch error: %v", err)
	}
	if captured.Message != "Dana: see you at 5" {
		t.Fatalf("unexpected message %q", captured.Message)
	}
}

func TestDispatchApplicationStatusPayload(t *testing.T) {
	var captured *models.Notification
	repo := &fakeRepository{
		createFn: func(ctx context.Context, notification *models.Notification) error {
			captured = notification
			return nil
		},
	}

	applicationID := uuid.New()
	d := newDispatcherWithRepo(repo)
	err := d.Dispatch(context.Background(), Event{
		Kind:          enums.NotificationTypeApplicationStatus,
		RecipientID:   uuid.New(),
		JobTitle:      "Line Cook",
		ApplicationID: applicationID,
		Status:        enums.ApplicationStatusAccepted,
	})
	if err != nil {
		t.Fatalf("unexpected dispatch error: %v", err)
	}
	if captured.Message != "Your application for Line Cook is now accepted" {
		t.Fatalf("unexpected message %q", captured.Message)
	}
	if captured.Data["applicationId"] != applicationID.String() {
		t.Fatalf("expected application id in payload, got %v", captured.Data["applicationId"])
	}
	if captured.Data["status"] != string(enums.ApplicationStatusAccepted) {
		t.Fatalf("expected status in payload, got %v", captured.Data["status"])
	}
}

func TestDispatchUnknownKindRejected(t *testing.T) {
	d := newDispatcherWithRepo(&fakeRepository{})
	err := d.Dispatch(context.Background(), Event{
		Kind:        enums.NotificationType("mystery"),
		RecipientID: uuid.New(),
	})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestDispatchAllCollectsFailures(t *testing.T) {
	calls := 0
	repo := &fakeRepository{
		createFn: func(ctx context.Context, notification *models.Notification) error {
			calls++
			if calls == 1 {
				return errors.New("down")
			}
			return nil
		},
	}

	d := newDispatcherWithRepo(repo)
	events := []Event{
		{Kind: enums.NotificationTypeNewJob, RecipientID: uuid.New(), JobID: uuid.New(), JobTitle: "Host", RestaurantName: "Blue Door"},
		{Kind: enums.NotificationTypeNewJob, RecipientID: uuid.New(), JobID: uuid.New(), JobTitle: "Host", RestaurantName: "Blue Door"},
	}
	err := d.DispatchAll(context.Background(), events)
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if calls != 2 {
		t.Fatalf("expected both dispatches attempted, got %d", calls)
	}
}
