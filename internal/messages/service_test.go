package messages

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/internal/notifications"
	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
)

type fakeMessageRepo struct {
	createFn       func(ctx context.Context, message *models.Message) error
	listBetweenFn  func(ctx context.Context, userID, partnerID uuid.UUID, cursor string, limit int) ([]models.Message, string, error)
	conversationFn func(ctx context.Context, userID uuid.UUID) ([]ConversationDTO, error)
	markReadFn     func(ctx context.Context, userID, partnerID uuid.UUID, now time.Time) (int64, error)
	countUnreadFn  func(ctx context.Context, userID uuid.UUID) (int64, error)
}

func (f *fakeMessageRepo) Create(ctx context.Context, message *models.Message) error {
	if f.createFn != nil {
		return f.createFn(ctx, message)
	}
	message.ID = uuid.New()
	return nil
}

func (f *fakeMessageRepo) ListBetween(ctx context.Context, userID, partnerID uuid.UUID, cursor string, limit int) ([]models.Message, string, error) {
	if f.listBetweenFn != nil {
		return f.listBetweenFn(ctx, userID, partnerID, cursor, limit)
	}
	return nil, "", nil
}

func (f *fakeMessageRepo) ListConversations(ctx context.Context, userID uuid.UUID) ([]ConversationDTO, error) {
	if f.conversationFn != nil {
		return f.conversationFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeMessageRepo) MarkConversationRead(ctx context.Context, userID, partnerID uuid.UUID, now time.Time) (int64, error) {
	if f.markReadFn != nil {
		return f.markReadFn(ctx, userID, partnerID, now)
	}
	return 0, nil
}

func (f *fakeMessageRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	if f.countUnreadFn != nil {
		return f.countUnreadFn(ctx, userID)
	}
	return 0, nil
}

type fakeUserFinder struct {
	users map[uuid.UUID]*models.User
}

func (f *fakeUserFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type captureDispatcher struct {
	events []notifications.Event
	err    error
}

func (c *captureDispatcher) Dispatch(ctx context.Context, event notifications.Event) error {
	c.events = append(c.events, event)
	return c.err
}

func (c *captureDispatcher) DispatchAll(ctx context.Context, events []notifications.Event) error {
	c.events = append(c.events, events...)
	return c.err
}

func newMessageService(t *testing.T, repo *fakeMessageRepo, users *fakeUserFinder, dispatcher *captureDispatcher) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, Users: users, Dispatcher: dispatcher})
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func twoUsers() (*fakeUserFinder, uuid.UUID, uuid.UUID) {
	sender := uuid.New()
	recipient := uuid.New()
	users := &fakeUserFinder{users: map[uuid.UUID]*models.User{
		sender:    {ID: sender, FirstName: "Dana", LastName: "Reyes"},
		recipient: {ID: recipient, FirstName: "Sam", LastName: "Okafor"},
	}}
	return users, sender, recipient
}

func TestSendNotifiesRecipient(t *testing.T) {
	users, sender, recipient := twoUsers()
	dispatcher := &captureDispatcher{}
	svc := newMessageService(t, &fakeMessageRepo{}, users, dispatcher)

	dto, err := svc.Send(context.Background(), sender, SendInput{RecipientID: recipient, Body: "  see you at 5  "})
	if err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}
	if dto.Body != "see you at 5" {
		t.Fatalf("expected trimmed body, got %q", dto.Body)
	}

	if len(dispatcher.events) != 1 {
		t.Fatalf("expected one notification event, got %d", len(dispatcher.events))
	}
	event := dispatcher.events[0]
	if event.Kind != enums.NotificationTypeNewMessage {
		t.Fatalf("unexpected event kind %s", event.Kind)
	}
	if event.RecipientID != recipient {
		t.Fatal("notification must target the recipient")
	}
	if event.SenderName != "Dana Reyes" {
		t.Fatalf("unexpected sender name %q", event.SenderName)
	}
	if event.MessageBody != "see you at 5" {
		t.Fatalf("unexpected message body %q", event.MessageBody)
	}
}

func TestSendSucceedsWhenDispatchFails(t *testing.T) {
	users, sender, recipient := twoUsers()
	dispatcher := &captureDispatcher{err: errors.New("store down")}
	svc := newMessageService(t, &fakeMessageRepo{}, users, dispatcher)

	if _, err := svc.Send(context.Background(), sender, SendInput{RecipientID: recipient, Body: "hi"}); err != nil {
		t.Fatalf("send must survive dispatch failure, got %v", err)
	}
}

func TestSendValidation(t *testing.T) {
	users, sender, recipient := twoUsers()
	svc := newMessageService(t, &fakeMessageRepo{}, users, &captureDispatcher{})

	cases := []struct {
		name  string
		send  func() error
	}{
		{"blank body", func() error {
			_, err := svc.Send(context.Background(), sender, SendInput{RecipientID: recipient, Body: "   "})
			return err
		}},
		{"self message", func() error {
			_, err := svc.Send(context.Background(), sender, SendInput{RecipientID: sender, Body: "hi"})
			return err
		}},
		{"oversize body", func() error {
			_, err := svc.Send(context.Background(), sender, SendInput{RecipientID: recipient, Body: strings.Repeat("a", maxBodyLen+1)})
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.send()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation code, got %v", err)
			}
		})
	}
}

func TestSendUnknownRecipient(t *testing.T) {
	users, sender, _ := twoUsers()
	svc := newMessageService(t, &fakeMessageRepo{}, users, &captureDispatcher{})

	_, err := svc.Send(context.Background(), sender, SendInput{RecipientID: uuid.New(), Body: "hi"})
	if err == nil {
		t.Fatal("expected not found error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestListConversationInvalidCursor(t *testing.T) {
	users, sender, recipient := twoUsers()
	svc := newMessageService(t, &fakeMessageRepo{}, users, &captureDispatcher{})

	_, err := svc.ListConversation(context.Background(), sender, recipient, "not-a-cursor", 10)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestMarkConversationRead(t *testing.T) {
	users, sender, recipient := twoUsers()
	repo := &fakeMessageRepo{
		markReadFn: func(ctx context.Context, userID, partnerID uuid.UUID, now time.Time) (int64, error) {
			if userID != sender || partnerID != recipient {
				t.Fatalf("unexpected participants %s %s", userID, partnerID)
			}
			return 4, nil
		},
	}
	svc := newMessageService(t, repo, users, &captureDispatcher{})

	count, err := svc.MarkConversationRead(context.Background(), sender, recipient)
	if err != nil {
		t.Fatalf("unexpected mark read error: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 updated rows, got %d", count)
	}
}
