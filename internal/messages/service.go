package messages

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/internal/notifications"
	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
	"github.com/shiftplate/shiftplate-backend/pkg/logger"
	"github.com/shiftplate/shiftplate-backend/pkg/pagination"
)

const maxBodyLen = 4000

type messageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	ListBetween(ctx context.Context, userID, partnerID uuid.UUID, cursor string, limit int) ([]models.Message, string, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]ConversationDTO, error)
	MarkConversationRead(ctx context.Context, userID, partnerID uuid.UUID, now time.Time) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ServiceParams groups dependencies for the messages service.
type ServiceParams struct {
	Repo       messageRepository
	Users      userFinder
	Dispatcher notifications.Dispatcher
	Logger     *logger.Logger
}

// SendInput captures a new direct message.
type SendInput struct {
	RecipientID   uuid.UUID
	ApplicationID *uuid.UUID
	Body          string
}

// Service exposes direct messaging operations.
type Service interface {
	Send(ctx context.Context, senderID uuid.UUID, input SendInput) (*MessageDTO, error)
	ListConversation(ctx context.Context, userID, partnerID uuid.UUID, cursor string, limit int) (*MessagePageDTO, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]ConversationDTO, error)
	MarkConversationRead(ctx context.Context, userID, partnerID uuid.UUID) (int64, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	repo       messageRepository
	users      userFinder
	dispatcher notifications.Dispatcher
	logg       *logger.Logger
}

// NewService builds a messages service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "messages repository required")
	}
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	}
	if params.Dispatcher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notification dispatcher required")
	}
	return &service{
		repo:       params.Repo,
		users:      params.Users,
		dispatcher: params.Dispatcher,
		logg:       params.Logger,
	}, nil
}

func (s *service) Send(ctx context.Context, senderID uuid.UUID, input SendInput) (*MessageDTO, error) {
	if senderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sender id is required")
	}
	if input.RecipientID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipient id is required")
	}
	if input.RecipientID == senderID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot message yourself")
	}

	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body is required")
	}
	if len(body) > maxBodyLen {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body too long")
	}

	sender, err := s.users.FindByID(ctx, senderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sender")
	}
	if _, err := s.users.FindByID(ctx, input.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "recipient not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recipient")
	}

	message := &models.Message{
		SenderID:      senderID,
		RecipientID:   input.RecipientID,
		ApplicationID: input.ApplicationID,
		Body:          body,
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create message")
	}

	// Best-effort: the message stands even when the notification write fails.
	err = s.dispatcher.Dispatch(ctx, notifications.Event{
		Kind:        enums.NotificationTypeNewMessage,
		RecipientID: input.RecipientID,
		SenderID:    senderID,
		SenderName:  strings.TrimSpace(sender.FirstName + " " + sender.LastName),
		MessageID:   message.ID,
		MessageBody: body,
	})
	if err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "message_id", message.ID.String()), "message.notify.dispatch_failed")
	}

	return FromModel(message), nil
}

func (s *service) ListConversation(ctx context.Context, userID, partnerID uuid.UUID, cursor string, limit int) (*MessagePageDTO, error) {
	if userID == uuid.Nil || partnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "both participants are required")
	}
	if _, err := pagination.ParseCursor(strings.TrimSpace(cursor)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, next, err := s.repo.ListBetween(ctx, userID, partnerID, cursor, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list conversation")
	}
	items := make([]MessageDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	return &MessagePageDTO{Items: items, Cursor: next}, nil
}

func (s *service) ListConversations(ctx context.Context, userID uuid.UUID) ([]ConversationDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	items, err := s.repo.ListConversations(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list conversations")
	}
	return items, nil
}

func (s *service) MarkConversationRead(ctx context.Context, userID, partnerID uuid.UUID) (int64, error) {
	if userID == uuid.Nil || partnerID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "both participants are required")
	}
	count, err := s.repo.MarkConversationRead(ctx, userID, partnerID, time.Now().UTC())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark conversation read")
	}
	return count, nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread messages")
	}
	return count, nil
}
