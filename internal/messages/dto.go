package messages

import (
	"time"

	"github.com/google/uuid"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
)

// MessageDTO is the transport shape for a direct message.
type MessageDTO struct {
	ID            uuid.UUID  `json:"id"`
	SenderID      uuid.UUID  `json:"sender_id"`
	RecipientID   uuid.UUID  `json:"recipient_id"`
	ApplicationID *uuid.UUID `json:"application_id,omitempty"`
	Body          string     `json:"body"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ConversationDTO summarizes the latest exchange with one partner.
type ConversationDTO struct {
	PartnerID     uuid.UUID `json:"partner_id"`
	PartnerName   string    `json:"partner_name"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadCount   int64     `json:"unread_count"`
}

// MessagePageDTO wraps a page of messages plus the cursor for the next page.
type MessagePageDTO struct {
	Items  []MessageDTO `json:"items"`
	Cursor string       `json:"cursor"`
}

func FromModel(m *models.Message) *MessageDTO {
	if m == nil {
		return nil
	}
	return &MessageDTO{
		ID:            m.ID,
		SenderID:      m.SenderID,
		RecipientID:   m.RecipientID,
		ApplicationID: m.ApplicationID,
		Body:          m.Body,
		ReadAt:        m.ReadAt,
		CreatedAt:     m.CreatedAt,
	}
}
