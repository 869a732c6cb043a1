package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a direct message between two users, optionally anchored to an
// application thread.
type Message struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SenderID      uuid.UUID  `gorm:"column:sender_id;type:uuid;not null;index"`
	RecipientID   uuid.UUID  `gorm:"column:recipient_id;type:uuid;not null;index"`
	ApplicationID *uuid.UUID `gorm:"column:application_id;type:uuid"`
	Body          string     `gorm:"column:body;not null"`
	ReadAt        *time.Time `gorm:"column:read_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
}
