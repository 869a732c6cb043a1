package messages

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/pagination"
)

// Repository encapsulates message persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a messages repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a message row.
func (r *Repository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListBetween returns the two users' conversation newest first, cursor
// paginated.
func (r *Repository) ListBetween(ctx context.Context, userID, partnerID uuid.UUID, cursor string, limit int) ([]models.Message, string, error) {
	normalized := pagination.NormalizeLimit(limit)
	buffered := pagination.LimitWithBuffer(limit)

	decoded, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, partnerID, partnerID, userID)
	if decoded != nil {
		query = query.Where("(created_at, id) < (?, ?)", decoded.CreatedAt, decoded.ID)
	}

	var rows []models.Message
	if err := query.Order("created_at DESC, id DESC").Limit(buffered).Find(&rows).Error; err != nil {
		return nil, "", err
	}

	next := ""
	if len(rows) > normalized {
		rows = rows[:normalized]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, next, nil
}

type conversationRecord struct {
	PartnerID     uuid.UUID `gorm:"column:partner_id"`
	PartnerName   string    `gorm:"column:partner_name"`
	LastMessage   string    `gorm:"column:last_message"`
	LastMessageAt time.Time `gorm:"column:last_message_at"`
	UnreadCount   int64     `gorm:"column:unread_count"`
}

// ListConversations returns one row per partner with the latest message and
// the caller's unread count, newest conversation first.
func (r *Repository) ListConversations(ctx context.Context, userID uuid.UUID) ([]ConversationDTO, error) {
	const query = `
SELECT DISTINCT ON (partner_id)
       partner_id,
       u.first_name || ' ' || u.last_name AS partner_name,
       m.body AS last_message,
       m.created_at AS last_message_at,
       (SELECT COUNT(*) FROM messages unread
         WHERE unread.sender_id = partner_id
           AND unread.recipient_id = ?
           AND unread.read_at IS NULL) AS unread_count
FROM (
    SELECT *,
           CASE WHEN sender_id = ? THEN recipient_id ELSE sender_id END AS partner_id
    FROM messages
    WHERE sender_id = ? OR recipient_id = ?
) m
JOIN users u ON u.id = m.partner_id
ORDER BY partner_id, m.created_at DESC`

	var records []conversationRecord
	if err := r.db.WithContext(ctx).Raw(query, userID, userID, userID, userID).Scan(&records).Error; err != nil {
		return nil, err
	}

	items := make([]ConversationDTO, 0, len(records))
	for _, record := range records {
		items = append(items, ConversationDTO{
			PartnerID:     record.PartnerID,
			PartnerName:   record.PartnerName,
			LastMessage:   record.LastMessage,
			LastMessageAt: record.LastMessageAt,
			UnreadCount:   record.UnreadCount,
		})
	}
	return items, nil
}

// MarkConversationRead stamps every unread message from partner to user.
func (r *Repository) MarkConversationRead(ctx context.Context, userID, partnerID uuid.UUID, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND read_at IS NULL", partnerID, userID).
		UpdateColumn("read_at", now)
	return result.RowsAffected, result.Error
}

// CountUnread counts the caller's unread messages across all conversations.
func (r *Repository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("recipient_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}
