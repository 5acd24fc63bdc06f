package repository

import (
	"context"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/pkg/xcontext"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	GetDirect(ctx context.Context, userID, otherID string, before int64, limit int) ([]entity.Message, error)
	GetByGuild(ctx context.Context, guildID string, before int64, limit int) ([]entity.Message, error)
	MarkRead(ctx context.Context, receiverID, senderID string) error
	CountUnread(ctx context.Context, receiverID string) (int64, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type messageRepository struct{}

func NewMessageRepository() *messageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	return xcontext.DB(ctx).Create(message).Error
}

// GetDirect pages backwards through a direct conversation. A before of zero
// means newest first from the top.
func (r *messageRepository) GetDirect(
	ctx context.Context, userID, otherID string, before int64, limit int,
) ([]entity.Message, error) {
	tx := xcontext.DB(ctx).
		Where(
			"(sender_id=? AND receiver_id=?) OR (sender_id=? AND receiver_id=?)",
			userID, otherID, otherID, userID,
		)

	if before > 0 {
		tx = tx.Where("id < ?", before)
	}

	var result []entity.Message
	if err := tx.Order("id DESC").Limit(limit).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *messageRepository) GetByGuild(
	ctx context.Context, guildID string, before int64, limit int,
) ([]entity.Message, error) {
	tx := xcontext.DB(ctx).Where("guild_id=?", guildID)

	if before > 0 {
		tx = tx.Where("id < ?", before)
	}

	var result []entity.Message
	if err := tx.Order("id DESC").Limit(limit).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, receiverID, senderID string) error {
	return xcontext.DB(ctx).
		Model(&entity.Message{}).
		Where("receiver_id=? AND sender_id=? AND is_read=?", receiverID, senderID, false).
		Update("is_read", true).Error
}

func (r *messageRepository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Message{}).
		Where("receiver_id=? AND is_read=?", receiverID, false).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *messageRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Where("sender_id=? OR receiver_id=?", userID, userID).
		Delete(&entity.Message{}).Error
}
