package repository

import (
	"context"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/pkg/xcontext"
)

type ThreadFilter struct {
	GuildID  string // empty means the global forum
	Category string
	Offset   int
	Limit    int
}

type ForumRepository interface {
	CreateThread(ctx context.Context, thread *entity.ForumThread) error
	GetThreadByID(ctx context.Context, id string) (*entity.ForumThread, error)
	GetThreads(ctx context.Context, filter ThreadFilter) ([]entity.ForumThread, error)
	DeleteThreadByID(ctx context.Context, id string) error

	CreateReply(ctx context.Context, reply *entity.ForumReply) error
	GetReplyByID(ctx context.Context, id string) (*entity.ForumReply, error)
	GetReplies(ctx context.Context, threadID string) ([]entity.ForumReply, error)
	CountReplies(ctx context.Context, threadID string) (int64, error)
	DeleteReplyByID(ctx context.Context, id string) error
	DeleteRepliesByThreadID(ctx context.Context, threadID string) error
}

type forumRepository struct{}

func NewForumRepository() *forumRepository {
	return &forumRepository{}
}

func (r *forumRepository) CreateThread(ctx context.Context, thread *entity.ForumThread) error {
	return xcontext.DB(ctx).Create(thread).Error
}

func (r *forumRepository) GetThreadByID(ctx context.Context, id string) (*entity.ForumThread, error) {
	var result entity.ForumThread
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *forumRepository) GetThreads(ctx context.Context, filter ThreadFilter) ([]entity.ForumThread, error) {
	tx := xcontext.DB(ctx).Model(&entity.ForumThread{})

	if filter.GuildID == "" {
		tx = tx.Where("guild_id IS NULL")
	} else {
		tx = tx.Where("guild_id=?", filter.GuildID)
	}

	if filter.Category != "" {
		tx = tx.Where("category=?", filter.Category)
	}

	var result []entity.ForumThread
	err := tx.Order("created_at DESC").Offset(filter.Offset).Limit(filter.Limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *forumRepository) DeleteThreadByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.ForumThread{}, "id=?", id).Error
}

func (r *forumRepository) CreateReply(ctx context.Context, reply *entity.ForumReply) error {
	return xcontext.DB(ctx).Create(reply).Error
}

func (r *forumRepository) GetReplyByID(ctx context.Context, id string) (*entity.ForumReply, error) {
	var result entity.ForumReply
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *forumRepository) GetReplies(ctx context.Context, threadID string) ([]entity.ForumReply, error) {
	var result []entity.ForumReply
	err := xcontext.DB(ctx).
		Where("thread_id=?", threadID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *forumRepository) CountReplies(ctx context.Context, threadID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.ForumReply{}).
		Where("thread_id=?", threadID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *forumRepository) DeleteReplyByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.ForumReply{}, "id=?", id).Error
}

func (r *forumRepository) DeleteRepliesByThreadID(ctx context.Context, threadID string) error {
	return xcontext.DB(ctx).Delete(&entity.ForumReply{}, "thread_id=?", threadID).Error
}
