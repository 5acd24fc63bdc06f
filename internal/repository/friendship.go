package repository

import (
	"context"
	"errors"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AvailableUserFilter struct {
	UserID string
	Q      string
	Offset int
	Limit  int
}

type FriendshipRepository interface {
	Create(ctx context.Context, friendship *entity.Friendship) error
	GetByID(ctx context.Context, id string) (*entity.Friendship, error)
	GetByPair(ctx context.Context, userID, otherID string) (*entity.Friendship, error)
	Accept(ctx context.Context, id, receiverID string) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
	GetFriends(ctx context.Context, userID string) ([]entity.Friendship, error)
	GetPendingReceived(ctx context.Context, userID string) ([]entity.Friendship, error)
	GetPendingSent(ctx context.Context, userID string) ([]entity.Friendship, error)
	GetAvailableUsers(ctx context.Context, filter AvailableUserFilter) ([]entity.User, error)
}

type friendshipRepository struct{}

func NewFriendshipRepository() *friendshipRepository {
	return &friendshipRepository{}
}

func (r *friendshipRepository) Create(ctx context.Context, friendship *entity.Friendship) error {
	return xcontext.DB(ctx).Create(friendship).Error
}

func (r *friendshipRepository) GetByID(ctx context.Context, id string) (*entity.Friendship, error) {
	var result entity.Friendship
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetByPair looks the pair up in both directions.
func (r *friendshipRepository) GetByPair(ctx context.Context, userID, otherID string) (*entity.Friendship, error) {
	var result entity.Friendship
	err := xcontext.DB(ctx).
		Where(
			"(requester_id=? AND receiver_id=?) OR (requester_id=? AND receiver_id=?)",
			userID, otherID, otherID, userID,
		).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Accept succeeds only when the caller is the receiver and the request is
// still pending.
func (r *friendshipRepository) Accept(ctx context.Context, id, receiverID string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Friendship{}).
		Where("id=? AND receiver_id=? AND status=?", id, receiverID, entity.FriendshipStatusPending).
		Update("status", entity.FriendshipStatusAccepted)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *friendshipRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Friendship{}, "id=?", id).Error
}

func (r *friendshipRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Where("requester_id=? OR receiver_id=?", userID, userID).
		Delete(&entity.Friendship{}).Error
}

func (r *friendshipRepository) GetFriends(ctx context.Context, userID string) ([]entity.Friendship, error) {
	var result []entity.Friendship
	err := xcontext.DB(ctx).
		Where("(requester_id=? OR receiver_id=?) AND status=?",
			userID, userID, entity.FriendshipStatusAccepted).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *friendshipRepository) GetPendingReceived(ctx context.Context, userID string) ([]entity.Friendship, error) {
	var result []entity.Friendship
	err := xcontext.DB(ctx).
		Where("receiver_id=? AND status=?", userID, entity.FriendshipStatusPending).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *friendshipRepository) GetPendingSent(ctx context.Context, userID string) ([]entity.Friendship, error) {
	var result []entity.Friendship
	err := xcontext.DB(ctx).
		Where("requester_id=? AND status=?", userID, entity.FriendshipStatusPending).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetAvailableUsers returns approved, unblocked users who have no friendship
// row with the caller in either direction. The filtering happens in SQL, not
// after the fact.
func (r *friendshipRepository) GetAvailableUsers(
	ctx context.Context, filter AvailableUserFilter,
) ([]entity.User, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("users.id != ?", filter.UserID).
		Where("users.status=? AND users.is_blocked=?", entity.UserStatusApproved, false).
		Where(`NOT EXISTS (
			SELECT 1 FROM friendships
			WHERE friendships.deleted_at IS NULL
			  AND ((friendships.requester_id=users.id AND friendships.receiver_id=?)
			    OR (friendships.receiver_id=users.id AND friendships.requester_id=?))
		)`, filter.UserID, filter.UserID)

	if filter.Q != "" {
		tx = tx.Where("users.name LIKE ?", "%"+filter.Q+"%")
	}

	var result []entity.User
	err := tx.Order("users.name ASC").Offset(filter.Offset).Limit(filter.Limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
