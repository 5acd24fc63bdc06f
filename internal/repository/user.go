package repository

import (
	"context"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/pkg/xcontext"
)

type UserFilter struct {
	Status    entity.UserStatus
	IsBlocked *bool
	Q         string
	Offset    int
	Limit     int
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	GetList(ctx context.Context, filter UserFilter) ([]entity.User, error)
	UpdateByID(ctx context.Context, id string, data *entity.User) error
	UpdateBlockedByID(ctx context.Context, id string, blocked bool) error
	Count(ctx context.Context) (int64, error)
	DeleteByID(ctx context.Context, id string) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "email=?", email).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	var result []entity.User
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) GetList(ctx context.Context, filter UserFilter) ([]entity.User, error) {
	tx := xcontext.DB(ctx).Model(&entity.User{})

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	if filter.IsBlocked != nil {
		tx = tx.Where("is_blocked=?", *filter.IsBlocked)
	}

	if filter.Q != "" {
		tx = tx.Where("name LIKE ? OR email LIKE ?", "%"+filter.Q+"%", "%"+filter.Q+"%")
	}

	var result []entity.User
	err := tx.Order("created_at ASC").Offset(filter.Offset).Limit(filter.Limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, data *entity.User) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Updates(data).Error
}

// UpdateBlockedByID uses a map update so that unblocking is not swallowed as
// a zero value.
func (r *userRepository) UpdateBlockedByID(ctx context.Context, id string, blocked bool) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update("is_blocked", blocked).Error
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var result int64
	if err := xcontext.DB(ctx).Model(&entity.User{}).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

func (r *userRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.User{}, "id=?", id).Error
}
