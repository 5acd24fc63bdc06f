package repository

import (
	"context"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type UserSettingRepository interface {
	Get(ctx context.Context, userID string) (*entity.UserSetting, error)
	Upsert(ctx context.Context, setting *entity.UserSetting) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type userSettingRepository struct{}

func NewUserSettingRepository() *userSettingRepository {
	return &userSettingRepository{}
}

func (r *userSettingRepository) Get(ctx context.Context, userID string) (*entity.UserSetting, error) {
	var result entity.UserSetting
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userSettingRepository) Upsert(ctx context.Context, setting *entity.UserSetting) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"daily_goal_words", "timer_minutes", "break_minutes", "theme", "updated_at",
		}),
	}).Create(setting).Error
}

func (r *userSettingRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Delete(&entity.UserSetting{}, "user_id=?", userID).Error
}
