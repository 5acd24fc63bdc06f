package domain

import (
	"context"
	"errors"
	"time"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	defaultDailyGoalWords = 500
	defaultTimerMinutes   = 25
	defaultBreakMinutes   = 5
)

type SettingDomain interface {
	GetMine(context.Context, *model.GetMySettingsRequest) (*model.GetMySettingsResponse, error)
	UpdateMine(context.Context, *model.UpdateMySettingsRequest) (*model.UpdateMySettingsResponse, error)
}

type settingDomain struct {
	settingRepo repository.UserSettingRepository
}

func NewSettingDomain(settingRepo repository.UserSettingRepository) *settingDomain {
	return &settingDomain{settingRepo: settingRepo}
}

func (d *settingDomain) GetMine(
	ctx context.Context, req *model.GetMySettingsRequest,
) (*model.GetMySettingsResponse, error) {
	setting, err := d.settingRepo.Get(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Users without saved settings get the defaults, no row is
			// created until they change something.
			return &model.GetMySettingsResponse{
				DailyGoalWords: defaultDailyGoalWords,
				TimerMinutes:   defaultTimerMinutes,
				BreakMinutes:   defaultBreakMinutes,
			}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get settings: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMySettingsResponse(model.ConvertUserSetting(setting))
	return &resp, nil
}

func (d *settingDomain) UpdateMine(
	ctx context.Context, req *model.UpdateMySettingsRequest,
) (*model.UpdateMySettingsResponse, error) {
	if req.DailyGoalWords < 0 || req.TimerMinutes < 0 || req.BreakMinutes < 0 {
		return nil, errorx.New(errorx.BadRequest, "Settings must not be negative")
	}

	err := d.settingRepo.Upsert(ctx, &entity.UserSetting{
		UserID:         xcontext.RequestUserID(ctx),
		DailyGoalWords: req.DailyGoalWords,
		TimerMinutes:   req.TimerMinutes,
		BreakMinutes:   req.BreakMinutes,
		Theme:          req.Theme,
		UpdatedAt:      time.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update settings: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateMySettingsResponse{}, nil
}
