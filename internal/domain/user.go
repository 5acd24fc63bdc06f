package domain

import (
	"context"
	"errors"
	"time"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/enum"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	UpdateMe(context.Context, *model.UpdateMeRequest) (*model.UpdateMeResponse, error)
	GetUsers(context.Context, *model.GetUsersRequest) (*model.GetUsersResponse, error)
	Approve(context.Context, *model.ApproveUserRequest) (*model.ApproveUserResponse, error)
	Reject(context.Context, *model.RejectUserRequest) (*model.RejectUserResponse, error)
	SetBlocked(context.Context, *model.SetUserBlockedRequest) (*model.SetUserBlockedResponse, error)
	Delete(context.Context, *model.DeleteUserRequest) (*model.DeleteUserResponse, error)
}

type userDomain struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	sessionRepo      repository.WritingSessionRepository
	projectRepo      repository.ProjectRepository
	settingRepo      repository.UserSettingRepository
	friendshipRepo   repository.FriendshipRepository
	messageRepo      repository.MessageRepository
}

func NewUserDomain(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	sessionRepo repository.WritingSessionRepository,
	projectRepo repository.ProjectRepository,
	settingRepo repository.UserSettingRepository,
	friendshipRepo repository.FriendshipRepository,
	messageRepo repository.MessageRepository,
) *userDomain {
	return &userDomain{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		sessionRepo:      sessionRepo,
		projectRepo:      projectRepo,
		settingRepo:      settingRepo,
		friendshipRepo:   friendshipRepo,
		messageRepo:      messageRepo,
	}
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMeResponse(model.ConvertUser(user, true))
	return &resp, nil
}

func (d *userDomain) UpdateMe(
	ctx context.Context, req *model.UpdateMeRequest,
) (*model.UpdateMeResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty name")
	}

	err := d.userRepo.UpdateByID(ctx, xcontext.RequestUserID(ctx), &entity.User{Name: req.Name})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateMeResponse{}, nil
}

func (d *userDomain) GetUsers(
	ctx context.Context, req *model.GetUsersRequest,
) (*model.GetUsersResponse, error) {
	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	filter := repository.UserFilter{Q: req.Q, Offset: req.Offset, Limit: req.Limit}
	if req.Status != "" {
		status, err := enum.ToEnum[entity.UserStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}

		filter.Status = status
	}

	users, err := d.userRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	clientUsers := []model.User{}
	for i := range users {
		clientUsers = append(clientUsers, model.ConvertUser(&users[i], true))
	}

	return &model.GetUsersResponse{Users: clientUsers}, nil
}

func (d *userDomain) Approve(
	ctx context.Context, req *model.ApproveUserRequest,
) (*model.ApproveUserResponse, error) {
	user, err := d.getUser(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if user.Status == entity.UserStatusApproved {
		return &model.ApproveUserResponse{}, nil
	}

	now := time.Now()
	err = d.userRepo.UpdateByID(ctx, user.ID, &entity.User{
		Status:     entity.UserStatusApproved,
		ApprovedAt: &now,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot approve user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ApproveUserResponse{}, nil
}

func (d *userDomain) Reject(
	ctx context.Context, req *model.RejectUserRequest,
) (*model.RejectUserResponse, error) {
	user, err := d.getUser(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if user.Role != entity.RoleUser {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot reject an admin account")
	}

	err = d.userRepo.UpdateByID(ctx, user.ID, &entity.User{Status: entity.UserStatusRejected})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reject user: %v", err)
		return nil, errorx.Unknown
	}

	// Rejecting always revokes every login of the account.
	if err := d.refreshTokenRepo.DeleteByUserID(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot revoke refresh tokens: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RejectUserResponse{}, nil
}

func (d *userDomain) SetBlocked(
	ctx context.Context, req *model.SetUserBlockedRequest,
) (*model.SetUserBlockedResponse, error) {
	user, err := d.getUser(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if user.Role != entity.RoleUser {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot block an admin account")
	}

	if err := d.userRepo.UpdateBlockedByID(ctx, user.ID, req.IsBlocked); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot change blocked flag: %v", err)
		return nil, errorx.Unknown
	}

	if req.IsBlocked {
		if err := d.refreshTokenRepo.DeleteByUserID(ctx, user.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot revoke refresh tokens: %v", err)
			return nil, errorx.Unknown
		}
	}

	return &model.SetUserBlockedResponse{}, nil
}

func (d *userDomain) Delete(
	ctx context.Context, req *model.DeleteUserRequest,
) (*model.DeleteUserResponse, error) {
	user, err := d.getUser(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if user.Role != entity.RoleUser {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot delete an admin account")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.sessionRepo.DeleteByUserID(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete sessions: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.projectRepo.DeleteByUserID(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete projects: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.settingRepo.DeleteByUserID(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete settings: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.friendshipRepo.DeleteByUserID(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete friendships: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.messageRepo.DeleteByUserID(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete messages: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.refreshTokenRepo.DeleteByUserID(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot revoke refresh tokens: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.DeleteByID(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete user: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.DeleteUserResponse{}, nil
}

func (d *userDomain) getUser(ctx context.Context, id string) (*entity.User, error) {
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	user, err := d.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return user, nil
}
