package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/parnaso/backend/internal/common"
	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/xcontext"
	"github.com/parnaso/backend/pkg/xredis"
	"gorm.io/gorm"
)

type SessionDomain interface {
	Create(context.Context, *model.CreateSessionRequest) (*model.CreateSessionResponse, error)
	GetMyList(context.Context, *model.GetMySessionsRequest) (*model.GetMySessionsResponse, error)
	ClearMyData(context.Context, *model.ClearMyDataRequest) (*model.ClearMyDataResponse, error)
}

type sessionDomain struct {
	sessionRepo repository.WritingSessionRepository
	projectRepo repository.ProjectRepository
	settingRepo repository.UserSettingRepository
	guildRepo   repository.GuildRepository
	redisClient xredis.Client
}

func NewSessionDomain(
	sessionRepo repository.WritingSessionRepository,
	projectRepo repository.ProjectRepository,
	settingRepo repository.UserSettingRepository,
	guildRepo repository.GuildRepository,
	redisClient xredis.Client,
) *sessionDomain {
	return &sessionDomain{
		sessionRepo: sessionRepo,
		projectRepo: projectRepo,
		settingRepo: settingRepo,
		guildRepo:   guildRepo,
		redisClient: redisClient,
	}
}

func (d *sessionDomain) Create(
	ctx context.Context, req *model.CreateSessionRequest,
) (*model.CreateSessionResponse, error) {
	if req.WordCount < 0 || req.Duration < 0 {
		return nil, errorx.New(errorx.BadRequest, "Word count and duration must not be negative")
	}

	// A zero rating means the question was skipped on save.
	for _, rating := range []int{req.StressLevel, req.DifficultyLevel, req.SessionRating} {
		if rating < 0 || rating > 5 {
			return nil, errorx.New(errorx.BadRequest, "Ratings must be between 1 and 5")
		}
	}

	userID := xcontext.RequestUserID(ctx)
	startedAt := time.UnixMilli(req.StartedAt)
	if req.StartedAt == 0 {
		startedAt = time.Now()
	}

	if startedAt.After(time.Now()) {
		return nil, errorx.New(errorx.BadRequest, "Cannot record a session in the future")
	}

	projectID := sql.NullString{}
	if req.ProjectID != "" {
		project, err := d.projectRepo.GetByID(ctx, req.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found project")
			}

			xcontext.Logger(ctx).Errorf("Cannot get project: %v", err)
			return nil, errorx.Unknown
		}

		if project.UserID != userID {
			return nil, errorx.New(errorx.PermissionDenied, "Not your project")
		}

		projectID = sql.NullString{Valid: true, String: project.ID}
	}

	session := &entity.WritingSession{
		Base:                    entity.Base{ID: uuid.NewString()},
		UserID:                  userID,
		ProjectID:               projectID,
		WordCount:               req.WordCount,
		Duration:                req.Duration,
		StartedAt:               startedAt,
		Content:                 req.Content,
		Notes:                   req.Notes,
		StressLevel:             req.StressLevel,
		DifficultyLevel:         req.DifficultyLevel,
		SessionRating:           req.SessionRating,
		UsedSkeleton:            req.UsedSkeleton,
		UsedDrafts:              req.UsedDrafts,
		UsedTimeStrategy:        req.UsedTimeStrategy,
		WasMultitasking:         req.WasMultitasking,
		MultitaskingDescription: req.MultitaskingDescription,
		SelfRewarded:            req.SelfRewarded,
		RewardDescription:       req.RewardDescription,
	}

	// Sessions are append only. There is no update or single delete, only
	// ClearMyData wipes them.
	if err := d.sessionRepo.Create(ctx, session); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create session: %v", err)
		return nil, errorx.Unknown
	}

	d.bumpGuildLeaderboards(ctx, userID, session.WordCount)

	return &model.CreateSessionResponse{Session: model.ConvertWritingSession(session)}, nil
}

// bumpGuildLeaderboards incrementally updates every cached guild board the
// user appears on. A missing board is left alone, it will be rebuilt lazily.
// Cache failures never fail the session save.
func (d *sessionDomain) bumpGuildLeaderboards(ctx context.Context, userID string, wordCount int) {
	if wordCount == 0 {
		return
	}

	joined, err := d.guildRepo.GetJoinedGuilds(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get joined guilds: %v", err)
		return
	}

	for _, member := range joined {
		key := common.RedisKeyGuildLeaderboard(member.GuildID)
		existed, err := d.redisClient.Exist(ctx, key)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot check leaderboard of guild %s: %v", member.GuildID, err)
			continue
		}

		if !existed {
			continue
		}

		if err := d.redisClient.ZIncrBy(ctx, key, float64(wordCount), userID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update leaderboard of guild %s: %v", member.GuildID, err)
		}
	}
}

func (d *sessionDomain) GetMyList(
	ctx context.Context, req *model.GetMySessionsRequest,
) (*model.GetMySessionsResponse, error) {
	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	filter := repository.SessionFilter{
		UserID:    xcontext.RequestUserID(ctx),
		ProjectID: req.ProjectID,
		Offset:    req.Offset,
		Limit:     req.Limit,
	}

	if req.Begin > 0 {
		filter.Begin = time.UnixMilli(req.Begin)
	}

	if req.End > 0 {
		filter.End = time.UnixMilli(req.End)
	}

	sessions, err := d.sessionRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get sessions: %v", err)
		return nil, errorx.Unknown
	}

	clientSessions := []model.WritingSession{}
	for i := range sessions {
		clientSessions = append(clientSessions, model.ConvertWritingSession(&sessions[i]))
	}

	return &model.GetMySessionsResponse{Sessions: clientSessions}, nil
}

func (d *sessionDomain) ClearMyData(
	ctx context.Context, req *model.ClearMyDataRequest,
) (*model.ClearMyDataResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	joined, err := d.guildRepo.GetJoinedGuilds(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get joined guilds: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete sessions: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.projectRepo.DeleteByUserID(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete projects: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.settingRepo.DeleteByUserID(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete settings: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	// The wiped sessions are baked into cached guild boards. Drop them, they
	// will be rebuilt lazily.
	for _, member := range joined {
		key := common.RedisKeyGuildLeaderboard(member.GuildID)
		if err := d.redisClient.Del(ctx, key); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot drop leaderboard of guild %s: %v", member.GuildID, err)
		}
	}

	return &model.ClearMyDataResponse{}, nil
}
