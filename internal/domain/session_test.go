package domain

import (
	"context"
	"testing"
	"time"

	"github.com/parnaso/backend/internal/common"
	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/testutil"
	"github.com/parnaso/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newSessionDomainForTest() *sessionDomain {
	return &sessionDomain{
		sessionRepo: repository.NewWritingSessionRepository(),
		projectRepo: repository.NewProjectRepository(),
		settingRepo: repository.NewUserSettingRepository(),
		guildRepo:   repository.NewGuildRepository(),
		redisClient: &testutil.MockRedisClient{},
	}
}

func Test_sessionDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newSessionDomainForTest()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, user.ID)
	startedAt := time.Now().Add(-time.Hour).UnixMilli()
	resp, err := domain.Create(ctx, &model.CreateSessionRequest{
		WordCount: 500,
		Duration:  45,
		StartedAt: startedAt,
		Notes:     "morning pages",
	})
	require.NoError(t, err)
	require.Equal(t, 500, resp.Session.WordCount)
	require.Equal(t, startedAt, resp.Session.StartedAt)
}

func Test_sessionDomain_Create_KeepsReflectionAnswers(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newSessionDomainForTest()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	// The full save payload of the writing screen, nothing may be lost.
	req := &model.CreateSessionRequest{
		WordCount:               800,
		Duration:                60,
		StartedAt:               time.Now().Add(-time.Hour).UnixMilli(),
		Content:                 "The chapter three draft.",
		Notes:                   "laptop died halfway",
		StressLevel:             2,
		DifficultyLevel:         4,
		SessionRating:           5,
		UsedSkeleton:            true,
		UsedDrafts:              true,
		UsedTimeStrategy:        true,
		WasMultitasking:         true,
		MultitaskingDescription: "answering mail",
		SelfRewarded:            true,
		RewardDescription:       "coffee",
	}

	_, err = domain.Create(ctx, req)
	require.NoError(t, err)

	resp, err := domain.GetMyList(ctx, &model.GetMySessionsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Sessions, 1)

	session := resp.Sessions[0]
	require.Equal(t, req.Content, session.Content)
	require.Equal(t, req.StressLevel, session.StressLevel)
	require.Equal(t, req.DifficultyLevel, session.DifficultyLevel)
	require.Equal(t, req.SessionRating, session.SessionRating)
	require.True(t, session.UsedSkeleton)
	require.True(t, session.UsedDrafts)
	require.True(t, session.UsedTimeStrategy)
	require.True(t, session.WasMultitasking)
	require.Equal(t, req.MultitaskingDescription, session.MultitaskingDescription)
	require.True(t, session.SelfRewarded)
	require.Equal(t, req.RewardDescription, session.RewardDescription)
}

func Test_sessionDomain_Create_Validation(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newSessionDomainForTest()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	var errx errorx.Error

	_, err = domain.Create(ctx, &model.CreateSessionRequest{WordCount: -1})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.Create(ctx, &model.CreateSessionRequest{
		WordCount: 100,
		StartedAt: time.Now().Add(time.Hour).UnixMilli(),
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.Create(ctx, &model.CreateSessionRequest{WordCount: 100, SessionRating: 6})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.Create(ctx, &model.CreateSessionRequest{WordCount: 100, StressLevel: -1})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	// A session cannot be attached to somebody else's project.
	other, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	err = domain.projectRepo.Create(ctx, &entity.Project{
		Base:   entity.Base{ID: "other-project"},
		UserID: other.ID,
		Title:  "Their novel",
		Status: entity.ProjectStatusActive,
	})
	require.NoError(t, err)

	_, err = domain.Create(ctx, &model.CreateSessionRequest{
		WordCount: 100,
		ProjectID: "other-project",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func Test_sessionDomain_GetMyList_Window(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newSessionDomainForTest()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	now := time.UnixMilli(time.Now().UnixMilli())
	for _, offset := range []time.Duration{-72 * time.Hour, -time.Hour, -time.Minute} {
		_, err := testutil.SampleWritingSession(ctx, &entity.WritingSession{
			UserID:    user.ID,
			StartedAt: now.Add(offset),
		})
		require.NoError(t, err)
	}

	resp, err := domain.GetMyList(ctx, &model.GetMySessionsRequest{
		Begin: now.Add(-2 * time.Hour).UnixMilli(),
		End:   now.UnixMilli(),
	})
	require.NoError(t, err)
	require.Len(t, resp.Sessions, 2)
}

func Test_sessionDomain_ClearMyData(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newSessionDomainForTest()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	other, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	_, err = testutil.SampleWritingSession(ctx, &entity.WritingSession{UserID: user.ID})
	require.NoError(t, err)
	kept, err := testutil.SampleWritingSession(ctx, &entity.WritingSession{UserID: other.ID})
	require.NoError(t, err)

	userCtx := xcontext.WithRequestUserID(ctx, user.ID)
	_, err = domain.ClearMyData(userCtx, &model.ClearMyDataRequest{})
	require.NoError(t, err)

	mine, err := domain.sessionRepo.GetList(ctx, repository.SessionFilter{UserID: user.ID, Limit: 10})
	require.NoError(t, err)
	require.Empty(t, mine)

	// Other accounts keep their data.
	theirs, err := domain.sessionRepo.GetList(ctx, repository.SessionFilter{UserID: other.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	require.Equal(t, kept.ID, theirs[0].ID)
}

func Test_sessionDomain_Create_BumpsGuildLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newSessionDomainForTest()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	guild, err := testutil.SampleGuild(ctx, nil)
	require.NoError(t, err)
	err = domain.guildRepo.CreateMember(ctx, &entity.GuildMember{
		GuildID: guild.ID,
		UserID:  user.ID,
		Role:    entity.GuildRoleMember,
	})
	require.NoError(t, err)

	var gotKey, gotMember string
	var gotIncr float64
	domain.redisClient = &testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			return true, nil
		},
		ZIncrByFunc: func(ctx context.Context, key string, incr float64, member string) error {
			gotKey, gotIncr, gotMember = key, incr, member
			return nil
		},
	}

	userCtx := xcontext.WithRequestUserID(ctx, user.ID)
	_, err = domain.Create(userCtx, &model.CreateSessionRequest{WordCount: 120, Duration: 25})
	require.NoError(t, err)

	require.Equal(t, common.RedisKeyGuildLeaderboard(guild.ID), gotKey)
	require.Equal(t, float64(120), gotIncr)
	require.Equal(t, user.ID, gotMember)
}
