package domain

import (
	"context"
	"testing"
	"time"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/testutil"
	"github.com/parnaso/backend/pkg/xcontext"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func Test_statisticDomain_GetMyStats_DaysStreak(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewStatisticDomain(
		repository.NewWritingSessionRepository(),
		repository.NewUserRepository(),
		repository.NewGuildRepository(),
		&testutil.MockRedisClient{},
	)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	// Three sessions over two calendar days, with a gap in between. The
	// streak counts distinct days, not consecutive ones.
	day1 := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 10, 21, 0, 0, 0, time.UTC)
	for _, startedAt := range []time.Time{day1, day1.Add(8 * time.Hour), day2} {
		_, err := testutil.SampleWritingSession(ctx, &entity.WritingSession{
			UserID:    user.ID,
			WordCount: 100,
			Duration:  30,
			StartedAt: startedAt,
		})
		require.NoError(t, err)
	}

	userCtx := xcontext.WithRequestUserID(ctx, user.ID)
	resp, err := domain.GetMyStats(userCtx, &model.GetMyStatsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(300), resp.TotalWords)
	require.Equal(t, int64(90), resp.TotalMinutes)
	require.Equal(t, int64(3), resp.TotalSessions)
	require.Equal(t, 2, resp.DaysStreak)
	require.Equal(t, 100, resp.AverageWordsPerSession)
}

func Test_statisticDomain_GetGuildLeaderboard_RebuildOnMiss(t *testing.T) {
	ctx := testutil.MockContext()

	// The mock board behaves like an empty redis: the first read misses,
	// triggering a rebuild from the database.
	board := map[string][]redis.Z{}
	redisClient := &testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			_, ok := board[key]
			return ok, nil
		},
		ZAddFunc: func(ctx context.Context, key string, z redis.Z) error {
			board[key] = append(board[key], z)
			return nil
		},
		ZRevRangeWithScoresFunc: func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
			records := board[key]
			for i := 0; i < len(records); i++ {
				for j := i + 1; j < len(records); j++ {
					if records[j].Score > records[i].Score {
						records[i], records[j] = records[j], records[i]
					}
				}
			}
			return records, nil
		},
		DelFunc: func(ctx context.Context, keys ...string) error {
			for _, key := range keys {
				delete(board, key)
			}
			return nil
		},
	}

	domain := NewStatisticDomain(
		repository.NewWritingSessionRepository(),
		repository.NewUserRepository(),
		repository.NewGuildRepository(),
		redisClient,
	)

	guild, err := testutil.SampleGuild(ctx, nil)
	require.NoError(t, err)

	top, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	second, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	guildRepo := repository.NewGuildRepository()
	for _, userID := range []string{top.ID, second.ID} {
		err = guildRepo.CreateMember(ctx, &entity.GuildMember{
			GuildID: guild.ID,
			UserID:  userID,
			Role:    entity.GuildRoleMember,
		})
		require.NoError(t, err)
	}

	_, err = testutil.SampleWritingSession(ctx, &entity.WritingSession{UserID: top.ID, WordCount: 900})
	require.NoError(t, err)
	_, err = testutil.SampleWritingSession(ctx, &entity.WritingSession{UserID: second.ID, WordCount: 300})
	require.NoError(t, err)

	userCtx := xcontext.WithRequestUserID(ctx, second.ID)
	resp, err := domain.GetGuildLeaderboard(userCtx, &model.GetGuildLeaderboardRequest{GuildID: guild.ID})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	require.Equal(t, top.ID, resp.Entries[0].UserID)
	require.Equal(t, int64(900), resp.Entries[0].TotalWords)
	require.Equal(t, uint64(1), resp.Entries[0].Rank)
	require.Equal(t, second.ID, resp.Entries[1].UserID)
	require.Equal(t, uint64(2), resp.Entries[1].Rank)
}
