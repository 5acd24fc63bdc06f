package domain

import (
	"context"
	"errors"
	"time"

	"github.com/parnaso/backend/internal/common"
	"github.com/parnaso/backend/internal/domain/progress"
	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/xcontext"
	"github.com/parnaso/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type StatisticDomain interface {
	GetMyStats(context.Context, *model.GetMyStatsRequest) (*model.GetMyStatsResponse, error)
	GetGlobalStats(context.Context, *model.GetGlobalStatsRequest) (*model.GetGlobalStatsResponse, error)
	GetGuildLeaderboard(context.Context, *model.GetGuildLeaderboardRequest) (*model.GetGuildLeaderboardResponse, error)
}

type statisticDomain struct {
	sessionRepo repository.WritingSessionRepository
	userRepo    repository.UserRepository
	guildRepo   repository.GuildRepository
	redisClient xredis.Client
}

func NewStatisticDomain(
	sessionRepo repository.WritingSessionRepository,
	userRepo repository.UserRepository,
	guildRepo repository.GuildRepository,
	redisClient xredis.Client,
) *statisticDomain {
	return &statisticDomain{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		guildRepo:   guildRepo,
		redisClient: redisClient,
	}
}

func (d *statisticDomain) GetMyStats(
	ctx context.Context, req *model.GetMyStatsRequest,
) (*model.GetMyStatsResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	var begin, end time.Time
	if req.Begin > 0 {
		begin = time.UnixMilli(req.Begin)
	}

	end = time.Now()
	if req.End > 0 {
		end = time.UnixMilli(req.End)
	}

	sessions, err := d.sessionRepo.GetInWindow(ctx, userID, begin, end)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get sessions: %v", err)
		return nil, errorx.Unknown
	}

	totals := progress.Aggregate(sessions)
	return &model.GetMyStatsResponse{
		TotalWords:             int64(totals.Words),
		TotalMinutes:           int64(totals.Minutes),
		TotalSessions:          int64(totals.Sessions),
		DaysStreak:             totals.DaysStreak,
		AverageWordsPerSession: totals.AvgWordsPerSession,
	}, nil
}

func (d *statisticDomain) GetGlobalStats(
	ctx context.Context, req *model.GetGlobalStatsRequest,
) (*model.GetGlobalStatsResponse, error) {
	stats, err := d.sessionRepo.GlobalStats(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get global stats: %v", err)
		return nil, errorx.Unknown
	}

	users, err := d.userRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetGlobalStatsResponse{
		TotalUsers:    users,
		TotalWords:    stats.TotalWords,
		TotalMinutes:  stats.TotalMinutes,
		TotalSessions: stats.TotalSessions,
	}, nil
}

// GetGuildLeaderboard reads the sorted set the cron job maintains. If the
// board is missing, it is rebuilt from the database on the spot.
func (d *statisticDomain) GetGuildLeaderboard(
	ctx context.Context, req *model.GetGuildLeaderboardRequest,
) (*model.GetGuildLeaderboardResponse, error) {
	if req.GuildID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty guild id")
	}

	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	guild, err := d.guildRepo.GetByID(ctx, req.GuildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found guild")
		}

		xcontext.Logger(ctx).Errorf("Cannot get guild: %v", err)
		return nil, errorx.Unknown
	}

	key := common.RedisKeyGuildLeaderboard(guild.ID)
	exist, err := d.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check leaderboard existence: %v", err)
		return nil, errorx.Unknown
	}

	if !exist {
		if err := RebuildGuildLeaderboard(ctx, d.guildRepo, d.redisClient, guild); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot rebuild leaderboard: %v", err)
			return nil, errorx.Unknown
		}
	}

	records, err := d.redisClient.ZRevRangeWithScores(ctx, key, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard range: %v", err)
		return nil, errorx.Unknown
	}

	entries := []model.LeaderboardEntry{}
	for i, z := range records {
		name, userID := common.FromRedisValueLeaderboard(z.Member.(string))
		entries = append(entries, model.LeaderboardEntry{
			UserID:     userID,
			Name:       name,
			TotalWords: int64(z.Score),
			Rank:       uint64(req.Offset + i + 1),
		})
	}

	var myRank uint64
	me, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err == nil {
		myRank, err = d.redisClient.ZRevRank(ctx, key, common.RedisValueLeaderboard(me.Name, me.ID))
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get my rank: %v", err)
			return nil, errorx.Unknown
		}
	}

	return &model.GetGuildLeaderboardResponse{Entries: entries, MyRank: myRank}, nil
}

// RebuildGuildLeaderboard recomputes a guild's sorted set from member session
// totals since the guild's stats reset date. Shared with the cron job.
func RebuildGuildLeaderboard(
	ctx context.Context,
	guildRepo repository.GuildRepository,
	redisClient xredis.Client,
	guild *entity.Guild,
) error {
	since := time.Time{}
	if guild.StatsResetDate.Valid {
		since = guild.StatsResetDate.Time
	}

	totals, err := guildRepo.MemberTotals(ctx, guild.ID, since)
	if err != nil {
		return err
	}

	key := common.RedisKeyGuildLeaderboard(guild.ID)
	if err := redisClient.Del(ctx, key); err != nil {
		return err
	}

	for _, total := range totals {
		err := redisClient.ZAdd(ctx, key, redis.Z{
			Score:  float64(total.TotalWords),
			Member: common.RedisValueLeaderboard(total.Name, total.UserID),
		})
		if err != nil {
			return err
		}
	}

	return nil
}
