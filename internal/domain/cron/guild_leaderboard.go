package cron

import (
	"context"
	"time"

	"github.com/parnaso/backend/internal/domain"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/dateutil"
	"github.com/parnaso/backend/pkg/xcontext"
	"github.com/parnaso/backend/pkg/xredis"
)

// GuildLeaderboardCronJob rebuilds every guild leaderboard once a day, so a
// board invalidated by membership churn or late writes converges overnight.
type GuildLeaderboardCronJob struct {
	guildRepo   repository.GuildRepository
	redisClient xredis.Client
}

func NewGuildLeaderboardCronJob(
	guildRepo repository.GuildRepository,
	redisClient xredis.Client,
) *GuildLeaderboardCronJob {
	return &GuildLeaderboardCronJob{
		guildRepo:   guildRepo,
		redisClient: redisClient,
	}
}

func (job *GuildLeaderboardCronJob) Do(ctx context.Context) {
	guilds, err := job.guildRepo.GetList(ctx, repository.GuildFilter{})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get all guilds: %v", err)
		return
	}

	for i := range guilds {
		err := domain.RebuildGuildLeaderboard(ctx, job.guildRepo, job.redisClient, &guilds[i])
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot rebuild leaderboard of guild %s: %v", guilds[i].ID, err)
			continue
		}
	}
}

func (job *GuildLeaderboardCronJob) RunNow() bool {
	return true
}

func (job *GuildLeaderboardCronJob) Next() time.Time {
	return dateutil.StartOfDay(time.Now()).AddDate(0, 0, 1)
}
