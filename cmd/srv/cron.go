package main

import (
	"github.com/parnaso/backend/internal/domain/cron"
	"github.com/parnaso/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(cctx *cli.Context) error {
	if err := s.loadConfigs(cctx); err != nil {
		return err
	}

	s.loadLogger()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadRepos()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Start(
		s.ctx,
		cron.NewCompetitionStatusCronJob(s.competitionRepo, s.eventCaller),
		cron.NewGuildLeaderboardCronJob(s.guildRepo, s.redisClient),
	)

	return nil
}
