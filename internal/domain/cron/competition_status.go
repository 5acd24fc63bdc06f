package cron

import (
	"context"
	"time"

	"github.com/parnaso/backend/internal/domain/notification"
	"github.com/parnaso/backend/internal/domain/notification/event"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/xcontext"
)

// CompetitionStatusCronJob flips competitions whose end date has passed from
// active to finished, then announces each one.
type CompetitionStatusCronJob struct {
	competitionRepo repository.CompetitionRepository
	eventCaller     notification.EventCaller
}

func NewCompetitionStatusCronJob(
	competitionRepo repository.CompetitionRepository,
	eventCaller notification.EventCaller,
) *CompetitionStatusCronJob {
	return &CompetitionStatusCronJob{
		competitionRepo: competitionRepo,
		eventCaller:     eventCaller,
	}
}

func (job *CompetitionStatusCronJob) Do(ctx context.Context) {
	now := time.Now()
	ended, err := job.competitionRepo.GetEndedActive(ctx, now)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ended competitions: %v", err)
		return
	}

	n, err := job.competitionRepo.FinishEnded(ctx, now)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot finish ended competitions: %v", err)
		return
	}

	if n > 0 {
		xcontext.Logger(ctx).Infof("Finished %d competitions", n)
	}

	for _, competition := range ended {
		ev := event.New(
			&event.CompetitionFinishedEvent{CompetitionID: competition.ID},
			event.Metadata{Broadcast: true},
		)
		if err := job.eventCaller.Emit(ctx, ev); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot emit competition finished event: %v", err)
		}
	}
}

func (job *CompetitionStatusCronJob) RunNow() bool {
	return true
}

func (job *CompetitionStatusCronJob) Next() time.Time {
	return time.Now().Add(time.Hour)
}
