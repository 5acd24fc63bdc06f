package domain

import (
	"testing"
	"time"

	"github.com/parnaso/backend/internal/domain/notification"
	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/testutil"
	"github.com/parnaso/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newCompetitionDomainForTest() *competitionDomain {
	return NewCompetitionDomain(
		repository.NewCompetitionRepository(),
		repository.NewWritingSessionRepository(),
		repository.NewUserRepository(),
		notification.NewEventCaller(&testutil.MockPublisher{}),
	)
}

func Test_competitionDomain_Create_CreatorAutoJoins(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newCompetitionDomainForTest()

	creator, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	startDate := time.Now().UnixMilli()
	ctx = xcontext.WithRequestUserID(ctx, creator.ID)
	resp, err := domain.Create(ctx, &model.CreateCompetitionRequest{
		Title:        "November sprint",
		Type:         "word_count",
		Target:       50000,
		StartDate:    startDate,
		DurationDays: 30,
	})
	require.NoError(t, err)
	require.True(t, resp.Competition.Joined)
	require.Equal(t, 1, resp.Competition.Participants)

	// The end date is derived from the duration, never taken from the client.
	wantEnd := time.UnixMilli(startDate).AddDate(0, 0, 30).UnixMilli()
	require.Equal(t, wantEnd, resp.Competition.EndDate)

	joined, err := domain.competitionRepo.IsParticipant(ctx, resp.Competition.ID, creator.ID)
	require.NoError(t, err)
	require.True(t, joined)
}

func Test_competitionDomain_Create_InvalidWindow(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newCompetitionDomainForTest()

	creator, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, creator.ID)
	var errx errorx.Error

	_, err = domain.Create(ctx, &model.CreateCompetitionRequest{
		Title:  "No duration",
		Type:   "word_count",
		Target: 100,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	// A window that already ended cannot be created.
	_, err = domain.Create(ctx, &model.CreateCompetitionRequest{
		Title:        "Long gone",
		Type:         "word_count",
		Target:       100,
		StartDate:    time.Now().AddDate(0, 0, -10).UnixMilli(),
		DurationDays: 3,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_competitionDomain_Join_Idempotence(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newCompetitionDomainForTest()

	competition, err := testutil.SampleCompetition(ctx, nil)
	require.NoError(t, err)
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	// Joining twice keeps a single participant row.
	_, err = domain.Join(ctx, &model.JoinCompetitionRequest{ID: competition.ID})
	require.NoError(t, err)
	_, err = domain.Join(ctx, &model.JoinCompetitionRequest{ID: competition.ID})
	require.NoError(t, err)

	participants, err := domain.competitionRepo.GetParticipants(ctx, competition.ID)
	require.NoError(t, err)
	require.Len(t, participants, 1)
}

func Test_competitionDomain_Join_Finished(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newCompetitionDomainForTest()

	competition, err := testutil.SampleCompetition(ctx, &entity.Competition{
		Status: entity.CompetitionStatusFinished,
	})
	require.NoError(t, err)
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, user.ID)
	_, err = domain.Join(ctx, &model.JoinCompetitionRequest{ID: competition.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)
}

func Test_competitionDomain_GetProgress_WindowBoundaries(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newCompetitionDomainForTest()

	start := time.UnixMilli(time.Now().Add(-2 * time.Hour).UnixMilli())
	end := time.UnixMilli(time.Now().Add(time.Hour).UnixMilli())
	competition, err := testutil.SampleCompetition(ctx, &entity.Competition{
		Target:    1000,
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, user.ID)
	_, err = domain.Join(ctx, &model.JoinCompetitionRequest{ID: competition.ID})
	require.NoError(t, err)

	// Exactly on the start boundary counts, one millisecond before does not.
	_, err = testutil.SampleWritingSession(ctx, &entity.WritingSession{
		UserID:    user.ID,
		WordCount: 400,
		StartedAt: start,
	})
	require.NoError(t, err)

	_, err = testutil.SampleWritingSession(ctx, &entity.WritingSession{
		UserID:    user.ID,
		WordCount: 9999,
		StartedAt: start.Add(-time.Millisecond),
	})
	require.NoError(t, err)

	_, err = testutil.SampleWritingSession(ctx, &entity.WritingSession{
		UserID:    user.ID,
		WordCount: 100,
		StartedAt: start.Add(time.Minute),
	})
	require.NoError(t, err)

	resp, err := domain.GetProgress(ctx, &model.GetCompetitionProgressRequest{ID: competition.ID})
	require.NoError(t, err)
	require.Len(t, resp.Standings, 1)
	require.Equal(t, 500, resp.Standings[0].Current)
	require.Equal(t, 50, resp.Standings[0].Percent)
	require.False(t, resp.Standings[0].Finished)
}

func Test_competitionDomain_Delete_Permission(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newCompetitionDomainForTest()

	creator, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	stranger, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	admin, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleAdmin})
	require.NoError(t, err)

	competition, err := testutil.SampleCompetition(ctx, &entity.Competition{CreatedBy: creator.ID})
	require.NoError(t, err)

	strangerCtx := xcontext.WithRequestUserID(ctx, stranger.ID)
	_, err = domain.Delete(strangerCtx, &model.DeleteCompetitionRequest{ID: competition.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	adminCtx := xcontext.WithRequestUserID(ctx, admin.ID)
	_, err = domain.Delete(adminCtx, &model.DeleteCompetitionRequest{ID: competition.ID})
	require.NoError(t, err)
}
