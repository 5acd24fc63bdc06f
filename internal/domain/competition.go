package domain

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/parnaso/backend/internal/common"
	"github.com/parnaso/backend/internal/domain/notification"
	"github.com/parnaso/backend/internal/domain/notification/event"
	"github.com/parnaso/backend/internal/domain/progress"
	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/enum"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type CompetitionDomain interface {
	Create(context.Context, *model.CreateCompetitionRequest) (*model.CreateCompetitionResponse, error)
	GetList(context.Context, *model.GetCompetitionsRequest) (*model.GetCompetitionsResponse, error)
	Join(context.Context, *model.JoinCompetitionRequest) (*model.JoinCompetitionResponse, error)
	Delete(context.Context, *model.DeleteCompetitionRequest) (*model.DeleteCompetitionResponse, error)
	GetProgress(context.Context, *model.GetCompetitionProgressRequest) (*model.GetCompetitionProgressResponse, error)
}

type competitionDomain struct {
	competitionRepo    repository.CompetitionRepository
	sessionRepo        repository.WritingSessionRepository
	userRepo           repository.UserRepository
	globalRoleVerifier *common.GlobalRoleVerifier
	eventCaller        notification.EventCaller
}

func NewCompetitionDomain(
	competitionRepo repository.CompetitionRepository,
	sessionRepo repository.WritingSessionRepository,
	userRepo repository.UserRepository,
	eventCaller notification.EventCaller,
) *competitionDomain {
	return &competitionDomain{
		competitionRepo:    competitionRepo,
		sessionRepo:        sessionRepo,
		userRepo:           userRepo,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
		eventCaller:        eventCaller,
	}
}

func (d *competitionDomain) Create(
	ctx context.Context, req *model.CreateCompetitionRequest,
) (*model.CreateCompetitionResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	competitionType, err := enum.ToEnum[entity.CompetitionType](req.Type)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid competition type %s", req.Type)
	}

	if req.Target <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Target must be positive")
	}

	if req.DurationDays <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Duration must be positive")
	}

	startDate := time.Now()
	if req.StartDate > 0 {
		startDate = time.UnixMilli(req.StartDate)
	}

	endDate := startDate.AddDate(0, 0, req.DurationDays)
	if endDate.Before(time.Now()) {
		return nil, errorx.New(errorx.BadRequest, "End date must be in the future")
	}

	userID := xcontext.RequestUserID(ctx)
	competition := &entity.Competition{
		Base:        entity.Base{ID: uuid.NewString()},
		CreatedBy:   userID,
		Title:       req.Title,
		Description: req.Description,
		Type:        competitionType,
		Target:      req.Target,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      entity.CompetitionStatusActive,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.competitionRepo.Create(ctx, competition); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create competition: %v", err)
		return nil, errorx.Unknown
	}

	// The creator takes part automatically.
	err = d.competitionRepo.Join(ctx, &entity.CompetitionParticipant{
		CompetitionID: competition.ID,
		UserID:        userID,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot join creator to competition: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	clientCompetition := model.ConvertCompetition(competition, 1, true)
	ev := event.New(
		&event.CompetitionCreatedEvent{Competition: clientCompetition},
		event.Metadata{Broadcast: true},
	)
	if err := d.eventCaller.Emit(ctx, ev); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot emit competition created event: %v", err)
	}

	return &model.CreateCompetitionResponse{Competition: clientCompetition}, nil
}

func (d *competitionDomain) GetList(
	ctx context.Context, req *model.GetCompetitionsRequest,
) (*model.GetCompetitionsResponse, error) {
	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	filter := repository.CompetitionFilter{Offset: req.Offset, Limit: req.Limit}
	if req.Status != "" {
		status, err := enum.ToEnum[entity.CompetitionStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}

		filter.Status = status
	}

	competitions, err := d.competitionRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get competitions: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	joined, err := d.competitionRepo.GetJoined(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get joined competitions: %v", err)
		return nil, errorx.Unknown
	}

	joinedIDs := []string{}
	for _, p := range joined {
		joinedIDs = append(joinedIDs, p.CompetitionID)
	}

	clientCompetitions := []model.Competition{}
	for i := range competitions {
		participants, err := d.competitionRepo.GetParticipants(ctx, competitions[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get participants: %v", err)
			return nil, errorx.Unknown
		}

		clientCompetitions = append(clientCompetitions, model.ConvertCompetition(
			&competitions[i],
			len(participants),
			slices.Contains(joinedIDs, competitions[i].ID),
		))
	}

	return &model.GetCompetitionsResponse{Competitions: clientCompetitions}, nil
}

func (d *competitionDomain) Join(
	ctx context.Context, req *model.JoinCompetitionRequest,
) (*model.JoinCompetitionResponse, error) {
	competition, err := d.getCompetition(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if competition.Status != entity.CompetitionStatusActive {
		return nil, errorx.New(errorx.Unavailable, "This competition is already finished")
	}

	userID := xcontext.RequestUserID(ctx)

	// Joining is idempotent, a second join changes nothing.
	err = d.competitionRepo.Join(ctx, &entity.CompetitionParticipant{
		CompetitionID: competition.ID,
		UserID:        userID,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot join competition: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	ev := event.New(
		&event.CompetitionJoinedEvent{
			CompetitionID: competition.ID,
			User:          model.ConvertUser(user, false),
		},
		event.Metadata{Broadcast: true},
	)
	if err := d.eventCaller.Emit(ctx, ev); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot emit competition joined event: %v", err)
	}

	return &model.JoinCompetitionResponse{}, nil
}

func (d *competitionDomain) Delete(
	ctx context.Context, req *model.DeleteCompetitionRequest,
) (*model.DeleteCompetitionResponse, error) {
	competition, err := d.getCompetition(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	if competition.CreatedBy != userID {
		if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
			xcontext.Logger(ctx).Debugf("Permission denied when deleting competition: %v", err)
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}
	}

	if err := d.competitionRepo.DeleteByID(ctx, competition.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete competition: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCompetitionResponse{}, nil
}

func (d *competitionDomain) GetProgress(
	ctx context.Context, req *model.GetCompetitionProgressRequest,
) (*model.GetCompetitionProgressResponse, error) {
	competition, err := d.getCompetition(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	participants, err := d.competitionRepo.GetParticipants(ctx, competition.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participants: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := []string{}
	for _, p := range participants {
		userIDs = append(userIDs, p.UserID)
	}

	userMap := map[string]entity.User{}
	if len(userIDs) > 0 {
		users, err := d.userRepo.GetByIDs(ctx, userIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
			return nil, errorx.Unknown
		}

		for _, u := range users {
			userMap[u.ID] = u
		}
	}

	window := progress.Window{Start: competition.StartDate, End: competition.EndDate}
	currents := make([]int, len(userIDs))

	eg, egCtx := errgroup.WithContext(ctx)
	for i := range userIDs {
		i := i
		eg.Go(func() error {
			sessions, err := d.sessionRepo.GetInWindow(
				egCtx, userIDs[i], competition.StartDate, competition.EndDate)
			if err != nil {
				return err
			}

			currents[i] = progress.Current(competition.Type, sessions, window)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load participant sessions: %v", err)
		return nil, errorx.Unknown
	}

	standings := []model.CompetitionStanding{}
	for i, userID := range userIDs {
		u := userMap[userID]
		standings = append(standings, model.CompetitionStanding{
			UserID:   userID,
			Name:     u.Name,
			Current:  currents[i],
			Percent:  progress.Percent(currents[i], competition.Target),
			Finished: currents[i] >= competition.Target,
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Current > standings[j].Current
	})

	return &model.GetCompetitionProgressResponse{Standings: standings}, nil
}

func (d *competitionDomain) getCompetition(ctx context.Context, id string) (*entity.Competition, error) {
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty competition id")
	}

	competition, err := d.competitionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found competition")
		}

		xcontext.Logger(ctx).Errorf("Cannot get competition: %v", err)
		return nil, errorx.Unknown
	}

	return competition, nil
}
