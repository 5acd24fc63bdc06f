package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/parnaso/backend/internal/domain/notification"
	"github.com/parnaso/backend/internal/domain/notification/event"
	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FriendshipDomain interface {
	SendRequest(context.Context, *model.SendFriendRequestRequest) (*model.SendFriendRequestResponse, error)
	AcceptRequest(context.Context, *model.AcceptFriendRequestRequest) (*model.AcceptFriendRequestResponse, error)
	DeclineRequest(context.Context, *model.DeclineFriendRequestRequest) (*model.DeclineFriendRequestResponse, error)
	RemoveFriend(context.Context, *model.RemoveFriendRequest) (*model.RemoveFriendResponse, error)
	GetMyFriends(context.Context, *model.GetMyFriendsRequest) (*model.GetMyFriendsResponse, error)
	GetRequests(context.Context, *model.GetFriendRequestsRequest) (*model.GetFriendRequestsResponse, error)
	GetAvailableUsers(context.Context, *model.GetAvailableUsersRequest) (*model.GetAvailableUsersResponse, error)
}

type friendshipDomain struct {
	friendshipRepo repository.FriendshipRepository
	userRepo       repository.UserRepository
	eventCaller    notification.EventCaller
}

func NewFriendshipDomain(
	friendshipRepo repository.FriendshipRepository,
	userRepo repository.UserRepository,
	eventCaller notification.EventCaller,
) *friendshipDomain {
	return &friendshipDomain{
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		eventCaller:    eventCaller,
	}
}

func (d *friendshipDomain) SendRequest(
	ctx context.Context, req *model.SendFriendRequestRequest,
) (*model.SendFriendRequestResponse, error) {
	requesterID := xcontext.RequestUserID(ctx)
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	if req.UserID == requesterID {
		return nil, errorx.New(errorx.BadRequest, "Cannot send a friend request to yourself")
	}

	receiver, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	// At most one friendship row per pair, in either direction and any state.
	_, err = d.friendshipRepo.GetByPair(ctx, requesterID, receiver.ID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "A friendship or pending request already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get friendship pair: %v", err)
		return nil, errorx.Unknown
	}

	friendship := &entity.Friendship{
		Base:        entity.Base{ID: uuid.NewString()},
		RequesterID: requesterID,
		ReceiverID:  receiver.ID,
		Status:      entity.FriendshipStatusPending,
	}

	if err := d.friendshipRepo.Create(ctx, friendship); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create friendship: %v", err)
		return nil, errorx.Unknown
	}

	requester, err := d.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get requester: %v", err)
		return nil, errorx.Unknown
	}

	ev := event.New(
		&event.FriendRequestCreatedEvent{Request: model.FriendRequest{
			ID:        friendship.ID,
			User:      model.ConvertUser(requester, false),
			CreatedAt: friendship.CreatedAt.Format(model.DefaultTimeLayout),
		}},
		event.Metadata{ToUsers: []string{receiver.ID}},
	)
	if err := d.eventCaller.Emit(ctx, ev); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot emit friend request event: %v", err)
	}

	return &model.SendFriendRequestResponse{}, nil
}

func (d *friendshipDomain) AcceptRequest(
	ctx context.Context, req *model.AcceptFriendRequestRequest,
) (*model.AcceptFriendRequestResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	friendship, err := d.getFriendship(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	// Only the receiver can accept, enforced again by the conditional
	// update below.
	if friendship.ReceiverID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the receiver can accept a request")
	}

	if err := d.friendshipRepo.Accept(ctx, friendship.ID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unavailable, "This request is no longer pending")
		}

		xcontext.Logger(ctx).Errorf("Cannot accept friendship: %v", err)
		return nil, errorx.Unknown
	}

	me, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	ev := event.New(
		&event.FriendRequestAcceptedEvent{Friend: model.ConvertUser(me, false)},
		event.Metadata{ToUsers: []string{friendship.RequesterID}},
	)
	if err := d.eventCaller.Emit(ctx, ev); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot emit accept event: %v", err)
	}

	return &model.AcceptFriendRequestResponse{}, nil
}

// DeclineRequest deletes the row entirely, so the pair can try again later.
func (d *friendshipDomain) DeclineRequest(
	ctx context.Context, req *model.DeclineFriendRequestRequest,
) (*model.DeclineFriendRequestResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	friendship, err := d.getFriendship(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if friendship.ReceiverID != userID && friendship.RequesterID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Not your friend request")
	}

	if friendship.Status != entity.FriendshipStatusPending {
		return nil, errorx.New(errorx.Unavailable, "This request is no longer pending")
	}

	if err := d.friendshipRepo.DeleteByID(ctx, friendship.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete friendship: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeclineFriendRequestResponse{}, nil
}

func (d *friendshipDomain) RemoveFriend(
	ctx context.Context, req *model.RemoveFriendRequest,
) (*model.RemoveFriendResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	friendship, err := d.friendshipRepo.GetByPair(ctx, userID, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "You are not friends with this user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get friendship pair: %v", err)
		return nil, errorx.Unknown
	}

	if friendship.Status != entity.FriendshipStatusAccepted {
		return nil, errorx.New(errorx.Unavailable, "You are not friends with this user")
	}

	if err := d.friendshipRepo.DeleteByID(ctx, friendship.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete friendship: %v", err)
		return nil, errorx.Unknown
	}

	ev := event.New(
		&event.FriendRemovedEvent{UserID: userID},
		event.Metadata{ToUsers: []string{req.UserID}},
	)
	if err := d.eventCaller.Emit(ctx, ev); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot emit remove event: %v", err)
	}

	return &model.RemoveFriendResponse{}, nil
}

func (d *friendshipDomain) GetMyFriends(
	ctx context.Context, req *model.GetMyFriendsRequest,
) (*model.GetMyFriendsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	friendships, err := d.friendshipRepo.GetFriends(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get friendships: %v", err)
		return nil, errorx.Unknown
	}

	friendIDs := []string{}
	for _, f := range friendships {
		if f.RequesterID == userID {
			friendIDs = append(friendIDs, f.ReceiverID)
		} else {
			friendIDs = append(friendIDs, f.RequesterID)
		}
	}

	friends := []model.User{}
	if len(friendIDs) > 0 {
		users, err := d.userRepo.GetByIDs(ctx, friendIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
			return nil, errorx.Unknown
		}

		for i := range users {
			friends = append(friends, model.ConvertUser(&users[i], false))
		}
	}

	return &model.GetMyFriendsResponse{Friends: friends}, nil
}

func (d *friendshipDomain) GetRequests(
	ctx context.Context, req *model.GetFriendRequestsRequest,
) (*model.GetFriendRequestsResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	received, err := d.friendshipRepo.GetPendingReceived(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get received requests: %v", err)
		return nil, errorx.Unknown
	}

	sent, err := d.friendshipRepo.GetPendingSent(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get sent requests: %v", err)
		return nil, errorx.Unknown
	}

	clientReceived, err := d.convertRequests(ctx, received, false)
	if err != nil {
		return nil, err
	}

	clientSent, err := d.convertRequests(ctx, sent, true)
	if err != nil {
		return nil, err
	}

	return &model.GetFriendRequestsResponse{
		Received: clientReceived,
		Sent:     clientSent,
	}, nil
}

func (d *friendshipDomain) GetAvailableUsers(
	ctx context.Context, req *model.GetAvailableUsersRequest,
) (*model.GetAvailableUsersResponse, error) {
	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	users, err := d.friendshipRepo.GetAvailableUsers(ctx, repository.AvailableUserFilter{
		UserID: xcontext.RequestUserID(ctx),
		Q:      req.Q,
		Offset: req.Offset,
		Limit:  req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get available users: %v", err)
		return nil, errorx.Unknown
	}

	clientUsers := []model.User{}
	for i := range users {
		clientUsers = append(clientUsers, model.ConvertUser(&users[i], false))
	}

	return &model.GetAvailableUsersResponse{Users: clientUsers}, nil
}

func (d *friendshipDomain) getFriendship(ctx context.Context, id string) (*entity.Friendship, error) {
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty request id")
	}

	friendship, err := d.friendshipRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found friend request")
		}

		xcontext.Logger(ctx).Errorf("Cannot get friendship: %v", err)
		return nil, errorx.Unknown
	}

	return friendship, nil
}

func (d *friendshipDomain) convertRequests(
	ctx context.Context, friendships []entity.Friendship, sent bool,
) ([]model.FriendRequest, error) {
	counterpartIDs := []string{}
	for _, f := range friendships {
		if sent {
			counterpartIDs = append(counterpartIDs, f.ReceiverID)
		} else {
			counterpartIDs = append(counterpartIDs, f.RequesterID)
		}
	}

	userMap := map[string]entity.User{}
	if len(counterpartIDs) > 0 {
		users, err := d.userRepo.GetByIDs(ctx, counterpartIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
			return nil, errorx.Unknown
		}

		for _, u := range users {
			userMap[u.ID] = u
		}
	}

	requests := []model.FriendRequest{}
	for _, f := range friendships {
		counterpartID := f.RequesterID
		if sent {
			counterpartID = f.ReceiverID
		}

		counterpart := userMap[counterpartID]
		requests = append(requests, model.FriendRequest{
			ID:        f.ID,
			User:      model.ConvertUser(&counterpart, false),
			CreatedAt: f.CreatedAt.Format(model.DefaultTimeLayout),
		})
	}

	return requests, nil
}
