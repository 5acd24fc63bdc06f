package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/parnaso/backend/internal/domain/notification"
	"github.com/parnaso/backend/internal/domain/notification/event"
	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const maxMessageLength = 4000

type ChatDomain interface {
	SendMessage(context.Context, *model.SendMessageRequest) (*model.SendMessageResponse, error)
	GetDirectMessages(context.Context, *model.GetDirectMessagesRequest) (*model.GetDirectMessagesResponse, error)
	GetGuildMessages(context.Context, *model.GetGuildMessagesRequest) (*model.GetGuildMessagesResponse, error)
	MarkRead(context.Context, *model.MarkMessagesReadRequest) (*model.MarkMessagesReadResponse, error)
	CountUnread(context.Context, *model.CountUnreadMessagesRequest) (*model.CountUnreadMessagesResponse, error)
}

type chatDomain struct {
	messageRepo    repository.MessageRepository
	friendshipRepo repository.FriendshipRepository
	guildRepo      repository.GuildRepository
	eventCaller    notification.EventCaller
}

func NewChatDomain(
	messageRepo repository.MessageRepository,
	friendshipRepo repository.FriendshipRepository,
	guildRepo repository.GuildRepository,
	eventCaller notification.EventCaller,
) *chatDomain {
	return &chatDomain{
		messageRepo:    messageRepo,
		friendshipRepo: friendshipRepo,
		guildRepo:      guildRepo,
		eventCaller:    eventCaller,
	}
}

func (d *chatDomain) SendMessage(
	ctx context.Context, req *model.SendMessageRequest,
) (*model.SendMessageResponse, error) {
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty content")
	}

	if len(req.Content) > maxMessageLength {
		return nil, errorx.New(errorx.BadRequest, "Content is too long")
	}

	// A message goes either to a user or to a guild, never both.
	if (req.ReceiverID == "") == (req.GuildID == "") {
		return nil, errorx.New(errorx.BadRequest, "Require exactly one of receiver id and guild id")
	}

	userID := xcontext.RequestUserID(ctx)
	message := &entity.Message{
		ID:        xcontext.SnowFlake(ctx).Generate().Int64(),
		SenderID:  userID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	var metadata event.Metadata
	if req.ReceiverID != "" {
		if err := d.checkFriendship(ctx, userID, req.ReceiverID); err != nil {
			return nil, err
		}

		message.ReceiverID = sql.NullString{Valid: true, String: req.ReceiverID}
		metadata = event.Metadata{ToUsers: []string{req.ReceiverID}}
	} else {
		if err := d.checkMembership(ctx, req.GuildID, userID); err != nil {
			return nil, err
		}

		message.GuildID = sql.NullString{Valid: true, String: req.GuildID}
		metadata = event.Metadata{ToGuild: req.GuildID}
	}

	if err := d.messageRepo.Create(ctx, message); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create message: %v", err)
		return nil, errorx.Unknown
	}

	clientMessage := model.ConvertMessage(message)
	ev := event.New((*event.MessageCreatedEvent)(&clientMessage), metadata)
	if err := d.eventCaller.Emit(ctx, ev); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot emit message created event: %v", err)
	}

	return &model.SendMessageResponse{Message: clientMessage}, nil
}

func (d *chatDomain) GetDirectMessages(
	ctx context.Context, req *model.GetDirectMessagesRequest,
) (*model.GetDirectMessagesResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	userID := xcontext.RequestUserID(ctx)
	messages, err := d.messageRepo.GetDirect(ctx, userID, req.UserID, req.Before, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get direct messages: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetDirectMessagesResponse{Messages: convertMessages(messages)}, nil
}

func (d *chatDomain) GetGuildMessages(
	ctx context.Context, req *model.GetGuildMessagesRequest,
) (*model.GetGuildMessagesResponse, error) {
	if req.GuildID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty guild id")
	}

	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	userID := xcontext.RequestUserID(ctx)
	if err := d.checkMembership(ctx, req.GuildID, userID); err != nil {
		return nil, err
	}

	messages, err := d.messageRepo.GetByGuild(ctx, req.GuildID, req.Before, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get guild messages: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetGuildMessagesResponse{Messages: convertMessages(messages)}, nil
}

func (d *chatDomain) MarkRead(
	ctx context.Context, req *model.MarkMessagesReadRequest,
) (*model.MarkMessagesReadResponse, error) {
	if req.SenderID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty sender id")
	}

	userID := xcontext.RequestUserID(ctx)
	if err := d.messageRepo.MarkRead(ctx, userID, req.SenderID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark messages read: %v", err)
		return nil, errorx.Unknown
	}

	ev := event.New(
		&event.MessagesReadEvent{ReaderID: userID},
		event.Metadata{ToUsers: []string{req.SenderID}},
	)
	if err := d.eventCaller.Emit(ctx, ev); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot emit messages read event: %v", err)
	}

	return &model.MarkMessagesReadResponse{}, nil
}

func (d *chatDomain) CountUnread(
	ctx context.Context, req *model.CountUnreadMessagesRequest,
) (*model.CountUnreadMessagesResponse, error) {
	unread, err := d.messageRepo.CountUnread(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread messages: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CountUnreadMessagesResponse{Unread: unread}, nil
}

// checkFriendship allows direct messages between accepted friends only.
func (d *chatDomain) checkFriendship(ctx context.Context, userID, otherID string) error {
	friendship, err := d.friendshipRepo.GetByPair(ctx, userID, otherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.PermissionDenied, "You can only message your friends")
		}

		xcontext.Logger(ctx).Errorf("Cannot get friendship pair: %v", err)
		return errorx.Unknown
	}

	if friendship.Status != entity.FriendshipStatusAccepted {
		return errorx.New(errorx.PermissionDenied, "You can only message your friends")
	}

	return nil
}

func (d *chatDomain) checkMembership(ctx context.Context, guildID, userID string) error {
	_, err := d.guildRepo.GetMember(ctx, guildID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.PermissionDenied, "You are not a member of this guild")
		}

		xcontext.Logger(ctx).Errorf("Cannot get member: %v", err)
		return errorx.Unknown
	}

	return nil
}

func convertMessages(messages []entity.Message) []model.Message {
	result := []model.Message{}
	for i := range messages {
		result = append(result, model.ConvertMessage(&messages[i]))
	}

	return result
}
