package notification

import (
	"context"
	"encoding/json"

	"github.com/parnaso/backend/internal/domain/notification/event"
	"github.com/parnaso/backend/pkg/pubsub"
	"github.com/parnaso/backend/pkg/xcontext"
)

// EventCaller is how api handlers emit notification events. Events travel
// through the message broker so any proxy instance can deliver them.
type EventCaller interface {
	Emit(ctx context.Context, ev *event.EventRequest) error
}

type eventCaller struct {
	publisher pubsub.Publisher
}

func NewEventCaller(publisher pubsub.Publisher) *eventCaller {
	return &eventCaller{publisher: publisher}
}

func (c *eventCaller) Emit(ctx context.Context, ev *event.EventRequest) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	topic := xcontext.Configs(ctx).Kafka.Topic
	return c.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(ev.Op), Msg: b})
}
