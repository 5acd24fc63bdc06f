package event

type Event interface {
	Op() string
}

// Metadata routes an event to its audience. Exactly one field is set: ToUsers
// lists user ids getting a direct copy, ToGuild fans out to every connected
// member of the guild, and Broadcast reaches every connected client.
type Metadata struct {
	ToUsers   []string `json:"to_users,omitempty"`
	ToGuild   string   `json:"to_guild,omitempty"`
	Broadcast bool     `json:"broadcast,omitempty"`
}

type EventRequest struct {
	Op       string   `json:"o"`
	Data     any      `json:"d"`
	Metadata Metadata `json:"m"`
}

type EventResponse struct {
	Op   string `json:"o"`
	Seq  int64  `json:"s"`
	Data any    `json:"d"`
}

func New(ev Event, metadata Metadata) *EventRequest {
	return &EventRequest{
		Op:       ev.Op(),
		Data:     ev,
		Metadata: metadata,
	}
}

func Format(event *EventRequest, seq int64) *EventResponse {
	return &EventResponse{
		Op:   event.Op,
		Seq:  seq,
		Data: event.Data,
	}
}
