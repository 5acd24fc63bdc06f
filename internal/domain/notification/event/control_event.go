package event

// PingEvent keeps the connection alive. Dropped tells the client how many
// events this session lost to backpressure since it connected; a nonzero
// value means the client should refetch instead of trusting its local state.
type PingEvent struct {
	Dropped int64 `json:"dropped"`
}

func (*PingEvent) Op() string {
	return "ping"
}

// ReadyEvent is the first event on a fresh connection. It announces the
// reconnect backoff in milliseconds; clients falling back to polling should
// respect the same delays.
type ReadyEvent struct {
	Seq            int64 `json:"seq"`
	RetryBaseDelay int64 `json:"retry_base_delay"`
	RetryMaxDelay  int64 `json:"retry_max_delay"`
}

func (*ReadyEvent) Op() string {
	return "ready"
}
