package http

import "time"

// messageThrottle caps inbound frames per connection per minute. It is used
// from a single read loop, so no locking.
type messageThrottle struct {
	limit   int
	counter int
	reset   *time.Ticker
}

func newMessageThrottle(limit int) *messageThrottle {
	if limit <= 0 {
		return &messageThrottle{}
	}
	return &messageThrottle{
		limit: limit,
		reset: time.NewTicker(time.Minute),
	}
}

func (m *messageThrottle) allow() bool {
	if m.limit <= 0 {
		return true
	}
	select {
	case <-m.reset.C:
		m.counter = 0
	default:
	}
	m.counter++
	return m.counter <= m.limit
}

func (m *messageThrottle) stop() {
	if m.reset != nil {
		m.reset.Stop()
	}
}
