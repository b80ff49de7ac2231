package console

import (
	"context"
	"sync"
	"time"
)

type ConnState int

const (
	ConnUnknown ConnState = iota
	ConnConnected
	ConnDisconnected
)

func (s ConnState) String() string {
	switch s {
	case ConnConnected:
		return "connected"
	case ConnDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Monitor periodically probes the backend's health endpoint and exposes the
// result as state. Probe failures are swallowed: a timeout or refused
// connection is just the disconnected state, never an error to the caller.
// There is no retry within a probe; the next tick is the retry.
type Monitor struct {
	client       *Client
	interval     time.Duration
	probeTimeout time.Duration

	mu       sync.Mutex
	state    ConnState
	onChange func(ConnState)
}

func NewMonitor(client *Client) *Monitor {
	return &Monitor{
		client:       client,
		interval:     5 * time.Second,
		probeTimeout: 1500 * time.Millisecond,
		state:        ConnUnknown,
	}
}

// OnChange registers a callback fired whenever the state flips. Set it
// before Run; the callback runs on the monitor goroutine.
func (m *Monitor) OnChange(fn func(ConnState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

func (m *Monitor) State() ConnState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Check runs one on-demand probe and returns the resulting state. Fail
// closed: any error, including a slow response, counts as disconnected.
func (m *Monitor) Check(ctx context.Context) ConnState {
	probeCtx, cancel := context.WithTimeout(ctx, m.probeTimeout)
	defer cancel()

	next := ConnConnected
	if err := m.client.Health(probeCtx); err != nil {
		next = ConnDisconnected
	}

	m.mu.Lock()
	changed := next != m.state
	m.state = next
	fn := m.onChange
	m.mu.Unlock()

	if changed && fn != nil {
		fn(next)
	}
	return next
}

// Run probes immediately and then on every tick until ctx is cancelled.
// The ticker is released on return, so closing the console cannot leak it.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
