package console

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestMonitorStartsUnknown(t *testing.T) {
	m := NewMonitor(NewClient("http://127.0.0.1:0/api"))
	assert.Equal(t, ConnUnknown, m.State())
}

func TestMonitorConnected(t *testing.T) {
	srv := healthServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"healthy"}`))
	})

	m := NewMonitor(NewClient(srv.URL + "/api"))
	assert.Equal(t, ConnConnected, m.Check(context.Background()))
	assert.Equal(t, ConnConnected, m.State())
}

func TestMonitorDisconnectedOnRefusedConnection(t *testing.T) {
	srv := healthServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	m := NewMonitor(NewClient(srv.URL + "/api"))
	assert.Equal(t, ConnDisconnected, m.Check(context.Background()))
}

func TestMonitorDisconnectedOnServerError(t *testing.T) {
	srv := healthServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	m := NewMonitor(NewClient(srv.URL + "/api"))
	assert.Equal(t, ConnDisconnected, m.Check(context.Background()))
}

func TestMonitorTimeoutFailsClosed(t *testing.T) {
	srv := healthServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	m := NewMonitor(NewClient(srv.URL + "/api"))
	m.probeTimeout = 20 * time.Millisecond

	assert.Equal(t, ConnDisconnected, m.Check(context.Background()))
}

func TestMonitorOnChangeFiresOnTransitions(t *testing.T) {
	healthy := true
	var mu sync.Mutex
	srv := healthServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	})

	m := NewMonitor(NewClient(srv.URL + "/api"))

	var transitions []ConnState
	m.OnChange(func(s ConnState) { transitions = append(transitions, s) })

	ctx := context.Background()
	m.Check(ctx) // unknown -> connected
	m.Check(ctx) // connected, no change

	mu.Lock()
	healthy = false
	mu.Unlock()
	m.Check(ctx) // connected -> disconnected

	mu.Lock()
	healthy = true
	mu.Unlock()
	m.Check(ctx) // disconnected -> connected

	require.Equal(t, []ConnState{ConnConnected, ConnDisconnected, ConnConnected}, transitions)
}

func TestMonitorRunStopsWithContext(t *testing.T) {
	srv := healthServer(t, func(w http.ResponseWriter, r *http.Request) {})

	m := NewMonitor(NewClient(srv.URL + "/api"))
	m.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	// Let it probe at least once, then cancel.
	assert.Eventually(t, func() bool { return m.State() == ConnConnected },
		time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
