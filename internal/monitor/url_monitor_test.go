package monitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axellelanca/qrlinks/internal/models"
)

type staticLinks []models.Link

func (s staticLinks) ListActiveLinks(context.Context) ([]models.Link, error) {
	return s, nil
}

func TestDestinationMonitor_ReportsTransitions(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		if healthy.Load() {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	links := staticLinks{{ID: "id-1", Code: "Watched2", Destination: srv.URL}}
	m := NewDestinationMonitor(links, time.Minute, zerolog.Nop())

	assert.Empty(t, m.Check(context.Background()), "first observation is not a transition")
	assert.Empty(t, m.Check(context.Background()))

	healthy.Store(false)
	changes := m.Check(context.Background())
	require.Len(t, changes, 1)
	assert.Equal(t, Transition{Code: "Watched2", Destination: srv.URL, Reachable: false}, changes[0])

	healthy.Store(true)
	changes = m.Check(context.Background())
	require.Len(t, changes, 1)
	assert.True(t, changes[0].Reachable)
}

func TestDestinationMonitor_RunStopsOnCancel(t *testing.T) {
	m := NewDestinationMonitor(staticLinks{}, 10*time.Millisecond, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
}
