// Package monitor periodically checks that link destinations still answer.
package monitor

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/axellelanca/qrlinks/internal/metrics"
	"github.com/axellelanca/qrlinks/internal/models"
)

// ActiveLinkLister returns the links whose destinations are worth checking.
type ActiveLinkLister interface {
	ListActiveLinks(ctx context.Context) ([]models.Link, error)
}

// Transition is a change of reachability observed between two checks.
type Transition struct {
	Code        string
	Destination string
	Reachable   bool
}

// DestinationMonitor remembers the last known state of each destination
// and logs when it flips.
type DestinationMonitor struct {
	links       ActiveLinkLister
	interval    time.Duration
	httpClient  *http.Client
	log         zerolog.Logger
	mu          sync.Mutex
	knownStates map[string]bool // link ID -> reachable
}

// NewDestinationMonitor creates a monitor checking every interval.
func NewDestinationMonitor(links ActiveLinkLister, interval time.Duration, log zerolog.Logger) *DestinationMonitor {
	return &DestinationMonitor{
		links:       links,
		interval:    interval,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		log:         log.With().Str("component", "monitor").Logger(),
		knownStates: make(map[string]bool),
	}
}

// Run checks immediately and then on every tick until ctx is cancelled.
func (m *DestinationMonitor) Run(ctx context.Context) error {
	m.log.Info().Dur("interval", m.interval).Msg("starting destination monitor")
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("destination monitor stopped")
			return nil
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check requests every active destination once and returns the state changes.
// The first observation of a link is recorded but is not a transition.
func (m *DestinationMonitor) Check(ctx context.Context) []Transition {
	links, err := m.links.ListActiveLinks(ctx)
	if err != nil {
		m.log.Error().Err(err).Msg("failed to list links for monitoring")
		return nil
	}

	var changes []Transition
	unreachable := 0
	for _, link := range links {
		current := m.reachable(ctx, link.Destination)
		if !current {
			unreachable++
		}

		m.mu.Lock()
		previous, seen := m.knownStates[link.ID]
		m.knownStates[link.ID] = current
		m.mu.Unlock()

		if !seen {
			m.log.Debug().Str("code", link.Code).Str("destination", link.Destination).
				Str("state", formatState(current)).Msg("initial destination state")
			continue
		}
		if current != previous {
			m.log.Warn().Str("code", link.Code).Str("destination", link.Destination).
				Str("from", formatState(previous)).Str("to", formatState(current)).
				Msg("destination state changed")
			changes = append(changes, Transition{Code: link.Code, Destination: link.Destination, Reachable: current})
		}
	}
	metrics.DestinationsUnreachable.Set(float64(unreachable))
	return changes
}

// reachable sends a HEAD request; 2xx and 3xx count as reachable.
func (m *DestinationMonitor) reachable(ctx context.Context, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		m.log.Debug().Err(err).Str("destination", url).Msg("invalid destination request")
		return false
	}
	resp, err := m.httpClient.Do(req)
	if err != nil {
		m.log.Debug().Err(err).Str("destination", url).Msg("destination unreachable")
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}

func formatState(reachable bool) string {
	if reachable {
		return "REACHABLE"
	}
	return "UNREACHABLE"
}
