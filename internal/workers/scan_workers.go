// Package workers runs the asynchronous scan recording pipeline.
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	customerrors "github.com/axellelanca/qrlinks/internal/errors"
	"github.com/axellelanca/qrlinks/internal/metrics"
	"github.com/axellelanca/qrlinks/internal/models"
	"github.com/axellelanca/qrlinks/internal/useragent"
)

// ScanWriter appends scan events.
type ScanWriter interface {
	CreateScan(ctx context.Context, scan *models.ScanEvent) error
}

// ScanCounter bumps the denormalised per-link scan counter.
type ScanCounter interface {
	IncrementScanCount(ctx context.Context, linkID string) error
}

// ScanRecorder is a fixed pool of workers fed by a buffered channel.
// Submit never blocks: when the buffer is full the event is dropped.
type ScanRecorder struct {
	events       chan models.ScanEventInput
	scans        ScanWriter
	counter      ScanCounter
	writeTimeout time.Duration
	log          zerolog.Logger

	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// NewScanRecorder creates the recorder and starts workerCount workers.
func NewScanRecorder(bufferSize, workerCount int, writeTimeout time.Duration, scans ScanWriter, counter ScanCounter, log zerolog.Logger) *ScanRecorder {
	if workerCount < 1 {
		workerCount = 1
	}
	if bufferSize < 0 {
		bufferSize = 0
	}
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}

	r := &ScanRecorder{
		events:       make(chan models.ScanEventInput, bufferSize),
		scans:        scans,
		counter:      counter,
		writeTimeout: writeTimeout,
		log:          log.With().Str("component", "scan-recorder").Logger(),
	}

	r.log.Info().Int("workers", workerCount).Int("buffer", bufferSize).Msg("starting scan workers")
	for i := 0; i < workerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
	return r
}

// Submit enqueues an event. It reports false when the event was dropped.
func (r *ScanRecorder) Submit(event models.ScanEventInput) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		metrics.ScansDropped.WithLabelValues("closed").Inc()
		return false
	}

	select {
	case r.events <- event:
		return true
	default:
		metrics.ScansDropped.WithLabelValues("buffer_full").Inc()
		r.log.Warn().Str("link_id", event.LinkID).Msg("scan buffer full, event dropped")
		return false
	}
}

// Close stops accepting events and waits for the workers to drain the buffer.
// If ctx expires first the remaining events are abandoned.
func (r *ScanRecorder) Close(ctx context.Context) error {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		close(r.events)
		r.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *ScanRecorder) worker(id int) {
	defer r.wg.Done()
	for event := range r.events {
		r.record(event)
	}
	r.log.Debug().Int("worker", id).Msg("scan worker stopped")
}

// record writes one event and bumps the counter. Failures are logged and dropped.
func (r *ScanRecorder) record(event models.ScanEventInput) {
	class := useragent.Classify(event.UserAgent)
	scan := &models.ScanEvent{
		LinkID:       event.LinkID,
		Timestamp:    event.Timestamp,
		ClientIP:     event.ClientIP,
		UserAgentRaw: event.UserAgent,
		Referer:      event.Referer,
		Country:      event.Country,
		City:         event.City,
		Device:       class.Device,
		Browser:      class.Browser,
		OS:           class.OS,
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
	defer cancel()

	if err := r.scans.CreateScan(ctx, scan); err != nil {
		r.fail(&customerrors.ScanRecordingError{LinkID: event.LinkID, Stage: "insert", Err: err})
		return
	}
	metrics.ScansRecorded.Inc()

	if err := r.counter.IncrementScanCount(ctx, event.LinkID); err != nil {
		r.fail(&customerrors.ScanRecordingError{LinkID: event.LinkID, Stage: "increment", Err: err})
	}
}

func (r *ScanRecorder) fail(err *customerrors.ScanRecordingError) {
	metrics.ScansDropped.WithLabelValues(err.Stage + "_failed").Inc()
	r.log.Error().Err(err).Str("link_id", err.LinkID).Str("stage", err.Stage).Msg("scan recording failed")
}
