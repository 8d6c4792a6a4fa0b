package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axellelanca/qrlinks/internal/models"
	"github.com/axellelanca/qrlinks/internal/repository"
	"github.com/axellelanca/qrlinks/internal/testutil"
	"github.com/axellelanca/qrlinks/internal/useragent"
)

type fakeStore struct {
	mu         sync.Mutex
	scans      []models.ScanEvent
	increments map[string]int
	insertErr  error
	block      chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{increments: map[string]int{}}
}

func (f *fakeStore) CreateScan(_ context.Context, scan *models.ScanEvent) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.scans = append(f.scans, *scan)
	return nil
}

func (f *fakeStore) IncrementScanCount(_ context.Context, linkID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.increments[linkID]++
	return nil
}

func (f *fakeStore) snapshot() ([]models.ScanEvent, map[string]int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inc := make(map[string]int, len(f.increments))
	for k, v := range f.increments {
		inc[k] = v
	}
	return append([]models.ScanEvent(nil), f.scans...), inc
}

const iphoneUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

func TestScanRecorder_RecordsClassifiedEvent(t *testing.T) {
	store := newFakeStore()
	rec := NewScanRecorder(10, 2, time.Second, store, store, zerolog.Nop())

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.True(t, rec.Submit(models.ScanEventInput{
		LinkID:    "link-1",
		Timestamp: ts,
		ClientIP:  "203.0.113.7",
		UserAgent: iphoneUA,
		Referer:   "https://news.example.com",
		Country:   "FR",
		City:      "Lyon",
	}))
	require.NoError(t, rec.Close(context.Background()))

	scans, inc := store.snapshot()
	require.Len(t, scans, 1)
	got := scans[0]
	assert.Equal(t, "link-1", got.LinkID)
	assert.Equal(t, ts, got.Timestamp)
	assert.Equal(t, useragent.DeviceMobile, got.Device)
	assert.Equal(t, useragent.BrowserSafari, got.Browser)
	assert.Equal(t, useragent.OSIOS, got.OS)
	assert.Equal(t, iphoneUA, got.UserAgentRaw)
	assert.Equal(t, "FR", got.Country)
	assert.Equal(t, 1, inc["link-1"])
}

func TestScanRecorder_DropsWhenBufferFull(t *testing.T) {
	store := newFakeStore()
	store.block = make(chan struct{})
	rec := NewScanRecorder(1, 1, time.Second, store, store, zerolog.Nop())

	// First event is picked up by the worker and blocks it; the second fills the buffer.
	require.True(t, rec.Submit(models.ScanEventInput{LinkID: "a"}))
	require.Eventually(t, func() bool { return len(rec.events) == 0 }, time.Second, 5*time.Millisecond)
	require.True(t, rec.Submit(models.ScanEventInput{LinkID: "b"}))

	start := time.Now()
	assert.False(t, rec.Submit(models.ScanEventInput{LinkID: "c"}))
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	close(store.block)
	require.NoError(t, rec.Close(context.Background()))

	scans, _ := store.snapshot()
	assert.Len(t, scans, 2)
}

func TestScanRecorder_InsertFailureIsSwallowed(t *testing.T) {
	store := newFakeStore()
	store.insertErr = errors.New("disk full")
	rec := NewScanRecorder(10, 1, time.Second, store, store, zerolog.Nop())

	assert.True(t, rec.Submit(models.ScanEventInput{LinkID: "x"}))
	require.NoError(t, rec.Close(context.Background()))

	scans, inc := store.snapshot()
	assert.Empty(t, scans)
	assert.Zero(t, inc["x"], "counter must not move when the insert failed")
}

func TestScanRecorder_SubmitAfterClose(t *testing.T) {
	store := newFakeStore()
	rec := NewScanRecorder(10, 1, time.Second, store, store, zerolog.Nop())
	require.NoError(t, rec.Close(context.Background()))
	require.NoError(t, rec.Close(context.Background()))

	assert.False(t, rec.Submit(models.ScanEventInput{LinkID: "late"}))
}

func TestScanRecorder_CloseHonoursDeadline(t *testing.T) {
	store := newFakeStore()
	store.block = make(chan struct{})
	defer close(store.block)
	rec := NewScanRecorder(10, 1, time.Second, store, store, zerolog.Nop())
	require.True(t, rec.Submit(models.ScanEventInput{LinkID: "stuck"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, rec.Close(ctx), context.DeadlineExceeded)
}

func TestScanRecorder_WithDatabase(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	links := repository.NewLinkRepository(db)
	scans := repository.NewScanRepository(db)

	link := &models.Link{ID: "2b1e6a57-8c4d-4a57-9f8e-0d8c1d7f0a11", Code: "Db7kQx2m", Owner: "alice", Destination: "https://example.com", Active: true}
	require.NoError(t, links.CreateLink(ctx, link))

	rec := NewScanRecorder(50, 3, time.Second, scans, links, zerolog.Nop())
	for i := 0; i < 20; i++ {
		require.True(t, rec.Submit(models.ScanEventInput{LinkID: link.ID, Timestamp: time.Now().UTC(), UserAgent: iphoneUA}))
	}
	require.NoError(t, rec.Close(ctx))

	count, err := scans.CountScansByLinkID(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), count)

	got, err := links.GetLinkByCode(ctx, "Db7kQx2m")
	require.NoError(t, err)
	assert.Equal(t, int64(20), got.ScanCount)
}
