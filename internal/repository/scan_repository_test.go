package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axellelanca/qrlinks/internal/models"
	"github.com/axellelanca/qrlinks/internal/testutil"
)

func TestGormScanRepository_Stats(t *testing.T) {
	ctx := context.Background()
	repo := NewScanRepository(testutil.NewDB(t))

	scans := []models.ScanEvent{
		{LinkID: "link-1", Device: "mobile", Browser: "Safari", OS: "iOS", Country: "FR"},
		{LinkID: "link-1", Device: "mobile", Browser: "Chrome", OS: "Android", Country: "FR"},
		{LinkID: "link-1", Device: "desktop", Browser: "Chrome", OS: "Windows"},
		{LinkID: "link-2", Device: "desktop", Browser: "Firefox", OS: "Linux"},
	}
	for i := range scans {
		scans[i].Timestamp = time.Now()
		require.NoError(t, repo.CreateScan(ctx, &scans[i]))
	}

	count, err := repo.CountScansByLinkID(ctx, "link-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	stats, err := repo.ScanStats(ctx, "link-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalScans)
	assert.Equal(t, map[string]int64{"mobile": 2, "desktop": 1}, stats.Devices)
	assert.Equal(t, map[string]int64{"Safari": 1, "Chrome": 2}, stats.Browsers)
	assert.Equal(t, map[string]int64{"iOS": 1, "Android": 1, "Windows": 1}, stats.OS)
	assert.Equal(t, map[string]int64{"FR": 2, "unknown": 1}, stats.Countries)
}

func TestGormScanRepository_StatsEmpty(t *testing.T) {
	repo := NewScanRepository(testutil.NewDB(t))

	stats, err := repo.ScanStats(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalScans)
	assert.Empty(t, stats.Devices)
}
