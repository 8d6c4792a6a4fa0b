package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axellelanca/qrlinks/cmd"
	"github.com/axellelanca/qrlinks/internal/database"
	"github.com/axellelanca/qrlinks/internal/repository"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.RootCmd.SetOut(&out)
	cmd.RootCmd.SetErr(&out)
	cmd.RootCmd.SetArgs(args)
	err := cmd.RootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("SERVER_BASE_URL", "https://qr.example.com")
	t.Setenv("AUTH_JWT_SECRET", "cli-secret")
	t.Setenv("LOG_LEVEL", "error")

	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migrations executed successfully")

	out, err = execute(t, "create", "--owner", "alice", "--url", "https://example.com/menu", "--name", "Menu")
	require.NoError(t, err, out)
	match := regexp.MustCompile(`Code: (\S+)`).FindStringSubmatch(out)
	require.Len(t, match, 2)
	code := match[1]
	assert.Contains(t, out, "https://qr.example.com/r/"+code)

	out, err = execute(t, "quota", "--owner", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "alice: 1/10 links")

	out, err = execute(t, "disable", "--owner", "alice", code)
	require.NoError(t, err)
	assert.Contains(t, out, "is now disabled")

	out, err = execute(t, "stats", "--owner", "alice", code)
	require.NoError(t, err)
	assert.Contains(t, out, "Active: false")
	assert.Contains(t, out, "Total scans: 0")

	_, err = execute(t, "stats", "--owner", "mallory", code)
	assert.Error(t, err)

	out, err = execute(t, "quota", "--owner", "alice", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "alice: 1/1 links")

	_, err = execute(t, "create", "--owner", "alice", "--url", "https://example.com/second")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan limit")

	out, err = execute(t, "token", "--owner", "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(out), "."), "a JWT has three segments")
}

func TestToggleUpdatesRedisCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	dsn := filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", dsn)
	t.Setenv("SERVER_BASE_URL", "https://qr.example.com")
	t.Setenv("AUTH_JWT_SECRET", "cli-secret")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("REDIS_URL", "redis://"+mr.Addr())

	out, err := execute(t, "create", "--owner", "alice", "--url", "https://example.com/menu")
	require.NoError(t, err, out)
	match := regexp.MustCompile(`Code: (\S+)`).FindStringSubmatch(out)
	require.Len(t, match, 2)
	code := match[1]

	// Fill the cache the way a redirect would.
	db, err := database.Open("sqlite", dsn, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	link, err := repository.NewLinkRepository(db).GetLinkByCode(ctx, code)
	require.NoError(t, err)
	cache, err := repository.NewRedisLinkCache("redis://"+mr.Addr(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	require.NoError(t, cache.SetLink(ctx, link))

	out, err = execute(t, "disable", "--owner", "alice", code)
	require.NoError(t, err, out)
	cached, err := cache.GetLink(ctx, code)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.False(t, cached.Active)

	out, err = execute(t, "enable", "--owner", "alice", code)
	require.NoError(t, err, out)
	cached, err = cache.GetLink(ctx, code)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.True(t, cached.Active)
}
