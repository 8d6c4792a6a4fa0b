package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customerrors "github.com/axellelanca/qrlinks/internal/errors"
	"github.com/axellelanca/qrlinks/internal/models"
	"github.com/axellelanca/qrlinks/internal/repository"
	"github.com/axellelanca/qrlinks/internal/shortcode"
	"github.com/axellelanca/qrlinks/internal/testutil"
)

// updateDuringLookup returns the row it read, but only after running update once,
// so the resolver fills the cache with a state older than the committed one.
type updateDuringLookup struct {
	inner  LinkLookup
	update func()
	once   sync.Once
}

func (u *updateDuringLookup) GetLinkByCode(ctx context.Context, code string) (*models.Link, error) {
	link, err := u.inner.GetLinkByCode(ctx, code)
	u.once.Do(u.update)
	return link, err
}

func newCachedStack(t *testing.T) (*LinkService, *repository.GormLinkRepository, *repository.RedisLinkCache) {
	t.Helper()
	db := testutil.NewDB(t)
	mr := miniredis.RunT(t)
	cache := repository.NewRedisLinkCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 10*time.Minute)
	t.Cleanup(func() { _ = cache.Close() })

	gen, err := shortcode.NewGenerator(shortcode.DefaultAlphabet, shortcode.DefaultLength)
	require.NoError(t, err)
	links := repository.NewLinkRepository(db)
	svc := NewLinkService(links, repository.NewScanRepository(db), repository.NewUsageRepository(db, 10), gen, 5, zerolog.Nop()).
		WithCache(cache)
	return svc, links, cache
}

func TestResolver_DisableDuringFillIsNotServedFromCache(t *testing.T) {
	ctx := context.Background()
	svc, links, cache := newCachedStack(t)

	link, err := svc.CreateLink(ctx, CreateLinkInput{Owner: "alice", Destination: "https://example.com/menu"})
	require.NoError(t, err)
	svc.Wait()

	inactive := false
	lookup := &updateDuringLookup{inner: links, update: func() {
		_, err := svc.UpdateLink(ctx, "alice", link.Code, models.LinkUpdate{Active: &inactive})
		require.NoError(t, err)
	}}
	r := NewResolver(lookup, cache, nil, zerolog.Nop())

	// The first resolution saw the row before the update committed.
	res, err := r.Resolve(ctx, link.Code)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirect, res.Outcome)
	r.Wait()

	for i := 0; i < 3; i++ {
		res, err = r.Resolve(ctx, link.Code)
		assert.ErrorIs(t, err, customerrors.ErrLinkDisabled)
		assert.Equal(t, OutcomeDisabled, res.Outcome)
	}
}

func TestResolver_DestinationChangeDuringFillIsNotServedFromCache(t *testing.T) {
	ctx := context.Background()
	svc, links, cache := newCachedStack(t)

	link, err := svc.CreateLink(ctx, CreateLinkInput{Owner: "alice", Destination: "https://example.com/v1"})
	require.NoError(t, err)
	svc.Wait()

	moved := "https://example.com/v2"
	lookup := &updateDuringLookup{inner: links, update: func() {
		_, err := svc.UpdateLink(ctx, "alice", link.Code, models.LinkUpdate{Destination: &moved})
		require.NoError(t, err)
	}}
	r := NewResolver(lookup, cache, nil, zerolog.Nop())

	_, err = r.Resolve(ctx, link.Code)
	require.NoError(t, err)
	r.Wait()

	res, err := r.Resolve(ctx, link.Code)
	require.NoError(t, err)
	assert.Equal(t, moved, res.Link.Destination)
}

func TestResolver_DeleteDuringFillIsNotServedFromCache(t *testing.T) {
	ctx := context.Background()
	svc, links, cache := newCachedStack(t)

	link, err := svc.CreateLink(ctx, CreateLinkInput{Owner: "alice", Destination: "https://example.com"})
	require.NoError(t, err)
	svc.Wait()

	lookup := &updateDuringLookup{inner: links, update: func() {
		require.NoError(t, svc.DeleteLink(ctx, "alice", link.Code))
	}}
	r := NewResolver(lookup, cache, nil, zerolog.Nop())

	_, err = r.Resolve(ctx, link.Code)
	require.NoError(t, err)
	r.Wait()

	res, _ := r.Resolve(ctx, link.Code)
	assert.Equal(t, OutcomeNotFound, res.Outcome)
}
