package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	customerrors "github.com/axellelanca/qrlinks/internal/errors"
	"github.com/axellelanca/qrlinks/internal/metrics"
	"github.com/axellelanca/qrlinks/internal/models"
)

// maxCodeLength bounds what is worth a lookup; anything longer cannot be a code.
const maxCodeLength = 32

const cacheFillTimeout = time.Second

// LinkLookup is the single read the redirect path performs.
type LinkLookup interface {
	GetLinkByCode(ctx context.Context, code string) (*models.Link, error)
}

// ScanSubmitter accepts scan events without blocking. It reports false when the event was dropped.
type ScanSubmitter interface {
	Submit(event models.ScanEventInput) bool
}

// Outcome is the result class of a resolution.
type Outcome int

const (
	OutcomeNotFound Outcome = iota
	OutcomeDisabled
	OutcomeRedirect
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRedirect:
		return metrics.OutcomeRedirect
	case OutcomeDisabled:
		return metrics.OutcomeDisabled
	default:
		return metrics.OutcomeNotFound
	}
}

// Resolution is what the redirect handler acts on.
type Resolution struct {
	Outcome Outcome
	Link    *models.Link
}

// RequestMeta is the raw, unvalidated request metadata attached to a scan.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	Referer   string
	Country   string
	City      string
}

// Resolver turns a short code into a redirect decision and feeds the scan recorder.
type Resolver struct {
	lookup   LinkLookup
	cache    LinkCache
	recorder ScanSubmitter
	log      zerolog.Logger
	now      func() time.Time

	fills sync.WaitGroup
}

// NewResolver creates a Resolver. cache may be nil.
func NewResolver(lookup LinkLookup, cache LinkCache, recorder ScanSubmitter, log zerolog.Logger) *Resolver {
	return &Resolver{
		lookup:   lookup,
		cache:    cache,
		recorder: recorder,
		log:      log.With().Str("component", "resolver").Logger(),
		now:      time.Now,
	}
}

// Resolve looks the code up once and classifies the result.
// The returned error is ErrLinkNotFound, ErrLinkDisabled or a wrapped lookup
// failure; Outcome is always set, and a lookup failure resolves to OutcomeNotFound.
func (r *Resolver) Resolve(ctx context.Context, code string) (Resolution, error) {
	if code == "" || len(code) > maxCodeLength {
		return Resolution{Outcome: OutcomeNotFound}, customerrors.ErrLinkNotFound
	}

	link, err := r.find(ctx, code)
	if err != nil {
		if errors.Is(err, customerrors.ErrLinkNotFound) {
			return Resolution{Outcome: OutcomeNotFound}, err
		}
		metrics.RedirectLookupErrors.Inc()
		r.log.Error().Err(err).Str("code", code).Msg("short code lookup failed")
		return Resolution{Outcome: OutcomeNotFound}, fmt.Errorf("lookup %q: %w", code, err)
	}

	if !link.Active {
		return Resolution{Outcome: OutcomeDisabled, Link: link}, customerrors.ErrLinkDisabled
	}
	return Resolution{Outcome: OutcomeRedirect, Link: link}, nil
}

func (r *Resolver) find(ctx context.Context, code string) (*models.Link, error) {
	if r.cache != nil {
		link, err := r.cache.GetLink(ctx, code)
		if err != nil {
			r.log.Debug().Err(err).Str("code", code).Msg("cache read failed, falling back to storage")
		} else if link != nil {
			return link, nil
		}
	}

	start := time.Now()
	link, err := r.lookup.GetLinkByCode(ctx, code)
	metrics.RedirectLookupDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.fillCache(link)
	}
	return link, nil
}

// fillCache writes the cache entry off the request path. The cache keeps the
// newest version, so a fill racing an owner update is discarded.
func (r *Resolver) fillCache(link *models.Link) {
	r.fills.Add(1)
	go func() {
		defer r.fills.Done()
		ctx, cancel := context.WithTimeout(context.Background(), cacheFillTimeout)
		defer cancel()
		if err := r.cache.SetLink(ctx, link); err != nil {
			r.log.Debug().Err(err).Str("code", link.Code).Msg("cache fill failed")
		}
	}()
}

// Wait blocks until pending cache fills have finished.
func (r *Resolver) Wait() {
	r.fills.Wait()
}

// Track hands a scan of a resolved, active link to the recorder. It never blocks.
// Other outcomes are ignored: only followed redirects are scans.
func (r *Resolver) Track(res Resolution, meta RequestMeta) {
	if res.Outcome != OutcomeRedirect || res.Link == nil || r.recorder == nil {
		return
	}
	r.recorder.Submit(models.ScanEventInput{
		LinkID:    res.Link.ID,
		Timestamp: r.now().UTC(),
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		Referer:   meta.Referer,
		Country:   meta.Country,
		City:      meta.City,
	})
}
