// Package services contains the business logic layer of the short link service:
// allocation of collision-free codes, link management and redirect resolution.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	customerrors "github.com/axellelanca/qrlinks/internal/errors"
	"github.com/axellelanca/qrlinks/internal/metrics"
	"github.com/axellelanca/qrlinks/internal/models"
	"github.com/axellelanca/qrlinks/internal/repository"
)

//go:generate mockgen -source=link_service.go -destination=../mocks/mock_services.go -package=mocks

// CodeGenerator produces candidate short codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// LinkStore is the storage the allocator and the management operations need.
type LinkStore interface {
	CodeExists(ctx context.Context, code string) (bool, error)
	CreateLink(ctx context.Context, link *models.Link) error
	GetOwnedLink(ctx context.Context, owner, code string) (*models.Link, error)
	ListLinksByOwner(ctx context.Context, owner string) ([]models.Link, error)
	UpdateLink(ctx context.Context, owner, code string, upd models.LinkUpdate) (*models.Link, error)
	DeleteLink(ctx context.Context, owner, code string) error
}

// QuotaGate is the plan/usage collaborator, consulted at creation time only.
type QuotaGate interface {
	GetPlanUsage(ctx context.Context, owner string) (models.PlanUsage, error)
	IncrementUsage(ctx context.Context, owner string) error
}

// ScanStatsReader aggregates recorded scans.
type ScanStatsReader interface {
	ScanStats(ctx context.Context, linkID string) (*models.ScanStats, error)
}

// LinkCache is the optional redirect lookup cache. Implementations return (nil, nil) on a miss.
// SetLink is versioned by Link.UpdatedAt and must never replace a newer entry;
// InvalidateLink leaves a marker that rejects fills of states read before it.
type LinkCache interface {
	GetLink(ctx context.Context, code string) (*models.Link, error)
	SetLink(ctx context.Context, link *models.Link) error
	InvalidateLink(ctx context.Context, code string) error
}

// CreateLinkInput is what a principal submits to create a link.
type CreateLinkInput struct {
	Owner       string
	Destination string
	DisplayName string
}

const usageUpdateTimeout = 5 * time.Second

// LinkService provides business logic methods for managing short links.
// It acts as an intermediary between the HTTP handlers and the repositories.
type LinkService struct {
	links       LinkStore
	scans       ScanStatsReader
	quota       QuotaGate
	generator   CodeGenerator
	cache       LinkCache
	maxAttempts int
	log         zerolog.Logger

	background sync.WaitGroup
}

// NewLinkService creates a LinkService. maxAttempts bounds the collision retry loop.
func NewLinkService(links LinkStore, scans ScanStatsReader, quota QuotaGate, generator CodeGenerator, maxAttempts int, log zerolog.Logger) *LinkService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &LinkService{
		links:       links,
		scans:       scans,
		quota:       quota,
		generator:   generator,
		maxAttempts: maxAttempts,
		log:         log.With().Str("component", "link-service").Logger(),
	}
}

// WithCache makes management operations write through to the cache.
func (s *LinkService) WithCache(cache LinkCache) *LinkService {
	s.cache = cache
	return s
}

// ValidateDestination checks that raw is an absolute http(s) URL with a host.
func ValidateDestination(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return customerrors.ErrInvalidDestination
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return customerrors.ErrInvalidDestination
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return nil
	default:
		return customerrors.ErrInvalidDestination
	}
}

// CreateLink allocates a unique code and persists the link.
//
// Order matters: the destination is validated before the quota gate is consulted,
// and the quota gate before any code is generated. Each attempt pre-checks the
// code and then inserts; a unique-index conflict at insert time (another allocator
// won the race) counts as a collision like a pre-check hit. After maxAttempts
// collisions the call fails with ErrCodeAllocationFailed.
func (s *LinkService) CreateLink(ctx context.Context, in CreateLinkInput) (*models.Link, error) {
	if err := ValidateDestination(in.Destination); err != nil {
		return nil, err
	}

	usage, err := s.quota.GetPlanUsage(ctx, in.Owner)
	if err != nil {
		return nil, fmt.Errorf("failed to check plan usage: %w", err)
	}
	if !usage.Allowed() {
		return nil, customerrors.NewQuotaExceeded(usage.Used, usage.Limit)
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		code, err := s.generator.Generate()
		if err != nil {
			return nil, fmt.Errorf("failed to generate short code: %w", err)
		}

		exists, err := s.links.CodeExists(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("database error checking short code uniqueness: %w", err)
		}
		if exists {
			metrics.AllocationCollisions.WithLabelValues("precheck").Inc()
			s.log.Debug().Str("code", code).Int("attempt", attempt).Int("max_attempts", s.maxAttempts).
				Msg("short code already exists, retrying")
			continue
		}

		link := &models.Link{
			ID:          uuid.NewString(),
			Code:        code,
			Owner:       in.Owner,
			Destination: strings.TrimSpace(in.Destination),
			DisplayName: strings.TrimSpace(in.DisplayName),
			Active:      true,
		}
		if err := s.links.CreateLink(ctx, link); err != nil {
			if errors.Is(err, repository.ErrCodeConflict) {
				metrics.AllocationCollisions.WithLabelValues("insert").Inc()
				s.log.Debug().Str("code", code).Int("attempt", attempt).Msg("short code taken at insert, retrying")
				continue
			}
			return nil, fmt.Errorf("failed to create link: %w", err)
		}

		metrics.LinksCreated.Inc()
		s.incrementUsageAsync(in.Owner)
		return link, nil
	}

	metrics.AllocationFailures.Inc()
	s.log.Warn().Str("owner", in.Owner).Int("attempts", s.maxAttempts).Msg("short code allocation exhausted")
	return nil, customerrors.ErrCodeAllocationFailed
}

// incrementUsageAsync updates the owner's usage counter off the request path.
// A failure leaves the link in place; usage accounting is eventually consistent.
func (s *LinkService) incrementUsageAsync(owner string) {
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		ctx, cancel := context.WithTimeout(context.Background(), usageUpdateTimeout)
		defer cancel()
		if err := s.quota.IncrementUsage(ctx, owner); err != nil {
			s.log.Error().Err(err).Str("owner", owner).Msg("failed to increment plan usage")
		}
	}()
}

// Wait blocks until background usage updates have finished.
func (s *LinkService) Wait() {
	s.background.Wait()
}

// PlanUsage returns the owner's quota state.
func (s *LinkService) PlanUsage(ctx context.Context, owner string) (models.PlanUsage, error) {
	return s.quota.GetPlanUsage(ctx, owner)
}

// ListLinks returns the owner's links, newest first.
func (s *LinkService) ListLinks(ctx context.Context, owner string) ([]models.Link, error) {
	return s.links.ListLinksByOwner(ctx, owner)
}

// GetLink returns one of the owner's links.
func (s *LinkService) GetLink(ctx context.Context, owner, code string) (*models.Link, error) {
	return s.links.GetOwnedLink(ctx, owner, code)
}

// UpdateLink changes the destination, name or active flag of an owner's link.
func (s *LinkService) UpdateLink(ctx context.Context, owner, code string, upd models.LinkUpdate) (*models.Link, error) {
	if upd.Destination != nil {
		if err := ValidateDestination(*upd.Destination); err != nil {
			return nil, err
		}
		trimmed := strings.TrimSpace(*upd.Destination)
		upd.Destination = &trimmed
	}
	if upd.IsEmpty() {
		return s.links.GetOwnedLink(ctx, owner, code)
	}

	link, err := s.links.UpdateLink(ctx, owner, code, upd)
	if err != nil {
		return nil, err
	}
	s.refreshCache(ctx, link)
	return link, nil
}

// DeleteLink soft-deletes an owner's link. Its code stays reserved forever.
func (s *LinkService) DeleteLink(ctx context.Context, owner, code string) error {
	if err := s.links.DeleteLink(ctx, owner, code); err != nil {
		return err
	}
	s.invalidate(ctx, code)
	return nil
}

// GetLinkStats retrieves an owner's link together with its scan statistics.
func (s *LinkService) GetLinkStats(ctx context.Context, owner, code string) (*models.Link, *models.ScanStats, error) {
	link, err := s.links.GetOwnedLink(ctx, owner, code)
	if err != nil {
		return nil, nil, err
	}
	stats, err := s.scans.ScanStats(ctx, link.ID)
	if err != nil {
		return nil, nil, err
	}
	return link, stats, nil
}

// refreshCache stores the committed state, so the entry is correct even if a
// redirect is filling the cache with a state read before the update.
func (s *LinkService) refreshCache(ctx context.Context, link *models.Link) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetLink(ctx, link); err != nil {
		s.log.Warn().Err(err).Str("code", link.Code).Msg("failed to refresh cached link")
		s.invalidate(ctx, link.Code)
	}
}

func (s *LinkService) invalidate(ctx context.Context, code string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateLink(ctx, code); err != nil {
		s.log.Warn().Err(err).Str("code", code).Msg("failed to invalidate cached link")
	}
}
