package errors

import (
	"errors"
	"fmt"
)

// Error taxonomy of the link service. Handlers map these to HTTP statuses;
// the redirect path maps the lookup outcomes to fallback redirects instead.

// ErrInvalidDestination is returned when the destination is not an absolute http(s) URL.
var ErrInvalidDestination = errors.New("destination must be an absolute http(s) URL")

// ErrCodeAllocationFailed is returned when every allocation attempt collided.
// Nothing was committed, so the whole request can be retried.
var ErrCodeAllocationFailed = errors.New("failed to allocate a unique short code, please retry")

// ErrLinkNotFound is returned when no live link matches a code (or an owner/code pair).
var ErrLinkNotFound = errors.New("short link not found")

// ErrLinkDisabled is returned when the link exists but its owner switched it off.
var ErrLinkDisabled = errors.New("short link is disabled")

// ErrUnauthenticated is returned when a request carries no valid principal.
var ErrUnauthenticated = errors.New("authentication required")

// QuotaExceededError is returned when the owner's plan limit is reached.
// Message is meant to be shown to the end user as-is.
type QuotaExceededError struct {
	Used    int64
	Limit   int64
	Message string
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded (%d/%d): %s", e.Used, e.Limit, e.Message)
}

// NewQuotaExceeded builds the default user-facing quota error.
func NewQuotaExceeded(used, limit int64) *QuotaExceededError {
	return &QuotaExceededError{
		Used:    used,
		Limit:   limit,
		Message: fmt.Sprintf("You have reached your plan limit of %d dynamic links. Upgrade your plan to create more.", limit),
	}
}

// ScanRecordingError describes a failed analytics write. It is only ever logged.
type ScanRecordingError struct {
	LinkID string
	Stage  string // "insert" or "increment"
	Err    error
}

func (e *ScanRecordingError) Error() string {
	return fmt.Sprintf("failed to record scan for link %s (%s): %v", e.LinkID, e.Stage, e.Err)
}

func (e *ScanRecordingError) Unwrap() error {
	return e.Err
}

// ErrConfigLoad is returned when configuration loading fails
type ErrConfigLoad struct {
	Path   string
	Reason string
}

func (e ErrConfigLoad) Error() string {
	return fmt.Sprintf("failed to load config from %s: %s", e.Path, e.Reason)
}
