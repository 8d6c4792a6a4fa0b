package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	customerrors "github.com/axellelanca/qrlinks/internal/errors"
	"github.com/axellelanca/qrlinks/internal/metrics"
	"github.com/axellelanca/qrlinks/internal/models"
	"github.com/axellelanca/qrlinks/internal/services"
)

// Pinger reports whether storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies is everything the routes need.
type Dependencies struct {
	Links        *services.LinkService
	Resolver     *services.Resolver
	Auth         Authenticator
	Storage      Pinger
	BaseURL      string
	FallbackPath string
	Log          zerolog.Logger
}

// SetupRoutes configures all Gin routes and injects the dependencies.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/health", HealthCheckHandler(deps.Storage))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public redirect surface, e.g. https://qr.example.com/r/Ab3dEf7h
	router.GET("/r/:code", RedirectHandler(deps.Resolver, deps.FallbackPath))

	api := router.Group("/api/v1", RequireOwner(deps.Auth))
	{
		api.POST("/links", CreateShortLinkHandler(deps.Links, deps.BaseURL, deps.Log))
		api.GET("/links", ListLinksHandler(deps.Links, deps.BaseURL, deps.Log))
		api.PATCH("/links/:code", UpdateLinkHandler(deps.Links, deps.BaseURL, deps.Log))
		api.DELETE("/links/:code", DeleteLinkHandler(deps.Links, deps.Log))
		api.GET("/links/:code/stats", GetLinkStatsHandler(deps.Links, deps.BaseURL, deps.Log))
		api.GET("/usage", UsageHandler(deps.Links, deps.Log))
	}
}

// HealthCheckHandler answers load balancer health checks.
func HealthCheckHandler(storage Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if storage != nil {
			if err := storage.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// LinkResponse is the public representation of a link.
type LinkResponse struct {
	models.Link
	ShortURL string `json:"short_url"`
}

func linkResponse(link *models.Link, baseURL string) LinkResponse {
	return LinkResponse{Link: *link, ShortURL: baseURL + "/r/" + link.Code}
}

// CreateLinkRequest is the body of POST /api/v1/links.
// Either destinationUrl or destinationUrls must be set.
type CreateLinkRequest struct {
	DestinationURL  string   `json:"destinationUrl"`
	DestinationURLs []string `json:"destinationUrls" binding:"omitempty,max=50"`
	Name            string   `json:"name"`
}

// maxBatchSize bounds the destinations of one batch request, destinationUrl included.
const maxBatchSize = 50

// BatchResult is one entry of a batch creation response.
type BatchResult struct {
	DestinationURL string        `json:"destinationUrl"`
	Link           *LinkResponse `json:"link,omitempty"`
	Error          string        `json:"error,omitempty"`
}

// BatchResponse carries per-destination results and totals.
type BatchResponse struct {
	Results []BatchResult `json:"results"`
	Summary struct {
		Total      int `json:"total"`
		Successful int `json:"successful"`
		Failed     int `json:"failed"`
	} `json:"summary"`
}

// CreateShortLinkHandler creates one link, or one per destination in batch mode.
func CreateShortLinkHandler(links *services.LinkService, baseURL string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateLinkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		owner := ownerFrom(c)
		if len(req.DestinationURLs) > 0 {
			destinations := req.DestinationURLs
			if req.DestinationURL != "" {
				destinations = append([]string{req.DestinationURL}, destinations...)
			}
			if len(destinations) > maxBatchSize {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("a batch holds at most %d destinations", maxBatchSize)})
				return
			}
			createBatch(c, links, owner, req.Name, destinations, baseURL, log)
			return
		}
		if strings.TrimSpace(req.DestinationURL) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "destinationUrl is required"})
			return
		}

		link, err := links.CreateLink(c.Request.Context(), services.CreateLinkInput{
			Owner:       owner,
			Destination: req.DestinationURL,
			DisplayName: req.Name,
		})
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, linkResponse(link, baseURL))
	}
}

// createBatch keeps going after a failed destination; a quota error stops the remaining ones.
func createBatch(c *gin.Context, links *services.LinkService, owner, name string, destinations []string, baseURL string, log zerolog.Logger) {
	var resp BatchResponse
	var quotaErr *customerrors.QuotaExceededError

	for _, dest := range destinations {
		result := BatchResult{DestinationURL: dest}
		switch {
		case quotaErr != nil:
			result.Error = quotaErr.Message
		default:
			link, err := links.CreateLink(c.Request.Context(), services.CreateLinkInput{Owner: owner, Destination: dest, DisplayName: name})
			if err != nil {
				errors.As(err, &quotaErr)
				_, msg := classifyError(err)
				if msg == genericCreateError {
					log.Error().Err(err).Str("destination", dest).Msg("batch link creation failed")
				}
				result.Error = msg
			} else {
				lr := linkResponse(link, baseURL)
				result.Link = &lr
			}
		}

		if result.Link != nil {
			resp.Summary.Successful++
		} else {
			resp.Summary.Failed++
		}
		resp.Results = append(resp.Results, result)
	}
	resp.Summary.Total = len(destinations)

	status := http.StatusCreated
	switch {
	case resp.Summary.Successful == 0:
		status = http.StatusBadRequest
	case resp.Summary.Failed > 0:
		status = http.StatusMultiStatus
	}
	c.JSON(status, resp)
}

// RedirectHandler is the hot path: one lookup, then a 302 to the destination or the fallback.
// The scan is handed to the recorder without waiting for it.
func RedirectHandler(resolver *services.Resolver, fallbackPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, _ := resolver.Resolve(c.Request.Context(), c.Param("code"))
		metrics.Redirects.WithLabelValues(res.Outcome.String()).Inc()

		if res.Outcome != services.OutcomeRedirect {
			c.Header("Cache-Control", "no-store")
			c.Redirect(http.StatusFound, fallbackURL(fallbackPath, res.Outcome))
			return
		}

		// The destination may change; never let clients cache the redirect for long.
		c.Header("Cache-Control", "private, max-age=0")
		c.Redirect(http.StatusFound, res.Link.Destination)

		resolver.Track(res, services.RequestMeta{
			ClientIP:  c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
			Referer:   c.GetHeader("Referer"),
			Country:   c.GetHeader("CF-IPCountry"),
			City:      c.GetHeader("CF-IPCity"),
		})
	}
}

func fallbackURL(path string, outcome services.Outcome) string {
	return path + "?" + url.Values{"error": {outcome.String()}}.Encode()
}

// ListLinksHandler returns the caller's links, newest first.
func ListLinksHandler(links *services.LinkService, baseURL string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := links.ListLinks(c.Request.Context(), ownerFrom(c))
		if err != nil {
			writeError(c, log, err)
			return
		}
		out := make([]LinkResponse, 0, len(list))
		for i := range list {
			out = append(out, linkResponse(&list[i], baseURL))
		}
		c.JSON(http.StatusOK, gin.H{"links": out})
	}
}

// UpdateLinkRequest is the body of PATCH /api/v1/links/:code. Absent fields are left unchanged.
type UpdateLinkRequest struct {
	DestinationURL *string `json:"destinationUrl"`
	Name           *string `json:"name"`
	Active         *bool   `json:"active"`
}

// UpdateLinkHandler changes the mutable fields of one of the caller's links.
func UpdateLinkHandler(links *services.LinkService, baseURL string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateLinkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
		link, err := links.UpdateLink(c.Request.Context(), ownerFrom(c), c.Param("code"), models.LinkUpdate{
			Destination: req.DestinationURL,
			DisplayName: req.Name,
			Active:      req.Active,
		})
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, linkResponse(link, baseURL))
	}
}

// DeleteLinkHandler soft-deletes one of the caller's links.
func DeleteLinkHandler(links *services.LinkService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := links.DeleteLink(c.Request.Context(), ownerFrom(c), c.Param("code")); err != nil {
			writeError(c, log, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// GetLinkStatsHandler returns scan totals and breakdowns for one of the caller's links.
func GetLinkStatsHandler(links *services.LinkService, baseURL string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		link, stats, err := links.GetLinkStats(c.Request.Context(), ownerFrom(c), c.Param("code"))
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"link":  linkResponse(link, baseURL),
			"stats": stats,
		})
	}
}

// UsageHandler reports the caller's plan usage.
func UsageHandler(links *services.LinkService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		usage, err := links.PlanUsage(c.Request.Context(), ownerFrom(c))
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, usage)
	}
}

const genericCreateError = "Something went wrong on our side. Please try again."

func classifyError(err error) (int, string) {
	var quotaErr *customerrors.QuotaExceededError
	switch {
	case errors.Is(err, customerrors.ErrInvalidDestination):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &quotaErr):
		return http.StatusForbidden, quotaErr.Message
	case errors.Is(err, customerrors.ErrCodeAllocationFailed):
		return http.StatusInternalServerError, err.Error()
	case errors.Is(err, customerrors.ErrLinkNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, customerrors.ErrUnauthenticated):
		return http.StatusUnauthorized, err.Error()
	default:
		return http.StatusInternalServerError, genericCreateError
	}
}

// writeError maps the error taxonomy to a status and a JSON body.
func writeError(c *gin.Context, log zerolog.Logger, err error) {
	status, msg := classifyError(err)
	body := gin.H{"error": msg}

	var quotaErr *customerrors.QuotaExceededError
	switch {
	case errors.As(err, &quotaErr):
		body["used"] = quotaErr.Used
		body["limit"] = quotaErr.Limit
	case errors.Is(err, customerrors.ErrCodeAllocationFailed):
		body["retryable"] = true
	case msg == genericCreateError:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, body)
}
