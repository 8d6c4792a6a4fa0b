package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/axellelanca/qrlinks/cmd"
	"github.com/axellelanca/qrlinks/internal/api"
	"github.com/axellelanca/qrlinks/internal/auth"
	"github.com/axellelanca/qrlinks/internal/database"
	"github.com/axellelanca/qrlinks/internal/monitor"
	"github.com/axellelanca/qrlinks/internal/repository"
	"github.com/axellelanca/qrlinks/internal/services"
	"github.com/axellelanca/qrlinks/internal/shortcode"
	"github.com/axellelanca/qrlinks/internal/workers"
)

// RunServerCmd starts the HTTP server and its background workers.
var RunServerCmd = &cobra.Command{
	Use:   "run-server",
	Short: "Starts the redirect and management API with the scan workers.",
	Long: `Opens and migrates the database, starts the scan recording workers and,
when enabled, the destination monitor, then serves HTTP until SIGINT/SIGTERM.
On shutdown in-flight requests finish and buffered scans are drained.`,
	RunE: func(c *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return run(ctx)
	},
}

func init() {
	cmd.RootCmd.AddCommand(RunServerCmd)
}

func run(ctx context.Context) error {
	cfg := cmd.Cfg
	log := cmd.Log

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn().Err(err).Msg("failed to close database")
		}
	}()
	if err := database.Migrate(db); err != nil {
		return err
	}

	linkRepo := repository.NewLinkRepository(db)
	scanRepo := repository.NewScanRepository(db)
	usageRepo := repository.NewUsageRepository(db, cfg.Quota.DefaultLimit)
	log.Info().Str("driver", cfg.Database.Driver).Msg("repositories initialised")

	generator, err := shortcode.NewGenerator(cfg.ShortCode.Alphabet, cfg.ShortCode.Length)
	if err != nil {
		return fmt.Errorf("invalid short code settings: %w", err)
	}
	linkService := services.NewLinkService(linkRepo, scanRepo, usageRepo, generator, cfg.ShortCode.MaxAttempts, log)

	var cache services.LinkCache
	if cfg.Redis.URL != "" {
		redisCache, err := repository.NewRedisLinkCache(cfg.Redis.URL, cfg.Redis.TTL)
		if err != nil {
			log.Warn().Err(err).Msg("redis cache disabled")
		} else {
			defer redisCache.Close()
			cache = redisCache
			linkService.WithCache(redisCache)
			log.Info().Dur("ttl", cfg.Redis.TTL).Msg("redis lookup cache enabled")
		}
	}

	recorder := workers.NewScanRecorder(cfg.Analytics.BufferSize, cfg.Analytics.WorkerCount, cfg.Analytics.WriteTimeout, scanRepo, linkRepo, log)
	resolver := services.NewResolver(linkRepo, cache, recorder, log)

	authenticator, err := auth.NewJWTAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	if log.GetLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(log))
	api.SetupRoutes(router, api.Dependencies{
		Links:        linkService,
		Resolver:     resolver,
		Auth:         authenticator,
		Storage:      linkRepo,
		BaseURL:      cfg.Server.BaseURL,
		FallbackPath: cfg.Redirect.FallbackPath,
		Log:          log,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("base_url", cfg.Server.BaseURL).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if cfg.Monitor.Enabled {
		interval := time.Duration(cfg.Monitor.IntervalMinutes) * time.Minute
		destMonitor := monitor.NewDestinationMonitor(linkRepo, interval, log)
		g.Go(func() error { return destMonitor.Run(gctx) })
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutdown signal received, stopping server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
		if err := recorder.Close(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("scan buffer not fully drained")
		}
		linkService.Wait()
		resolver.Wait()

		log.Info().Msg("server stopped")
		return errors.Join(errs...)
	})

	return g.Wait()
}
