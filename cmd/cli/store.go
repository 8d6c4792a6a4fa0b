// Package cli holds the administrative cobra commands that work directly on the database.
package cli

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/axellelanca/qrlinks/cmd"
	"github.com/axellelanca/qrlinks/internal/database"
	"github.com/axellelanca/qrlinks/internal/repository"
	"github.com/axellelanca/qrlinks/internal/services"
	"github.com/axellelanca/qrlinks/internal/shortcode"
)

// openDatabase connects with the loaded configuration and migrates the schema.
func openDatabase() (*gorm.DB, func(), error) {
	cfg := cmd.Cfg
	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, cmd.Log)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = database.Close(db) }
	if err := database.Migrate(db); err != nil {
		closeFn()
		return nil, nil, err
	}
	return db, closeFn, nil
}

// newLinkService wires the service the same way run-server does. When a redis
// cache is configured, owner updates go through it so redirects never serve
// the state from before the command. The returned func closes the cache.
func newLinkService(db *gorm.DB) (*services.LinkService, func(), error) {
	cfg := cmd.Cfg
	generator, err := shortcode.NewGenerator(cfg.ShortCode.Alphabet, cfg.ShortCode.Length)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid short code settings: %w", err)
	}
	svc := services.NewLinkService(
		repository.NewLinkRepository(db),
		repository.NewScanRepository(db),
		repository.NewUsageRepository(db, cfg.Quota.DefaultLimit),
		generator,
		cfg.ShortCode.MaxAttempts,
		cmd.Log,
	)
	if cfg.Redis.URL == "" {
		return svc, func() {}, nil
	}
	cache, err := repository.NewRedisLinkCache(cfg.Redis.URL, cfg.Redis.TTL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis cache: %w", err)
	}
	svc.WithCache(cache)
	return svc, func() { _ = cache.Close() }, nil
}
