package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	customerrors "github.com/axellelanca/qrlinks/internal/errors"
	"github.com/axellelanca/qrlinks/internal/models"
)

// ErrCodeConflict is returned by CreateLink when the unique index on code rejects the row.
var ErrCodeConflict = errors.New("short code already taken")

const pgErrCodeUniqueViolation = "23505"

// GormLinkRepository est l'implémentation du stockage des liens utilisant GORM.
type GormLinkRepository struct {
	db *gorm.DB
}

// NewLinkRepository crée et retourne une nouvelle instance de GormLinkRepository.
func NewLinkRepository(db *gorm.DB) *GormLinkRepository {
	return &GormLinkRepository{db: db}
}

// CreateLink inserts a link. A uniqueness violation on code yields ErrCodeConflict.
func (r *GormLinkRepository) CreateLink(ctx context.Context, link *models.Link) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: %s", ErrCodeConflict, link.Code)
		}
		return fmt.Errorf("failed to create link: %w", err)
	}
	return nil
}

// CodeExists reports whether code was ever allocated, deleted links included.
func (r *GormLinkRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().
		Model(&models.Link{}).
		Where("code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check code %q: %w", code, err)
	}
	return count > 0, nil
}

// GetLinkByCode is the redirect lookup: one indexed read on code.
func (r *GormLinkRepository) GetLinkByCode(ctx context.Context, code string) (*models.Link, error) {
	var link models.Link
	if err := r.db.WithContext(ctx).Where("code = ?", code).Take(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerrors.ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to get link %q: %w", code, err)
	}
	return &link, nil
}

// GetOwnedLink fetches a link only if it belongs to owner.
func (r *GormLinkRepository) GetOwnedLink(ctx context.Context, owner, code string) (*models.Link, error) {
	var link models.Link
	err := r.db.WithContext(ctx).
		Where("owner = ? AND code = ?", owner, code).
		Take(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerrors.ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to get link %q: %w", code, err)
	}
	return &link, nil
}

// ListLinksByOwner returns the owner's live links, newest first.
func (r *GormLinkRepository) ListLinksByOwner(ctx context.Context, owner string) ([]models.Link, error) {
	var links []models.Link
	err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at DESC").
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list links for owner %q: %w", owner, err)
	}
	return links, nil
}

// ListActiveLinks returns every live, active link. Used by the destination monitor.
func (r *GormLinkRepository) ListActiveLinks(ctx context.Context) ([]models.Link, error) {
	var links []models.Link
	if err := r.db.WithContext(ctx).Where("active = ?", true).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve active links: %w", err)
	}
	return links, nil
}

// UpdateLink applies the mutable fields of upd to the owner's link and returns the new state.
func (r *GormLinkRepository) UpdateLink(ctx context.Context, owner, code string, upd models.LinkUpdate) (*models.Link, error) {
	updates := make(map[string]interface{}, 3)
	if upd.Destination != nil {
		updates["destination"] = *upd.Destination
	}
	if upd.DisplayName != nil {
		updates["display_name"] = *upd.DisplayName
	}
	if upd.Active != nil {
		updates["active"] = *upd.Active
	}

	var link models.Link
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Link{}).
			Where("owner = ? AND code = ?", owner, code).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return customerrors.ErrLinkNotFound
		}
		return tx.Where("owner = ? AND code = ?", owner, code).Take(&link).Error
	})
	if err != nil {
		if errors.Is(err, customerrors.ErrLinkNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update link %q: %w", code, err)
	}
	return &link, nil
}

// DeleteLink soft-deletes the owner's link. The row stays so the code is never reissued.
func (r *GormLinkRepository) DeleteLink(ctx context.Context, owner, code string) error {
	res := r.db.WithContext(ctx).
		Where("owner = ? AND code = ?", owner, code).
		Delete(&models.Link{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete link %q: %w", code, res.Error)
	}
	if res.RowsAffected == 0 {
		return customerrors.ErrLinkNotFound
	}
	return nil
}

// IncrementScanCount bumps the denormalised scan counter of a link.
func (r *GormLinkRepository) IncrementScanCount(ctx context.Context, linkID string) error {
	err := r.db.WithContext(ctx).Unscoped().
		Model(&models.Link{}).
		Where("id = ?", linkID).
		UpdateColumn("scan_count", gorm.Expr("scan_count + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("failed to increment scan count for link %s: %w", linkID, err)
	}
	return nil
}

// Ping checks the database connection.
func (r *GormLinkRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrCodeUniqueViolation
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
