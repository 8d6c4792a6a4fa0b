package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/axellelanca/qrlinks/internal/models"
)

// GormUsageRepository is the quota gate backed by the usage_counters table.
// Owners without a row get defaultLimit and zero usage.
type GormUsageRepository struct {
	db           *gorm.DB
	defaultLimit int64
}

// NewUsageRepository crée et retourne une nouvelle instance de GormUsageRepository.
func NewUsageRepository(db *gorm.DB, defaultLimit int64) *GormUsageRepository {
	return &GormUsageRepository{db: db, defaultLimit: defaultLimit}
}

// GetPlanUsage returns the owner's used/limit pair.
func (r *GormUsageRepository) GetPlanUsage(ctx context.Context, owner string) (models.PlanUsage, error) {
	var counter models.UsageCounter
	err := r.db.WithContext(ctx).Where("owner = ?", owner).Take(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PlanUsage{Used: 0, Limit: r.defaultLimit}, nil
		}
		return models.PlanUsage{}, fmt.Errorf("failed to get plan usage for %q: %w", owner, err)
	}
	return models.PlanUsage{Used: counter.Used, Limit: counter.Limit}, nil
}

// IncrementUsage adds one to the owner's counter with a single upsert, no locking.
func (r *GormUsageRepository) IncrementUsage(ctx context.Context, owner string) error {
	counter := models.UsageCounter{Owner: owner, Used: 1, Limit: r.defaultLimit}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"used": gorm.Expr("usage_counters.used + ?", 1)}),
	}).Create(&counter).Error
	if err != nil {
		return fmt.Errorf("failed to increment usage for %q: %w", owner, err)
	}
	return nil
}

// SetPlanLimit sets the owner's plan limit, creating the row if needed.
func (r *GormUsageRepository) SetPlanLimit(ctx context.Context, owner string, limit int64) error {
	counter := models.UsageCounter{Owner: owner, Used: 0, Limit: limit}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"plan_limit": limit}),
	}).Create(&counter).Error
	if err != nil {
		return fmt.Errorf("failed to set plan limit for %q: %w", owner, err)
	}
	return nil
}
