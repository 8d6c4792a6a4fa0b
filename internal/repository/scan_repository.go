package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/axellelanca/qrlinks/internal/models"
)

// GormScanRepository stores scan events. It is append-only.
type GormScanRepository struct {
	db *gorm.DB
}

// NewScanRepository crée et retourne une nouvelle instance de GormScanRepository.
func NewScanRepository(db *gorm.DB) *GormScanRepository {
	return &GormScanRepository{db: db}
}

// CreateScan insère un nouvel événement de scan dans la base de données.
func (r *GormScanRepository) CreateScan(ctx context.Context, scan *models.ScanEvent) error {
	if err := r.db.WithContext(ctx).Create(scan).Error; err != nil {
		return fmt.Errorf("failed to create scan event: %w", err)
	}
	return nil
}

// CountScansByLinkID compte le nombre total de scans pour un ID de lien donné.
func (r *GormScanRepository) CountScansByLinkID(ctx context.Context, linkID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ScanEvent{}).
		Where("link_id = ?", linkID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count scans for link %s: %w", linkID, err)
	}
	return count, nil
}

type bucket struct {
	Label string
	Total int64
}

// ScanStats aggregates the events of a link by device, browser, OS and country.
func (r *GormScanRepository) ScanStats(ctx context.Context, linkID string) (*models.ScanStats, error) {
	total, err := r.CountScansByLinkID(ctx, linkID)
	if err != nil {
		return nil, err
	}

	stats := &models.ScanStats{TotalScans: total}
	breakdowns := []struct {
		column string
		target *map[string]int64
	}{
		{"device", &stats.Devices},
		{"browser", &stats.Browsers},
		{"os", &stats.OS},
		{"country", &stats.Countries},
	}
	for _, b := range breakdowns {
		m, err := r.breakdown(ctx, linkID, b.column)
		if err != nil {
			return nil, err
		}
		*b.target = m
	}
	return stats, nil
}

func (r *GormScanRepository) breakdown(ctx context.Context, linkID, column string) (map[string]int64, error) {
	var rows []bucket
	err := r.db.WithContext(ctx).
		Model(&models.ScanEvent{}).
		Select(column+" AS label, COUNT(*) AS total").
		Where("link_id = ?", linkID).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate scans by %s: %w", column, err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		label := row.Label
		if label == "" {
			label = "unknown"
		}
		out[label] += row.Total
	}
	return out, nil
}
