package models

import (
	"time"

	"gorm.io/gorm"
)

// Link représente un lien court dynamique dans la base de données.
// Code is unique over the lifetime of the table: rows are soft-deleted so the
// unique index keeps holding deleted codes.
type Link struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Code        string         `gorm:"uniqueIndex;size:16;not null" json:"code"`
	Owner       string         `gorm:"index;size:128;not null" json:"owner"`
	Destination string         `gorm:"type:text;not null" json:"destination_url"`
	DisplayName string         `gorm:"size:255" json:"name,omitempty"`
	Active      bool           `gorm:"not null;default:true" json:"active"`
	ScanCount   int64          `gorm:"not null;default:0" json:"scan_count"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// LinkUpdate carries the mutable fields of a Link. Nil means "leave unchanged".
type LinkUpdate struct {
	Destination *string
	DisplayName *string
	Active      *bool
}

// IsEmpty reports whether the update would change nothing.
func (u LinkUpdate) IsEmpty() bool {
	return u.Destination == nil && u.DisplayName == nil && u.Active == nil
}
