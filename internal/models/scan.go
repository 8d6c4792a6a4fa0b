package models

import "time"

// ScanEvent is one recorded observation of a redirect being followed.
// LinkID is a weak reference: no foreign key, the event outlives the link.
type ScanEvent struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	LinkID       string    `gorm:"index;size:36;not null" json:"link_id"`
	Timestamp    time.Time `gorm:"index;not null" json:"timestamp"`
	ClientIP     string    `gorm:"size:64" json:"client_ip,omitempty"`
	UserAgentRaw string    `gorm:"type:text" json:"user_agent,omitempty"`
	Referer      string    `gorm:"size:512" json:"referer,omitempty"`
	Country      string    `gorm:"size:64" json:"country,omitempty"`
	City         string    `gorm:"size:128" json:"city,omitempty"`
	Device       string    `gorm:"size:16" json:"device"`
	Browser      string    `gorm:"size:16" json:"browser"`
	OS           string    `gorm:"size:16" json:"os"`
}

// ScanEventInput is the raw request metadata handed from the redirect handler
// to the scan workers. Classification happens off the hot path.
type ScanEventInput struct {
	LinkID    string
	Timestamp time.Time
	ClientIP  string
	UserAgent string
	Referer   string
	Country   string
	City      string
}

// ScanStats aggregates the scan events of one link.
type ScanStats struct {
	TotalScans int64            `json:"total_scans"`
	Devices    map[string]int64 `json:"devices"`
	Browsers   map[string]int64 `json:"browsers"`
	OS         map[string]int64 `json:"os"`
	Countries  map[string]int64 `json:"countries"`
}
