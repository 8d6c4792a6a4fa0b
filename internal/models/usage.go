package models

// UsageCounter is the per-owner count of allocated dynamic links, owned by the quota gate.
type UsageCounter struct {
	Owner string `gorm:"primaryKey;size:128"`
	Used  int64  `gorm:"not null;default:0"`
	Limit int64  `gorm:"column:plan_limit;not null"`
}

// PlanUsage is what the quota gate reports for an owner.
type PlanUsage struct {
	Used  int64 `json:"used"`
	Limit int64 `json:"limit"`
}

// Allowed reports whether one more link may be created.
func (u PlanUsage) Allowed() bool {
	return u.Used < u.Limit
}
