package accesscode

import (
	"time"
)

// AccessCode represents a single digital gate pass issued by a resident.
// The code value is a 6-digit numeric string, unique per estate; the row id
// is the immutable identity and never changes across renewals.
type AccessCode struct {
	ID         string `gorm:"type:varchar(36);primaryKey" json:"id"`
	TenantID   uint   `gorm:"not null;index:idx_access_codes_tenant_code,unique,priority:1;index:idx_access_codes_tenant_resident,priority:1" json:"tenant_id"`
	ResidentID uint   `gorm:"not null;index:idx_access_codes_tenant_resident,priority:2" json:"resident_id"`

	Code     string     `gorm:"type:varchar(6);not null;index:idx_access_codes_tenant_code,unique,priority:2" json:"code"`
	PassType PassType   `gorm:"type:varchar(20);not null" json:"pass_type"`
	Status   CodeStatus `gorm:"type:varchar(20);not null" json:"status"`

	ExpiresAt       time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt          *time.Time `json:"used_at,omitempty"`
	LastValidatedAt *time.Time `json:"last_validated_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the AccessCode model
func (AccessCode) TableName() string {
	return "access_codes"
}

// IsExpired checks if the code has passed its expiry timestamp
func (a *AccessCode) IsExpired() bool {
	return !time.Now().Before(a.ExpiresAt)
}

// IsUsable checks if the code can still grant entry (status and expiry;
// the owning resident's status is checked separately by the engine)
func (a *AccessCode) IsUsable() bool {
	return a.Status == CodeStatusActive && !a.IsExpired()
}

// Validity durations by pass type.
const (
	GuestValidity = 6 * time.Hour
	StaffValidity = 183 * 24 * time.Hour
)

// ValidityFor returns the expiry window for a pass type
func ValidityFor(pt PassType) time.Duration {
	if pt == PassTypeStaff {
		return StaffValidity
	}
	return GuestValidity
}
