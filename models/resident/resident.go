package resident

import (
	"time"
)

// Resident represents an estate resident who can issue access codes
type Resident struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID uint   `gorm:"not null;index" json:"tenant_id"`

	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Phone       string         `gorm:"type:varchar(20);not null;index" json:"phone"`
	HouseNumber string         `gorm:"type:varchar(50);not null" json:"house_number"`
	Status      ResidentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Resident model
func (Resident) TableName() string {
	return "residents"
}

// ResidentStatus represents the approval state of a resident
type ResidentStatus string

const (
	ResidentStatusPending   ResidentStatus = "pending"
	ResidentStatusApproved  ResidentStatus = "approved"
	ResidentStatusSuspended ResidentStatus = "suspended"
)

func (rs ResidentStatus) String() string {
	return string(rs)
}

func (rs ResidentStatus) IsValid() bool {
	switch rs {
	case ResidentStatusPending, ResidentStatusApproved, ResidentStatusSuspended:
		return true
	default:
		return false
	}
}

// IsSuspended reports whether codes owned by this resident are hard-blocked
func (r *Resident) IsSuspended() bool {
	return r.Status == ResidentStatusSuspended
}
