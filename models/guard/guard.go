package guard

import (
	"time"
)

// Guard represents a security guard who validates access codes at gates
type Guard struct {
	ID       uint `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID uint `gorm:"not null;index" json:"tenant_id"`

	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Phone    string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Guard model
func (Guard) TableName() string {
	return "guards"
}
