package gate

import (
	"time"
)

// Gate represents a named entry point of an estate. Gates are descriptive
// only; they attribute validation attempts and fence cross-tenant references.
type Gate struct {
	ID       uint `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID uint `gorm:"not null;index" json:"tenant_id"`

	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Gate model
func (Gate) TableName() string {
	return "gates"
}
