package tenant

import (
	"time"
)

// Estate represents a tenant: the isolation boundary for every entity and
// lookup. Subscription and billing state live in the external billing system.
type Estate struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Estate model
func (Estate) TableName() string {
	return "estates"
}
