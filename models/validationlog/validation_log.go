package validationlog

import (
	"time"
)

// ValidationLog is the append-only audit record of one validation attempt.
// Resident and gate details are denormalized at write time so the trail
// stays readable even after the referenced rows change or disappear.
type ValidationLog struct {
	ID       string `gorm:"type:varchar(36);primaryKey" json:"id"`
	TenantID uint   `gorm:"not null;index" json:"tenant_id"`

	GateID   uint   `gorm:"index" json:"gate_id"`
	GateName string `gorm:"type:varchar(255);not null" json:"gate_name"`

	CodeValue     string        `gorm:"type:varchar(6);not null" json:"code_value"`
	Decision      Decision      `gorm:"type:varchar(10);not null" json:"decision"`
	Outcome       Outcome       `gorm:"type:varchar(10);not null" json:"outcome"`
	FailureReason FailureReason `gorm:"type:varchar(30)" json:"failure_reason,omitempty"`

	ResidentName string `gorm:"type:varchar(255)" json:"resident_name,omitempty"`
	HouseNumber  string `gorm:"type:varchar(50)" json:"house_number,omitempty"`
	PassType     string `gorm:"type:varchar(20)" json:"pass_type,omitempty"`

	GuardID   uint   `gorm:"not null" json:"guard_id"`
	GuardName string `gorm:"type:varchar(255);not null" json:"guard_name"`

	ValidatedAt time.Time `gorm:"not null;index" json:"validated_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the ValidationLog model
func (ValidationLog) TableName() string {
	return "validation_logs"
}
