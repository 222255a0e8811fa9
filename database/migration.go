package database

import (
	"fmt"

	"estate-access/models/accesscode"
	"estate-access/models/botsession"
	"estate-access/models/gate"
	"estate-access/models/guard"
	"estate-access/models/log"
	"estate-access/models/resident"
	"estate-access/models/tenant"
	"estate-access/models/validationlog"

	"gorm.io/gorm"
)

// AutoMigrate runs auto migration for all models in dependency stages
func AutoMigrate(db *gorm.DB) error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&tenant.Estate{},
		&resident.Resident{},
		&guard.Guard{},
		&gate.Gate{},
	}

	for _, model := range stage1Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&accesscode.AccessCode{},
		&validationlog.ValidationLog{},
		&botsession.ChatSession{},
	}

	for _, model := range stage2Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Logging
	if err := db.AutoMigrate(&log.Log{}); err != nil {
		return fmt.Errorf("failed to migrate %T: %w", &log.Log{}, err)
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes(db *gorm.DB) error {
	// Code lookup path: point lookup by (tenant, value) is covered by the
	// unique index from the model tags; these cover listings and audit.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_access_codes_status ON access_codes(status)").Error; err != nil {
		return fmt.Errorf("failed to create access code status index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_validation_logs_tenant_validated_at ON validation_logs(tenant_id, validated_at)").Error; err != nil {
		return fmt.Errorf("failed to create validation log tenant/time index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_validation_logs_gate_id ON validation_logs(gate_id)").Error; err != nil {
		return fmt.Errorf("failed to create validation log gate index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_residents_tenant_status ON residents(tenant_id, status)").Error; err != nil {
		return fmt.Errorf("failed to create resident tenant/status index: %w", err)
	}
	return nil
}
