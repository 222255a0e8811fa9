package gormstore

import (
	"context"
	"errors"
	"time"

	"estate-access/models/accesscode"
	"estate-access/models/validationlog"
	"estate-access/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store implements the store interfaces on top of a GORM Postgres handle.
// Requires gorm.Config{TranslateError: true} so unique violations surface
// as gorm.ErrDuplicatedKey.
type Store struct {
	DB *gorm.DB
}

// NewStore creates a new GORM-backed store
func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateIfAbsent(ctx context.Context, code *accesscode.AccessCode) error {
	err := s.DB.WithContext(ctx).Create(code).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return store.ErrCodeValueTaken
	}
	return err
}

func (s *Store) FindByValue(ctx context.Context, tenantID uint, value string) (*accesscode.AccessCode, error) {
	var code accesscode.AccessCode
	err := s.DB.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, value).
		First(&code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (s *Store) FindByID(ctx context.Context, tenantID, residentID uint, codeID string) (*accesscode.AccessCode, error) {
	var code accesscode.AccessCode
	err := s.DB.WithContext(ctx).
		Where("id = ? AND tenant_id = ? AND resident_id = ?", codeID, tenantID, residentID).
		First(&code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (s *Store) ListByResident(ctx context.Context, tenantID, residentID uint, limit, offset int) ([]accesscode.AccessCode, error) {
	var codes []accesscode.AccessCode
	err := s.DB.WithContext(ctx).
		Where("tenant_id = ? AND resident_id = ?", tenantID, residentID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&codes).Error
	return codes, err
}

func (s *Store) Update(ctx context.Context, code *accesscode.AccessCode) error {
	res := s.DB.WithContext(ctx).
		Model(&accesscode.AccessCode{}).
		Where("id = ? AND tenant_id = ?", code.ID, code.TenantID).
		Updates(map[string]interface{}{
			"status":     code.Status,
			"expires_at": code.ExpiresAt,
			"used_at":    code.UsedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ConsumeGuestCode runs the conditional transition and the success log
// insert in one transaction. RowsAffected == 0 means a concurrent validator
// already consumed the code; the transaction aborts without writing the log.
func (s *Store) ConsumeGuestCode(ctx context.Context, tenantID uint, codeID string, usedAt time.Time, entry *validationlog.ValidationLog) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&accesscode.AccessCode{}).
			Where("id = ? AND tenant_id = ? AND status = ? AND expires_at > ?",
				codeID, tenantID, accesscode.CodeStatusActive, usedAt).
			Updates(map[string]interface{}{
				"status":     accesscode.CodeStatusUsed,
				"used_at":    usedAt,
				"expires_at": usedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrConditionFailed
		}

		// Keyed insert so a retried delivery of this unit stays idempotent.
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(entry).Error
	})
}

func (s *Store) TouchLastValidated(ctx context.Context, tenantID uint, codeID string, at time.Time) error {
	return s.DB.WithContext(ctx).
		Model(&accesscode.AccessCode{}).
		Where("id = ? AND tenant_id = ?", codeID, tenantID).
		Update("last_validated_at", at).Error
}

// ExpireActiveBatch picks up to limit ACTIVE code ids and force-expires
// them. The two steps run in one transaction; a crashed cascade simply
// reruns and finds whatever is still ACTIVE.
func (s *Store) ExpireActiveBatch(ctx context.Context, tenantID, residentID uint, expiresAt time.Time, limit int) (int64, error) {
	var affected int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&accesscode.AccessCode{}).
			Where("tenant_id = ? AND resident_id = ? AND status = ?",
				tenantID, residentID, accesscode.CodeStatusActive).
			Limit(limit).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		res := tx.Model(&accesscode.AccessCode{}).
			Where("id IN ? AND status = ?", ids, accesscode.CodeStatusActive).
			Updates(map[string]interface{}{
				"status":     accesscode.CodeStatusExpired,
				"expires_at": expiresAt,
			})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}
