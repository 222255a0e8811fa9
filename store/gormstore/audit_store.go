package gormstore

import (
	"context"
	"time"

	"estate-access/models/validationlog"
)

// Append inserts one audit entry. Plain insert keyed by a fresh id; rows
// are never updated or deleted afterwards.
func (s *Store) Append(ctx context.Context, entry *validationlog.ValidationLog) error {
	return s.DB.WithContext(ctx).Create(entry).Error
}

func (s *Store) ListByDay(ctx context.Context, tenantID uint, from, to time.Time, limit, offset int) ([]validationlog.ValidationLog, error) {
	var entries []validationlog.ValidationLog
	err := s.DB.WithContext(ctx).
		Where("tenant_id = ? AND validated_at >= ? AND validated_at < ?", tenantID, from, to).
		Order("validated_at DESC").
		Limit(limit).Offset(offset).
		Find(&entries).Error
	return entries, err
}
