package gormstore

import (
	"context"
	"errors"

	"estate-access/models/botsession"
	"estate-access/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) FindSession(ctx context.Context, chatID string) (*botsession.ChatSession, error) {
	var sess botsession.ChatSession
	err := s.DB.WithContext(ctx).
		Where("chat_id = ?", chatID).
		First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// SaveSession upserts on chat_id so a chat always has at most one session.
func (s *Store) SaveSession(ctx context.Context, sess *botsession.ChatSession) error {
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"state", "gate_id", "tenant_id", "guard_id", "updated_at"}),
	}).Create(sess).Error
}

func (s *Store) DeleteSession(ctx context.Context, chatID string) error {
	return s.DB.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Delete(&botsession.ChatSession{}).Error
}
