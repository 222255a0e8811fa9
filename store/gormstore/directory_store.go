package gormstore

import (
	"context"
	"errors"

	"estate-access/models/gate"
	"estate-access/models/guard"
	"estate-access/models/resident"
	"estate-access/store"

	"gorm.io/gorm"
)

func (s *Store) FindGate(ctx context.Context, tenantID, gateID uint) (*gate.Gate, error) {
	var g gate.Gate
	err := s.DB.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", gateID, tenantID).
		First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Store) ListGates(ctx context.Context, tenantID uint) ([]gate.Gate, error) {
	var gates []gate.Gate
	err := s.DB.WithContext(ctx).
		Where("tenant_id = ? AND is_active = true", tenantID).
		Order("name ASC").
		Find(&gates).Error
	return gates, err
}

func (s *Store) CreateGate(ctx context.Context, g *gate.Gate) error {
	return s.DB.WithContext(ctx).Create(g).Error
}

func (s *Store) FindResident(ctx context.Context, tenantID, residentID uint) (*resident.Resident, error) {
	var r resident.Resident
	err := s.DB.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", residentID, tenantID).
		First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) UpdateResidentStatus(ctx context.Context, tenantID, residentID uint, status resident.ResidentStatus) error {
	res := s.DB.WithContext(ctx).
		Model(&resident.Resident{}).
		Where("id = ? AND tenant_id = ?", residentID, tenantID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) FindGuard(ctx context.Context, tenantID, guardID uint) (*guard.Guard, error) {
	var g guard.Guard
	err := s.DB.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", guardID, tenantID).
		First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}
