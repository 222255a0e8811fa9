// Package issuance generates, renews and revokes access codes on behalf of
// residents.
package issuance

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"estate-access/models/accesscode"
	"estate-access/store"

	"github.com/google/uuid"
)

// maxGenerateAttempts bounds the uniqueness-retry loop. Exhausting it is
// rare and fatal to the call; issuance never loops indefinitely and never
// returns a colliding code.
const maxGenerateAttempts = 8

var (
	ErrCodeGenerationExhausted = errors.New("could not generate a unique code value")
	ErrInvalidPassType         = errors.New("invalid pass type")
	ErrNotStaffCode            = errors.New("only staff codes can be renewed")
	ErrResidentSuspended       = errors.New("resident is suspended")
)

// Service handles access-code issuance operations
type Service struct {
	Codes     store.CodeStore
	Directory store.DirectoryStore
}

// NewService creates a new issuance service
func NewService(codes store.CodeStore, directory store.DirectoryStore) *Service {
	return &Service{Codes: codes, Directory: directory}
}

// GenerateCodeValue generates a random 6-digit code value
func (s *Service) GenerateCodeValue() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// IssueCode creates a new ACTIVE code for the resident with an expiry set
// by pass type (guest 6 hours, staff 183 days). Value collisions within the
// tenant are resolved by retrying with a fresh random value.
func (s *Service) IssueCode(ctx context.Context, tenantID, residentID uint, passType accesscode.PassType) (*accesscode.AccessCode, error) {
	if !passType.IsValid() {
		return nil, ErrInvalidPassType
	}

	res, err := s.Directory.FindResident(ctx, tenantID, residentID)
	if err != nil {
		return nil, err
	}
	if res.IsSuspended() {
		return nil, ErrResidentSuspended
	}

	now := time.Now()
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		value, err := s.GenerateCodeValue()
		if err != nil {
			return nil, fmt.Errorf("failed to generate code value: %w", err)
		}

		code := &accesscode.AccessCode{
			ID:         uuid.NewString(),
			TenantID:   tenantID,
			ResidentID: residentID,
			Code:       value,
			PassType:   passType,
			Status:     accesscode.CodeStatusActive,
			ExpiresAt:  now.Add(accesscode.ValidityFor(passType)),
		}

		err = s.Codes.CreateIfAbsent(ctx, code)
		if errors.Is(err, store.ErrCodeValueTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return code, nil
	}

	return nil, ErrCodeGenerationExhausted
}

// RenewStaffCode resets a staff code's expiry to 183 days out and forces it
// back to ACTIVE regardless of its current status. Renewal is an
// administrative override; the code keeps its identity and value. Ids that
// are cross-tenant or cross-owner come back as not-found.
func (s *Service) RenewStaffCode(ctx context.Context, tenantID, residentID uint, codeID string) (*accesscode.AccessCode, error) {
	code, err := s.Codes.FindByID(ctx, tenantID, residentID, codeID)
	if err != nil {
		return nil, err
	}
	if code.PassType != accesscode.PassTypeStaff {
		return nil, ErrNotStaffCode
	}

	code.Status = accesscode.CodeStatusActive
	code.ExpiresAt = time.Now().Add(accesscode.StaffValidity)
	if err := s.Codes.Update(ctx, code); err != nil {
		return nil, err
	}
	return code, nil
}

// RevokeCode terminates a code immediately. Idempotent: revoking an already
// revoked or used code just pins it revoked again.
func (s *Service) RevokeCode(ctx context.Context, tenantID, residentID uint, codeID string) error {
	code, err := s.Codes.FindByID(ctx, tenantID, residentID, codeID)
	if err != nil {
		return err
	}

	now := time.Now()
	code.Status = accesscode.CodeStatusRevoked
	code.ExpiresAt = now
	return s.Codes.Update(ctx, code)
}

// ListCodes returns the resident's codes, newest first.
func (s *Service) ListCodes(ctx context.Context, tenantID, residentID uint, limit, offset int) ([]accesscode.AccessCode, error) {
	return s.Codes.ListByResident(ctx, tenantID, residentID, limit, offset)
}
