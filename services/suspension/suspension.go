// Package suspension implements the resident suspension cascade.
package suspension

import (
	"context"
	"time"

	"estate-access/models/resident"
	"estate-access/store"
)

// cascadePageSize caps how many codes one batch expires. The cascade loops
// until a batch comes back empty, so owners with many codes are drained
// completely before the suspend call returns.
const cascadePageSize = 100

// Service handles resident suspension and its code cascade
type Service struct {
	Codes     store.CodeStore
	Directory store.DirectoryStore
}

// NewService creates a new suspension service
func NewService(codes store.CodeStore, directory store.DirectoryStore) *Service {
	return &Service{Codes: codes, Directory: directory}
}

// SuspendResident marks the resident suspended and synchronously
// force-expires every ACTIVE code they own. The cascade runs before the
// call is considered done; an interrupted run can simply be repeated, each
// pass only sees codes still ACTIVE. Returns the number of codes expired.
func (s *Service) SuspendResident(ctx context.Context, tenantID, residentID uint) (int64, error) {
	if err := s.Directory.UpdateResidentStatus(ctx, tenantID, residentID, resident.ResidentStatusSuspended); err != nil {
		return 0, err
	}
	return s.ExpireActiveCodes(ctx, tenantID, residentID)
}

// ExpireActiveCodes drains the resident's ACTIVE codes page by page.
func (s *Service) ExpireActiveCodes(ctx context.Context, tenantID, residentID uint) (int64, error) {
	now := time.Now()
	var total int64
	for {
		n, err := s.Codes.ExpireActiveBatch(ctx, tenantID, residentID, now, cascadePageSize)
		if err != nil {
			return total, err
		}
		total += n
		if n < cascadePageSize {
			return total, nil
		}
	}
}

// ApproveResident reinstates a resident. Codes expired by an earlier
// suspension stay expired; suspension is not reversible for in-flight codes.
func (s *Service) ApproveResident(ctx context.Context, tenantID, residentID uint) error {
	return s.Directory.UpdateResidentStatus(ctx, tenantID, residentID, resident.ResidentStatusApproved)
}
