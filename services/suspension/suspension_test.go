package suspension_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"estate-access/models/accesscode"
	"estate-access/models/gate"
	"estate-access/models/resident"
	"estate-access/models/validationlog"
	"estate-access/services/suspension"
	"estate-access/services/validation"
	"estate-access/store"
	"estate-access/store/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*suspension.Service, *memory.Store) {
	t.Helper()
	st := memory.NewStore()
	st.AddResident(resident.Resident{
		ID: 10, TenantID: 1, Name: "Ada Obi", HouseNumber: "B12",
		Status: resident.ResidentStatusApproved,
	})
	return suspension.NewService(st, st), st
}

func seedActiveCodes(t *testing.T, st *memory.Store, residentID uint, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		code := accesscode.AccessCode{
			ID:         uuid.NewString(),
			TenantID:   1,
			ResidentID: residentID,
			Code:       strconv.Itoa(100000 + int(residentID)*1000 + i),
			PassType:   accesscode.PassTypeGuest,
			Status:     accesscode.CodeStatusActive,
			ExpiresAt:  time.Now().Add(6 * time.Hour),
		}
		require.NoError(t, st.CreateIfAbsent(context.Background(), &code))
	}
}

func TestSuspendResident_CascadeIsComplete(t *testing.T) {
	svc, st := newTestService(t)
	st.AddResident(resident.Resident{
		ID: 11, TenantID: 1, Status: resident.ResidentStatusApproved,
	})
	seedActiveCodes(t, st, 10, 5)
	seedActiveCodes(t, st, 11, 2) // another resident, untouched

	count, err := svc.SuspendResident(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	res, err := st.FindResident(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, resident.ResidentStatusSuspended, res.Status)

	codes, err := st.ListByResident(context.Background(), 1, 10, 100, 0)
	require.NoError(t, err)
	for _, c := range codes {
		assert.Equal(t, accesscode.CodeStatusExpired, c.Status)
		assert.False(t, c.ExpiresAt.After(time.Now()))
	}

	others, err := st.ListByResident(context.Background(), 1, 11, 100, 0)
	require.NoError(t, err)
	for _, c := range others {
		assert.Equal(t, accesscode.CodeStatusActive, c.Status)
	}
}

func TestSuspendResident_DrainsAcrossPages(t *testing.T) {
	svc, st := newTestService(t)
	// More codes than one cascade batch, so the loop must run again.
	seedActiveCodes(t, st, 10, 205)

	count, err := svc.SuspendResident(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(205), count)

	codes, err := st.ListByResident(context.Background(), 1, 10, 500, 0)
	require.NoError(t, err)
	require.Len(t, codes, 205)
	for _, c := range codes {
		assert.Equal(t, accesscode.CodeStatusExpired, c.Status)
	}
}

func TestExpireActiveCodes_IdempotentRerun(t *testing.T) {
	svc, st := newTestService(t)
	seedActiveCodes(t, st, 10, 3)

	count, err := svc.ExpireActiveCodes(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// An interrupted cascade is simply rerun; nothing is left to expire.
	count, err = svc.ExpireActiveCodes(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestSuspendResident_UnknownResident(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.SuspendResident(context.Background(), 1, 99)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSuspensionIsNotReversibleForInFlightCodes(t *testing.T) {
	svc, st := newTestService(t)
	st.AddGate(gate.Gate{ID: 1, TenantID: 1, Name: "Main Gate", IsActive: true})
	engine := validation.NewEngine(st, st, st)

	code := accesscode.AccessCode{
		ID:         uuid.NewString(),
		TenantID:   1,
		ResidentID: 10,
		Code:       "123456",
		PassType:   accesscode.PassTypeGuest,
		Status:     accesscode.CodeStatusActive,
		ExpiresAt:  time.Now().Add(6 * time.Hour),
	}
	require.NoError(t, st.CreateIfAbsent(context.Background(), &code))

	_, err := svc.SuspendResident(context.Background(), 1, 10)
	require.NoError(t, err)

	req := validation.Request{TenantID: 1, GuardID: 7, GuardName: "G. Musa", CodeValue: "123456", GateID: 1}
	result, err := engine.Validate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, validationlog.ReasonResidentSuspended, result.Reason)

	// Reinstating the resident does not revive codes the cascade expired.
	require.NoError(t, svc.ApproveResident(context.Background(), 1, 10))
	result, err = engine.Validate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Contains(t, []validationlog.FailureReason{
		validationlog.ReasonCodeNotActive,
		validationlog.ReasonCodeExpired,
	}, result.Reason)
}
