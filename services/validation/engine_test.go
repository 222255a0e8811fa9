package validation_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"estate-access/models/accesscode"
	"estate-access/models/gate"
	"estate-access/models/resident"
	"estate-access/models/validationlog"
	"estate-access/services/validation"
	"estate-access/store/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestEngine builds an engine over an in-memory store seeded with one
// gate and one approved resident, returning the store so tests can seed
// codes and inspect the audit trail.
func newTestEngine(t *testing.T) (*validation.Engine, *memory.Store) {
	t.Helper()
	st := memory.NewStore()
	st.AddGate(gate.Gate{ID: 1, TenantID: 1, Name: "Main Gate", IsActive: true})
	st.AddResident(resident.Resident{
		ID: 10, TenantID: 1, Name: "Ada Obi", HouseNumber: "B12",
		Status: resident.ResidentStatusApproved,
	})
	return validation.NewEngine(st, st, st), st
}

func seedCode(t *testing.T, st *memory.Store, c accesscode.AccessCode) accesscode.AccessCode {
	t.Helper()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.TenantID == 0 {
		c.TenantID = 1
	}
	if c.ResidentID == 0 {
		c.ResidentID = 10
	}
	require.NoError(t, st.CreateIfAbsent(context.Background(), &c))
	return c
}

func attempt(code string) validation.Request {
	return validation.Request{
		TenantID:  1,
		GuardID:   7,
		GuardName: "G. Musa",
		CodeValue: code,
		GateID:    1,
	}
}

func TestValidate_GuestCodeAllowedThenConsumed(t *testing.T) {
	engine, st := newTestEngine(t)
	code := seedCode(t, st, accesscode.AccessCode{
		Code:      "123456",
		PassType:  accesscode.PassTypeGuest,
		Status:    accesscode.CodeStatusActive,
		ExpiresAt: time.Now().Add(6 * time.Hour),
	})

	result, err := engine.Validate(context.Background(), attempt("123456"))
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, "Ada Obi", result.ResidentName)
	assert.Equal(t, "B12", result.HouseNumber)
	assert.Equal(t, accesscode.PassTypeGuest, result.PassType)

	stored, err := st.FindByValue(context.Background(), 1, "123456")
	require.NoError(t, err)
	assert.Equal(t, accesscode.CodeStatusUsed, stored.Status)
	require.NotNil(t, stored.UsedAt)
	assert.Equal(t, code.ID, stored.ID)

	// Second attempt immediately after: the code is spent.
	result, err = engine.Validate(context.Background(), attempt("123456"))
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, validationlog.ReasonCodeNotActive, result.Reason)

	logs := st.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, validationlog.DecisionAllow, logs[0].Decision)
	assert.Equal(t, validationlog.OutcomeSuccess, logs[0].Outcome)
	assert.Equal(t, "Main Gate", logs[0].GateName)
	assert.Equal(t, "Ada Obi", logs[0].ResidentName)
	assert.Equal(t, validationlog.DecisionDeny, logs[1].Decision)
	assert.Equal(t, validationlog.ReasonCodeNotActive, logs[1].FailureReason)
}

func TestValidate_StaffCodeIsReusable(t *testing.T) {
	engine, st := newTestEngine(t)
	seedCode(t, st, accesscode.AccessCode{
		Code:      "654321",
		PassType:  accesscode.PassTypeStaff,
		Status:    accesscode.CodeStatusActive,
		ExpiresAt: time.Now().Add(90 * 24 * time.Hour),
	})

	for i := 0; i < 3; i++ {
		result, err := engine.Validate(context.Background(), attempt("654321"))
		require.NoError(t, err)
		assert.True(t, result.Allowed, "attempt %d", i+1)
	}

	stored, err := st.FindByValue(context.Background(), 1, "654321")
	require.NoError(t, err)
	assert.Equal(t, accesscode.CodeStatusActive, stored.Status)
	assert.Nil(t, stored.UsedAt)
	assert.NotNil(t, stored.LastValidatedAt)

	assert.Len(t, st.Logs(), 3)
}

func TestValidate_GateNotFound(t *testing.T) {
	engine, st := newTestEngine(t)

	req := attempt("123456")
	req.GateID = 99
	result, err := engine.Validate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, validationlog.ReasonGateNotFound, result.Reason)

	logs := st.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, "Unknown", logs[0].GateName)
	assert.Equal(t, validationlog.ReasonGateNotFound, logs[0].FailureReason)
}

func TestValidate_CrossTenantGateLooksMissing(t *testing.T) {
	engine, st := newTestEngine(t)
	st.AddGate(gate.Gate{ID: 2, TenantID: 2, Name: "Other Estate Gate", IsActive: true})

	req := attempt("123456")
	req.GateID = 2
	result, err := engine.Validate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, validationlog.ReasonGateNotFound, result.Reason)
}

func TestValidate_UnknownCode(t *testing.T) {
	engine, st := newTestEngine(t)

	result, err := engine.Validate(context.Background(), attempt("000000"))
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, validationlog.ReasonInvalidCode, result.Reason)
	require.Len(t, st.Logs(), 1)
}

func TestValidate_CrossTenantCodeLooksMissing(t *testing.T) {
	engine, st := newTestEngine(t)
	st.AddResident(resident.Resident{
		ID: 20, TenantID: 2, Name: "Tunde Bello", HouseNumber: "A1",
		Status: resident.ResidentStatusApproved,
	})
	seedCode(t, st, accesscode.AccessCode{
		TenantID:   2,
		ResidentID: 20,
		Code:       "777777",
		PassType:   accesscode.PassTypeGuest,
		Status:     accesscode.CodeStatusActive,
		ExpiresAt:  time.Now().Add(6 * time.Hour),
	})

	result, err := engine.Validate(context.Background(), attempt("777777"))
	require.NoError(t, err)
	assert.Equal(t, validationlog.ReasonInvalidCode, result.Reason)

	// Same shape as a genuinely nonexistent code.
	logs := st.Logs()
	require.Len(t, logs, 1)
	assert.Empty(t, logs[0].ResidentName)
}

func TestValidate_BrokenResidentLinkage(t *testing.T) {
	engine, st := newTestEngine(t)
	seedCode(t, st, accesscode.AccessCode{
		ResidentID: 99, // no such resident
		Code:       "222222",
		PassType:   accesscode.PassTypeGuest,
		Status:     accesscode.CodeStatusActive,
		ExpiresAt:  time.Now().Add(6 * time.Hour),
	})

	result, err := engine.Validate(context.Background(), attempt("222222"))
	require.NoError(t, err)
	// Same reason as a missing code; the gap is not observable.
	assert.Equal(t, validationlog.ReasonInvalidCode, result.Reason)
}

func TestValidate_SuspendedResidentBlocksCode(t *testing.T) {
	engine, st := newTestEngine(t)
	st.AddResident(resident.Resident{
		ID: 11, TenantID: 1, Name: "Bisi Ade", HouseNumber: "C3",
		Status: resident.ResidentStatusSuspended,
	})
	seedCode(t, st, accesscode.AccessCode{
		ResidentID: 11,
		Code:       "333333",
		PassType:   accesscode.PassTypeStaff,
		Status:     accesscode.CodeStatusActive,
		ExpiresAt:  time.Now().Add(24 * time.Hour),
	})

	result, err := engine.Validate(context.Background(), attempt("333333"))
	require.NoError(t, err)
	assert.Equal(t, validationlog.ReasonResidentSuspended, result.Reason)

	logs := st.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, "Bisi Ade", logs[0].ResidentName)
}

func TestValidate_RevokedCode(t *testing.T) {
	engine, st := newTestEngine(t)
	seedCode(t, st, accesscode.AccessCode{
		Code:      "444444",
		PassType:  accesscode.PassTypeGuest,
		Status:    accesscode.CodeStatusRevoked,
		ExpiresAt: time.Now().Add(6 * time.Hour),
	})

	result, err := engine.Validate(context.Background(), attempt("444444"))
	require.NoError(t, err)
	assert.Equal(t, validationlog.ReasonCodeNotActive, result.Reason)
}

func TestValidate_ExpiredCodeNeverAllowed(t *testing.T) {
	engine, st := newTestEngine(t)
	seedCode(t, st, accesscode.AccessCode{
		Code:      "555555",
		PassType:  accesscode.PassTypeGuest,
		Status:    accesscode.CodeStatusActive, // still active, expiry is lazy
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	result, err := engine.Validate(context.Background(), attempt("555555"))
	require.NoError(t, err)
	assert.Equal(t, validationlog.ReasonCodeExpired, result.Reason)
}

func TestValidate_ConcurrentGuestValidationsSingleUse(t *testing.T) {
	engine, st := newTestEngine(t)
	seedCode(t, st, accesscode.AccessCode{
		Code:      "888888",
		PassType:  accesscode.PassTypeGuest,
		Status:    accesscode.CodeStatusActive,
		ExpiresAt: time.Now().Add(6 * time.Hour),
	})

	const validators = 2
	results := make([]validation.Result, validators)
	errs := make([]error, validators)

	var wg sync.WaitGroup
	wg.Add(validators)
	for i := 0; i < validators; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = engine.Validate(context.Background(), attempt("888888"))
		}(i)
	}
	wg.Wait()

	allows := 0
	for i := 0; i < validators; i++ {
		require.NoError(t, errs[i])
		if results[i].Allowed {
			allows++
		} else {
			assert.Equal(t, validationlog.ReasonCodeNotActive, results[i].Reason)
		}
	}
	assert.Equal(t, 1, allows, "exactly one validator must win the race")
	assert.Len(t, st.Logs(), validators)
}

func TestValidate_EveryAttemptProducesOneLogEntry(t *testing.T) {
	engine, st := newTestEngine(t)
	seedCode(t, st, accesscode.AccessCode{
		Code:      "123456",
		PassType:  accesscode.PassTypeGuest,
		Status:    accesscode.CodeStatusActive,
		ExpiresAt: time.Now().Add(6 * time.Hour),
	})

	attempts := []validation.Request{
		attempt("123456"),        // allow + consume
		attempt("123456"),        // deny, already used
		attempt("nope"),          // deny, unknown
		{TenantID: 1, GuardID: 7, GuardName: "G. Musa", CodeValue: "123456", GateID: 42}, // deny, bad gate
	}
	for i, req := range attempts {
		_, err := engine.Validate(context.Background(), req)
		require.NoError(t, err, "attempt %d", i)
		assert.Len(t, st.Logs(), i+1, "attempt %d must append exactly one entry", i)
	}

	seen := map[string]bool{}
	for _, l := range st.Logs() {
		assert.False(t, seen[l.ID], "log ids must be unique")
		seen[l.ID] = true
	}
}
