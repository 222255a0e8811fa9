// Package validation implements the gate validation engine. Both entry
// channels (the guard HTTP endpoint and the conversational bot) call
// Engine.Validate with the same contract; neither carries business logic of
// its own, so the two channels cannot diverge.
package validation

import (
	"context"
	"errors"
	"time"

	"estate-access/logger"
	"estate-access/models/accesscode"
	"estate-access/models/validationlog"
	"estate-access/store"

	"github.com/google/uuid"
)

// Request carries one validation attempt: the authenticated guard, the
// typed code value and the gate the guard is posted at.
type Request struct {
	TenantID  uint
	GuardID   uint
	GuardName string
	CodeValue string
	GateID    uint
}

// Result is the engine's tagged verdict. On allow, the resident snapshot is
// filled for display at the gate.
type Result struct {
	Allowed      bool
	Reason       validationlog.FailureReason
	ResidentName string
	HouseNumber  string
	PassType     accesscode.PassType
}

// Engine resolves the gate, code and resident, applies the code state
// machine and appends exactly one audit entry per attempt. It holds no
// state of its own; the store's conditional write is the only
// synchronization between concurrent validators.
type Engine struct {
	Codes     store.CodeStore
	Directory store.DirectoryStore
	Audit     store.AuditStore
}

// NewEngine creates a new validation engine
func NewEngine(codes store.CodeStore, directory store.DirectoryStore, audit store.AuditStore) *Engine {
	return &Engine{
		Codes:     codes,
		Directory: directory,
		Audit:     audit,
	}
}

// snapshot is the denormalized resident/code detail written into the audit
// entry. Filled progressively as resolution steps succeed.
type snapshot struct {
	gateID       uint
	gateName     string
	residentName string
	houseNumber  string
	passType     string
}

// Validate runs the ordered validation steps. Every terminal branch writes
// one audit entry before returning; only an unreachable store aborts the
// attempt with an error and no entry.
func (e *Engine) Validate(ctx context.Context, req Request) (Result, error) {
	now := time.Now()
	snap := snapshot{gateName: "Unknown"}

	// Step 1: resolve the gate. Cross-tenant gates look like missing gates.
	g, err := e.Directory.FindGate(ctx, req.TenantID, req.GateID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return e.deny(ctx, req, snap, validationlog.ReasonGateNotFound, now)
		}
		return Result{}, err
	}
	snap.gateID = g.ID
	snap.gateName = g.Name

	// Step 2: point lookup by (tenant, code value).
	code, err := e.Codes.FindByValue(ctx, req.TenantID, req.CodeValue)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return e.deny(ctx, req, snap, validationlog.ReasonInvalidCode, now)
		}
		return Result{}, err
	}

	// Step 3: resolve the owning resident. A broken resident linkage is
	// reported exactly like a missing code so callers cannot probe which
	// of the two it was.
	res, err := e.Directory.FindResident(ctx, req.TenantID, code.ResidentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return e.deny(ctx, req, snap, validationlog.ReasonInvalidCode, now)
		}
		return Result{}, err
	}
	snap.residentName = res.Name
	snap.houseNumber = res.HouseNumber
	snap.passType = code.PassType.String()

	// Step 4: a suspended resident hard-blocks every code it owns.
	if res.IsSuspended() {
		return e.deny(ctx, req, snap, validationlog.ReasonResidentSuspended, now)
	}

	// Step 5: code status gate.
	if code.Status != accesscode.CodeStatusActive {
		return e.deny(ctx, req, snap, validationlog.ReasonCodeNotActive, now)
	}

	// Step 6: expiry gate. Expiry is lazy; active status alone proves nothing.
	if !now.Before(code.ExpiresAt) {
		return e.deny(ctx, req, snap, validationlog.ReasonCodeExpired, now)
	}

	allowed := Result{
		Allowed:      true,
		ResidentName: res.Name,
		HouseNumber:  res.HouseNumber,
		PassType:     code.PassType,
	}

	if code.PassType == accesscode.PassTypeGuest {
		// Step 7: atomic consume. The status transition and the success
		// entry commit as one unit; if a concurrent validator won the
		// race the unit aborts and this attempt is denied, not retried.
		entry := e.newEntry(req, snap, validationlog.DecisionAllow, validationlog.ReasonNone, now)
		err := e.Codes.ConsumeGuestCode(ctx, req.TenantID, code.ID, now, entry)
		if err != nil {
			if errors.Is(err, store.ErrConditionFailed) {
				return e.deny(ctx, req, snap, validationlog.ReasonCodeNotActive, now)
			}
			return Result{}, err
		}
		return allowed, nil
	}

	// Step 8: staff codes are reusable; record the validation without
	// touching status. The timestamp update is best effort.
	if err := e.Codes.TouchLastValidated(ctx, req.TenantID, code.ID, now); err != nil {
		logger.Warning("Failed to update last_validated_at for code " + code.ID)
	}

	entry := e.newEntry(req, snap, validationlog.DecisionAllow, validationlog.ReasonNone, now)
	if err := e.Audit.Append(ctx, entry); err != nil {
		return Result{}, err
	}
	return allowed, nil
}

// deny appends the failure entry and returns the deny verdict. If the audit
// write itself fails the attempt aborts with an error; a deny is never
// silent and never assumed logged.
func (e *Engine) deny(ctx context.Context, req Request, snap snapshot, reason validationlog.FailureReason, now time.Time) (Result, error) {
	entry := e.newEntry(req, snap, validationlog.DecisionDeny, reason, now)
	if err := e.Audit.Append(ctx, entry); err != nil {
		return Result{}, err
	}
	return Result{Allowed: false, Reason: reason}, nil
}

func (e *Engine) newEntry(req Request, snap snapshot, decision validationlog.Decision, reason validationlog.FailureReason, now time.Time) *validationlog.ValidationLog {
	outcome := validationlog.OutcomeSuccess
	if decision == validationlog.DecisionDeny {
		outcome = validationlog.OutcomeFailure
	}
	return &validationlog.ValidationLog{
		ID:            uuid.NewString(),
		TenantID:      req.TenantID,
		GateID:        snap.gateID,
		GateName:      snap.gateName,
		CodeValue:     req.CodeValue,
		Decision:      decision,
		Outcome:       outcome,
		FailureReason: reason,
		ResidentName:  snap.residentName,
		HouseNumber:   snap.houseNumber,
		PassType:      snap.passType,
		GuardID:       req.GuardID,
		GuardName:     req.GuardName,
		ValidatedAt:   now,
	}
}
