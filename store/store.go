// Package store defines the persistence contracts for the access-code
// engine. Services depend on these interfaces only; the gormstore package
// provides the Postgres implementation and the memory package an in-memory
// one for tests. The conditional writes declared here are the system's only
// concurrency-control mechanism.
package store

import (
	"context"
	"errors"
	"time"

	"estate-access/models/accesscode"
	"estate-access/models/botsession"
	"estate-access/models/gate"
	"estate-access/models/guard"
	"estate-access/models/resident"
	"estate-access/models/validationlog"
)

var (
	// ErrNotFound covers both "does not exist" and "exists in another
	// tenant". Callers must not be able to tell the two apart.
	ErrNotFound = errors.New("record not found")

	// ErrCodeValueTaken signals a create-if-absent conflict on
	// (tenant, code value). Issuance retries with a fresh value.
	ErrCodeValueTaken = errors.New("code value already taken")

	// ErrConditionFailed signals that the precondition of a conditional
	// write no longer held at commit time. The whole unit is rolled back.
	ErrConditionFailed = errors.New("conditional write precondition failed")
)

// CodeStore persists access codes keyed by (tenant, code value) with a
// secondary ordering by (tenant, resident).
type CodeStore interface {
	// CreateIfAbsent inserts the code, failing with ErrCodeValueTaken if
	// any code with the same (tenant, value) already exists.
	CreateIfAbsent(ctx context.Context, code *accesscode.AccessCode) error

	// FindByValue is a point lookup by (tenant, code value).
	FindByValue(ctx context.Context, tenantID uint, value string) (*accesscode.AccessCode, error)

	// FindByID looks a code up by id within a tenant and owning resident.
	// A cross-tenant or cross-owner id yields ErrNotFound.
	FindByID(ctx context.Context, tenantID, residentID uint, codeID string) (*accesscode.AccessCode, error)

	// ListByResident returns the resident's codes, newest first.
	ListByResident(ctx context.Context, tenantID, residentID uint, limit, offset int) ([]accesscode.AccessCode, error)

	// Update persists mutated attributes of an existing code.
	Update(ctx context.Context, code *accesscode.AccessCode) error

	// ConsumeGuestCode atomically transitions the code to used and appends
	// the success log entry in the same unit. The precondition
	// (status active, not expired) is evaluated by the store at commit
	// time; if it fails, nothing is written and ErrConditionFailed is
	// returned. The log write is guarded by its id so a retried delivery
	// of the same unit stays idempotent.
	ConsumeGuestCode(ctx context.Context, tenantID uint, codeID string, usedAt time.Time, entry *validationlog.ValidationLog) error

	// TouchLastValidated records a staff validation timestamp, best effort.
	TouchLastValidated(ctx context.Context, tenantID uint, codeID string, at time.Time) error

	// ExpireActiveBatch force-expires up to limit ACTIVE codes of the
	// resident and reports how many rows it transitioned. Repeated calls
	// drain the remainder, so an interrupted cascade can resume.
	ExpireActiveBatch(ctx context.Context, tenantID, residentID uint, expiresAt time.Time, limit int) (int64, error)
}

// DirectoryStore resolves tenant-scoped gates, residents and guards.
type DirectoryStore interface {
	FindGate(ctx context.Context, tenantID, gateID uint) (*gate.Gate, error)
	ListGates(ctx context.Context, tenantID uint) ([]gate.Gate, error)
	CreateGate(ctx context.Context, g *gate.Gate) error

	FindResident(ctx context.Context, tenantID, residentID uint) (*resident.Resident, error)
	UpdateResidentStatus(ctx context.Context, tenantID, residentID uint, status resident.ResidentStatus) error

	FindGuard(ctx context.Context, tenantID, guardID uint) (*guard.Guard, error)
}

// AuditStore is the append-only sink of validation attempts. Entries are
// never updated or deleted after insert.
type AuditStore interface {
	Append(ctx context.Context, entry *validationlog.ValidationLog) error
	ListByDay(ctx context.Context, tenantID uint, from, to time.Time, limit, offset int) ([]validationlog.ValidationLog, error)
}

// SessionStore persists bot chat sessions.
type SessionStore interface {
	FindSession(ctx context.Context, chatID string) (*botsession.ChatSession, error)
	SaveSession(ctx context.Context, s *botsession.ChatSession) error
	DeleteSession(ctx context.Context, chatID string) error
}
