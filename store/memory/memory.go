// Package memory provides a mutex-guarded in-memory implementation of the
// store interfaces. It backs the service tests; the conditional-write
// semantics match the Postgres implementation, including the atomicity of
// the guest consume unit.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"estate-access/models/accesscode"
	"estate-access/models/botsession"
	"estate-access/models/gate"
	"estate-access/models/guard"
	"estate-access/models/resident"
	"estate-access/models/validationlog"
	"estate-access/store"
)

type Store struct {
	mu sync.Mutex

	codes       map[string]*accesscode.AccessCode
	codeByValue map[string]string // tenant|value -> code id

	gates     map[uint]*gate.Gate
	residents map[uint]*resident.Resident
	guards    map[uint]*guard.Guard

	logs     []validationlog.ValidationLog
	sessions map[string]*botsession.ChatSession
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		codes:       make(map[string]*accesscode.AccessCode),
		codeByValue: make(map[string]string),
		gates:       make(map[uint]*gate.Gate),
		residents:   make(map[uint]*resident.Resident),
		guards:      make(map[uint]*guard.Guard),
		sessions:    make(map[string]*botsession.ChatSession),
	}
}

func valueKey(tenantID uint, value string) string {
	return fmt.Sprintf("%d|%s", tenantID, value)
}

// ---- seeding helpers for tests ----

func (s *Store) AddGate(g gate.Gate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gates[g.ID] = &g
}

func (s *Store) AddResident(r resident.Resident) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.residents[r.ID] = &r
}

func (s *Store) AddGuard(g guard.Guard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guards[g.ID] = &g
}

// Logs returns a snapshot of every appended audit entry.
func (s *Store) Logs() []validationlog.ValidationLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]validationlog.ValidationLog, len(s.logs))
	copy(out, s.logs)
	return out
}

// ---- CodeStore ----

func (s *Store) CreateIfAbsent(ctx context.Context, code *accesscode.AccessCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := valueKey(code.TenantID, code.Code)
	if _, taken := s.codeByValue[key]; taken {
		return store.ErrCodeValueTaken
	}
	cp := *code
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	cp.UpdatedAt = cp.CreatedAt
	s.codes[cp.ID] = &cp
	s.codeByValue[key] = cp.ID
	return nil
}

func (s *Store) FindByValue(ctx context.Context, tenantID uint, value string) (*accesscode.AccessCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.codeByValue[valueKey(tenantID, value)]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *s.codes[id]
	return &cp, nil
}

func (s *Store) FindByID(ctx context.Context, tenantID, residentID uint, codeID string) (*accesscode.AccessCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.codes[codeID]
	if !ok || c.TenantID != tenantID || c.ResidentID != residentID {
		return nil, store.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *Store) ListByResident(ctx context.Context, tenantID, residentID uint, limit, offset int) ([]accesscode.AccessCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []accesscode.AccessCode
	for _, c := range s.codes {
		if c.TenantID == tenantID && c.ResidentID == residentID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) Update(ctx context.Context, code *accesscode.AccessCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.codes[code.ID]
	if !ok || c.TenantID != code.TenantID {
		return store.ErrNotFound
	}
	c.Status = code.Status
	c.ExpiresAt = code.ExpiresAt
	c.UsedAt = code.UsedAt
	c.UpdatedAt = time.Now()
	return nil
}

func (s *Store) ConsumeGuestCode(ctx context.Context, tenantID uint, codeID string, usedAt time.Time, entry *validationlog.ValidationLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.codes[codeID]
	if !ok || c.TenantID != tenantID {
		return store.ErrConditionFailed
	}
	if c.Status != accesscode.CodeStatusActive || !usedAt.Before(c.ExpiresAt) {
		return store.ErrConditionFailed
	}

	c.Status = accesscode.CodeStatusUsed
	used := usedAt
	c.UsedAt = &used
	c.ExpiresAt = usedAt
	c.UpdatedAt = time.Now()

	for _, l := range s.logs {
		if l.ID == entry.ID {
			return nil // retried delivery of the same unit
		}
	}
	s.logs = append(s.logs, *entry)
	return nil
}

func (s *Store) TouchLastValidated(ctx context.Context, tenantID uint, codeID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.codes[codeID]
	if !ok || c.TenantID != tenantID {
		return store.ErrNotFound
	}
	t := at
	c.LastValidatedAt = &t
	return nil
}

func (s *Store) ExpireActiveBatch(ctx context.Context, tenantID, residentID uint, expiresAt time.Time, limit int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, c := range s.codes {
		if n >= int64(limit) {
			break
		}
		if c.TenantID == tenantID && c.ResidentID == residentID && c.Status == accesscode.CodeStatusActive {
			c.Status = accesscode.CodeStatusExpired
			c.ExpiresAt = expiresAt
			c.UpdatedAt = time.Now()
			n++
		}
	}
	return n, nil
}

// ---- DirectoryStore ----

func (s *Store) FindGate(ctx context.Context, tenantID, gateID uint) (*gate.Gate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.gates[gateID]
	if !ok || g.TenantID != tenantID {
		return nil, store.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (s *Store) ListGates(ctx context.Context, tenantID uint) ([]gate.Gate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []gate.Gate
	for _, g := range s.gates {
		if g.TenantID == tenantID && g.IsActive {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateGate(ctx context.Context, g *gate.Gate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g.ID == 0 {
		g.ID = uint(len(s.gates) + 1)
	}
	cp := *g
	s.gates[cp.ID] = &cp
	return nil
}

func (s *Store) FindResident(ctx context.Context, tenantID, residentID uint) (*resident.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.residents[residentID]
	if !ok || r.TenantID != tenantID {
		return nil, store.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *Store) UpdateResidentStatus(ctx context.Context, tenantID, residentID uint, status resident.ResidentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.residents[residentID]
	if !ok || r.TenantID != tenantID {
		return store.ErrNotFound
	}
	r.Status = status
	return nil
}

func (s *Store) FindGuard(ctx context.Context, tenantID, guardID uint) (*guard.Guard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.guards[guardID]
	if !ok || g.TenantID != tenantID {
		return nil, store.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

// ---- AuditStore ----

func (s *Store) Append(ctx context.Context, entry *validationlog.ValidationLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, *entry)
	return nil
}

func (s *Store) ListByDay(ctx context.Context, tenantID uint, from, to time.Time, limit, offset int) ([]validationlog.ValidationLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []validationlog.ValidationLog
	for _, l := range s.logs {
		if l.TenantID == tenantID && !l.ValidatedAt.Before(from) && l.ValidatedAt.Before(to) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ValidatedAt.After(out[j].ValidatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ---- SessionStore ----

func (s *Store) FindSession(ctx context.Context, chatID string) (*botsession.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *Store) SaveSession(ctx context.Context, sess *botsession.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *sess
	s.sessions[cp.ChatID] = &cp
	return nil
}

func (s *Store) DeleteSession(ctx context.Context, chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, chatID)
	return nil
}
