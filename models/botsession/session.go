package botsession

import (
	"time"
)

// ChatSession holds the conversational state of one guard chat. The bot
// flow is two steps (pick a gate, type a code); persisting the step keeps
// the webhook handler stateless across processes.
type ChatSession struct {
	ID       string `gorm:"type:varchar(36);primaryKey" json:"id"`
	ChatID   string `gorm:"type:varchar(64);not null;uniqueIndex" json:"chat_id"`
	TenantID uint   `gorm:"not null;index" json:"tenant_id"`
	GuardID  uint   `gorm:"not null" json:"guard_id"`

	State  SessionState `gorm:"type:varchar(30);not null" json:"state"`
	GateID uint         `json:"gate_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the ChatSession model
func (ChatSession) TableName() string {
	return "chat_sessions"
}

// SessionState represents where a chat is in the validate conversation
type SessionState string

const (
	StateAwaitingGate SessionState = "awaiting_gate"
	StateAwaitingCode SessionState = "awaiting_code"
)
