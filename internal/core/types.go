package core

import (
	"encoding/json"
	"time"
)

const (
	AidenName    = "Aiden"
	AidenVersion = "1.0.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultUserType is the user type assumed when a request carries none.
// The prompt composer only emits a user-type clause for other values.
const DefaultUserType = "user"

type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one conversation's append-only history. Message order is
// insertion order; nothing ever rewrites or reorders the sequence.
type Session struct {
	ID           string    `json:"id"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessed time.Time `json:"last_accessed"`
}

// PageContext describes the page the user is currently on, sent by the
// client alongside a chat message to ground the assistant's reply.
type PageContext struct {
	PageTitle string   `json:"page_title"`
	URL       string   `json:"url"`
	Features  []string `json:"features,omitempty"`
}

// OnboardingFlow is an authored sequence of guidance steps targeting one
// user type. Steps are kept opaque; the assistant gateway only stores and
// lists them.
type OnboardingFlow struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Steps          json.RawMessage `json:"steps"`
	TargetUserType string          `json:"target_user_type"`
	CreatedAt      time.Time       `json:"created_at"`
}
