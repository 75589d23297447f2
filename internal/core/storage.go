package core

import (
	"context"
	"time"
)

// SessionStore is the only shared mutable resource in the system. Append
// must be atomic at the store level (a single insert, never a
// read-modify-write of the full history) so that concurrent turns on the
// same key never lose messages. Read returns a snapshot with no isolation
// guarantee beyond "no torn message".
type SessionStore interface {
	GetOrCreate(ctx context.Context, key string) (Session, error)
	Append(ctx context.Context, key string, msg Message) error
	Read(ctx context.Context, key string) ([]Message, error)
	Delete(ctx context.Context, key string) error
}

// SessionReaper deletes sessions idle since before cutoff. Kept separate
// from SessionStore: expiry is a pluggable lifecycle policy, not part of
// the append contract.
type SessionReaper interface {
	DeleteIdle(ctx context.Context, cutoff time.Time) (int64, error)
}

type FlowsRepository interface {
	SaveFlow(ctx context.Context, flow OnboardingFlow) error
	ListFlows(ctx context.Context) ([]OnboardingFlow, error)
}
