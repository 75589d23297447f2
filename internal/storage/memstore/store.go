// Package memstore is the in-process SessionStore adapter. It backs tests
// and dev runs (STORAGE_DRIVER=memory); a mutex around each operation gives
// the same atomic-append guarantee the sqlite adapter gets from single
// INSERT statements.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/sandevgo/aiden/internal/core"
)

type sessionRecord struct {
	createdAt    time.Time
	lastAccessed time.Time
	messages     []core.Message
}

type Store struct {
	mu       sync.RWMutex
	sessions map[string]*sessionRecord
	flows    []core.OnboardingFlow
}

func New() *Store {
	return &Store{sessions: make(map[string]*sessionRecord)}
}

func (s *Store) GetOrCreate(_ context.Context, key string) (core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.getOrCreateLocked(key)
	return core.Session{
		ID:           key,
		Messages:     copyMessages(rec.messages),
		CreatedAt:    rec.createdAt,
		LastAccessed: rec.lastAccessed,
	}, nil
}

func (s *Store) Append(_ context.Context, key string, msg core.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if msg.Timestamp.IsZero() {
		msg.Timestamp = now
	}

	rec := s.getOrCreateLocked(key)
	rec.messages = append(rec.messages, msg)
	rec.lastAccessed = now
	return nil
}

func (s *Store) Read(_ context.Context, key string) ([]core.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.sessions[key]
	if !ok {
		return nil, nil
	}
	return copyMessages(rec.messages), nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, key)
	return nil
}

func (s *Store) DeleteIdle(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for key, rec := range s.sessions {
		if rec.lastAccessed.Before(cutoff) {
			delete(s.sessions, key)
			count++
		}
	}
	return count, nil
}

func (s *Store) SaveFlow(_ context.Context, flow core.OnboardingFlow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flows = append(s.flows, flow)
	return nil
}

func (s *Store) ListFlows(_ context.Context) ([]core.OnboardingFlow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	flows := make([]core.OnboardingFlow, len(s.flows))
	copy(flows, s.flows)
	return flows, nil
}

// getOrCreateLocked requires s.mu held for writing.
func (s *Store) getOrCreateLocked(key string) *sessionRecord {
	rec, ok := s.sessions[key]
	if !ok {
		now := time.Now().UTC()
		rec = &sessionRecord{createdAt: now, lastAccessed: now}
		s.sessions[key] = rec
	}
	return rec
}

func copyMessages(msgs []core.Message) []core.Message {
	if msgs == nil {
		return nil
	}
	out := make([]core.Message, len(msgs))
	copy(out, msgs)
	return out
}
