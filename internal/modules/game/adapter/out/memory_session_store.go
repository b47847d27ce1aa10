package out

import (
	"context"
	"fmt"
	"sync"

	"mindgym/internal/modules/game/domain"
	gameout "mindgym/internal/modules/game/port/out"
	apperrors "mindgym/internal/platform/errors"
)

// MemorySessionStore keeps live sessions in process memory. Sessions are not
// persisted across runs.
type MemorySessionStore struct {
	mu     sync.Mutex
	byID   map[string]*domain.SessionState
	byKind map[domain.Kind]string
}

var _ gameout.SessionStore = (*MemorySessionStore)(nil)

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		byID:   map[string]*domain.SessionState{},
		byKind: map[domain.Kind]string{},
	}
}

func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (*domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.byID[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrSessionNotFound, sessionID)
	}
	return state, nil
}

func (s *MemorySessionStore) FindByKind(_ context.Context, kind domain.Kind) (*domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byKind[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no %s session", apperrors.ErrSessionNotFound, kind)
	}
	return s.byID[id], nil
}

// Put stores state as the session of its kind, replacing any other.
func (s *MemorySessionStore) Put(_ context.Context, state *domain.SessionState) error {
	if state == nil || state.ID == "" {
		return fmt.Errorf("%w: session without id", apperrors.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.byKind[state.Kind]; ok && prev != state.ID {
		delete(s.byID, prev)
	}
	s.byID[state.ID] = state
	s.byKind[state.Kind] = state.ID
	return nil
}

func (s *MemorySessionStore) DeleteKind(_ context.Context, kind domain.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.byKind[kind]; ok {
		delete(s.byID, id)
		delete(s.byKind, kind)
	}
	return nil
}

func (s *MemorySessionStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = map[string]*domain.SessionState{}
	s.byKind = map[domain.Kind]string{}
	return nil
}
