package dispatch

import "sync"

// modeKind enumerates what free-text input a user's next message completes.
type modeKind int

const (
	modeIdle modeKind = iota
	modeAwaitCategoryName
	modeAwaitItems
	modeAwaitEmoji
)

// Mode is the per-user navigation mode. Category is set for the modes that
// target one.
type Mode struct {
	kind     modeKind
	Category string
}

func (m Mode) idle() bool {
	return m.kind == modeIdle
}

// Sessions maps actor IDs to their transient navigation mode. It lives in
// memory only; losing it on restart merely cancels an in-progress
// multi-step input.
type Sessions struct {
	mu    sync.Mutex
	modes map[int64]Mode
}

// NewSessions returns an empty session table.
func NewSessions() *Sessions {
	return &Sessions{modes: make(map[int64]Mode)}
}

// Get returns the user's current mode, idle by default.
func (s *Sessions) Get(userID int64) Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modes[userID]
}

// Set replaces the user's mode.
func (s *Sessions) Set(userID int64, m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.idle() {
		delete(s.modes, userID)
		return
	}
	s.modes[userID] = m
}

// Reset returns the user to idle.
func (s *Sessions) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.modes, userID)
}
