package session

import (
	"sync"

	"github.com/hazyhaar/lectio/chunk"
	"github.com/hazyhaar/lectio/idgen"
)

// Manager owns the live sessions: exactly one per (user, document) pair.
// The map is guarded for concurrent transports, but commands against any
// single session must still be serialized by the caller.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session // keyed by user ID
	ids      idgen.Generator
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ids:      idgen.Session(),
	}
}

// Open creates and registers a session for the user, replacing any session
// the user already had (opening a new document closes the previous one).
func (m *Manager) Open(userID, documentID string, chunks []chunk.Chunk) *Session {
	s := New(m.ids(), userID, documentID, chunks)
	m.mu.Lock()
	m.sessions[userID] = s
	m.mu.Unlock()
	return s
}

// Get returns the user's active session, or nil when none is open.
func (m *Manager) Get(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[userID]
}

// Close discards the user's active session. Discarding a missing session
// is a no-op.
func (m *Manager) Close(userID string) {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
}
