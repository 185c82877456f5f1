package state

import (
	"sync"

	"github.com/google/uuid"

	"github.com/alizia-edu/alizia-api/internal/models"
)

// Manager owns the live session stores, keyed by session id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Store
}

// NewManager builds an empty session registry.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Store)}
}

// Create registers a new store for the user and returns its session id.
func (m *Manager) Create(user models.User) (string, *Store) {
	id := uuid.NewString()
	store := New(user)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = store
	return id, store
}

// Get returns the store for a session id.
func (m *Manager) Get(id string) (*Store, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	store, ok := m.sessions[id]
	return store, ok
}

// Delete drops a session store. Dropping an unknown id is a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
