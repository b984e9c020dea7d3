package session

import (
	"context"
	"sync"
	"time"

	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

// MemoryStore хранит сессии в памяти процесса.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

// NewMemoryStore создаёт пустое хранилище.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]model.Session)}
}

// Save сохраняет копию сессии.
func (m *MemoryStore) Save(_ context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.ID] = *s
	return nil
}

// Get возвращает копию сессии по идентификатору.
func (m *MemoryStore) Get(_ context.Context, id string) (*model.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

// Delete удаляет сессию. Отсутствие сессии ошибкой не считается.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

// DeleteExpired удаляет истёкшие сессии.
func (m *MemoryStore) DeleteExpired(_ context.Context, now time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed []string
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			removed = append(removed, id)
		}
	}
	return removed, nil
}

// Close ничего не делает.
func (m *MemoryStore) Close() error {
	return nil
}
