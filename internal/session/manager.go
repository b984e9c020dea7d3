// Package session хранит токен и роль посетителя на стороне витрины.
// Браузер получает только подписанный идентификатор сессии.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mmeshcher/rentcarx-storefront/internal/claims"
	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

// ErrNoRole возвращается, если в токене нет утверждения роли.
var ErrNoRole = errors.New("token carries no role")

// RemoveFunc получает идентификаторы удалённых сессий.
type RemoveFunc func(ids ...string)

// Manager создаёт, читает и завершает сессии.
type Manager struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu        sync.RWMutex
	listeners []RemoveFunc
}

// NewManager создаёт менеджер сессий со сроком жизни ttl.
func NewManager(store Store, ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		store:  store,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// OnRemove подписывает fn на удаление сессий.
func (m *Manager) OnRemove(fn RemoveFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners = append(m.listeners, fn)
}

func (m *Manager) notify(ids ...string) {
	if len(ids) == 0 {
		return
	}

	m.mu.RLock()
	listeners := append([]RemoveFunc(nil), m.listeners...)
	m.mu.RUnlock()

	for _, fn := range listeners {
		fn(ids...)
	}
}

// New создаёт анонимную сессию.
func (m *Manager) New(ctx context.Context) (*model.Session, error) {
	now := m.now().UTC()
	s := &model.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return s, nil
}

// Get возвращает действующую сессию. Истёкшая сессия удаляется и считается отсутствующей.
func (m *Manager) Get(ctx context.Context, id string) (*model.Session, error) {
	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Expired(m.now()) {
		if err := m.store.Delete(ctx, id); err != nil {
			m.logger.Warn("failed to delete expired session", zap.Error(err))
		}
		m.notify(id)
		return nil, ErrNotFound
	}
	return s, nil
}

// CurrentRole возвращает роль владельца сессии или пустую строку для анонимного посетителя.
func (m *Manager) CurrentRole(ctx context.Context, id string) string {
	s, err := m.Get(ctx, id)
	if err != nil || !s.LoggedIn() {
		return ""
	}
	return s.Role
}

// Login сохраняет токен в новой сессии, заменяющей сессию id.
// Роль и имя извлекаются из токена; токен без роли отклоняется и сессия не меняется.
func (m *Manager) Login(ctx context.Context, id, token string) (*model.Session, error) {
	role, ok := claims.RoleFromToken(token)
	if !ok {
		return nil, ErrNoRole
	}
	name, _ := claims.NameFromToken(token)

	now := m.now().UTC()
	s := &model.Session{
		ID:        uuid.NewString(),
		Token:     token,
		Role:      role,
		Name:      name,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	if id != "" {
		m.drop(ctx, id)
	}
	return s, nil
}

// Logout завершает сессию id и выдаёт вместо неё анонимную.
func (m *Manager) Logout(ctx context.Context, id string) (*model.Session, error) {
	m.drop(ctx, id)
	return m.New(ctx)
}

// Sweep удаляет истёкшие сессии и возвращает их число.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	removed, err := m.store.DeleteExpired(ctx, m.now())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	m.notify(removed...)
	return len(removed), nil
}

func (m *Manager) drop(ctx context.Context, id string) {
	if err := m.store.Delete(ctx, id); err != nil {
		m.logger.Warn("failed to delete session", zap.String("session", id), zap.Error(err))
	}
	m.notify(id)
}
