package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/rentcarx-storefront/internal/backend"
	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

type stubLister struct {
	mu     sync.Mutex
	tokens []string
}

func (s *stubLister) ListCars(ctx context.Context, _ model.Filters) ([]model.Car, error) {
	token, _ := backend.TokenFromContext(ctx)

	s.mu.Lock()
	s.tokens = append(s.tokens, token)
	s.mu.Unlock()

	return []model.Car{{ID: "1"}}, nil
}

func TestRegistry_OneControllerPerSession(t *testing.T) {
	lister := &stubLister{}
	r := NewRegistry(lister, Options{Timeout: time.Second})

	a := r.Get("sid-a", "token-a")
	assert.Same(t, a, r.Get("sid-a", "other"))
	assert.NotSame(t, a, r.Get("sid-b", ""))
	assert.Equal(t, 2, r.Len())

	a.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, a.Wait(ctx))

	lister.mu.Lock()
	assert.Equal(t, []string{"token-a"}, lister.tokens)
	lister.mu.Unlock()

	r.Forget("sid-a", "missing")
	assert.Equal(t, 1, r.Len())
	assert.NotSame(t, a, r.Get("sid-a", ""))
}
