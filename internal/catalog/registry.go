package catalog

import (
	"context"
	"sync"

	"github.com/mmeshcher/rentcarx-storefront/internal/backend"
	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

// Lister загружает список автомобилей по фильтрам.
type Lister interface {
	ListCars(ctx context.Context, f model.Filters) ([]model.Car, error)
}

// Registry хранит по одному контроллеру каталога на сессию.
type Registry struct {
	lister Lister
	opts   Options

	mu          sync.Mutex
	controllers map[string]*Controller
}

// NewRegistry создаёт пустой реестр.
func NewRegistry(lister Lister, opts Options) *Registry {
	return &Registry{
		lister:      lister,
		opts:        opts,
		controllers: make(map[string]*Controller),
	}
}

// Get возвращает контроллер сессии sid, создавая его при первом обращении.
// Запросы контроллера подписываются токеном token, действовавшим на момент создания.
func (r *Registry) Get(sid, token string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.controllers[sid]; ok {
		return c
	}

	fetch := func(ctx context.Context, f model.Filters) ([]model.Car, error) {
		if token != "" {
			ctx = backend.WithToken(ctx, token)
		}
		return r.lister.ListCars(ctx, f)
	}
	c := NewController(fetch, r.opts)
	r.controllers[sid] = c
	return c
}

// Forget удаляет контроллеры перечисленных сессий.
func (r *Registry) Forget(sids ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sid := range sids {
		if c, ok := r.controllers[sid]; ok {
			c.Close()
			delete(r.controllers, sid)
		}
	}
}

// Len возвращает число активных контроллеров.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.controllers)
}
