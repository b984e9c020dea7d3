package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/rentcarx-storefront/internal/backend"
	"github.com/mmeshcher/rentcarx-storefront/internal/model"
	"github.com/mmeshcher/rentcarx-storefront/internal/pager"
)

// PageSize задаёт число автомобилей на странице каталога.
const PageSize = 16

const loadFailed = "Failed to load cars."

// State описывает состояние загрузки каталога.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Fetcher загружает автомобили, удовлетворяющие фильтрам.
type Fetcher func(ctx context.Context, f model.Filters) ([]model.Car, error)

// Options задаёт параметры контроллера.
type Options struct {
	// ApplyDelay задаёт окно, в котором повторные применения фильтров объединяются в один запрос.
	ApplyDelay time.Duration
	// Timeout ограничивает один запрос к бэкенду.
	Timeout time.Duration
	Logger  *zap.Logger
}

// View содержит неизменяемый снимок состояния каталога для отрисовки.
type View struct {
	State      State
	Draft      model.Draft
	Applied    model.Filters
	Chips      []model.Chip
	Cars       []model.Car
	Count      int
	Page       int
	TotalPages int
	Message    string
}

// Controller хранит состояние каталога одного посетителя.
// Применённые фильтры меняются только вместе с запросом, который их использует.
type Controller struct {
	fetch   Fetcher
	delay   time.Duration
	timeout time.Duration
	logger  *zap.Logger

	mu      sync.Mutex
	state   State
	draft   model.Draft
	applied model.Filters
	results []model.Car
	message string
	cursor  pager.Cursor

	timer   *time.Timer
	pending bool
	seq     uint64
	settled chan struct{}
}

// NewController создаёт контроллер в состоянии Idle.
func NewController(fetch Fetcher, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	settled := make(chan struct{})
	close(settled)

	return &Controller{
		fetch:   fetch,
		delay:   opts.ApplyDelay,
		timeout: timeout,
		logger:  logger,
		state:   StateIdle,
		draft:   DraftOf(model.Filters{}),
		cursor:  pager.NewCursor(PageSize),
		settled: settled,
	}
}

// Start выполняет первую загрузку без фильтров. Повторный вызов ничего не делает.
func (c *Controller) Start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return false
	}
	c.issueLocked()
	return true
}

// UpdateDraft заменяет черновик. Запрос не выполняется.
func (c *Controller) UpdateDraft(d model.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft = ChangeDraft(c.draft, d)
}

// Apply фиксирует черновик и планирует загрузку через ApplyDelay.
// Повторные вызовы внутри окна переносят таймер, запрос уходит один.
func (c *Controller) Apply() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.applied = Commit(c.draft)
	c.scheduleLocked()
}

// ClearAll сбрасывает черновик и применённые фильтры и ведёт себя как Apply.
func (c *Controller) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.applied = model.Filters{}
	c.draft = DraftOf(c.applied)
	c.scheduleLocked()
}

// Reset сбрасывает черновик и применённые фильтры и сразу загружает полный список.
// Используется при новом входе на страницу каталога.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.applied = model.Filters{}
	c.draft = DraftOf(c.applied)
	c.issueLocked()
}

// RemoveChip снимает один применённый фильтр и сразу перезагружает список.
// Неизвестный или неприменённый ключ игнорируется.
func (c *Controller) RemoveChip(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.applied.Has(key) {
		return false
	}
	c.applied = Without(c.applied, key)
	c.draft = DraftWithout(c.draft, key)
	c.issueLocked()
	return true
}

// SetPage переключает страницу уже загруженного списка.
func (c *Controller) SetPage(page int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cursor.Go(page, len(c.results))
}

// Snapshot возвращает текущее состояние.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	cars := pager.Slice(c.results, c.cursor.Page, c.cursor.Size)
	return View{
		State:      c.state,
		Draft:      c.draft,
		Applied:    c.applied,
		Chips:      c.applied.Chips(),
		Cars:       append([]model.Car(nil), cars...),
		Count:      len(c.results),
		Page:       c.cursor.Page,
		TotalPages: pager.TotalPages(len(c.results), c.cursor.Size),
		Message:    c.message,
	}
}

// Wait блокируется, пока контроллер находится в состоянии Loading.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	settled := c.settled
	c.mu.Unlock()

	select {
	case <-settled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close останавливает отложенную загрузку.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	if c.pending {
		c.pending = false
		c.seq++
		c.state = StateIdle
		close(c.settled)
	}
}

func (c *Controller) enterLoadingLocked() {
	if c.state != StateLoading {
		c.settled = make(chan struct{})
	}
	c.state = StateLoading
}

func (c *Controller) scheduleLocked() {
	c.enterLoadingLocked()
	c.pending = true

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, c.fire)
}

func (c *Controller) fire() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.pending {
		return
	}
	c.issueLocked()
}

func (c *Controller) issueLocked() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.pending = false
	c.enterLoadingLocked()

	c.seq++
	seq := c.seq
	filters := c.applied

	go c.load(seq, filters)
}

func (c *Controller) load(seq uint64, filters model.Filters) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	cars, err := c.fetch(ctx, filters)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq || c.pending {
		c.logger.Debug("discarding stale catalog response", zap.Uint64("seq", seq), zap.Uint64("latest", c.seq))
		return
	}

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			c.logger.Warn("catalog load failed", zap.Error(err))
		}
		c.state = StateError
		c.results = nil
		c.message = backend.Message(err, loadFailed)
	} else {
		c.state = StateLoaded
		c.results = cars
		c.message = ""
	}
	c.cursor.Reset()
	close(c.settled)
}
