package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/rentcarx-storefront/internal/backend"
	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

type stubFetcher struct {
	mu    sync.Mutex
	calls []model.Filters
	cars  []model.Car
	err   error
}

func (s *stubFetcher) fetch(_ context.Context, f model.Filters) ([]model.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, f)
	if s.err != nil {
		return nil, s.err
	}
	return s.cars, nil
}

func (s *stubFetcher) Calls() []model.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.Filters(nil), s.calls...)
}

func strPtr(s string) *string { return &s }

func newTestController(t *testing.T, s *stubFetcher) *Controller {
	t.Helper()

	c := NewController(s.fetch, Options{ApplyDelay: 20 * time.Millisecond, Timeout: time.Second})
	t.Cleanup(c.Close)
	return c
}

func waitSettled(t *testing.T, c *Controller) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.Wait(ctx))
}

func makeCars(n int) []model.Car {
	cars := make([]model.Car, n)
	for i := range cars {
		cars[i] = model.Car{ID: fmt.Sprint(i + 1), Brand: "Audi", Model: "A4", PricePerDay: 50, IsAvailable: true}
	}
	return cars
}

func TestCommit(t *testing.T) {
	tests := []struct {
		name  string
		draft model.Draft
		want  string
	}{
		{name: "empty draft", draft: model.Draft{}, want: ""},
		{name: "blank strings are absent", draft: model.Draft{Brand: "  ", FuelType: ""}, want: ""},
		{name: "model without brand is dropped", draft: model.Draft{Model: "A4"}, want: ""},
		{name: "brand and model", draft: model.Draft{Brand: "Audi", Model: "A4"}, want: "brand=Audi&model=A4"},
		{name: "unparseable price is absent", draft: model.Draft{MinPrice: "abc", MaxPrice: "100"}, want: "maxPrice=100"},
		{name: "not-a-number prices are absent", draft: model.Draft{MinPrice: "NaN", MaxPrice: "+Inf"}, want: ""},
		{name: "infinite price is absent", draft: model.Draft{MinPrice: "-inf", MaxPrice: "Infinity"}, want: ""},
		{name: "availability", draft: model.Draft{Availability: model.AvailabilityUnavailable}, want: "isAvailable=false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Commit(tt.draft).Query().Encode())
		})
	}
}

func TestDraftRoundTrip(t *testing.T) {
	d := model.Draft{Brand: "BMW", Model: "X5", FuelType: "Diesel", MinPrice: "10", MaxPrice: "99.5", Availability: model.AvailabilityAvailable}
	assert.Equal(t, d, DraftOf(Commit(d)))
}

func TestChangeDraft_BrandChangeClearsModel(t *testing.T) {
	cur := model.Draft{Brand: "Audi", Model: "A4", Availability: model.AvailabilityAll}

	next := ChangeDraft(cur, model.Draft{Brand: "BMW", Model: "A4"})
	assert.Equal(t, "BMW", next.Brand)
	assert.Empty(t, next.Model)
	assert.Equal(t, model.AvailabilityAll, next.Availability)

	same := ChangeDraft(cur, model.Draft{Brand: "Audi", Model: "A6", Availability: model.AvailabilityAvailable})
	assert.Equal(t, "A6", same.Model)
}

func TestController_StartLoadsEverything(t *testing.T) {
	s := &stubFetcher{cars: makeCars(3)}
	c := newTestController(t, s)

	assert.Equal(t, StateIdle, c.Snapshot().State)
	assert.True(t, c.Start())
	assert.False(t, c.Start())
	waitSettled(t, c)

	view := c.Snapshot()
	assert.Equal(t, StateLoaded, view.State)
	assert.Len(t, view.Cars, 3)
	assert.Equal(t, 1, view.TotalPages)

	calls := s.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].IsEmpty())
}

func TestController_ApplyThenClearFetchesOnce(t *testing.T) {
	s := &stubFetcher{cars: makeCars(2)}
	c := newTestController(t, s)

	c.UpdateDraft(model.Draft{Brand: "BMW"})
	c.Apply()
	c.ClearAll()
	waitSettled(t, c)

	calls := s.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "", calls[0].Query().Encode())

	view := c.Snapshot()
	assert.Equal(t, StateLoaded, view.State)
	assert.True(t, view.Applied.IsEmpty())
	assert.Empty(t, view.Chips)
}

func TestController_ApplyIsDebounced(t *testing.T) {
	s := &stubFetcher{}
	c := newTestController(t, s)

	c.UpdateDraft(model.Draft{Brand: "Audi"})
	c.Apply()
	assert.Equal(t, StateLoading, c.Snapshot().State)
	assert.Empty(t, s.Calls())

	waitSettled(t, c)

	calls := s.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "brand=Audi", calls[0].Query().Encode())
}

func TestController_UpdateDraftNeverFetches(t *testing.T) {
	s := &stubFetcher{}
	c := newTestController(t, s)

	c.UpdateDraft(model.Draft{Brand: "Audi"})
	c.UpdateDraft(model.Draft{Brand: "Audi", Model: "A4"})
	c.UpdateDraft(model.Draft{Brand: "BMW", Model: "A4"})
	time.Sleep(50 * time.Millisecond)

	assert.Empty(t, s.Calls())
	view := c.Snapshot()
	assert.Equal(t, StateIdle, view.State)
	assert.Equal(t, "BMW", view.Draft.Brand)
	assert.Empty(t, view.Draft.Model)
	assert.True(t, view.Applied.IsEmpty())
}

func TestController_RemoveBrandChipClearsModel(t *testing.T) {
	s := &stubFetcher{}
	c := newTestController(t, s)

	c.UpdateDraft(model.Draft{Brand: "Audi", Model: "A4", FuelType: "Diesel"})
	c.Apply()
	waitSettled(t, c)

	assert.True(t, c.RemoveChip(model.FilterBrand))
	waitSettled(t, c)

	view := c.Snapshot()
	assert.Nil(t, view.Applied.Brand)
	assert.Nil(t, view.Applied.Model)
	assert.Equal(t, strPtr("Diesel"), view.Applied.FuelType)
	assert.Empty(t, view.Draft.Brand)
	assert.Empty(t, view.Draft.Model)

	calls := s.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "fuelType=Diesel", calls[1].Query().Encode())

	assert.False(t, c.RemoveChip(model.FilterModel))
	assert.Len(t, s.Calls(), 2)
}

func TestController_ResetReloadsEverything(t *testing.T) {
	s := &stubFetcher{cars: makeCars(4)}
	c := newTestController(t, s)

	c.UpdateDraft(model.Draft{Brand: "Audi", MinPrice: "10"})
	c.Apply()
	waitSettled(t, c)

	s.mu.Lock()
	s.err = &backend.APIError{StatusCode: 500}
	s.mu.Unlock()
	c.RemoveChip(model.FilterMinPrice)
	waitSettled(t, c)
	require.Equal(t, StateError, c.Snapshot().State)

	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()
	c.Reset()
	assert.Equal(t, StateLoading, c.Snapshot().State)
	waitSettled(t, c)

	view := c.Snapshot()
	assert.Equal(t, StateLoaded, view.State)
	assert.True(t, view.Applied.IsEmpty())
	assert.Empty(t, view.Draft.Brand)
	assert.Equal(t, 4, view.Count)

	calls := s.Calls()
	require.Len(t, calls, 3)
	assert.True(t, calls[2].IsEmpty())
}

func TestController_SingleResultIsOnePage(t *testing.T) {
	s := &stubFetcher{cars: makeCars(1)}
	c := newTestController(t, s)

	c.UpdateDraft(model.Draft{Brand: "Audi"})
	c.Apply()
	waitSettled(t, c)

	view := c.Snapshot()
	assert.Equal(t, 1, view.Count)
	assert.Equal(t, 1, view.TotalPages)
	assert.Equal(t, []model.Chip{{Key: model.FilterBrand, Label: "Brand: Audi"}}, view.Chips)
}

func TestController_Pagination(t *testing.T) {
	s := &stubFetcher{cars: makeCars(40)}
	c := newTestController(t, s)

	c.Start()
	waitSettled(t, c)

	view := c.Snapshot()
	assert.Equal(t, 3, view.TotalPages)
	assert.Len(t, view.Cars, PageSize)

	assert.True(t, c.SetPage(3))
	view = c.Snapshot()
	assert.Equal(t, 3, view.Page)
	assert.Len(t, view.Cars, 8)
	assert.Equal(t, "33", view.Cars[0].ID)

	assert.False(t, c.SetPage(4))
	assert.False(t, c.SetPage(0))
	assert.Equal(t, 3, c.Snapshot().Page)
	assert.Len(t, s.Calls(), 1)

	c.Apply()
	waitSettled(t, c)
	assert.Equal(t, 1, c.Snapshot().Page)
}

func TestController_ErrorEmptiesResults(t *testing.T) {
	s := &stubFetcher{cars: makeCars(5)}
	c := newTestController(t, s)

	c.Start()
	waitSettled(t, c)
	require.Equal(t, 5, c.Snapshot().Count)

	s.mu.Lock()
	s.err = &backend.APIError{StatusCode: 500}
	s.mu.Unlock()

	c.Apply()
	waitSettled(t, c)

	view := c.Snapshot()
	assert.Equal(t, StateError, view.State)
	assert.Equal(t, "Failed to load cars.", view.Message)
	assert.Empty(t, view.Cars)
	assert.Equal(t, 0, view.Count)
}

func TestController_ErrorUsesServerMessage(t *testing.T) {
	s := &stubFetcher{err: fmt.Errorf("list cars: %w", &backend.APIError{StatusCode: 400, Detail: "Invalid price range."})}
	c := newTestController(t, s)

	c.Start()
	waitSettled(t, c)
	assert.Equal(t, "Invalid price range.", c.Snapshot().Message)
}

func TestController_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})

	// Начальная загрузка без фильтров зависает до release, выборка по марке отвечает сразу.
	fetch := func(ctx context.Context, f model.Filters) ([]model.Car, error) {
		if f.Brand == nil {
			<-release
			return makeCars(7), nil
		}
		return makeCars(2), nil
	}

	c := NewController(fetch, Options{Timeout: time.Second})
	t.Cleanup(c.Close)

	c.Start()
	c.UpdateDraft(model.Draft{Brand: "Audi"})
	c.Apply()
	waitSettled(t, c)
	assert.Equal(t, 2, c.Snapshot().Count)

	close(release)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, c.Snapshot().Count)
}

func TestController_WaitHonoursContext(t *testing.T) {
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })

	c := NewController(func(ctx context.Context, f model.Filters) ([]model.Car, error) {
		<-block
		return nil, nil
	}, Options{})
	c.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.True(t, errors.Is(c.Wait(ctx), context.DeadlineExceeded))
	assert.Equal(t, StateLoading, c.Snapshot().State)
}
