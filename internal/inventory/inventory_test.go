package inventory

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

func prices(cars []model.Car) []float64 {
	out := make([]float64, 0, len(cars))
	for _, c := range cars {
		out = append(out, c.PricePerDay)
	}
	return out
}

func TestSortByPrice(t *testing.T) {
	cars := []model.Car{{ID: "a", PricePerDay: 30}, {ID: "b", PricePerDay: 10}, {ID: "c", PricePerDay: 20}}

	s := Default().Toggle(FieldPricePerDay)
	assert.Equal(t, Asc, s.Direction)
	assert.Equal(t, []float64{10, 20, 30}, prices(s.Sort(cars)))

	s = s.Toggle(FieldPricePerDay)
	assert.Equal(t, Desc, s.Direction)
	assert.Equal(t, []float64{30, 20, 10}, prices(s.Sort(cars)))

	assert.Equal(t, []float64{30, 10, 20}, prices(cars), "input must not be reordered")
}

func TestSortCaseInsensitiveAndStable(t *testing.T) {
	cars := []model.Car{
		{ID: "1", Brand: "bmw"},
		{ID: "2", Brand: "Audi"},
		{ID: "3", Brand: "BMW"},
		{ID: "4", Brand: "audi"},
	}

	sorted := Default().Sort(cars)
	ids := make([]string, 0, len(sorted))
	for _, c := range sorted {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids)
}

func TestToggleNewFieldAscending(t *testing.T) {
	s := Sorter{Field: FieldYear, Direction: Desc, Page: 3}

	next := s.Toggle(FieldModel)
	assert.Equal(t, FieldModel, next.Field)
	assert.Equal(t, Asc, next.Direction)
	assert.Equal(t, 3, next.Page, "re-sorting keeps the page")
}

func TestPageOf(t *testing.T) {
	cars := make([]model.Car, 25)
	for i := range cars {
		cars[i] = model.Car{ID: fmt.Sprint(i), Year: 2000 + i}
	}

	s := Sorter{Field: FieldYear, Direction: Asc, Page: 3}
	page := s.PageOf(cars)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 25, page.Count)
	require.Len(t, page.Cars, 5)
	assert.Equal(t, 2020, page.Cars[0].Year)

	s.Page = 9
	assert.Equal(t, 3, s.PageOf(cars).Page)

	empty := Default().PageOf(nil)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Cars)
}

func TestGo(t *testing.T) {
	s := Default()

	next, ok := s.Go(2, 11)
	assert.True(t, ok)
	assert.Equal(t, 2, next.Page)

	same, ok := next.Go(3, 11)
	assert.False(t, ok)
	assert.Equal(t, 2, same.Page)
}

func TestQueryRoundTrip(t *testing.T) {
	s := Sorter{Field: FieldPricePerDay, Direction: Desc, Page: 2}
	assert.Equal(t, "dir=desc&page=2&sort=pricePerDay", s.Query().Encode())
	assert.Equal(t, s, FromQuery(s.Query()))

	bad := FromQuery(url.Values{"sort": {"color"}, "dir": {"sideways"}, "page": {"-4"}})
	assert.Equal(t, Default(), bad)
}

func TestArrow(t *testing.T) {
	s := Sorter{Field: FieldYear, Direction: Desc}
	assert.Equal(t, " ↓", s.Arrow(FieldYear))
	assert.Equal(t, "", s.Arrow(FieldBrand))
	assert.Equal(t, " ↑", s.Toggle(FieldYear).Arrow(FieldYear))
}
