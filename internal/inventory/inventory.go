// Package inventory сортирует и разбивает на страницы список автомобилей в админ-панели.
// Состояние хранится в строке запроса, поэтому страница не зависит от сессии.
package inventory

import (
	"cmp"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/mmeshcher/rentcarx-storefront/internal/model"
	"github.com/mmeshcher/rentcarx-storefront/internal/pager"
)

// PageSize задаёт число строк таблицы на странице.
const PageSize = 10

// Field обозначает колонку, по которой выполняется сортировка.
type Field string

const (
	FieldBrand       Field = "brand"
	FieldModel       Field = "model"
	FieldYear        Field = "year"
	FieldPricePerDay Field = "pricePerDay"
)

// Direction задаёт направление сортировки.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sorter описывает сортировку и текущую страницу таблицы.
type Sorter struct {
	Field     Field
	Direction Direction
	Page      int
}

// Default возвращает сортировку по марке по возрастанию на первой странице.
func Default() Sorter {
	return Sorter{Field: FieldBrand, Direction: Asc, Page: 1}
}

// ParseField разбирает имя колонки.
func ParseField(s string) (Field, bool) {
	switch f := Field(s); f {
	case FieldBrand, FieldModel, FieldYear, FieldPricePerDay:
		return f, true
	default:
		return "", false
	}
}

// FromQuery восстанавливает сортировку из параметров sort, dir и page.
// Неизвестные значения заменяются значениями по умолчанию.
func FromQuery(q url.Values) Sorter {
	s := Default()
	if f, ok := ParseField(q.Get("sort")); ok {
		s.Field = f
	}
	if Direction(q.Get("dir")) == Desc {
		s.Direction = Desc
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		s.Page = page
	}
	return s
}

// Query кодирует сортировку в параметры запроса.
func (s Sorter) Query() url.Values {
	q := url.Values{}
	q.Set("sort", string(s.Field))
	q.Set("dir", string(s.Direction))
	q.Set("page", strconv.Itoa(s.Page))
	return q
}

// Toggle возвращает сортировку после щелчка по колонке field:
// повторный щелчок меняет направление, новая колонка сортируется по возрастанию.
// Номер страницы не сбрасывается.
func (s Sorter) Toggle(field Field) Sorter {
	if s.Field == field {
		if s.Direction == Asc {
			s.Direction = Desc
		} else {
			s.Direction = Asc
		}
		return s
	}
	s.Field = field
	s.Direction = Asc
	return s
}

// Go возвращает сортировку на странице page, если она существует для count строк.
func (s Sorter) Go(page, count int) (Sorter, bool) {
	cursor := pager.Cursor{Page: s.Page, Size: PageSize}
	if !cursor.Go(page, count) {
		return s, false
	}
	s.Page = cursor.Page
	return s, true
}

// Arrow возвращает индикатор направления для заголовка колонки field.
func (s Sorter) Arrow(field Field) string {
	if s.Field != field {
		return ""
	}
	if s.Direction == Desc {
		return " ↓"
	}
	return " ↑"
}

// Sort возвращает отсортированную копию cars. Строки сравниваются без учёта регистра,
// порядок равных элементов сохраняется.
func (s Sorter) Sort(cars []model.Car) []model.Car {
	sorted := slices.Clone(cars)
	slices.SortStableFunc(sorted, func(a, b model.Car) int {
		c := compare(s.Field, a, b)
		if s.Direction == Desc {
			return -c
		}
		return c
	})
	return sorted
}

// Page описывает одну страницу таблицы.
type Page struct {
	Cars       []model.Car
	Page       int
	TotalPages int
	Count      int
}

// PageOf сортирует cars и возвращает текущую страницу.
// Номер страницы за пределами диапазона ограничивается.
func (s Sorter) PageOf(cars []model.Car) Page {
	total := pager.TotalPages(len(cars), PageSize)
	page := pager.Clamp(s.Page, total)
	return Page{
		Cars:       pager.Slice(s.Sort(cars), page, PageSize),
		Page:       page,
		TotalPages: total,
		Count:      len(cars),
	}
}

func compare(field Field, a, b model.Car) int {
	switch field {
	case FieldModel:
		return cmp.Compare(strings.ToLower(a.Model), strings.ToLower(b.Model))
	case FieldYear:
		return cmp.Compare(a.Year, b.Year)
	case FieldPricePerDay:
		return cmp.Compare(a.PricePerDay, b.PricePerDay)
	default:
		return cmp.Compare(strings.ToLower(a.Brand), strings.ToLower(b.Brand))
	}
}
