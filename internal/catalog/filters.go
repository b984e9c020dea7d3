// Package catalog управляет состоянием страницы каталога: черновыми и применёнными
// фильтрами, загрузкой отфильтрованного списка и постраничным просмотром результата.
package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

// Commit переводит черновые значения в применённые фильтры.
// Пустые строки и нечисловые цены становятся отсутствующими фильтрами,
// переключатель доступности отображается в nil/true/false.
// Модель без марки не применяется: выбор модели ограничен маркой.
func Commit(d model.Draft) model.Filters {
	f := model.Filters{
		Brand:       optionalString(d.Brand),
		Model:       optionalString(d.Model),
		FuelType:    optionalString(d.FuelType),
		MinPrice:    optionalPrice(d.MinPrice),
		MaxPrice:    optionalPrice(d.MaxPrice),
		IsAvailable: d.Availability.Flag(),
	}
	return enforceBrandModel(f)
}

// DraftOf восстанавливает черновик по применённым фильтрам.
func DraftOf(f model.Filters) model.Draft {
	d := model.Draft{Availability: model.AvailabilityOf(f.IsAvailable)}
	if f.Brand != nil {
		d.Brand = *f.Brand
	}
	if f.Model != nil {
		d.Model = *f.Model
	}
	if f.FuelType != nil {
		d.FuelType = *f.FuelType
	}
	if f.MinPrice != nil {
		d.MinPrice = strconv.FormatFloat(*f.MinPrice, 'f', -1, 64)
	}
	if f.MaxPrice != nil {
		d.MaxPrice = strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64)
	}
	return d
}

// Without возвращает фильтры без ключа key. Снятие марки снимает и модель.
func Without(f model.Filters, key string) model.Filters {
	switch key {
	case model.FilterBrand:
		f.Brand = nil
	case model.FilterModel:
		f.Model = nil
	case model.FilterFuelType:
		f.FuelType = nil
	case model.FilterMinPrice:
		f.MinPrice = nil
	case model.FilterMaxPrice:
		f.MaxPrice = nil
	case model.FilterIsAvailable:
		f.IsAvailable = nil
	}
	return enforceBrandModel(f)
}

// DraftWithout очищает в черновике поле key. Очистка марки очищает и модель.
func DraftWithout(d model.Draft, key string) model.Draft {
	switch key {
	case model.FilterBrand:
		d.Brand = ""
		d.Model = ""
	case model.FilterModel:
		d.Model = ""
	case model.FilterFuelType:
		d.FuelType = ""
	case model.FilterMinPrice:
		d.MinPrice = ""
	case model.FilterMaxPrice:
		d.MaxPrice = ""
	case model.FilterIsAvailable:
		d.Availability = model.AvailabilityAll
	}
	return d
}

// ChangeDraft применяет к черновику новые значения next.
// Смена марки всегда очищает модель в том же изменении.
func ChangeDraft(cur, next model.Draft) model.Draft {
	if strings.TrimSpace(next.Brand) != strings.TrimSpace(cur.Brand) {
		next.Model = ""
	}
	if next.Availability == "" {
		next.Availability = model.AvailabilityAll
	}
	return next
}

func enforceBrandModel(f model.Filters) model.Filters {
	if f.Brand == nil {
		f.Model = nil
	}
	return f
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optionalPrice(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &v
}
