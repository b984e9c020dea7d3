package model

import (
	"net/url"
	"strconv"
)

// Ключи фильтров каталога, совпадающие с параметрами GET /cars.
const (
	FilterBrand       = "brand"
	FilterModel       = "model"
	FilterFuelType    = "fuelType"
	FilterMinPrice    = "minPrice"
	FilterMaxPrice    = "maxPrice"
	FilterIsAvailable = "isAvailable"
)

// FilterKeys перечисляет ключи фильтров в порядке отображения.
var FilterKeys = []string{
	FilterBrand,
	FilterModel,
	FilterFuelType,
	FilterMinPrice,
	FilterMaxPrice,
	FilterIsAvailable,
}

// Availability хранит значение трёхпозиционного переключателя доступности.
type Availability string

const (
	AvailabilityAll         Availability = "ALL"
	AvailabilityAvailable   Availability = "AVAILABLE"
	AvailabilityUnavailable Availability = "UNAVAILABLE"
)

// ParseAvailability разбирает значение переключателя; неизвестные значения считаются ALL.
func ParseAvailability(s string) Availability {
	switch Availability(s) {
	case AvailabilityAvailable:
		return AvailabilityAvailable
	case AvailabilityUnavailable:
		return AvailabilityUnavailable
	default:
		return AvailabilityAll
	}
}

// Flag отображает переключатель в значение фильтра: nil, true или false.
func (a Availability) Flag() *bool {
	switch a {
	case AvailabilityAvailable:
		v := true
		return &v
	case AvailabilityUnavailable:
		v := false
		return &v
	default:
		return nil
	}
}

// AvailabilityOf выполняет обратное отображение значения фильтра в переключатель.
func AvailabilityOf(flag *bool) Availability {
	switch {
	case flag == nil:
		return AvailabilityAll
	case *flag:
		return AvailabilityAvailable
	default:
		return AvailabilityUnavailable
	}
}

// Draft хранит черновые значения панели фильтров в том виде, в каком их ввёл пользователь.
type Draft struct {
	Brand        string
	Model        string
	FuelType     string
	MinPrice     string
	MaxPrice     string
	Availability Availability
}

// Filters содержит применённый набор фильтров. Отсутствующий фильтр представлен nil.
type Filters struct {
	Brand       *string
	Model       *string
	FuelType    *string
	MinPrice    *float64
	MaxPrice    *float64
	IsAvailable *bool
}

// IsEmpty сообщает, что ни один фильтр не задан.
func (f Filters) IsEmpty() bool {
	return f == Filters{}
}

// Query формирует параметры запроса GET /cars только из заданных фильтров.
func (f Filters) Query() url.Values {
	q := url.Values{}
	if f.Brand != nil {
		q.Set(FilterBrand, *f.Brand)
	}
	if f.Model != nil {
		q.Set(FilterModel, *f.Model)
	}
	if f.FuelType != nil {
		q.Set(FilterFuelType, *f.FuelType)
	}
	if f.MinPrice != nil {
		q.Set(FilterMinPrice, formatPrice(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		q.Set(FilterMaxPrice, formatPrice(*f.MaxPrice))
	}
	if f.IsAvailable != nil {
		q.Set(FilterIsAvailable, strconv.FormatBool(*f.IsAvailable))
	}
	return q
}

// Has сообщает, задан ли фильтр с ключом key.
func (f Filters) Has(key string) bool {
	switch key {
	case FilterBrand:
		return f.Brand != nil
	case FilterModel:
		return f.Model != nil
	case FilterFuelType:
		return f.FuelType != nil
	case FilterMinPrice:
		return f.MinPrice != nil
	case FilterMaxPrice:
		return f.MaxPrice != nil
	case FilterIsAvailable:
		return f.IsAvailable != nil
	}
	return false
}

// Chip описывает снимаемую метку одного применённого фильтра.
type Chip struct {
	Key   string
	Label string
}

// Chips возвращает метки применённых фильтров в порядке FilterKeys.
func (f Filters) Chips() []Chip {
	var chips []Chip
	if f.Brand != nil {
		chips = append(chips, Chip{Key: FilterBrand, Label: "Brand: " + *f.Brand})
	}
	if f.Model != nil {
		chips = append(chips, Chip{Key: FilterModel, Label: "Model: " + *f.Model})
	}
	if f.FuelType != nil {
		chips = append(chips, Chip{Key: FilterFuelType, Label: "Fuel: " + *f.FuelType})
	}
	if f.MinPrice != nil {
		chips = append(chips, Chip{Key: FilterMinPrice, Label: "Min $" + formatPrice(*f.MinPrice)})
	}
	if f.MaxPrice != nil {
		chips = append(chips, Chip{Key: FilterMaxPrice, Label: "Max $" + formatPrice(*f.MaxPrice)})
	}
	if f.IsAvailable != nil {
		label := "Unavailable"
		if *f.IsAvailable {
			label = "Available"
		}
		chips = append(chips, Chip{Key: FilterIsAvailable, Label: label})
	}
	return chips
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
