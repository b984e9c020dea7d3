// Package pricing вычисляет ориентировочную стоимость бронирования.
// Итоговую сумму определяет бэкенд, здесь только подсказка для формы.
package pricing

import (
	"math"
	"strings"
	"time"

	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

// DateLayout задаёт формат значения поля ввода даты.
const DateLayout = "2006-01-02"

// DaysBetween возвращает число суток аренды между датами start и end.
// Неполные сутки округляются вверх. Для нераспознанных дат и end <= start возвращается 0.
func DaysBetween(start, end string) int {
	from, ok := parseDate(start)
	if !ok {
		return 0
	}
	to, ok := parseDate(end)
	if !ok {
		return 0
	}

	diff := to.Sub(from)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// Subtotal возвращает стоимость days суток по цене pricePerDay.
func Subtotal(days int, pricePerDay float64) float64 {
	if days <= 0 {
		return 0
	}
	return float64(days) * pricePerDay
}

// CanSubmit сообщает, можно ли отправить бронирование: машина загружена и доступна, а период не пуст.
func CanSubmit(days int, car *model.Car) bool {
	return days > 0 && car != nil && car.IsAvailable
}

// Today возвращает дату now в формате поля ввода; используется как минимально допустимая дата.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
