// Package pager реализует постраничный просмотр уже загруженных коллекций.
package pager

// TotalPages возвращает число страниц для count элементов; пустая коллекция занимает одну страницу.
func TotalPages(count, size int) int {
	if size <= 0 || count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// Clamp ограничивает номер страницы диапазоном [1, total].
func Clamp(page, total int) int {
	if total < 1 {
		total = 1
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// Slice возвращает элементы страницы page (нумерация с 1).
func Slice[T any](items []T, page, size int) []T {
	if size <= 0 || page < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Cursor хранит текущую страницу при фиксированном размере страницы.
type Cursor struct {
	Page int
	Size int
}

// NewCursor создаёт курсор на первой странице.
func NewCursor(size int) Cursor {
	return Cursor{Page: 1, Size: size}
}

// Go переходит на страницу page, если она лежит в [1, TotalPages(count)].
// Для страницы вне диапазона курсор не меняется и возвращается false.
func (c *Cursor) Go(page, count int) bool {
	if page < 1 || page > TotalPages(count, c.Size) {
		return false
	}
	c.Page = page
	return true
}

// Reset возвращает курсор на первую страницу.
func (c *Cursor) Reset() {
	c.Page = 1
}
