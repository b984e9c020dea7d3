package session

import (
	"context"
	"errors"
	"time"

	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

// ErrNotFound возвращается, если сессия не существует или истекла.
var ErrNotFound = errors.New("session not found")

// Store описывает хранилище сессий.
type Store interface {
	Save(ctx context.Context, s *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpired удаляет сессии, истёкшие к моменту now, и возвращает их идентификаторы.
	DeleteExpired(ctx context.Context, now time.Time) ([]string, error)
	Close() error
}
