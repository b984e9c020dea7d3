// Package service реализует обращения витрины к бэкенду RentCarX: аутентификацию,
// каталог автомобилей и бронирования.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mmeshcher/rentcarx-storefront/internal/backend"
)

// Error описывает ошибку вызова бэкенда с уже подготовленным сообщением для пользователя.
type Error struct {
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage возвращает сообщение для пользователя из ошибки сервиса или fallback.
func UserMessage(err error, fallback string) string {
	var svcErr *Error
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		return svcErr.Message
	}
	return backend.Message(err, fallback)
}

// Service выполняет вызовы REST API бэкенда.
type Service struct {
	client *backend.Client
	logger *zap.Logger
}

// NewService создаёт сервис поверх клиента бэкенда.
func NewService(client *backend.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		logger: logger,
	}
}

// fail логирует ошибку вызова и нормализует её в *Error.
func (s *Service) fail(op string, err error, fallback string) error {
	code, fromBackend := backend.StatusCode(err)
	switch {
	case errors.Is(err, context.Canceled):
		s.logger.Debug("backend call canceled", zap.String("op", op))
	case fromBackend && code < 500:
		s.logger.Warn("backend rejected call", zap.String("op", op), zap.Int("status", code), zap.Error(err))
	default:
		s.logger.Error("backend call error", zap.String("op", op), zap.Error(err))
	}
	return &Error{
		Op:      op,
		Message: backend.Message(err, fallback),
		Err:     err,
	}
}
