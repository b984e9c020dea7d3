package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody ограничивает объём тела ошибки, который читается из ответа.
const maxErrorBody = 64 << 10

// APIError описывает ответ бэкенда с кодом статуса вне диапазона 2xx.
type APIError struct {
	StatusCode int
	Detail     string
	Message    string
	Title      string
}

func (e *APIError) Error() string {
	if text := e.text(); text != "" {
		return fmt.Sprintf("backend status %d: %s", e.StatusCode, text)
	}
	return fmt.Sprintf("backend status %d", e.StatusCode)
}

func (e *APIError) text() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Message != "":
		return e.Message
	default:
		return e.Title
	}
}

// errorBody покрывает ProblemDetails и ответы вида {"error": "...", "message": "..."}.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Title   string `json:"title"`
	Error   string `json:"error"`
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}

	apiErr.Detail = strings.TrimSpace(body.Detail)
	apiErr.Message = strings.TrimSpace(body.Message)
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(body.Error)
	}
	apiErr.Title = strings.TrimSpace(body.Title)
	return apiErr
}

// StatusCode возвращает код статуса ответа бэкенда, если err вызвана таким ответом.
func StatusCode(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}

// Message превращает ошибку вызова бэкенда в сообщение для пользователя.
// Предпочитается текст detail, затем message из ответа сервера; иначе возвращается fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return fallback
}
