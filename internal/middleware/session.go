// Package middleware содержит HTTP middleware витрины RentCarX.
package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mmeshcher/rentcarx-storefront/internal/backend"
	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

type contextKey string

const sessionKey contextKey = "session"

// CookieName задаёт имя cookie с подписанным идентификатором сессии.
const CookieName = "rentcarx_session"

// Sessions выдаёт и читает сессии посетителей.
type Sessions interface {
	New(ctx context.Context) (*model.Session, error)
	Get(ctx context.Context, id string) (*model.Session, error)
}

// SessionMiddleware связывает запрос с сессией по подписанному cookie.
type SessionMiddleware struct {
	sessions  Sessions
	secretKey []byte
	logger    *zap.Logger
}

// NewSessionMiddleware создаёт middleware. При пустом secret ключ подписи генерируется
// случайно, и сессии не переживают перезапуск процесса.
func NewSessionMiddleware(sessions Sessions, secret string, logger *zap.Logger) *SessionMiddleware {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("default-secret-key")
		}
	}

	return &SessionMiddleware{
		sessions:  sessions,
		secretKey: key,
		logger:    logger,
	}
}

// Middleware загружает сессию из cookie или создаёт анонимную и кладёт её в контекст запроса.
// Токен авторизованной сессии также передаётся в контекст для запросов к бэкенду.
func (m *SessionMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var sess *model.Session
		if cookie, err := r.Cookie(CookieName); err == nil {
			if id, ok := m.parseCookie(cookie.Value); ok {
				sess, _ = m.sessions.Get(ctx, id)
			}
		}

		if sess == nil {
			created, err := m.sessions.New(ctx)
			if err != nil {
				m.logger.Error("failed to create session", zap.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			sess = created
			m.SetSessionCookie(w, sess)
		}

		next.ServeHTTP(w, r.WithContext(WithSession(ctx, sess)))
	})
}

// SetSessionCookie выдаёт cookie для сессии sess.
func (m *SessionMiddleware) SetSessionCookie(w http.ResponseWriter, sess *model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    m.sign(sess.ID),
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *SessionMiddleware) sign(id string) string {
	mac := hmac.New(sha256.New, m.secretKey)
	mac.Write([]byte(id))
	return id + "." + hex.EncodeToString(mac.Sum(nil))
}

func (m *SessionMiddleware) parseCookie(value string) (string, bool) {
	id, _, found := strings.Cut(value, ".")
	if !found || id == "" {
		return "", false
	}

	if !hmac.Equal([]byte(value), []byte(m.sign(id))) {
		return "", false
	}
	return id, true
}

// WithSession кладёт сессию в контекст вместе с токеном для бэкенда.
func WithSession(ctx context.Context, sess *model.Session) context.Context {
	ctx = context.WithValue(ctx, sessionKey, sess)
	if sess.LoggedIn() {
		ctx = backend.WithToken(ctx, sess.Token)
	}
	return ctx
}

// SessionFromContext извлекает сессию из контекста запроса.
func SessionFromContext(ctx context.Context) *model.Session {
	sess, _ := ctx.Value(sessionKey).(*model.Session)
	return sess
}

// RequireAuth перенаправляет анонимного посетителя на страницу входа.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !SessionFromContext(r.Context()).LoggedIn() {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole пропускает только владельцев сессий с ролью role.
// Анонимный посетитель перенаправляется на вход, остальные получают forbidden.
func RequireRole(role string, forbidden http.Handler) func(http.Handler) http.Handler {
	if forbidden == nil {
		forbidden = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}

	return func(next http.Handler) http.Handler {
		return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SessionFromContext(r.Context()).Role != role {
				forbidden.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}
