// Package handler содержит HTTP-обработчики страниц витрины RentCarX.
package handler

import (
	"context"
	"html/template"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/rentcarx-storefront/internal/catalog"
	"github.com/mmeshcher/rentcarx-storefront/internal/middleware"
	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

// Service определяет вызовы бэкенда, используемые страницами.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, username, email, password string) (*model.RegisterResponse, error)
	ConfirmEmail(ctx context.Context, userID, token string) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, userID, token, newPassword string) error

	ListCars(ctx context.Context, filters model.Filters) ([]model.Car, error)
	GetCar(ctx context.Context, id string) (*model.Car, error)
	CreateCar(ctx context.Context, in model.CarInput) (*model.Car, error)
	UpdateCar(ctx context.Context, id string, in model.CarInput) (*model.Car, error)
	DeleteCar(ctx context.Context, id string) error

	CreateReservation(ctx context.Context, req model.ReservationRequest) (*model.Reservation, error)
	MyReservations(ctx context.Context) ([]model.Reservation, error)
	CancelReservation(ctx context.Context, id string) error
	PayReservation(ctx context.Context, id string) (string, error)
}

// Sessions входит в сессию, завершает её и сообщает роль владельца.
type Sessions interface {
	Login(ctx context.Context, id, token string) (*model.Session, error)
	Logout(ctx context.Context, id string) (*model.Session, error)
	CurrentRole(ctx context.Context, id string) string
}

// Options задаёт параметры отображения страниц.
type Options struct {
	// AssetsAddress задаёт адрес, к которому приписываются относительные пути фотографий.
	AssetsAddress string
	// WaitTimeout ограничивает ожидание загрузки каталога при отрисовке страницы.
	WaitTimeout time.Duration
}

// Handler реализует страницы витрины.
type Handler struct {
	service  Service
	sessions Sessions
	catalogs *catalog.Registry
	cookies  *middleware.SessionMiddleware
	views    *renderer
	logger   *zap.Logger

	assets      string
	waitTimeout time.Duration
	now         func() time.Time
}

// NewHandler создаёт обработчик страниц.
func NewHandler(s Service, sessions Sessions, catalogs *catalog.Registry, cookies *middleware.SessionMiddleware, logger *zap.Logger, opts Options) (*Handler, error) {
	wait := opts.WaitTimeout
	if wait <= 0 {
		wait = 10 * time.Second
	}

	h := &Handler{
		service:     s,
		sessions:    sessions,
		catalogs:    catalogs,
		cookies:     cookies,
		logger:      logger,
		assets:      strings.TrimRight(opts.AssetsAddress, "/"),
		waitTimeout: wait,
		now:         time.Now,
	}

	views, err := newRenderer(template.FuncMap{"photo": h.photoURL})
	if err != nil {
		return nil, err
	}
	h.views = views

	return h, nil
}

// photoURL возвращает адрес фотографии: абсолютные адреса не меняются,
// относительные пути бэкенда приписываются к адресу статических файлов.
func (h *Handler) photoURL(raw string) string {
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return raw
	default:
		return h.assets + "/" + strings.TrimLeft(raw, "/")
	}
}

func currentSession(r *http.Request) *model.Session {
	return middleware.SessionFromContext(r.Context())
}

func seeOther(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
