package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/rentcarx-storefront/internal/middleware"
	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

// SetupRouter настраивает маршруты и middleware витрины.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.GzipMiddleware)
	r.Use(h.cookies.Middleware)

	r.Get("/", h.Home)

	r.Route("/car-list", func(r chi.Router) {
		r.Get("/", h.CarList)
		r.Post("/draft", h.CarListDraft)
		r.Post("/apply", h.CarListApply)
		r.Post("/clear", h.CarListClear)
		r.Post("/chips/{key}/remove", h.CarListRemoveChip)
	})

	r.Get("/signin", h.SignUpForm)
	r.Post("/signin", h.SignUp)
	r.Get("/login", h.LoginForm)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/forgot-password", h.ForgotPasswordForm)
	r.Post("/forgot-password", h.ForgotPassword)
	r.Get("/reset-password", h.ResetPasswordForm)
	r.Post("/reset-password", h.ResetPassword)
	r.Get("/confirm-email", h.ConfirmEmail)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/my-account", h.MyAccount)
		r.Post("/my-account/reservations/{id}/cancel", h.CancelReservation)
		r.Post("/my-account/reservations/{id}/pay", h.PayReservation)

		r.Get("/reservation/{carId}", h.ReservationForm)
		r.Post("/reservation/{carId}", h.CreateReservation)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireRole(model.RoleAdmin, http.HandlerFunc(h.forbidden)))

		r.Get("/", h.AdminDashboard)
		r.Get("/users", h.AdminUsers)
		r.Get("/cars", h.AdminCars)
		r.Post("/cars", h.AdminCreateCar)
		r.Get("/cars/{id}/edit", h.AdminEditCarForm)
		r.Post("/cars/{id}/edit", h.AdminUpdateCar)
		r.Post("/cars/{id}/delete", h.AdminDeleteCar)
	})

	r.NotFound(h.notFound)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
