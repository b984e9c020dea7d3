package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/rentcarx-storefront/internal/model"
	"github.com/mmeshcher/rentcarx-storefront/internal/pricing"
	"github.com/mmeshcher/rentcarx-storefront/internal/service"
	"github.com/mmeshcher/rentcarx-storefront/internal/validation"
)

type reservationPage struct {
	CarID     string
	Car       *model.Car
	CarError  string
	StartDate string
	EndDate   string
	Errors    validation.Errors
	Error     string
	Days      int
	Subtotal  float64
	Today     string
	MinEnd    string
	CanSubmit bool
}

func (h *Handler) reservationPage(r *http.Request, carID, start, end string) reservationPage {
	p := reservationPage{
		CarID:     carID,
		StartDate: start,
		EndDate:   end,
		Today:     pricing.Today(h.now()),
	}
	p.MinEnd = p.Today
	if start != "" {
		p.MinEnd = start
	}

	car, err := h.service.GetCar(r.Context(), carID)
	if err != nil {
		p.CarError = service.UserMessage(err, "Failed to load car.")
	} else {
		p.Car = car
	}

	p.Days = pricing.DaysBetween(start, end)
	if p.Car != nil {
		p.Subtotal = pricing.Subtotal(p.Days, p.Car.PricePerDay)
	}
	p.CanSubmit = pricing.CanSubmit(p.Days, p.Car)
	return p
}

// ReservationForm отображает форму бронирования. Даты из строки запроса
// пересчитывают число суток и предварительную стоимость.
func (h *Handler) ReservationForm(w http.ResponseWriter, r *http.Request) {
	carID := chi.URLParam(r, "carId")
	if carID == "" {
		h.render(w, r, http.StatusBadRequest, "reservation", "Reservation", reservationPage{Error: "Invalid car id."})
		return
	}

	q := r.URL.Query()
	h.render(w, r, http.StatusOK, "reservation", "Finalize your reservation",
		h.reservationPage(r, carID, q.Get("startDate"), q.Get("endDate")))
}

// CreateReservation отправляет бронирование. Если бронирование заведомо невозможно,
// бэкенд не вызывается.
func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	carID := chi.URLParam(r, "carId")
	if err := r.ParseForm(); err != nil || carID == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := validation.ReservationForm{
		StartDate: r.PostFormValue("startDate"),
		EndDate:   r.PostFormValue("endDate"),
	}
	p := h.reservationPage(r, carID, form.StartDate, form.EndDate)

	if errs := form.Validate(); !errs.OK() {
		p.Errors = errs
		h.render(w, r, http.StatusUnprocessableEntity, "reservation", "Finalize your reservation", p)
		return
	}
	if !p.CanSubmit {
		h.render(w, r, http.StatusUnprocessableEntity, "reservation", "Finalize your reservation", p)
		return
	}

	_, err := h.service.CreateReservation(r.Context(), model.ReservationRequest{
		CarID:     carID,
		StartDate: form.StartDate,
		EndDate:   form.EndDate,
	})
	if err != nil {
		p.Error = service.UserMessage(err, "Failed to create reservation.")
		h.render(w, r, http.StatusUnprocessableEntity, "reservation", "Finalize your reservation", p)
		return
	}

	seeOther(w, r, "/my-account?"+url.Values{"created": {"1"}}.Encode())
}
