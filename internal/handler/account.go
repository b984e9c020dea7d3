package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/rentcarx-storefront/internal/model"
	"github.com/mmeshcher/rentcarx-storefront/internal/pricing"
	"github.com/mmeshcher/rentcarx-storefront/internal/service"
)

type reservationRow struct {
	model.Reservation
	Days int
}

type accountPage struct {
	Reservations []reservationRow
	Count        int
	TotalSpend   float64
	Error        string
	Notice       string
	Confirm      *model.Reservation
}

func (h *Handler) accountPage(r *http.Request) accountPage {
	var p accountPage

	list, err := h.service.MyReservations(r.Context())
	if err != nil {
		p.Error = "Unable to load reservations."
		return p
	}

	for _, res := range list {
		p.Reservations = append(p.Reservations, reservationRow{
			Reservation: res,
			Days:        pricing.DaysBetween(res.StartDate, res.EndDate),
		})
		p.TotalSpend += res.TotalCost
	}
	p.Count = len(list)
	return p
}

// MyAccount отображает бронирования пользователя и сводку по ним.
func (h *Handler) MyAccount(w http.ResponseWriter, r *http.Request) {
	p := h.accountPage(r)
	switch {
	case r.URL.Query().Get("created") == "1":
		p.Notice = "Reservation created successfully!"
	case r.URL.Query().Get("cancelled") == "1":
		p.Notice = "Reservation cancelled."
	}
	h.render(w, r, http.StatusOK, "account", "My Reservations", p)
}

// CancelReservation отменяет бронирование после подтверждения.
// Без confirm=yes отображается шаг подтверждения.
func (h *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil || id == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if r.PostFormValue("confirm") != "yes" {
		p := h.accountPage(r)
		for _, row := range p.Reservations {
			if row.ID == id {
				res := row.Reservation
				p.Confirm = &res
				break
			}
		}
		if p.Confirm == nil {
			p.Confirm = &model.Reservation{ID: id}
		}
		h.render(w, r, http.StatusOK, "account", "Cancel this reservation?", p)
		return
	}

	if err := h.service.CancelReservation(r.Context(), id); err != nil {
		p := h.accountPage(r)
		p.Error = service.UserMessage(err, "Failed to cancel reservation.")
		h.render(w, r, http.StatusUnprocessableEntity, "account", "My Reservations", p)
		return
	}

	seeOther(w, r, "/my-account?cancelled=1")
}

// PayReservation начинает оплату и перенаправляет на страницу платёжного провайдера.
func (h *Handler) PayReservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	checkout, err := h.service.PayReservation(r.Context(), id)
	if err != nil {
		p := h.accountPage(r)
		p.Error = "Payment failed."
		h.render(w, r, http.StatusUnprocessableEntity, "account", "My Reservations", p)
		return
	}

	seeOther(w, r, checkout)
}
