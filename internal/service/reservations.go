package service

import (
	"context"
	"net/url"

	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

// CreateReservation создаёт бронирование автомобиля.
func (s *Service) CreateReservation(ctx context.Context, req model.ReservationRequest) (*model.Reservation, error) {
	var created model.Reservation
	if err := s.client.Post(ctx, "/reservations", req, &created); err != nil {
		return nil, s.fail("create reservation", err, "Failed to create reservation.")
	}
	return &created, nil
}

// MyReservations возвращает бронирования текущего пользователя.
func (s *Service) MyReservations(ctx context.Context) ([]model.Reservation, error) {
	reservations := []model.Reservation{}
	if err := s.client.Get(ctx, "/reservations/my-reservations", nil, &reservations); err != nil {
		return nil, s.fail("my reservations", err, "Failed to load reservations.")
	}
	return reservations, nil
}

// CancelReservation отменяет бронирование (мягкое удаление).
func (s *Service) CancelReservation(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/reservations/"+url.PathEscape(id)+"/delete/soft", nil); err != nil {
		return s.fail("cancel reservation", err, "Failed to cancel reservation.")
	}
	return nil
}

// PayReservation запускает оплату и возвращает адрес страницы оплаты.
func (s *Service) PayReservation(ctx context.Context, id string) (string, error) {
	var resp model.CheckoutResponse
	if err := s.client.Post(ctx, "/reservations/"+url.PathEscape(id)+"/pay", nil, &resp); err != nil {
		return "", s.fail("pay reservation", err, "Payment initiation failed.")
	}
	if resp.CheckoutURL == "" {
		return "", s.fail("pay reservation", ErrEmptyCheckout, "Payment initiation failed.")
	}
	return resp.CheckoutURL, nil
}
