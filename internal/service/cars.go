package service

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

type updateCarRequest struct {
	ID      string         `json:"id"`
	CarData model.CarInput `json:"carData"`
}

// ListCars возвращает автомобили, удовлетворяющие фильтрам. Порядок ответа бэкенда сохраняется.
func (s *Service) ListCars(ctx context.Context, filters model.Filters) ([]model.Car, error) {
	cars := []model.Car{}
	if err := s.client.Get(ctx, "/cars", filters.Query(), &cars); err != nil {
		return nil, s.fail("list cars", err, "Failed to load cars.")
	}
	return cars, nil
}

// GetCar возвращает автомобиль по идентификатору.
func (s *Service) GetCar(ctx context.Context, id string) (*model.Car, error) {
	var car model.Car
	if err := s.client.Get(ctx, "/cars/"+url.PathEscape(id), nil, &car); err != nil {
		return nil, s.fail("get car", err, "Failed to load car details.")
	}
	return &car, nil
}

// CreateCar создаёт автомобиль; фотография передаётся вместе с полями в multipart-теле.
func (s *Service) CreateCar(ctx context.Context, in model.CarInput) (*model.Car, error) {
	fields := map[string]string{
		"brand":       in.Brand,
		"model":       in.Model,
		"year":        strconv.Itoa(in.Year),
		"fuelType":    in.FuelType,
		"pricePerDay": strconv.FormatFloat(in.PricePerDay, 'f', -1, 64),
		"isAvailable": strconv.FormatBool(in.IsAvailable),
	}

	var created model.Car
	if err := s.client.PostMultipart(ctx, "/cars", fields, "photo", in.Photo, &created); err != nil {
		return nil, s.fail("create car", err, "Failed to create car.")
	}
	return &created, nil
}

// UpdateCar изменяет автомобиль id.
func (s *Service) UpdateCar(ctx context.Context, id string, in model.CarInput) (*model.Car, error) {
	var updated model.Car
	req := updateCarRequest{ID: id, CarData: in}
	if err := s.client.Put(ctx, "/cars/"+url.PathEscape(id), req, &updated); err != nil {
		return nil, s.fail("update car", err, "Failed to update car.")
	}
	return &updated, nil
}

// DeleteCar удаляет автомобиль id.
func (s *Service) DeleteCar(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/cars/"+url.PathEscape(id), nil); err != nil {
		return s.fail("delete car", err, "Failed to delete car.")
	}
	return nil
}
