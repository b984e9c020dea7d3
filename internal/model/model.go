// Package model содержит доменные сущности витрины проката автомобилей RentCarX.
package model

import "time"

// RoleAdmin задаёт значение роли администратора в токене бэкенда.
const RoleAdmin = "Admin"

// Car описывает автомобиль из каталога бэкенда.
type Car struct {
	ID          string  `json:"id"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Year        int     `json:"year"`
	FuelType    string  `json:"fuelType"`
	PricePerDay float64 `json:"pricePerDay"`
	IsAvailable bool    `json:"isAvailable"`
	PhotoURL    string  `json:"photoUrl,omitempty"`
}

// Name возвращает отображаемое имя автомобиля.
func (c Car) Name() string {
	return c.Brand + " " + c.Model
}

// CarInput содержит поля формы создания и редактирования автомобиля.
type CarInput struct {
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Year        int     `json:"year"`
	FuelType    string  `json:"fuelType"`
	PricePerDay float64 `json:"pricePerDay"`
	IsAvailable bool    `json:"isAvailable"`
	Photo       *Upload `json:"-"`
}

// Upload содержит файл, загруженный пользователем через форму.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Reservation описывает бронирование пользователя.
type Reservation struct {
	ID        string  `json:"id"`
	CarID     string  `json:"carId"`
	CarName   string  `json:"carName"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	TotalCost float64 `json:"totalCost"`
	IsPaid    *bool   `json:"isPaid,omitempty"`
}

// Paid сообщает, отмечено ли бронирование как оплаченное.
func (r Reservation) Paid() bool {
	return r.IsPaid != nil && *r.IsPaid
}

// ReservationRequest описывает тело запроса на создание бронирования.
type ReservationRequest struct {
	CarID     string `json:"carId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Session хранит токен и роль посетителя.
type Session struct {
	ID        string
	Token     string
	Role      string
	Name      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// LoggedIn сообщает, есть ли в сессии токен.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

// IsAdmin сообщает, является ли владелец сессии администратором.
func (s *Session) IsAdmin() bool {
	return s.LoggedIn() && s.Role == RoleAdmin
}

// Expired сообщает, истёк ли срок жизни сессии на момент now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// LoginResponse описывает ответ POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterResponse описывает ответ POST /auth/register.
type RegisterResponse struct {
	JWTToken         string `json:"jwtToken"`
	ConfirmationLink string `json:"confirmationLink"`
}

// ForgotPasswordResponse описывает ответ POST /auth/forgot-password.
type ForgotPasswordResponse struct {
	ResetLink string `json:"resetLink,omitempty"`
}

// CheckoutResponse описывает ответ POST /reservations/{id}/pay.
type CheckoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}
