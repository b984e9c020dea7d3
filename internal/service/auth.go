package service

import (
	"context"
	"errors"
	"net/url"

	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

// ErrEmptyToken возвращается, если бэкенд ответил на вход без токена.
var (
	ErrEmptyToken = errors.New("backend returned empty token")
	// ErrEmptyCheckout возвращается, если бэкенд не выдал адрес страницы оплаты.
	ErrEmptyCheckout = errors.New("backend returned empty checkout url")
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetPasswordRequest struct {
	UserID      string `json:"userId"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// Login выполняет вход и возвращает токен доступа.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	var resp model.LoginResponse
	if err := s.client.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", s.fail("login", err, "Login failed.")
	}
	if resp.Token == "" {
		return "", s.fail("login", ErrEmptyToken, "Login failed.")
	}
	return resp.Token, nil
}

// Register регистрирует пользователя и возвращает ссылку подтверждения адреса.
func (s *Service) Register(ctx context.Context, username, email, password string) (*model.RegisterResponse, error) {
	var resp model.RegisterResponse
	req := registerRequest{Username: username, Email: email, Password: password}
	if err := s.client.Post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, s.fail("register", err, "Registration failed.")
	}
	return &resp, nil
}

// ConfirmEmail подтверждает адрес электронной почты по ссылке из письма.
func (s *Service) ConfirmEmail(ctx context.Context, userID, token string) error {
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("token", token)

	if err := s.client.Get(ctx, "/auth/confirm-email", q, nil); err != nil {
		return s.fail("confirm email", err, "Email confirmation failed.")
	}
	return nil
}

// ForgotPassword запрашивает письмо для сброса пароля.
// Бэкенд в режиме разработки возвращает ссылку сброса, она передаётся вызывающему.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp model.ForgotPasswordResponse
	if err := s.client.Post(ctx, "/auth/forgot-password", email, &resp); err != nil {
		return "", s.fail("forgot password", err, "Forgot password failed.")
	}
	return resp.ResetLink, nil
}

// ResetPassword устанавливает новый пароль по токену сброса.
func (s *Service) ResetPassword(ctx context.Context, userID, token, newPassword string) error {
	req := resetPasswordRequest{UserID: userID, Token: token, NewPassword: newPassword}
	if err := s.client.Post(ctx, "/auth/reset-password", req, nil); err != nil {
		return s.fail("reset password", err, "Reset failed.")
	}
	return nil
}
