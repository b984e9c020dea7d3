package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/mmeshcher/rentcarx-storefront/internal/model"
	"github.com/mmeshcher/rentcarx-storefront/internal/service"
	"github.com/mmeshcher/rentcarx-storefront/internal/session"
	"github.com/mmeshcher/rentcarx-storefront/internal/validation"
)

// formPage содержит данные страниц с формами аутентификации.
type formPage struct {
	Values map[string]string
	Errors validation.Errors
	Error  string
	Notice string
	// Link хранит ссылку из ответа бэкенда, которую среда разработки показывает вместо письма.
	Link    string
	Invalid bool
	UserID  string
	Token   string
}

// SignUpForm отображает форму регистрации.
func (h *Handler) SignUpForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "signup", "Sign Up", formPage{})
}

// SignUp регистрирует пользователя.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := validation.SignUp{
		Username:        strings.TrimSpace(r.PostFormValue("username")),
		Email:           strings.TrimSpace(r.PostFormValue("email")),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}
	p := formPage{Values: map[string]string{"username": form.Username, "email": form.Email}}

	if p.Errors = form.Validate(); !p.Errors.OK() {
		h.render(w, r, http.StatusUnprocessableEntity, "signup", "Sign Up", p)
		return
	}

	resp, err := h.service.Register(r.Context(), form.Username, form.Email, form.Password)
	if err != nil {
		p.Error = service.UserMessage(err, "Registration failed.")
		h.render(w, r, http.StatusUnprocessableEntity, "signup", "Sign Up", p)
		return
	}

	p.Notice = "Registration successful! Check your email to confirm your account."
	p.Link = resp.ConfirmationLink
	h.render(w, r, http.StatusOK, "signup", "Sign Up", p)
}

// LoginForm отображает форму входа.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	p := formPage{}
	if r.URL.Query().Get("reset") == "1" {
		p.Notice = "Password changed. You can log in now."
	}
	h.render(w, r, http.StatusOK, "login", "Log In", p)
}

// Login выполняет вход, сохраняет токен в сессии и перенаправляет
// администратора в панель управления, остальных на главную.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := validation.Login{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	p := formPage{Values: map[string]string{"email": form.Email}}

	if p.Errors = form.Validate(); !p.Errors.OK() {
		h.render(w, r, http.StatusUnprocessableEntity, "login", "Log In", p)
		return
	}

	token, err := h.service.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		p.Error = "Login failed."
		h.render(w, r, http.StatusUnauthorized, "login", "Log In", p)
		return
	}

	sess, err := h.sessions.Login(r.Context(), currentSession(r).ID, token)
	if err != nil {
		if errors.Is(err, session.ErrNoRole) {
			p.Error = "Login failed: could not determine user role."
		} else {
			h.logger.Error("save session", zap.Error(err))
			p.Error = "Login failed."
		}
		h.render(w, r, http.StatusUnauthorized, "login", "Log In", p)
		return
	}

	h.cookies.SetSessionCookie(w, sess)

	if h.sessions.CurrentRole(r.Context(), sess.ID) == model.RoleAdmin {
		seeOther(w, r, "/admin")
		return
	}
	seeOther(w, r, "/")
}

// Logout завершает сессию.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Logout(r.Context(), currentSession(r).ID)
	if err != nil {
		h.logger.Error("logout", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.cookies.SetSessionCookie(w, sess)
	seeOther(w, r, "/login")
}

// ForgotPasswordForm отображает форму запроса сброса пароля.
func (h *Handler) ForgotPasswordForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "forgot", "Forgot password", formPage{})
}

// ForgotPassword запрашивает письмо для сброса пароля.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := validation.ForgotPassword{Email: strings.TrimSpace(r.PostFormValue("email"))}
	p := formPage{Values: map[string]string{"email": form.Email}}

	if p.Errors = form.Validate(); !p.Errors.OK() {
		h.render(w, r, http.StatusUnprocessableEntity, "forgot", "Forgot password", p)
		return
	}

	link, err := h.service.ForgotPassword(r.Context(), form.Email)
	if err != nil {
		p.Error = service.UserMessage(err, "Forgot password failed.")
		h.render(w, r, http.StatusUnprocessableEntity, "forgot", "Forgot password", p)
		return
	}

	p.Notice = "If the account exists, you’ll receive a reset email in MailDev."
	p.Link = link
	h.render(w, r, http.StatusOK, "forgot", "Forgot password", p)
}

func resetPage(r *http.Request) formPage {
	userID := r.URL.Query().Get("userId")
	token := r.URL.Query().Get("token")
	return formPage{
		UserID:  userID,
		Token:   token,
		Invalid: userID == "" || token == "",
	}
}

// ResetPasswordForm отображает форму нового пароля по ссылке из письма.
func (h *Handler) ResetPasswordForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "reset", "Reset password", resetPage(r))
}

// ResetPassword устанавливает новый пароль.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	p := resetPage(r)
	if p.Invalid {
		h.render(w, r, http.StatusBadRequest, "reset", "Reset password", p)
		return
	}

	form := validation.ResetPassword{
		NewPassword:     r.PostFormValue("newPassword"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}
	if p.Errors = form.Validate(); !p.Errors.OK() {
		h.render(w, r, http.StatusUnprocessableEntity, "reset", "Reset password", p)
		return
	}

	if err := h.service.ResetPassword(r.Context(), p.UserID, p.Token, form.NewPassword); err != nil {
		p.Error = service.UserMessage(err, "Reset failed.")
		h.render(w, r, http.StatusUnprocessableEntity, "reset", "Reset password", p)
		return
	}

	seeOther(w, r, "/login?"+url.Values{"reset": {"1"}}.Encode())
}

type confirmPage struct {
	Status string
}

// ConfirmEmail подтверждает адрес электронной почты по ссылке из письма.
func (h *Handler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	token := r.URL.Query().Get("token")

	if userID == "" || token == "" {
		h.render(w, r, http.StatusBadRequest, "confirm", "Email confirmation", confirmPage{Status: "error"})
		return
	}

	if err := h.service.ConfirmEmail(r.Context(), userID, token); err != nil {
		h.render(w, r, http.StatusBadRequest, "confirm", "Email confirmation", confirmPage{Status: "error"})
		return
	}

	h.render(w, r, http.StatusOK, "confirm", "Email confirmation", confirmPage{Status: "success"})
}
