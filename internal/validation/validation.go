// Package validation содержит проверки пользовательских форм.
// Проверки носят рекомендательный характер: окончательное решение принимает бэкенд.
package validation

import (
	"math"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Errors сопоставляет имя поля формы с сообщением об ошибке.
type Errors map[string]string

// OK сообщает об отсутствии ошибок.
func (e Errors) OK() bool {
	return len(e) == 0
}

func (e Errors) add(field, msg string) {
	if msg == "" {
		return
	}
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

const specialChars = `!@#$%^&*(),.?":{}|<>`

var (
	upperRe   = regexp.MustCompile(`[A-Z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[` + regexp.QuoteMeta(specialChars) + `]`)
)

// Email проверяет адрес электронной почты и возвращает сообщение об ошибке или пустую строку.
func Email(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required"
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@"):], ".") {
		return "Invalid email"
	}
	return ""
}

// Password проверяет сложность пароля. required возвращается для пустого значения.
func Password(password, required string) string {
	switch {
	case password == "":
		return required
	case len([]rune(password)) < 8:
		return "Password must be at least 8 characters"
	case !upperRe.MatchString(password):
		return "Password must contain at least one uppercase letter"
	case !digitRe.MatchString(password):
		return "Password must contain at least one number"
	case !specialRe.MatchString(password):
		return "Password must contain at least one special character"
	default:
		return ""
	}
}

// SignUp описывает форму регистрации.
type SignUp struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate проверяет форму регистрации.
func (f SignUp) Validate() Errors {
	errs := Errors{}
	username := strings.TrimSpace(f.Username)
	switch {
	case username == "":
		errs.add("username", "Username is required")
	case strings.IndexFunc(username, unicode.IsSpace) >= 0:
		errs.add("username", "Username cannot contain spaces")
	}
	errs.add("email", Email(f.Email))
	errs.add("password", Password(f.Password, "Password is required"))
	errs.add("confirmPassword", confirm(f.Password, f.ConfirmPassword))
	return errs
}

// Login описывает форму входа.
type Login struct {
	Email    string
	Password string
}

// Validate проверяет форму входа.
func (f Login) Validate() Errors {
	errs := Errors{}
	errs.add("email", Email(f.Email))
	errs.add("password", Password(f.Password, "Password is required"))
	return errs
}

// ForgotPassword описывает форму запроса сброса пароля.
type ForgotPassword struct {
	Email string
}

// Validate проверяет форму запроса сброса пароля.
func (f ForgotPassword) Validate() Errors {
	errs := Errors{}
	errs.add("email", Email(f.Email))
	return errs
}

// ResetPassword описывает форму установки нового пароля.
type ResetPassword struct {
	NewPassword     string
	ConfirmPassword string
}

// Validate проверяет форму установки нового пароля.
func (f ResetPassword) Validate() Errors {
	errs := Errors{}
	errs.add("newPassword", Password(f.NewPassword, "New password is required"))
	errs.add("confirmPassword", confirm(f.NewPassword, f.ConfirmPassword))
	return errs
}

func confirm(password, confirmation string) string {
	if confirmation == "" {
		return "Confirm password is required"
	}
	if confirmation != password {
		return "Passwords must match"
	}
	return ""
}

// CarForm описывает форму создания или редактирования автомобиля в исходном строковом виде.
type CarForm struct {
	Brand       string
	Model       string
	Year        string
	FuelType    string
	PricePerDay string
}

// Validate проверяет форму автомобиля относительно текущей даты now.
func (f CarForm) Validate(now time.Time) Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Brand) == "" {
		errs.add("brand", "Brand is required")
	}
	if strings.TrimSpace(f.Model) == "" {
		errs.add("model", "Model is required")
	}
	if strings.TrimSpace(f.FuelType) == "" {
		errs.add("fuelType", "Fuel type is required")
	}

	if year := strings.TrimSpace(f.Year); year == "" {
		errs.add("year", "Year is required")
	} else if y, err := strconv.Atoi(year); err != nil {
		errs.add("year", "Year must be a number")
	} else if y < 1900 {
		errs.add("year", "Year must be >= 1900")
	} else if y > now.Year() {
		errs.add("year", "Year cannot be in the future")
	}

	if price := strings.TrimSpace(f.PricePerDay); price == "" {
		errs.add("pricePerDay", "Price is required")
	} else if p, err := strconv.ParseFloat(price, 64); err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		errs.add("pricePerDay", "Price must be a number")
	} else if p < 1 {
		errs.add("pricePerDay", "Price must be at least 1")
	}
	return errs
}

// ReservationForm описывает выбранный период бронирования.
type ReservationForm struct {
	StartDate string
	EndDate   string
}

// Validate проверяет период бронирования.
func (f ReservationForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.StartDate) == "" {
		errs.add("startDate", "Start date is required")
	}
	if strings.TrimSpace(f.EndDate) == "" {
		errs.add("endDate", "End date is required")
		return errs
	}
	if errs.OK() {
		start, errStart := time.Parse("2006-01-02", f.StartDate)
		end, errEnd := time.Parse("2006-01-02", f.EndDate)
		if errStart != nil || errEnd != nil || !end.After(start) {
			errs.add("endDate", "End date must be after start date")
		}
	}
	return errs
}
