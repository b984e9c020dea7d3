package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

func TestGet_DecodesAndSendsBearer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/cars", r.URL.Path)
		assert.Equal(t, "Audi", r.URL.Query().Get("brand"))
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]model.Car{{ID: "1", Brand: "Audi", Model: "A4", PricePerDay: 50, IsAvailable: true}})
	}))
	defer ts.Close()

	client := NewClient(ts.URL+"/api/v1/", time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var cars []model.Car
	err := client.Get(WithToken(ctx, "secret-token"), "/cars", map[string][]string{"brand": {"Audi"}}, &cars)
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "A4", cars[0].Model)
}

func TestGet_NoTokenNoHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)

	var cars []model.Car
	require.NoError(t, client.Get(context.Background(), "/cars", nil, &cars))
	assert.Empty(t, cars)
}

func TestPost_EncodesJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `"jan@example.com"`, string(body))
		_, _ = w.Write([]byte(`{"resetLink":"http://x/reset"}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)

	var out model.ForgotPasswordResponse
	require.NoError(t, client.Post(context.Background(), "/auth/forgot-password", "jan@example.com", &out))
	assert.Equal(t, "http://x/reset", out.ResetLink)
}

func TestDelete_NoContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/reservations/7/delete/soft", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)
	require.NoError(t, client.Delete(context.Background(), "/reservations/7/delete/soft", nil))
}

func TestPostMultipart(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "Audi", r.FormValue("brand"))
		assert.Equal(t, "2020", r.FormValue("year"))

		file, header, err := r.FormFile("photo")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "car.jpg", header.Filename)
		assert.Equal(t, "jpeg-bytes", string(data))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"9","brand":"Audi"}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)

	var created model.Car
	err := client.PostMultipart(context.Background(), "/cars",
		map[string]string{"brand": "Audi", "year": "2020"},
		"photo", &model.Upload{Filename: "car.jpg", ContentType: "image/jpeg", Data: []byte("jpeg-bytes")},
		&created)
	require.NoError(t, err)
	assert.Equal(t, "9", created.ID)
}

func TestAPIError_DetailPreferred(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"title":"Bad Request","detail":"Car is not available in this period.","message":"ignored"}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)
	err := client.Post(context.Background(), "/reservations", model.ReservationRequest{CarID: "1"}, nil)
	require.Error(t, err)

	code, ok := StatusCode(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Car is not available in this period.", Message(err, "Failed to create reservation."))
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		want     string
	}{
		{name: "nil error", err: nil, fallback: "x", want: ""},
		{name: "transport error", err: errors.New("dial tcp: refused"), fallback: "Failed to load cars.", want: "Failed to load cars."},
		{name: "message field", err: &APIError{StatusCode: 409, Message: "Email already taken"}, fallback: "Registration failed.", want: "Email already taken"},
		{name: "detail wins", err: &APIError{StatusCode: 400, Detail: "d", Message: "m"}, fallback: "f", want: "d"},
		{name: "title only", err: &APIError{StatusCode: 500, Title: "Server Error"}, fallback: "f", want: "f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err, tt.fallback))
		})
	}
}

func TestAPIError_NonJSONBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)
	err := client.Get(context.Background(), "/cars", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "backend status 502", apiErr.Error())
}
