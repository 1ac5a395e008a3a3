package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghiblify_backend/internal/controller"
)

func newAuthApp(users *fakeUserStore) *fiber.App {
	ctrl := controller.NewAuthController(users, nil)

	app := fiber.New()
	app.Post("/api/auth/register", ctrl.Register)
	app.Post("/api/auth/login", ctrl.Login)
	app.Get("/api/me", withClaims(1), ctrl.GetMe)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRegister_CreatesTrialUser(t *testing.T) {
	users := newFakeUserStore()
	app := newAuthApp(users)

	resp := postJSON(t, app, "/api/auth/register", map[string]string{
		"email":    "miyazaki@example.com",
		"password": "totoro123",
	})

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	got := decodeJSON(t, resp)
	assert.NotEmpty(t, got["token"])

	user, err := users.GetByEmail(context.Background(), "miyazaki@example.com")
	require.NoError(t, err)
	assert.Equal(t, "miyazaki", user.Username)
	assert.False(t, user.IsSubscribed)
	assert.Equal(t, "none", user.SubscriptionStatus)
	assert.NotEqual(t, "totoro123", user.Password) // hash'lenmiş olmalı
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	app := newAuthApp(users)

	payload := map[string]string{"email": "dup@example.com", "password": "secret1"}

	resp := postJSON(t, app, "/api/auth/register", payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/auth/register", payload)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegister_MissingFields(t *testing.T) {
	users := newFakeUserStore()
	app := newAuthApp(users)

	resp := postJSON(t, app, "/api/auth/register", map[string]string{"email": "x@example.com"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin_RoundTrip(t *testing.T) {
	users := newFakeUserStore()
	app := newAuthApp(users)

	resp := postJSON(t, app, "/api/auth/register", map[string]string{
		"email":    "login@example.com",
		"password": "secret1",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/auth/login", map[string]string{
		"email":    "login@example.com",
		"password": "secret1",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decodeJSON(t, resp)
	assert.NotEmpty(t, got["token"])

	resp = postJSON(t, app, "/api/auth/login", map[string]string{
		"email":    "login@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetMe_ReportsTrialDays(t *testing.T) {
	user := trialUser(1)
	user.CreatedAt = time.Now().Add(-3 * 24 * time.Hour)
	users := newFakeUserStore(user)
	app := newAuthApp(users)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decodeJSON(t, resp)
	assert.Equal(t, true, got["can_generate"])
	assert.Equal(t, float64(4), got["days_remaining"])
}
