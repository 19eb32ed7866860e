package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therisers/backoffice/internal/config"
	"github.com/therisers/backoffice/internal/dto"
	"github.com/therisers/backoffice/internal/services"
)

func newUserHandler(t *testing.T) *UserHandler {
	db, _ := newTestDB(t)
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
	auth := services.NewAuthService(db, cfg, nil)
	return NewUserHandler(auth, services.NewUserService(db))
}

func TestRegisterManager_MissingFieldsRejected(t *testing.T) {
	h := newUserHandler(t)

	app := fiber.New()
	app.Post("/api/users/registerManager", h.RegisterManager)

	body := `{"firstName":"Ali","email":"ali@example.com","password":"secret123","confirmPassword":"secret123"}`
	req := httptest.NewRequest(fiber.MethodPost, "/api/users/registerManager", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var payload dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.True(t, payload.Error)
	assert.Equal(t, services.ErrUserFieldsNeeded.Error(), payload.Message)
}

func TestCreateSubAdmin_MissingFieldsRejected(t *testing.T) {
	h := newUserHandler(t)

	app := fiber.New()
	app.Post("/api/subadmins", h.CreateSubAdmin)

	body := `{"firstName":"Sara","lastName":"Ahmed"}`
	req := httptest.NewRequest(fiber.MethodPost, "/api/subadmins", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var payload dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.True(t, payload.Error)
	assert.Equal(t, services.ErrUserFieldsNeeded.Error(), payload.Message)
}
