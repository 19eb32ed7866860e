package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therisers/backoffice/internal/dto"
	"github.com/therisers/backoffice/internal/models"
	"github.com/therisers/backoffice/internal/services"
)

func TestSearch_ManagerWithoutBranch(t *testing.T) {
	db, mock := newTestDB(t)
	branches := services.NewBranchService(db, nil)
	h := NewSearchHandler(services.NewSearchService(db, branches))

	app := fiber.New()
	app.Get("/api/search", asRole(uuid.New(), models.RoleManager), h.Search)

	// No branch row carries this manager's id.
	mock.ExpectQuery(`SELECT \* FROM "branches"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "manager_id"}))

	req := httptest.NewRequest(fiber.MethodGet, "/api/search?query=ali", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var payload dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.True(t, payload.Error)
	assert.Equal(t, "No branch assigned to this manager", payload.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_QueryRequired(t *testing.T) {
	db, _ := newTestDB(t)
	branches := services.NewBranchService(db, nil)
	h := NewSearchHandler(services.NewSearchService(db, branches))

	app := fiber.New()
	app.Get("/api/search", asRole(uuid.New(), models.RoleAdmin), h.Search)

	req := httptest.NewRequest(fiber.MethodGet, "/api/search", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
