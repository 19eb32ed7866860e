package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/therisers/backoffice/internal/scope"
	"github.com/therisers/backoffice/internal/services"
)

type SearchHandler struct {
	search *services.SearchService
}

func NewSearchHandler(search *services.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	caller, err := scope.Caller(c)
	if err != nil {
		return unauthorized(c)
	}

	query := c.Query("query")
	if query == "" {
		return badRequest(c, "Search query is required")
	}

	results, err := h.search.Search(caller, query)
	if err != nil {
		if errors.Is(err, services.ErrManagerNoBranch) {
			return notFound(c, "No branch assigned to this manager")
		}
		return serverError(c, err)
	}
	return c.JSON(results)
}
