package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/therisers/backoffice/internal/models"
	"github.com/therisers/backoffice/internal/scope"
	"github.com/therisers/backoffice/internal/services"
)

type StatsHandler struct {
	stats *services.StatsService
}

func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Branch returns the dashboard numbers for the calling manager's
// branch.
func (h *StatsHandler) Branch(c *fiber.Ctx) error {
	caller, err := scope.Caller(c)
	if err != nil {
		return unauthorized(c)
	}
	if caller.Role != models.RoleManager {
		return forbidden(c, "Manager access required")
	}

	stats, err := h.stats.ForManager(caller.UserID)
	if err != nil {
		if errors.Is(err, services.ErrBranchNotFound) {
			return notFound(c, "No branch assigned to this manager")
		}
		return serverError(c, err)
	}
	return c.JSON(stats)
}

func (h *StatsHandler) Admin(c *fiber.Ctx) error {
	stats, err := h.stats.ForAdmin()
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(stats)
}

func (h *StatsHandler) RevenuePerBranch(c *fiber.Ctx) error {
	revenue, err := h.stats.RevenuePerBranchPerCurrency()
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(revenue)
}
