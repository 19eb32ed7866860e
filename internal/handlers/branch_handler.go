package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/therisers/backoffice/internal/dto"
	"github.com/therisers/backoffice/internal/services"
)

type BranchHandler struct {
	branches *services.BranchService
	stats    *services.StatsService
}

func NewBranchHandler(branches *services.BranchService, stats *services.StatsService) *BranchHandler {
	return &BranchHandler{branches: branches, stats: stats}
}

func (h *BranchHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	image, err := formUpload(c, "image")
	if err != nil {
		return serverError(c, err)
	}
	if image == nil {
		return badRequest(c, "Branch image is required")
	}

	branch, err := h.branches.Create(c.Context(), &req, image.Data, image.ContentType, image.Filename)
	if err != nil {
		if errors.Is(err, services.ErrBranchFieldsNeeded) {
			return badRequest(c, err.Error())
		}
		return serverError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(branch)
}

func (h *BranchHandler) List(c *fiber.Ctx) error {
	branches, err := h.branches.List()
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(branches)
}

func (h *BranchHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid branch ID")
	}

	branch, err := h.branches.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrBranchNotFound) {
			return notFound(c, "Branch not found")
		}
		return serverError(c, err)
	}
	return c.JSON(branch)
}

func (h *BranchHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid branch ID")
	}

	var req dto.UpdateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var imageData []byte
	var imageType, imageName string
	if image, err := formUpload(c, "image"); err != nil {
		return serverError(c, err)
	} else if image != nil {
		imageData = image.Data
		imageType = image.ContentType
		imageName = image.Filename
	}

	branch, err := h.branches.Update(c.Context(), id, &req, imageData, imageType, imageName)
	if err != nil {
		if errors.Is(err, services.ErrBranchNotFound) {
			return notFound(c, "Branch not found")
		}
		return serverError(c, err)
	}
	return c.JSON(branch)
}

func (h *BranchHandler) AssignManager(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid branch ID")
	}

	var req dto.AssignManagerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	managerID, err := uuid.Parse(req.ManagerID)
	if err != nil {
		return badRequest(c, "Valid managerId is required")
	}

	if err := h.branches.AssignManager(id, managerID); err != nil {
		switch {
		case errors.Is(err, services.ErrBranchNotFound):
			return notFound(c, "Branch not found")
		case errors.Is(err, services.ErrManagerTaken):
			return badRequest(c, err.Error())
		default:
			return serverError(c, err)
		}
	}
	return c.JSON(fiber.Map{"message": "Manager assigned successfully!"})
}

func (h *BranchHandler) RemoveManager(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid branch ID")
	}

	if err := h.branches.RemoveManager(id); err != nil {
		if errors.Is(err, services.ErrBranchNotFound) {
			return notFound(c, "Branch not found")
		}
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Manager removed from branch"})
}

func (h *BranchHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid branch ID")
	}

	if err := h.branches.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrBranchNotFound):
			return notFound(c, "Branch not found")
		case errors.Is(err, services.ErrBranchHasApplicants):
			return badRequest(c, err.Error())
		default:
			return serverError(c, err)
		}
	}
	return c.JSON(fiber.Map{"message": "Branch deleted successfully"})
}

func (h *BranchHandler) Stats(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid branch ID")
	}

	stats, err := h.stats.ForBranch(id)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(stats)
}

// MyBranch resolves the branch assigned to a manager id.
func (h *BranchHandler) MyBranch(c *fiber.Ctx) error {
	managerID, err := uuid.Parse(c.Query("managerId"))
	if err != nil {
		return badRequest(c, "Valid managerId is required")
	}

	branch, err := h.branches.FindByManager(managerID)
	if err != nil {
		if errors.Is(err, services.ErrBranchNotFound) {
			return notFound(c, "No branch assigned to this manager")
		}
		return serverError(c, err)
	}
	return c.JSON(branch)
}
