package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/therisers/backoffice/internal/dto"
	"github.com/therisers/backoffice/internal/scope"
	"github.com/therisers/backoffice/internal/services"
)

type UserHandler struct {
	auth  *services.AuthService
	users *services.UserService
}

func NewUserHandler(auth *services.AuthService, users *services.UserService) *UserHandler {
	return &UserHandler{auth: auth, users: users}
}

// RegisterManager creates a standalone manager account.
func (h *UserHandler) RegisterManager(c *fiber.Ctx) error {
	var req dto.RegisterManagerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.auth.RegisterManager(&req, nil)
	if err != nil {
		return registerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// AddManager creates a manager and links it to an existing branch.
func (h *UserHandler) AddManager(c *fiber.Ctx) error {
	var req dto.RegisterManagerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return badRequest(c, "Valid branchId is required")
	}

	resp, err := h.auth.RegisterManager(&req, &branchID)
	if err != nil {
		return registerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func registerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUserFieldsNeeded),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrPasswordMismatch):
		return badRequest(c, err.Error())
	case errors.Is(err, services.ErrBranchNotFound):
		return notFound(c, err.Error())
	default:
		return serverError(c, err)
	}
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.auth.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return serverError(c, err)
	}
	return c.JSON(resp)
}

func (h *UserHandler) Profile(c *fiber.Ctx) error {
	caller, err := scope.Caller(c)
	if err != nil {
		return unauthorized(c)
	}

	user, err := h.users.Get(caller.UserID)
	if err != nil {
		return notFound(c, "User not found")
	}
	return c.JSON(user)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.Query("role"))
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	user, err := h.users.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return notFound(c, "User not found")
		}
		return serverError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.users.Update(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return notFound(c, "User not found")
		}
		return serverError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	if err := h.users.Delete(id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return notFound(c, "User not found")
		}
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// Sub-admin management.

func (h *UserHandler) CreateSubAdmin(c *fiber.Ctx) error {
	var req dto.CreateSubAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	subAdmin, err := h.auth.CreateSubAdmin(&req)
	if err != nil {
		if errors.Is(err, services.ErrUserFieldsNeeded) || errors.Is(err, services.ErrEmailTaken) {
			return badRequest(c, err.Error())
		}
		return serverError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Sub Admin created successfully",
		"subAdmin": subAdmin,
	})
}

func (h *UserHandler) ListSubAdmins(c *fiber.Ctx) error {
	subAdmins, err := h.users.ListSubAdmins()
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(subAdmins)
}
