package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/therisers/backoffice/internal/dto"
	"github.com/therisers/backoffice/internal/services"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) Add(c *fiber.Ctx) error {
	applicantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid applicant ID")
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	payment, err := h.payments.Add(applicantID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentFieldsNeeded):
			return badRequest(c, err.Error())
		case errors.Is(err, services.ErrApplicantNotFound):
			return notFound(c, "Applicant not found")
		default:
			return serverError(c, err)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

func (h *PaymentHandler) List(c *fiber.Ctx) error {
	applicantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid applicant ID")
	}

	payments, err := h.payments.ListByApplicant(applicantID)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(payments)
}

func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	applicantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid applicant ID")
	}
	paymentID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return badRequest(c, "Invalid payment ID")
	}

	if err := h.payments.Delete(applicantID, paymentID); err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			return notFound(c, "Payment not found")
		case errors.Is(err, services.ErrPaymentWrongOwner):
			return badRequest(c, err.Error())
		default:
			return serverError(c, err)
		}
	}
	return c.JSON(fiber.Map{"message": "Payment deleted successfully"})
}

func (h *PaymentHandler) DeleteBatch(c *fiber.Ctx) error {
	applicantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid applicant ID")
	}
	batchID := c.Params("batchId")
	if batchID == "" {
		return badRequest(c, "Batch ID is required")
	}

	if err := h.payments.DeleteBatch(applicantID, batchID); err != nil {
		if errors.Is(err, services.ErrBatchEmpty) {
			return notFound(c, err.Error())
		}
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Payment batch deleted successfully"})
}
