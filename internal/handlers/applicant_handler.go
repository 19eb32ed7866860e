package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/therisers/backoffice/internal/dto"
	"github.com/therisers/backoffice/internal/models"
	"github.com/therisers/backoffice/internal/scope"
	"github.com/therisers/backoffice/internal/services"
)

type ApplicantHandler struct {
	applicants *services.ApplicantService
	processing *services.ProcessingService
}

func NewApplicantHandler(applicants *services.ApplicantService, processing *services.ProcessingService) *ApplicantHandler {
	return &ApplicantHandler{applicants: applicants, processing: processing}
}

func (h *ApplicantHandler) Create(c *fiber.Ctx) error {
	caller, err := scope.Caller(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateApplicantRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	photo, err := formUpload(c, "photo")
	if err != nil {
		return serverError(c, err)
	}

	applicant, err := h.applicants.Create(c.Context(), caller, &req, photo)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingRequired),
			errors.Is(err, services.ErrInvalidVisaType),
			errors.Is(err, services.ErrBranchIDRequired):
			return badRequest(c, err.Error())
		case errors.Is(err, services.ErrManagerNoBranch):
			return forbidden(c, "No branch is assigned to this manager")
		default:
			return serverError(c, err)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(applicant)
}

// List scopes managers to their own branch; admins see everything, or
// one branch when ?branchId= is given.
func (h *ApplicantHandler) List(c *fiber.Ctx) error {
	caller, err := scope.Caller(c)
	if err != nil {
		return unauthorized(c)
	}

	var branchID *uuid.UUID
	if caller.Role == models.RoleManager {
		id, err := h.applicants.ResolveBranch(caller, "")
		if err != nil {
			if errors.Is(err, services.ErrManagerNoBranch) {
				return badRequest(c, "No branch is assigned to this manager")
			}
			return serverError(c, err)
		}
		branchID = &id
	} else if q := c.Query("branchId"); q != "" {
		id, err := uuid.Parse(q)
		if err != nil {
			return badRequest(c, "Invalid branch ID")
		}
		branchID = &id
	}

	applicants, err := h.applicants.List(branchID)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(applicants)
}

func (h *ApplicantHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid applicant ID")
	}

	applicant, err := h.applicants.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrApplicantNotFound) {
			return notFound(c, "Applicant not found")
		}
		return serverError(c, err)
	}
	return c.JSON(applicant)
}

func (h *ApplicantHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid applicant ID")
	}

	var req dto.UpdateApplicantRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	photo, err := formUpload(c, "photo")
	if err != nil {
		return serverError(c, err)
	}

	applicant, err := h.applicants.Update(c.Context(), id, &req, photo)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicantNotFound):
			return notFound(c, "Applicant not found")
		case errors.Is(err, services.ErrInvalidVisaType):
			return badRequest(c, err.Error())
		default:
			return serverError(c, err)
		}
	}
	return c.JSON(applicant)
}

func (h *ApplicantHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid applicant ID")
	}

	if err := h.applicants.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrApplicantNotFound) {
			return notFound(c, "Applicant not found")
		}
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Applicant and associated payments deleted"})
}

func (h *ApplicantHandler) AttachDocument(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid applicant ID")
	}

	file, err := formUpload(c, "file")
	if err != nil {
		return serverError(c, err)
	}
	if file == nil {
		return badRequest(c, "Document file is required")
	}

	doc, err := h.applicants.AttachDocument(c.Context(), id, c.FormValue("title"), file)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicantNotFound):
			return notFound(c, "Applicant not found")
		case errors.Is(err, services.ErrTitleRequired):
			return badRequest(c, err.Error())
		default:
			return serverError(c, err)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (h *ApplicantHandler) DetachDocument(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid applicant ID")
	}
	docID, err := uuid.Parse(c.Params("docId"))
	if err != nil {
		return badRequest(c, "Invalid document ID")
	}

	if err := h.applicants.DetachDocument(c.Context(), id, docID); err != nil {
		switch {
		case errors.Is(err, services.ErrApplicantNotFound):
			return notFound(c, "Applicant not found")
		case errors.Is(err, services.ErrDocumentNotFound):
			return notFound(c, "Document not found")
		default:
			return serverError(c, err)
		}
	}
	return c.JSON(fiber.Map{"message": "Document deleted successfully"})
}

func (h *ApplicantHandler) UpdateEducation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid applicant ID")
	}

	var req dto.EducationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	applicant, err := h.applicants.UpdateEducation(id, req.FutureEducationDetails)
	if err != nil {
		if errors.Is(err, services.ErrApplicantNotFound) {
			return notFound(c, "Applicant not found")
		}
		return serverError(c, err)
	}
	return c.JSON(applicant)
}

// UpdateProcessing accepts multipart form data; the JSON-valued fields
// arrive as stringified form values alongside the file slots.
func (h *ApplicantHandler) UpdateProcessing(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid applicant ID")
	}

	var req dto.ProcessingUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if raw := c.FormValue("processingNotes"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.ProcessingNotes); err != nil {
			return badRequest(c, "Invalid processingNotes payload")
		}
	}
	if raw := c.FormValue("attestation"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Attestation); err != nil {
			return badRequest(c, "Invalid attestation payload")
		}
	}

	uploads := make(map[string]*services.Upload)
	for _, field := range []string{
		services.SlotOfferLetter,
		services.SlotConfirmationInvoice,
		services.SlotEmbassyAppointment,
	} {
		up, err := formUpload(c, field)
		if err != nil {
			return serverError(c, err)
		}
		if up != nil {
			uploads[field] = up
		}
	}

	applicant, err := h.processing.Update(c.Context(), id, &req, uploads)
	if err != nil {
		if errors.Is(err, services.ErrApplicantNotFound) {
			return notFound(c, "Applicant not found")
		}
		return serverError(c, err)
	}
	return c.JSON(applicant)
}

func (h *ApplicantHandler) DeleteNote(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid applicant ID")
	}

	var req dto.DeleteNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.NoteID == "" {
		return badRequest(c, "noteId is required")
	}

	applicant, err := h.processing.DeleteNote(id, req.NoteID)
	if err != nil {
		if errors.Is(err, services.ErrApplicantNotFound) {
			return notFound(c, "Applicant not found")
		}
		return serverError(c, err)
	}
	return c.JSON(applicant)
}

func (h *ApplicantHandler) GetAgreement(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid applicant ID")
	}

	agreement, err := h.applicants.GetAgreement(id)
	if err != nil {
		if errors.Is(err, services.ErrApplicantNotFound) {
			return notFound(c, "Applicant not found")
		}
		return serverError(c, err)
	}
	return c.JSON(agreement)
}

func (h *ApplicantHandler) UpdateAgreement(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid applicant ID")
	}

	var req dto.AgreementRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	agreement, err := h.applicants.UpdateAgreement(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrApplicantNotFound) {
			return notFound(c, "Applicant not found")
		}
		return serverError(c, err)
	}
	return c.JSON(agreement)
}
