package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/therisers/backoffice/internal/dto"
	"github.com/therisers/backoffice/internal/models"
	"github.com/therisers/backoffice/internal/storage"
	"gorm.io/gorm"
)

// Multipart field names for the three processing file slots.
const (
	SlotOfferLetter         = "offerLetterFile"
	SlotConfirmationInvoice = "confirmationInvoiceFile"
	SlotEmbassyAppointment  = "embassyAppointmentFile"
)

// FileSlot is the resolved name/path pair for one processing file slot.
// Uploaded marks whether a fresh blob arrived in this request, which is
// what triggers cleanup of the slot's prior blob.
type FileSlot struct {
	Name     string
	Path     string
	Uploaded bool
}

type ProcessingService struct {
	db    *gorm.DB
	blobs storage.BlobStore
}

func NewProcessingService(db *gorm.DB, blobs storage.BlobStore) *ProcessingService {
	return &ProcessingService{db: db, blobs: blobs}
}

// MergeProcessing merges the submitted fields into the existing
// processing record, or builds a fresh one when none exists. It returns
// the merged entry plus the blob URLs made stale by replaced uploads.
//
// fileToEmbassy is sticky: once set it survives updates that omit it.
func MergeProcessing(existing *models.ProcessingEntry, req *dto.ProcessingUpdateRequest, slots map[string]FileSlot, now time.Time) (*models.ProcessingEntry, []string) {
	var stale []string

	entry := models.ProcessingEntry{
		ApplyForOfferLetterStatus: req.ApplyForOfferLetterStatus,
		OfferLetterReceived:       req.OfferLetterReceived,
		Attestation:               req.Attestation,
		VisaStatus:                req.VisaStatus,
		FileToEmbassy:             req.FileToEmbassy,
		SaveTime:                  now,
	}

	offer := slots[SlotOfferLetter]
	entry.OfferLetterFileName = offer.Name
	entry.OfferLetterFilePath = offer.Path

	invoice := slots[SlotConfirmationInvoice]
	entry.ConfirmationInvoiceFileName = invoice.Name
	entry.ConfirmationInvoiceFilePath = invoice.Path

	embassy := slots[SlotEmbassyAppointment]
	entry.EmbassyAppointmentFileName = embassy.Name
	entry.EmbassyAppointmentFilePath = embassy.Path

	if existing != nil {
		if req.FileToEmbassy == "" {
			entry.FileToEmbassy = existing.FileToEmbassy
		}
		if offer.Uploaded && existing.OfferLetterFilePath != "" && existing.OfferLetterFilePath != offer.Path {
			stale = append(stale, existing.OfferLetterFilePath)
		}
		if invoice.Uploaded && existing.ConfirmationInvoiceFilePath != "" && existing.ConfirmationInvoiceFilePath != invoice.Path {
			stale = append(stale, existing.ConfirmationInvoiceFilePath)
		}
		if embassy.Uploaded && existing.EmbassyAppointmentFilePath != "" && existing.EmbassyAppointmentFilePath != embassy.Path {
			stale = append(stale, existing.EmbassyAppointmentFilePath)
		}
	}

	return &entry, stale
}

// AppendNotes appends incoming notes to the log. Notes whose exact text
// already exists are skipped, so resubmitting the same payload is
// idempotent; existing notes keep their id and timestamp untouched.
func AppendNotes(existing []models.ProcessingNote, incoming []dto.IncomingNote, now time.Time) []models.ProcessingNote {
	seen := make(map[string]bool, len(existing))
	for _, n := range existing {
		seen[n.Note] = true
	}

	merged := existing
	for _, in := range incoming {
		if in.Note == "" || seen[in.Note] {
			continue
		}
		seen[in.Note] = true
		merged = append(merged, models.ProcessingNote{
			ID:       uuid.New(),
			Note:     in.Note,
			SaveTime: now,
		})
	}
	return merged
}

// Update performs the processing-workflow transition: uploads any new
// slot files, merges the entry in place, appends notes, overwrites the
// applicant status unconditionally, then cleans up replaced blobs.
func (s *ProcessingService) Update(ctx context.Context, id uuid.UUID, req *dto.ProcessingUpdateRequest, uploads map[string]*Upload) (*models.Applicant, error) {
	var applicant models.Applicant
	if err := s.db.First(&applicant, "id = ?", id).Error; err != nil {
		return nil, ErrApplicantNotFound
	}

	// All uploads are confirmed before the record is touched, so a
	// failed upload leaves the database unchanged.
	slots, err := s.resolveSlots(ctx, req, uploads)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry, stale := MergeProcessing(applicant.Processing, req, slots, now)

	applicant.Processing = entry
	applicant.Status = req.Status
	applicant.ProcessingNotes = AppendNotes(applicant.ProcessingNotes, req.ProcessingNotes, now)

	updates := map[string]interface{}{
		"processing":       applicant.Processing,
		"status":           applicant.Status,
		"processing_notes": applicant.ProcessingNotes,
	}
	if err := s.db.Model(&applicant).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update processing: %w", err)
	}

	for _, url := range stale {
		if err := s.blobs.Delete(ctx, url); err != nil {
			slog.Error("failed to delete replaced processing file", "applicant", id, "url", url, "error", err)
		}
	}

	return &applicant, nil
}

func (s *ProcessingService) resolveSlots(ctx context.Context, req *dto.ProcessingUpdateRequest, uploads map[string]*Upload) (map[string]FileSlot, error) {
	fallbacks := map[string]FileSlot{
		SlotOfferLetter:         {Name: req.OfferLetterFileName, Path: req.OfferLetterFilePath},
		SlotConfirmationInvoice: {Name: req.ConfirmationInvoiceFileName, Path: req.ConfirmationInvoiceFilePath},
		SlotEmbassyAppointment:  {Name: req.EmbassyAppointmentFileName, Path: req.EmbassyAppointmentFilePath},
	}

	slots := make(map[string]FileSlot, len(fallbacks))
	for field, fallback := range fallbacks {
		up := uploads[field]
		if up == nil {
			slots[field] = fallback
			continue
		}
		url, err := s.blobs.Put(ctx, up.Data, up.ContentType, up.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to upload %s: %w", field, err)
		}
		slots[field] = FileSlot{Name: up.Filename, Path: url, Uploaded: true}
	}
	return slots, nil
}

// DeleteNote removes a note by id. An unknown id leaves the list
// unchanged and reports no error.
func (s *ProcessingService) DeleteNote(id uuid.UUID, noteID string) (*models.Applicant, error) {
	var applicant models.Applicant
	if err := s.db.First(&applicant, "id = ?", id).Error; err != nil {
		return nil, ErrApplicantNotFound
	}

	kept := applicant.ProcessingNotes[:0:0]
	for _, n := range applicant.ProcessingNotes {
		if n.ID.String() != noteID {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(applicant.ProcessingNotes) {
		return &applicant, nil
	}

	applicant.ProcessingNotes = kept
	if err := s.db.Model(&applicant).Update("processing_notes", applicant.ProcessingNotes).Error; err != nil {
		return nil, fmt.Errorf("failed to delete note: %w", err)
	}
	return &applicant, nil
}
