package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/therisers/backoffice/internal/dto"
	"github.com/therisers/backoffice/internal/models"
	"github.com/therisers/backoffice/internal/scope"
	"github.com/therisers/backoffice/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrApplicantNotFound = errors.New("applicant not found")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrManagerNoBranch   = errors.New("manager is not assigned to any branch")
	ErrBranchIDRequired  = errors.New("branch ID is required")
	ErrMissingRequired   = errors.New("name, CNIC and phone number are required")
	ErrInvalidVisaType   = errors.New("visa type must be Work Permit, Student Visa or Visit")
	ErrTitleRequired     = errors.New("document title is required")
)

// Upload is an in-memory file handed from the handler to the service.
type Upload struct {
	Data        []byte
	ContentType string
	Filename    string
}

type ApplicantService struct {
	db       *gorm.DB
	blobs    storage.BlobStore
	branches *BranchService
}

func NewApplicantService(db *gorm.DB, blobs storage.BlobStore, branches *BranchService) *ApplicantService {
	return &ApplicantService{db: db, blobs: blobs, branches: branches}
}

// ResolveBranch determines the owning branch for a new applicant from
// the caller identity: managers get their own branch, admins must name
// one explicitly.
func (s *ApplicantService) ResolveBranch(caller scope.Identity, explicit string) (uuid.UUID, error) {
	if caller.Role == models.RoleManager {
		branch, err := s.branches.FindByManager(caller.UserID)
		if err != nil {
			if errors.Is(err, ErrBranchNotFound) {
				return uuid.Nil, ErrManagerNoBranch
			}
			return uuid.Nil, err
		}
		return branch.ID, nil
	}

	if explicit == "" {
		return uuid.Nil, ErrBranchIDRequired
	}
	id, err := uuid.Parse(explicit)
	if err != nil {
		return uuid.Nil, ErrBranchIDRequired
	}
	return id, nil
}

func (s *ApplicantService) Create(ctx context.Context, caller scope.Identity, req *dto.CreateApplicantRequest, photo *Upload) (*models.Applicant, error) {
	if req.Name == "" || req.CNIC == "" || req.PhoneNumber == "" {
		return nil, ErrMissingRequired
	}
	if !models.ValidVisaType(req.VisaType) {
		return nil, ErrInvalidVisaType
	}

	branchID, err := s.ResolveBranch(caller, req.BranchID)
	if err != nil {
		return nil, err
	}

	var photoURL string
	if photo != nil {
		// Upload must be confirmed before any row is written.
		photoURL, err = s.blobs.Put(ctx, photo.Data, photo.ContentType, photo.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to upload photo: %w", err)
		}
	}

	applicant := models.Applicant{
		Name:          req.Name,
		CNIC:          req.CNIC,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		Qualification: req.Qualification,
		IDAllocation:  req.IDAllocation,
		Counselor:     req.Counselor,
		VisaType:      req.VisaType,
		BranchID:      branchID,
		Photo:         photoURL,
		Status:        "active",
		Agreement:     models.Agreement{AgreedCurrency: "PKR"},
	}

	if err := s.db.Create(&applicant).Error; err != nil {
		return nil, fmt.Errorf("failed to create applicant: %w", err)
	}
	return &applicant, nil
}

// List returns applicants, optionally restricted to one branch.
func (s *ApplicantService) List(branchID *uuid.UUID) ([]models.Applicant, error) {
	var applicants []models.Applicant
	q := s.db.Order("created_at DESC")
	if branchID != nil {
		q = q.Scopes(scope.ForBranch(*branchID))
	}
	if err := q.Find(&applicants).Error; err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	return applicants, nil
}

func (s *ApplicantService) Get(id uuid.UUID) (*models.Applicant, error) {
	var applicant models.Applicant
	if err := s.db.First(&applicant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicantNotFound
		}
		return nil, err
	}
	return &applicant, nil
}

// NormalizeLegacyPhotoPath strips the historical on-disk "public"
// segment and normalizes separators for photo values written before
// blob storage was introduced.
func NormalizeLegacyPhotoPath(photo string) string {
	if photo == "" || !strings.Contains(photo, "public") {
		return photo
	}
	photo = strings.Replace(photo, "public", "", 1)
	return strings.ReplaceAll(photo, "\\", "/")
}

func (s *ApplicantService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateApplicantRequest, photo *Upload) (*models.Applicant, error) {
	applicant, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	newPhoto := applicant.Photo
	if photo != nil {
		uploaded, err := s.blobs.Put(ctx, photo.Data, photo.ContentType, photo.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to upload photo: %w", err)
		}
		if applicant.Photo != "" {
			if err := s.blobs.Delete(ctx, applicant.Photo); err != nil {
				slog.Error("failed to delete old photo", "applicant", id, "error", err)
			}
		}
		newPhoto = uploaded
	} else if req.Photo != "" {
		newPhoto = req.Photo
	}
	newPhoto = NormalizeLegacyPhotoPath(newPhoto)

	if req.Name != "" {
		applicant.Name = req.Name
	}
	if req.CNIC != "" {
		applicant.CNIC = req.CNIC
	}
	if req.PhoneNumber != "" {
		applicant.PhoneNumber = req.PhoneNumber
	}
	if req.City != "" {
		applicant.City = req.City
	}
	if req.Address != "" {
		applicant.Address = req.Address
	}
	if req.Country != "" {
		applicant.Country = req.Country
	}
	if req.Email != "" {
		applicant.Email = req.Email
	}
	if req.Qualification != "" {
		applicant.Qualification = req.Qualification
	}
	if req.IDAllocation != "" {
		applicant.IDAllocation = req.IDAllocation
	}
	if req.Counselor != "" {
		applicant.Counselor = req.Counselor
	}
	if req.VisaType != "" {
		if !models.ValidVisaType(req.VisaType) {
			return nil, ErrInvalidVisaType
		}
		applicant.VisaType = req.VisaType
	}
	applicant.Photo = newPhoto

	if err := s.db.Save(applicant).Error; err != nil {
		return nil, fmt.Errorf("failed to update applicant: %w", err)
	}
	return applicant, nil
}

// Delete removes the applicant and, in the same transaction, every
// payment referencing it. Blob cleanup afterwards is best-effort.
func (s *ApplicantService) Delete(ctx context.Context, id uuid.UUID) error {
	applicant, err := s.Get(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("applicant_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return fmt.Errorf("failed to delete applicant payments: %w", err)
		}
		return tx.Delete(&models.Applicant{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	for _, url := range applicantBlobURLs(applicant) {
		if err := s.blobs.Delete(ctx, url); err != nil {
			slog.Error("failed to delete applicant blob", "applicant", id, "url", url, "error", err)
		}
	}
	return nil
}

func applicantBlobURLs(a *models.Applicant) []string {
	var urls []string
	if a.Photo != "" {
		urls = append(urls, a.Photo)
	}
	for _, doc := range a.Documents {
		if doc.Path != "" {
			urls = append(urls, doc.Path)
		}
	}
	if p := a.Processing; p != nil {
		for _, u := range []string{p.OfferLetterFilePath, p.ConfirmationInvoiceFilePath, p.EmbassyAppointmentFilePath} {
			if u != "" {
				urls = append(urls, u)
			}
		}
	}
	return urls
}

// AttachDocument uploads the blob, then appends a document entry with a
// fresh id.
func (s *ApplicantService) AttachDocument(ctx context.Context, id uuid.UUID, title string, file *Upload) (*models.Document, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}

	applicant, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	path, err := s.blobs.Put(ctx, file.Data, file.ContentType, file.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}

	doc := models.Document{
		ID:    uuid.New(),
		Title: title,
		Path:  path,
	}
	applicant.Documents = append(applicant.Documents, doc)

	if err := s.db.Model(applicant).Update("documents", applicant.Documents).Error; err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	return &doc, nil
}

// DetachDocument removes a document entry by id. The blob delete is
// best-effort and never fails the removal.
func (s *ApplicantService) DetachDocument(ctx context.Context, id, docID uuid.UUID) error {
	applicant, err := s.Get(id)
	if err != nil {
		return err
	}

	idx := -1
	for i, doc := range applicant.Documents {
		if doc.ID == docID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrDocumentNotFound
	}

	removed := applicant.Documents[idx]
	applicant.Documents = append(applicant.Documents[:idx], applicant.Documents[idx+1:]...)

	if err := s.db.Model(applicant).Update("documents", applicant.Documents).Error; err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	if removed.Path != "" {
		if err := s.blobs.Delete(ctx, removed.Path); err != nil {
			slog.Error("failed to delete document blob", "applicant", id, "doc", docID, "error", err)
		}
	}
	return nil
}

func (s *ApplicantService) UpdateEducation(id uuid.UUID, details models.EducationDetails) (*models.Applicant, error) {
	applicant, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	applicant.FutureEducation = &details
	if err := s.db.Model(applicant).Update("future_education", applicant.FutureEducation).Error; err != nil {
		return nil, fmt.Errorf("failed to update education details: %w", err)
	}
	return applicant, nil
}

func (s *ApplicantService) GetAgreement(id uuid.UUID) (*dto.AgreementResponse, error) {
	applicant, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	currency := applicant.Agreement.AgreedCurrency
	if currency == "" {
		currency = "PKR"
	}
	return &dto.AgreementResponse{
		Amount:   applicant.Agreement.AgreedAmount,
		Currency: currency,
	}, nil
}

func (s *ApplicantService) UpdateAgreement(id uuid.UUID, req *dto.AgreementRequest) (*dto.AgreementResponse, error) {
	applicant, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"agreed_amount":   req.Amount,
		"agreed_currency": req.Currency,
	}
	if err := s.db.Model(applicant).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update agreement: %w", err)
	}

	return &dto.AgreementResponse{Amount: req.Amount, Currency: req.Currency}, nil
}
