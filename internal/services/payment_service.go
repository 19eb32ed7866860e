package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/therisers/backoffice/internal/dto"
	"github.com/therisers/backoffice/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentFieldsNeeded = errors.New("amount, purpose, currency, refundable and rate are required")
	ErrPaymentWrongOwner   = errors.New("payment does not belong to this applicant")
	ErrBatchEmpty          = errors.New("no payments found for this batch and applicant")
)

type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// Add records a payment against an existing applicant. Payments are
// never updated after creation.
func (s *PaymentService) Add(applicantID uuid.UUID, req *dto.CreatePaymentRequest) (*models.Payment, error) {
	if req.Amount <= 0 || req.Purpose == "" || req.Currency == "" || req.Rate == "" || req.Refundable == "" {
		return nil, ErrPaymentFieldsNeeded
	}

	var applicant models.Applicant
	if err := s.db.Select("id").First(&applicant, "id = ?", applicantID).Error; err != nil {
		return nil, ErrApplicantNotFound
	}

	payment := models.Payment{
		Amount:      req.Amount,
		Purpose:     req.Purpose,
		Currency:    req.Currency,
		Refundable:  req.Refundable,
		Rate:        req.Rate,
		ApplicantID: applicantID,
		BatchID:     req.BatchID,
	}

	if err := s.db.Create(&payment).Error; err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return &payment, nil
}

func (s *PaymentService) ListByApplicant(applicantID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.Where("applicant_id = ?", applicantID).Order("date DESC").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// Delete removes one payment after checking it belongs to the
// applicant named in the path.
func (s *PaymentService) Delete(applicantID, paymentID uuid.UUID) error {
	var payment models.Payment
	if err := s.db.First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}

	if payment.ApplicantID != applicantID {
		return ErrPaymentWrongOwner
	}

	return s.db.Delete(&models.Payment{}, "id = ?", paymentID).Error
}

// DeleteBatch removes every payment matching (applicant, batch) and
// reports ErrBatchEmpty when nothing matched.
func (s *PaymentService) DeleteBatch(applicantID uuid.UUID, batchID string) error {
	result := s.db.Where("applicant_id = ? AND batch_id = ?", applicantID, batchID).Delete(&models.Payment{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete payment batch: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBatchEmpty
	}
	return nil
}
