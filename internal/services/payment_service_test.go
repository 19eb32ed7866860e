package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/therisers/backoffice/internal/dto"
)

func TestPaymentAdd_Validation(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewPaymentService(db)

	valid := dto.CreatePaymentRequest{
		Amount:     5000,
		Purpose:    "Consultancy fee",
		Currency:   "PKR",
		Refundable: "no",
		Rate:       "1",
	}

	tests := []struct {
		name   string
		mutate func(r *dto.CreatePaymentRequest)
	}{
		{"zero amount", func(r *dto.CreatePaymentRequest) { r.Amount = 0 }},
		{"negative amount", func(r *dto.CreatePaymentRequest) { r.Amount = -10 }},
		{"missing purpose", func(r *dto.CreatePaymentRequest) { r.Purpose = "" }},
		{"missing currency", func(r *dto.CreatePaymentRequest) { r.Currency = "" }},
		{"missing rate", func(r *dto.CreatePaymentRequest) { r.Rate = "" }},
		{"missing refundable", func(r *dto.CreatePaymentRequest) { r.Refundable = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := svc.Add(uuid.New(), &req)
			assert.ErrorIs(t, err, ErrPaymentFieldsNeeded)
		})
	}
}

func TestPaymentDelete_WrongOwner(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewPaymentService(db)

	applicantID := uuid.New()
	paymentID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "payments"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "applicant_id"}).
			AddRow(paymentID.String(), uuid.NewString()))

	err := svc.Delete(applicantID, paymentID)
	assert.ErrorIs(t, err, ErrPaymentWrongOwner)
}

func TestPaymentDelete_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewPaymentService(db)

	mock.ExpectQuery(`SELECT \* FROM "payments"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "applicant_id"}))

	err := svc.Delete(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestDeleteBatch_Empty(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewPaymentService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "payments"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := svc.DeleteBatch(uuid.New(), "batch-1")
	assert.ErrorIs(t, err, ErrBatchEmpty)
}

func TestDeleteBatch_RemovesMatches(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewPaymentService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "payments"`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := svc.DeleteBatch(uuid.New(), "batch-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
