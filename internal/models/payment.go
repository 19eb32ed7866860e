package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is immutable once created; the only mutations are deletes,
// either by id or in bulk by (applicant, batch).
type Payment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Purpose     string    `gorm:"size:255;not null" json:"purpose"`
	Currency    string    `gorm:"size:10;not null" json:"currency"`
	Refundable  string    `gorm:"size:5;not null;default:'yes'" json:"refundable"`
	Rate        string    `gorm:"size:50;not null" json:"rate"`
	ApplicantID uuid.UUID `gorm:"type:uuid;not null;index" json:"applicant"`
	BatchID     string    `gorm:"size:100;not null;index" json:"batchId"`
	Date        time.Time `json:"date"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	return nil
}
