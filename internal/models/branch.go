package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branch is an office location. ManagerID is a weak reference to a User
// with the manager role; at most one branch per manager, enforced at
// assignment time in the branch service.
type Branch struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"_id"`
	Name        string     `gorm:"size:150;not null" json:"name"`
	City        string     `gorm:"size:100;not null" json:"city"`
	Image       string     `gorm:"size:500;not null" json:"image"`
	PhoneNumber string     `gorm:"size:50" json:"phoneNumber,omitempty"`
	ManagerID   *uuid.UUID `gorm:"type:uuid;index" json:"managerId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
