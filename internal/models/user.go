package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleSubAdmin = "sub-admin"
)

// User covers all three back-office roles. Address, phone and city are
// required for managers only; that rule lives in the service layer.
// Users are hard-deleted, so there is no gorm.DeletedAt here.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	FirstName   string    `gorm:"size:100;not null" json:"firstName"`
	LastName    string    `gorm:"size:100;not null" json:"lastName"`
	Username    string    `gorm:"size:200;uniqueIndex" json:"username"`
	Email       string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	Address     string    `gorm:"size:255" json:"address,omitempty"`
	PhoneNumber string    `gorm:"size:50" json:"phoneNumber,omitempty"`
	City        string    `gorm:"size:100" json:"city,omitempty"`
	Role        string    `gorm:"size:20;default:'manager'" json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
