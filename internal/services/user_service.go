package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/therisers/backoffice/internal/dto"
	"github.com/therisers/backoffice/internal/models"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// List returns users, optionally filtered by role.
func (s *UserService) List(role string) ([]models.User, error) {
	var users []models.User
	q := s.db.Order("created_at DESC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update applies the provided fields, leaving empty ones untouched.
func (s *UserService) Update(id uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	phone := req.PhoneNumber
	if phone == "" {
		phone = req.Phone
	}
	if phone != "" {
		user.PhoneNumber = phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.City != "" {
		user.City = req.City
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete hard-deletes the user. A deleted manager's branch assignment
// is nullified in the same transaction so no branch points at a ghost.
func (s *UserService) Delete(id uuid.UUID) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if user.Role == models.RoleManager {
			if err := tx.Model(&models.Branch{}).
				Where("manager_id = ?", id).
				Update("manager_id", nil).Error; err != nil {
				return fmt.Errorf("failed to clear branch assignment: %w", err)
			}
		}
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
}

// ListSubAdmins returns all sub-admin users.
func (s *UserService) ListSubAdmins() ([]models.User, error) {
	return s.List(models.RoleSubAdmin)
}
