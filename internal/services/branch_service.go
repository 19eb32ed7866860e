package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/therisers/backoffice/internal/dto"
	"github.com/therisers/backoffice/internal/models"
	"github.com/therisers/backoffice/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrManagerTaken        = errors.New("manager is already assigned to another branch")
	ErrBranchHasApplicants = errors.New("branch still has applicants; reassign or delete them first")
	ErrBranchFieldsNeeded  = errors.New("branch name and city are required")
)

type BranchService struct {
	db    *gorm.DB
	blobs storage.BlobStore
}

func NewBranchService(db *gorm.DB, blobs storage.BlobStore) *BranchService {
	return &BranchService{db: db, blobs: blobs}
}

func (s *BranchService) Create(ctx context.Context, req *dto.CreateBranchRequest, image []byte, imageType, imageName string) (*models.Branch, error) {
	if req.Name == "" || req.City == "" {
		return nil, ErrBranchFieldsNeeded
	}

	// Upload is confirmed before the row exists; a failed upload aborts
	// the create with nothing persisted.
	imageURL, err := s.blobs.Put(ctx, image, imageType, imageName)
	if err != nil {
		return nil, fmt.Errorf("failed to upload branch image: %w", err)
	}

	branch := models.Branch{
		Name:        req.Name,
		City:        req.City,
		PhoneNumber: req.PhoneNumber,
		Image:       imageURL,
	}

	if err := s.db.Create(&branch).Error; err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}
	return &branch, nil
}

func (s *BranchService) List() ([]models.Branch, error) {
	var branches []models.Branch
	if err := s.db.Order("created_at DESC").Find(&branches).Error; err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}

func (s *BranchService) Get(id uuid.UUID) (*models.Branch, error) {
	var branch models.Branch
	if err := s.db.First(&branch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, err
	}
	return &branch, nil
}

// FindByManager resolves a manager's branch by reverse reference.
func (s *BranchService) FindByManager(managerID uuid.UUID) (*models.Branch, error) {
	var branch models.Branch
	if err := s.db.First(&branch, "manager_id = ?", managerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, err
	}
	return &branch, nil
}

func (s *BranchService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateBranchRequest, image []byte, imageType, imageName string) (*models.Branch, error) {
	branch, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		branch.Name = req.Name
	}
	if req.City != "" {
		branch.City = req.City
	}
	if req.PhoneNumber != "" {
		branch.PhoneNumber = req.PhoneNumber
	}

	if len(image) > 0 {
		imageURL, err := s.blobs.Put(ctx, image, imageType, imageName)
		if err != nil {
			return nil, fmt.Errorf("failed to upload branch image: %w", err)
		}
		if branch.Image != "" {
			if err := s.blobs.Delete(ctx, branch.Image); err != nil {
				slog.Error("failed to delete old branch image", "branch", id, "error", err)
			}
		}
		branch.Image = imageURL
	}

	if err := s.db.Save(branch).Error; err != nil {
		return nil, fmt.Errorf("failed to update branch: %w", err)
	}
	return branch, nil
}

// AssignManager links a manager to the branch. A manager can run at
// most one branch, so a manager already linked elsewhere is rejected.
func (s *BranchService) AssignManager(branchID, managerID uuid.UUID) error {
	branch, err := s.Get(branchID)
	if err != nil {
		return err
	}

	var other models.Branch
	err = s.db.Where("manager_id = ? AND id <> ?", managerID, branchID).First(&other).Error
	if err == nil {
		return ErrManagerTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.db.Model(branch).Update("manager_id", managerID).Error
}

func (s *BranchService) RemoveManager(branchID uuid.UUID) error {
	branch, err := s.Get(branchID)
	if err != nil {
		return err
	}
	return s.db.Model(branch).Update("manager_id", nil).Error
}

// Delete refuses to remove a branch that still has applicants, so no
// applicant row is ever left pointing at a missing branch.
func (s *BranchService) Delete(ctx context.Context, id uuid.UUID) error {
	branch, err := s.Get(id)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.Applicant{}).Where("branch_id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count branch applicants: %w", err)
	}
	if count > 0 {
		return ErrBranchHasApplicants
	}

	if err := s.db.Delete(&models.Branch{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}

	if branch.Image != "" {
		if err := s.blobs.Delete(ctx, branch.Image); err != nil {
			slog.Error("failed to delete branch image", "branch", id, "error", err)
		}
	}
	return nil
}
