package services

import (
	"errors"
	"fmt"

	"github.com/therisers/backoffice/internal/dto"
	"github.com/therisers/backoffice/internal/models"
	"github.com/therisers/backoffice/internal/scope"
	"gorm.io/gorm"
)

type SearchService struct {
	db       *gorm.DB
	branches *BranchService
}

func NewSearchService(db *gorm.DB, branches *BranchService) *SearchService {
	return &SearchService{db: db, branches: branches}
}

// Search runs a case-insensitive substring match over the entity sets
// the caller's role is allowed to see: admins get branches, managers
// and all applicants; managers only get applicants in their own branch.
func (s *SearchService) Search(caller scope.Identity, query string) ([]dto.SearchResult, error) {
	results := []dto.SearchResult{}
	pattern := "%" + query + "%"

	switch caller.Role {
	case models.RoleAdmin:
		var branches []models.Branch
		if err := s.db.Where("name ILIKE ?", pattern).Find(&branches).Error; err != nil {
			return nil, fmt.Errorf("branch search failed: %w", err)
		}
		for _, b := range branches {
			results = append(results, branchResult(b))
		}

		var managers []models.User
		if err := s.db.Where("role = ?", models.RoleManager).
			Where("first_name ILIKE ? OR last_name ILIKE ? OR phone_number ILIKE ?", pattern, pattern, pattern).
			Find(&managers).Error; err != nil {
			return nil, fmt.Errorf("manager search failed: %w", err)
		}
		for _, m := range managers {
			results = append(results, managerResult(m))
		}

		applicants, err := s.searchApplicants(s.db, pattern)
		if err != nil {
			return nil, err
		}
		for _, a := range applicants {
			results = append(results, applicantResult(a, "/admin/applicant/"+a.ID.String()))
		}

	case models.RoleManager:
		branch, err := s.branches.FindByManager(caller.UserID)
		if err != nil {
			if errors.Is(err, ErrBranchNotFound) {
				return nil, ErrManagerNoBranch
			}
			return nil, err
		}

		applicants, err := s.searchApplicants(s.db.Scopes(scope.ForBranch(branch.ID)), pattern)
		if err != nil {
			return nil, err
		}
		for _, a := range applicants {
			results = append(results, applicantResult(a, "/search/applicant/"+a.ID.String()))
		}
	}

	return results, nil
}

func (s *SearchService) searchApplicants(q *gorm.DB, pattern string) ([]models.Applicant, error) {
	var applicants []models.Applicant
	err := q.Where("name ILIKE ? OR phone_number ILIKE ? OR qualification ILIKE ? OR country ILIKE ?",
		pattern, pattern, pattern, pattern).
		Find(&applicants).Error
	if err != nil {
		return nil, fmt.Errorf("applicant search failed: %w", err)
	}
	return applicants, nil
}

func branchResult(b models.Branch) dto.SearchResult {
	phone := b.PhoneNumber
	if phone == "" {
		phone = "N/A"
	}
	return dto.SearchResult{
		Type:        "Branch",
		Name:        b.Name,
		City:        b.City,
		PhoneNumber: phone,
		Link:        "/admin/branches/" + b.ID.String(),
	}
}

func managerResult(m models.User) dto.SearchResult {
	phone := m.PhoneNumber
	if phone == "" {
		phone = "N/A"
	}
	return dto.SearchResult{
		Type:  "Manager",
		Name:  m.FullName(),
		Phone: phone,
		Link:  "/admin/managers/",
	}
}

func applicantResult(a models.Applicant, link string) dto.SearchResult {
	r := dto.SearchResult{
		Type:          "Applicant | " + a.Name,
		Name:          a.Name,
		Phone:         a.PhoneNumber,
		Qualification: a.Qualification,
		Country:       a.Country,
		Link:          link,
	}
	if r.Phone == "" {
		r.Phone = "N/A"
	}
	if r.Qualification == "" {
		r.Qualification = "N/A"
	}
	if r.Country == "" {
		r.Country = "N/A"
	}
	return r
}
