package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/therisers/backoffice/internal/dto"
	"github.com/therisers/backoffice/internal/models"
	"gorm.io/gorm"
)

// StatsService computes read-only dashboard rollups. Every query
// tolerates empty tables: zero counts and empty groups, never an error.
type StatsService struct {
	db       *gorm.DB
	branches *BranchService
}

func NewStatsService(db *gorm.DB, branches *BranchService) *StatsService {
	return &StatsService{db: db, branches: branches}
}

// ForManager resolves the caller's branch and rolls up its numbers.
// Time series are keyed by calendar month (YYYY-MM) so multi-year data
// never collapses onto the same bucket.
func (s *StatsService) ForManager(managerID uuid.UUID) (*dto.BranchStatsResponse, error) {
	branch, err := s.branches.FindByManager(managerID)
	if err != nil {
		return nil, err
	}

	resp := &dto.BranchStatsResponse{
		ApplicantsByVisaType:      []dto.GroupCount{},
		ApplicantsByQualification: []dto.GroupCount{},
		ApplicantsByStatus:        []dto.GroupCount{},
		PaymentsByCurrency:        []dto.GroupSum{},
		TotalApplicantsOverTime:   []dto.GroupCount{},
		PaymentsOverTime:          []dto.GroupSum{},
	}

	if err := s.db.Model(&models.Applicant{}).
		Where("branch_id = ?", branch.ID).
		Count(&resp.TotalApplicants).Error; err != nil {
		return nil, fmt.Errorf("failed to count applicants: %w", err)
	}

	if err := s.branchPaymentQuery(branch.ID).
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&resp.TotalPayments).Error; err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}

	for column, dest := range map[string]*[]dto.GroupCount{
		"visa_type":     &resp.ApplicantsByVisaType,
		"qualification": &resp.ApplicantsByQualification,
		"status":        &resp.ApplicantsByStatus,
	} {
		if err := s.db.Model(&models.Applicant{}).
			Where("branch_id = ?", branch.ID).
			Select(column + " AS key, COUNT(*) AS count").
			Group(column).
			Scan(dest).Error; err != nil {
			return nil, fmt.Errorf("failed to group applicants by %s: %w", column, err)
		}
	}

	if err := s.branchPaymentQuery(branch.ID).
		Select("payments.currency AS key, SUM(payments.amount) AS total").
		Group("payments.currency").
		Scan(&resp.PaymentsByCurrency).Error; err != nil {
		return nil, fmt.Errorf("failed to group payments by currency: %w", err)
	}

	if err := s.db.Model(&models.Applicant{}).
		Where("branch_id = ?", branch.ID).
		Select("to_char(created_at, 'YYYY-MM') AS key, COUNT(*) AS count").
		Group("to_char(created_at, 'YYYY-MM')").
		Order("key ASC").
		Scan(&resp.TotalApplicantsOverTime).Error; err != nil {
		return nil, fmt.Errorf("failed to build applicant time series: %w", err)
	}

	if err := s.branchPaymentQuery(branch.ID).
		Select("to_char(payments.date, 'YYYY-MM') AS key, SUM(payments.amount) AS total").
		Group("to_char(payments.date, 'YYYY-MM')").
		Order("key ASC").
		Scan(&resp.PaymentsOverTime).Error; err != nil {
		return nil, fmt.Errorf("failed to build payment time series: %w", err)
	}

	return resp, nil
}

func (s *StatsService) branchPaymentQuery(branchID uuid.UUID) *gorm.DB {
	return s.db.Model(&models.Payment{}).
		Joins("JOIN applicants ON applicants.id = payments.applicant_id").
		Where("applicants.branch_id = ?", branchID)
}

// ForAdmin computes the global dashboard numbers.
func (s *StatsService) ForAdmin() (*dto.AdminStatsResponse, error) {
	resp := &dto.AdminStatsResponse{
		ApplicantsByCountry:  []dto.GroupCount{},
		ApplicantsByVisaType: []dto.GroupCount{},
		PaymentsByCurrency:   []dto.GroupSum{},
	}

	if err := s.db.Model(&models.Branch{}).Count(&resp.TotalBranches).Error; err != nil {
		return nil, fmt.Errorf("failed to count branches: %w", err)
	}
	if err := s.db.Model(&models.User{}).
		Where("role = ?", models.RoleManager).
		Count(&resp.TotalEmployees).Error; err != nil {
		return nil, fmt.Errorf("failed to count managers: %w", err)
	}
	if err := s.db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&resp.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if err := s.db.Model(&models.Applicant{}).Count(&resp.TotalApplicants).Error; err != nil {
		return nil, fmt.Errorf("failed to count applicants: %w", err)
	}

	if err := s.db.Model(&models.Applicant{}).
		Select("country AS key, COUNT(*) AS count").
		Group("country").
		Order("count DESC").
		Scan(&resp.ApplicantsByCountry).Error; err != nil {
		return nil, fmt.Errorf("failed to group applicants by country: %w", err)
	}

	if err := s.db.Model(&models.Applicant{}).
		Select("visa_type AS key, COUNT(*) AS count").
		Group("visa_type").
		Order("count DESC").
		Scan(&resp.ApplicantsByVisaType).Error; err != nil {
		return nil, fmt.Errorf("failed to group applicants by visa type: %w", err)
	}

	if err := s.db.Model(&models.Applicant{}).
		Where("agreed_amount > 0 AND agreed_currency IS NOT NULL").
		Select("agreed_currency AS key, SUM(agreed_amount) AS total").
		Group("agreed_currency").
		Order("total DESC").
		Scan(&resp.PaymentsByCurrency).Error; err != nil {
		return nil, fmt.Errorf("failed to group agreed amounts by currency: %w", err)
	}

	return resp, nil
}

// ForBranch is the per-branch overview used on the branch detail page.
func (s *StatsService) ForBranch(branchID uuid.UUID) (*dto.BranchOverviewResponse, error) {
	resp := &dto.BranchOverviewResponse{
		RevenuePerCurrency:   []dto.GroupSum{},
		ApplicantsByVisaType: []dto.GroupCount{},
	}

	if err := s.branchPaymentQuery(branchID).
		Select("payments.currency AS key, SUM(payments.amount) AS total").
		Group("payments.currency").
		Scan(&resp.RevenuePerCurrency).Error; err != nil {
		return nil, fmt.Errorf("failed to group branch revenue: %w", err)
	}

	if err := s.db.Model(&models.Applicant{}).
		Where("branch_id = ?", branchID).
		Count(&resp.TotalApplicants).Error; err != nil {
		return nil, fmt.Errorf("failed to count branch applicants: %w", err)
	}

	if err := s.db.Model(&models.Applicant{}).
		Where("branch_id = ?", branchID).
		Select("visa_type AS key, COUNT(*) AS count").
		Group("visa_type").
		Scan(&resp.ApplicantsByVisaType).Error; err != nil {
		return nil, fmt.Errorf("failed to group branch applicants: %w", err)
	}

	return resp, nil
}

// RevenuePerBranchPerCurrency rolls agreed amounts up per branch and
// currency for the admin revenue table.
func (s *StatsService) RevenuePerBranchPerCurrency() ([]dto.BranchCurrencyRevenue, error) {
	rows := []dto.BranchCurrencyRevenue{}
	err := s.db.Model(&models.Applicant{}).
		Joins("JOIN branches ON branches.id = applicants.branch_id").
		Where("agreed_amount > 0 AND agreed_currency IS NOT NULL").
		Select("branches.name AS branch_name, agreed_currency AS currency, SUM(agreed_amount) AS revenue").
		Group("branches.name, agreed_currency").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to roll up branch revenue: %w", err)
	}
	return rows, nil
}
