package scope

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForBranch returns a GORM scope that filters applicants by branch.
func ForBranch(branchID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("branch_id = ?", branchID)
	}
}
