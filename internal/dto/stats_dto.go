package dto

// GroupCount is a generic grouped count (visa type, qualification,
// status, country). Key carries the group value in the `_id` slot the
// dashboard charts read.
type GroupCount struct {
	Key   string `gorm:"column:key" json:"_id"`
	Count int64  `gorm:"column:count" json:"count"`
}

// GroupSum is a grouped amount total (per currency, per month).
type GroupSum struct {
	Key   string  `gorm:"column:key" json:"_id"`
	Total float64 `gorm:"column:total" json:"total"`
}

type BranchStatsResponse struct {
	TotalApplicants           int64        `json:"totalApplicants"`
	TotalPayments             float64      `json:"totalPayments"`
	ApplicantsByVisaType      []GroupCount `json:"applicantsByVisaType"`
	ApplicantsByQualification []GroupCount `json:"applicantsByQualification"`
	ApplicantsByStatus        []GroupCount `json:"applicantsByStatus"`
	PaymentsByCurrency        []GroupSum   `json:"paymentsByCurrency"`
	TotalApplicantsOverTime   []GroupCount `json:"totalApplicantsOverTime"`
	PaymentsOverTime          []GroupSum   `json:"paymentsOverTime"`
}

type AdminStatsResponse struct {
	TotalBranches        int64        `json:"totalBranches"`
	TotalEmployees       int64        `json:"totalEmployees"`
	TotalRevenue         float64      `json:"totalRevenue"`
	TotalApplicants      int64        `json:"totalApplicants"`
	ApplicantsByCountry  []GroupCount `json:"applicantsByCountry"`
	ApplicantsByVisaType []GroupCount `json:"applicantsByVisaType"`
	PaymentsByCurrency   []GroupSum   `json:"paymentsByCurrency"`
}

type BranchOverviewResponse struct {
	RevenuePerCurrency   []GroupSum   `json:"revenuePerCurrency"`
	TotalApplicants      int64        `json:"totalApplicants"`
	ApplicantsByVisaType []GroupCount `json:"applicantsByVisaType"`
}

// BranchCurrencyRevenue is one row of the per-branch per-currency rollup.
type BranchCurrencyRevenue struct {
	BranchName string  `gorm:"column:branch_name" json:"branchName"`
	Currency   string  `gorm:"column:currency" json:"currency"`
	Revenue    float64 `gorm:"column:revenue" json:"revenue"`
}
