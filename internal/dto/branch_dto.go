package dto

type CreateBranchRequest struct {
	Name        string `json:"name" form:"name"`
	City        string `json:"city" form:"city"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber"`
}

type UpdateBranchRequest struct {
	Name        string `json:"name" form:"name"`
	City        string `json:"city" form:"city"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber"`
}

type AssignManagerRequest struct {
	ManagerID string `json:"managerId"`
}
