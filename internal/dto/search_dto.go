package dto

// SearchResult is a lightweight typed projection; the set of populated
// fields depends on Type (Branch, Manager, Applicant).
type SearchResult struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	City          string `json:"city,omitempty"`
	Phone         string `json:"phone,omitempty"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	Qualification string `json:"qualification,omitempty"`
	Country       string `json:"country,omitempty"`
	Link          string `json:"link"`
}
