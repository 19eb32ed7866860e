package dto

import "github.com/therisers/backoffice/internal/models"

type CreateApplicantRequest struct {
	Name          string `json:"name" form:"name"`
	CNIC          string `json:"cnic" form:"cnic"`
	PhoneNumber   string `json:"phoneNumber" form:"phoneNumber"`
	Email         string `json:"email" form:"email"`
	Address       string `json:"address" form:"address"`
	City          string `json:"city" form:"city"`
	Country       string `json:"country" form:"country"`
	Qualification string `json:"qualification" form:"qualification"`
	IDAllocation  string `json:"idAllocation" form:"idAllocation"`
	Counselor     string `json:"counselor" form:"counselor"`
	VisaType      string `json:"visaType" form:"visaType"`
	BranchID      string `json:"branchId" form:"branchId"`
}

type UpdateApplicantRequest struct {
	Name          string `json:"name" form:"name"`
	CNIC          string `json:"cnic" form:"cnic"`
	PhoneNumber   string `json:"phoneNumber" form:"phoneNumber"`
	City          string `json:"city" form:"city"`
	Address       string `json:"address" form:"address"`
	Country       string `json:"country" form:"country"`
	Email         string `json:"email" form:"email"`
	Qualification string `json:"qualification" form:"qualification"`
	IDAllocation  string `json:"idAllocation" form:"idAllocation"`
	Counselor     string `json:"counselor" form:"counselor"`
	VisaType      string `json:"visaType" form:"visaType"`
	Photo         string `json:"photo" form:"photo"`
}

type EducationRequest struct {
	FutureEducationDetails models.EducationDetails `json:"futureEducationDetails"`
}

// IncomingNote is a note submitted with a processing update.
type IncomingNote struct {
	Note string `json:"note"`
}

// ProcessingUpdateRequest carries the merge-in-place fields of the
// processing record. File name/path pairs act as fallbacks when no
// multipart file was attached for the slot.
type ProcessingUpdateRequest struct {
	Status                    string             `json:"status" form:"status"`
	ProcessingNotes           []IncomingNote     `json:"processingNotes"`
	ApplyForOfferLetterStatus string             `json:"applyForOfferLetterStatus" form:"applyForOfferLetterStatus"`
	OfferLetterReceived       string             `json:"offerLetterReceived" form:"offerLetterReceived"`
	Attestation               models.Attestation `json:"attestation"`
	FileToEmbassy             string             `json:"fileToEmbassy" form:"fileToEmbassy"`
	VisaStatus                string             `json:"visaStatus" form:"visaStatus"`

	OfferLetterFileName string `json:"offerLetterFileName" form:"offerLetterFileName"`
	OfferLetterFilePath string `json:"offerLetterFilePath" form:"offerLetterFilePath"`

	ConfirmationInvoiceFileName string `json:"confirmationInvoiceFileName" form:"confirmationInvoiceFileName"`
	ConfirmationInvoiceFilePath string `json:"confirmationInvoiceFilePath" form:"confirmationInvoiceFilePath"`

	EmbassyAppointmentFileName string `json:"embassyAppointmentFileName" form:"embassyAppointmentFileName"`
	EmbassyAppointmentFilePath string `json:"embassyAppointmentFilePath" form:"embassyAppointmentFilePath"`
}

type DeleteNoteRequest struct {
	NoteID string `json:"noteId"`
}

type AgreementRequest struct {
	Amount   *float64 `json:"amount"`
	Currency string   `json:"currency"`
}

type AgreementResponse struct {
	Amount   *float64 `json:"amount"`
	Currency string   `json:"currency"`
}
