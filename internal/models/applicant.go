package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Visa types accepted on applicant creation.
const (
	VisaWorkPermit  = "Work Permit"
	VisaStudentVisa = "Student Visa"
	VisaVisit       = "Visit"
)

// Attestation stage states.
const (
	StagePending = "Pending"
	StageDone    = "Done"
	StageNA      = "NA"
)

// Visa outcome states tracked on the processing record.
const (
	VisaStatusPending  = "Pending"
	VisaStatusApplied  = "Applied"
	VisaStatusCongrats = "Congrats"
	VisaStatusBetter   = "Better luck next time!"
)

// Agreement is stored as flat columns so reporting can group agreed
// amounts by currency in SQL.
type Agreement struct {
	AgreedAmount   *float64 `gorm:"column:agreed_amount" json:"agreedAmount"`
	AgreedCurrency string   `gorm:"column:agreed_currency;size:10;default:'PKR'" json:"agreedCurrency"`
}

// Document is a titled blob reference owned by the applicant.
type Document struct {
	ID    uuid.UUID `json:"_id"`
	Title string    `json:"title"`
	Path  string    `json:"path"`
}

// EducationDetails captures the planned study destination.
type EducationDetails struct {
	Country   string `json:"country,omitempty"`
	City      string `json:"city,omitempty"`
	Institute string `json:"institute,omitempty"`
	Course    string `json:"course,omitempty"`
	Intake    string `json:"intake,omitempty"`
}

// Attestation tracks seven independent document-attestation stages.
type Attestation struct {
	Board           string `json:"board"`
	IBCC            string `json:"ibcc"`
	HEC             string `json:"hec"`
	MOFA            string `json:"mofa"`
	Consulate       string `json:"consulate"`
	Apostille       string `json:"apostille"`
	FilePreparation string `json:"filePreparation"`
}

// NewAttestation returns all stages at Pending.
func NewAttestation() Attestation {
	return Attestation{
		Board:           StagePending,
		IBCC:            StagePending,
		HEC:             StagePending,
		MOFA:            StagePending,
		Consulate:       StagePending,
		Apostille:       StagePending,
		FilePreparation: StagePending,
	}
}

// ProcessingEntry is the single optional visa-processing record of an
// applicant. Earlier revisions of the system stored this as a
// one-element array; it is a plain nested record now.
type ProcessingEntry struct {
	ApplyForOfferLetterStatus string `json:"applyForOfferLetterStatus"`
	OfferLetterReceived       string `json:"offerLetterReceived"`

	OfferLetterFileName string `json:"offerLetterFileName"`
	OfferLetterFilePath string `json:"offerLetterFilePath"`

	ConfirmationInvoiceFileName string `json:"confirmationInvoiceFileName"`
	ConfirmationInvoiceFilePath string `json:"confirmationInvoiceFilePath"`

	Attestation Attestation `json:"attestation"`

	EmbassyAppointmentFileName string `json:"embassyAppointmentFileName"`
	EmbassyAppointmentFilePath string `json:"embassyAppointmentFilePath"`

	FileToEmbassy string    `json:"fileToEmbassy,omitempty"`
	VisaStatus    string    `json:"visaStatus"`
	SaveTime      time.Time `json:"saveTime"`
}

// ProcessingNote is an append-only note. ID and SaveTime are assigned
// once at creation and never rewritten.
type ProcessingNote struct {
	ID       uuid.UUID `json:"_id"`
	Note     string    `json:"note"`
	SaveTime time.Time `json:"saveTime"`
}

// Applicant is the central entity. Documents, the processing record and
// notes are embedded jsonb and die with the row.
type Applicant struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	Name          string    `gorm:"size:150;not null" json:"name"`
	Photo         string    `gorm:"size:500" json:"photo,omitempty"`
	CNIC          string    `gorm:"column:cnic;size:50;not null" json:"cnic"`
	Email         string    `gorm:"size:255" json:"email,omitempty"`
	PhoneNumber   string    `gorm:"size:50;not null" json:"phoneNumber"`
	Address       string    `gorm:"size:255" json:"address,omitempty"`
	City          string    `gorm:"size:100" json:"city,omitempty"`
	Country       string    `gorm:"size:100" json:"country,omitempty"`
	Qualification string    `gorm:"size:150" json:"qualification,omitempty"`
	IDAllocation  string    `gorm:"size:100" json:"idAllocation,omitempty"`
	Counselor     string    `gorm:"size:150" json:"counselor,omitempty"`
	VisaType      string    `gorm:"size:30;not null" json:"visaType"`
	Status        string    `gorm:"size:100;default:'active'" json:"status"`
	BranchID      uuid.UUID `gorm:"type:uuid;not null;index" json:"branchId"`

	Agreement Agreement `gorm:"embedded" json:"agreement"`

	Documents       datatypes.JSONSlice[Document]       `gorm:"type:jsonb" json:"documents"`
	FutureEducation *EducationDetails                   `gorm:"type:jsonb;serializer:json" json:"futureEducationDetails,omitempty"`
	Processing      *ProcessingEntry                    `gorm:"type:jsonb;serializer:json" json:"processing,omitempty"`
	ProcessingNotes datatypes.JSONSlice[ProcessingNote] `gorm:"type:jsonb" json:"processingNotes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Applicant) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ValidVisaType reports whether v is one of the accepted visa types.
func ValidVisaType(v string) bool {
	return v == VisaWorkPermit || v == VisaStudentVisa || v == VisaVisit
}
