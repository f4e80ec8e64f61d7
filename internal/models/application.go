package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Application status values.
const (
	StatusApplied   = "Applied"
	StatusInProcess = "In Process"
	StatusOffered   = "Offered"
	StatusRejected  = "Rejected"
)

// Round status values.
const (
	RoundPending = "Pending"
	RoundPassed  = "Passed"
	RoundFailed  = "Failed"
)

// Attachment type values.
const (
	AttachmentResume = "resume"
	AttachmentJD     = "jd"
)

var StatusOptions = []string{StatusApplied, StatusInProcess, StatusOffered, StatusRejected}
var RoundStatusOptions = []string{RoundPending, RoundPassed, RoundFailed}
var AttachmentTypes = []string{AttachmentResume, AttachmentJD}

// DefaultPipelineNames is the round sequence created when the caller supplies none.
var DefaultPipelineNames = []string{"Screening", "OA", "Technical", "HR", "Offer"}

// Application is one tracked job application owned by a single user. Rounds,
// attachments and documents live inside the row as jsonb so every mutation is a
// single-document write.
type Application struct {
	ID          uuid.UUID                       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID     uuid.UUID                       `gorm:"type:uuid;not null;index" json:"owner_id"`
	CompanyName string                          `gorm:"size:255;not null" json:"company_name"`
	Role        string                          `gorm:"size:255;not null" json:"role"`
	Status      string                          `gorm:"size:20;default:'Applied'" json:"status"`
	Notes       string                          `gorm:"type:text" json:"notes"`
	Rounds      datatypes.JSONSlice[Round]      `gorm:"type:jsonb" json:"rounds"`
	Attachments datatypes.JSONSlice[Attachment] `gorm:"type:jsonb" json:"attachments"`
	Documents   datatypes.JSONSlice[Document]   `gorm:"type:jsonb" json:"documents"`
	CreatedAt   time.Time                       `json:"created_at"`
	UpdatedAt   time.Time                       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt                  `gorm:"index" json:"-"`
}

// Round is one interview stage, addressed by its own id within the parent.
type Round struct {
	ID     uuid.UUID  `json:"id"`
	Name   string     `json:"name"`
	Status string     `json:"status"`
	Date   *time.Time `json:"date,omitempty"`
	Notes  string     `json:"notes,omitempty"`
}

// Attachment is a stored file reference returned by the blob store.
type Attachment struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Document is a legacy named link kept for older clients; managed wholesale
// through application updates, never item by item.
type Document struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DefaultPipeline builds the fixed five-stage round sequence, all Pending.
func DefaultPipeline() []Round {
	rounds := make([]Round, 0, len(DefaultPipelineNames))
	for _, name := range DefaultPipelineNames {
		rounds = append(rounds, Round{
			ID:     uuid.New(),
			Name:   name,
			Status: RoundPending,
		})
	}
	return rounds
}

func IsValidStatus(status string) bool {
	for _, s := range StatusOptions {
		if status == s {
			return true
		}
	}
	return false
}

func IsValidRoundStatus(status string) bool {
	for _, s := range RoundStatusOptions {
		if status == s {
			return true
		}
	}
	return false
}

func IsValidAttachmentType(t string) bool {
	for _, v := range AttachmentTypes {
		if t == v {
			return true
		}
	}
	return false
}
