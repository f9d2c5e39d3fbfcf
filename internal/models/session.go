package models

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	StatusProcessing SessionStatus = "processing"
	StatusCompleted  SessionStatus = "completed"
	StatusFailed     SessionStatus = "failed"
)

// TailoringStyle selects how aggressively the rewrite condenses or expands
// the original resume. Exactly three variants exist.
type TailoringStyle string

const (
	StyleStandard TailoringStyle = "Standard"
	StyleConcise  TailoringStyle = "Concise"
	StyleDetailed TailoringStyle = "Detailed"
)

// ParseStyle maps a form value onto a TailoringStyle. Unknown or empty
// values fall back to Standard.
func ParseStyle(s string) TailoringStyle {
	switch TailoringStyle(s) {
	case StyleConcise:
		return StyleConcise
	case StyleDetailed:
		return StyleDetailed
	default:
		return StyleStandard
	}
}

// TailoringSession records one submission and its pipeline outcome. The
// record is written wholesale when the pipeline finishes; individual fields
// are never updated independently across steps.
type TailoringSession struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobTitle         string         `gorm:"type:text" json:"job_title"`
	JobDescription   string         `gorm:"type:text" json:"job_description"`
	Style            TailoringStyle `gorm:"type:text;default:'Standard'" json:"style"`
	ResumeDocumentID *uuid.UUID     `gorm:"type:uuid" json:"resume_document_id,omitempty"`
	OriginalResume   string         `gorm:"type:text" json:"original_resume"`
	Keywords         string         `gorm:"type:text" json:"keywords"`
	TailoredResume   *string        `gorm:"type:text" json:"tailored_resume,omitempty"`
	ATSScore         *int           `json:"ats_score,omitempty"`
	Review           *string        `gorm:"type:text" json:"review,omitempty"`
	Status           SessionStatus  `gorm:"not null;default:'processing'" json:"status"`
	ErrorMessage     *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	ResumeDocument *Document `gorm:"foreignKey:ResumeDocumentID" json:"-"`
}

func (TailoringSession) TableName() string {
	return "tailoring_sessions"
}

// HasReview reports whether the review step produced a complete result.
// Both fields are required; a score without a review is treated as absent.
func (s *TailoringSession) HasReview() bool {
	return s.ATSScore != nil && s.Review != nil
}
