package models

import "time"

// ReviewData is the one structured-output shape used by the tool: an
// integer ATS compatibility score and a narrative review.
type ReviewData struct {
	ATSScore int    `json:"ats_score"`
	Review   string `json:"review"`
}

type TailorResponse struct {
	ID             string      `json:"id"`
	Status         string      `json:"status"`
	Keywords       string      `json:"keywords"`
	TailoredResume string      `json:"tailored_resume"`
	Diff           []DiffLine  `json:"diff"`
	DiffHTML       string      `json:"diff_html"`
	Review         *ReviewData `json:"review,omitempty"`
	Notices        []string    `json:"notices,omitempty"`
}

type SessionResponse struct {
	ID             string      `json:"id"`
	Status         string      `json:"status"`
	JobTitle       string      `json:"job_title"`
	Style          string      `json:"style"`
	Keywords       string      `json:"keywords,omitempty"`
	TailoredResume *string     `json:"tailored_resume,omitempty"`
	Review         *ReviewData `json:"review,omitempty"`
	ErrorMessage   *string     `json:"error_message,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}
