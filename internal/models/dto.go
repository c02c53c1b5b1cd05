package models

import "github.com/go-playground/validator/v10"

// Verdict is the classifier's judgment of a pasted job description.
type Verdict struct {
	IsValid bool   `json:"is_valid"`
	Reason  string `json:"reason"`
}

// ParseRequest carries the pasted job description that accompanies the
// uploaded resume PDF in the multipart parse form.
type ParseRequest struct {
	JobDescription string `json:"job_description" validate:"required"`
}

// Validate validates the ParseRequest using the validator.
func (r *ParseRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

type SessionResponse struct {
	ID                  string `json:"id"`
	State               string `json:"state"`
	ResumeFilename      string `json:"resume_filename,omitempty"`
	ResumeChars         int    `json:"resume_chars"`
	JobDescriptionWords int    `json:"job_description_words"`
	JDValid             bool   `json:"jd_valid"`
	ValidationReason    string `json:"validation_reason,omitempty"`
	ShortResumeWarning  bool   `json:"short_resume_warning"`
	AnalyzeEnabled      bool   `json:"analyze_enabled"`
	ResumePreview       string `json:"resume_preview,omitempty"`
}

type ParseResponse struct {
	SessionID          string  `json:"session_id"`
	State              string  `json:"state"`
	Verdict            Verdict `json:"verdict"`
	ShortResumeWarning bool    `json:"short_resume_warning"`
	Warning            string  `json:"warning,omitempty"`
	AnalyzeEnabled     bool    `json:"analyze_enabled"`
	ResumePreview      string  `json:"resume_preview,omitempty"`
}

type AnalyzeResponse struct {
	ReportID string `json:"report_id"`
	Status   string `json:"status"`
}

type ReportResponse struct {
	ID           string  `json:"id"`
	SessionID    string  `json:"session_id"`
	Status       string  `json:"status"`
	Markdown     *string `json:"markdown,omitempty"`
	ErrorMessage *string `json:"error_message,omitempty"`
}

type SimilarReport struct {
	ReportID  string  `json:"report_id"`
	Score     float32 `json:"score"`
	JDSnippet string  `json:"jd_snippet"`
}

type SimilarReportsResponse struct {
	ReportID string          `json:"report_id"`
	Similar  []SimilarReport `json:"similar"`
}
