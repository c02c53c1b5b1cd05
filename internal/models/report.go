package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	StatusQueued     ReportStatus = "queued"
	StatusProcessing ReportStatus = "processing"
	StatusCompleted  ReportStatus = "completed"
	StatusFailed     ReportStatus = "failed"
)

// Report is one analysis run against a session's parsed snapshot. The
// Markdown column holds the generated report verbatim; no post-processing
// is applied beyond trimming.
type Report struct {
	ID           uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID    uuid.UUID    `gorm:"type:uuid;not null" json:"session_id"`
	Status       ReportStatus `gorm:"not null;default:'queued'" json:"status"`
	Markdown     string       `gorm:"type:text" json:"markdown,omitempty"`
	ErrorMessage string       `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Session Session `gorm:"foreignKey:SessionID" json:"-"`
}

func (Report) TableName() string {
	return "reports"
}
