package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the per-user context record. The parse action is the only
// writer of the snapshot fields (resume text, job description, verdict);
// they are published together so the readiness gate always reflects the
// last parsed snapshot, never the live form contents.
type Session struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeFilename     string     `gorm:"type:text" json:"resume_filename"`
	OriginalFilename   string     `gorm:"type:text" json:"original_filename"`
	ResumeText         string     `gorm:"type:text" json:"-"`
	JobDescription     string     `gorm:"type:text" json:"-"`
	JDValid            bool       `gorm:"not null;default:false" json:"jd_valid"`
	ValidationReason   string     `gorm:"type:text" json:"validation_reason"`
	ShortResumeWarning bool       `gorm:"not null;default:false" json:"short_resume_warning"`
	ParsedAt           *time.Time `gorm:"type:timestamp" json:"parsed_at,omitempty"`
	CreatedAt          time.Time  `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (s *Session) TableName() string {
	return "sessions"
}
