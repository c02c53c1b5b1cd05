package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"careercopilot/internal/models"
)

type SessionRepository interface {
	Create(session *models.Session) error
	FindByID(id uuid.UUID) (*models.Session, error)
	PublishSnapshot(id uuid.UUID, snapshot *SessionSnapshot) error
}

// SessionSnapshot is everything a parse action publishes at once. Writing
// the fields together keeps the readiness facts (resume text, job
// description, verdict) from ever being observed half-updated.
type SessionSnapshot struct {
	ResumeFilename     string
	OriginalFilename   string
	ResumeText         string
	JobDescription     string
	JDValid            bool
	ValidationReason   string
	ShortResumeWarning bool
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create implements SessionRepository.
func (r *sessionRepository) Create(session *models.Session) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindByID implements SessionRepository.
func (r *sessionRepository) FindByID(id uuid.UUID) (*models.Session, error) {
	var session models.Session
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

// PublishSnapshot implements SessionRepository.
func (r *sessionRepository) PublishSnapshot(id uuid.UUID, snapshot *SessionSnapshot) error {
	now := time.Now()
	result := r.db.Model(&models.Session{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"resume_filename":      snapshot.ResumeFilename,
			"original_filename":    snapshot.OriginalFilename,
			"resume_text":          snapshot.ResumeText,
			"job_description":      snapshot.JobDescription,
			"jd_valid":             snapshot.JDValid,
			"validation_reason":    snapshot.ValidationReason,
			"short_resume_warning": snapshot.ShortResumeWarning,
			"parsed_at":            now,
			"updated_at":           now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to publish snapshot: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("session not found")
	}

	return nil
}
