package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"careercopilot/internal/models"
)

type ReportRepository interface {
	Create(report *models.Report) error
	FindByID(id uuid.UUID) (*models.Report, error)
	UpdateStatus(id uuid.UUID, status models.ReportStatus) error
	UpdateMarkdown(id uuid.UUID, markdown string) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.Report, error)
	HasActiveReport(sessionID uuid.UUID) (bool, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *models.Report) error {
	if err := r.db.Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *reportRepository) FindByID(id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := r.db.Where("id = ?", id).First(&report).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("report not found")
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return &report, nil
}

func (r *reportRepository) UpdateStatus(id uuid.UUID, status models.ReportStatus) error {
	result := r.db.Model(&models.Report{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("report not found")
	}

	return nil
}

func (r *reportRepository) UpdateMarkdown(id uuid.UUID, markdown string) error {
	result := r.db.Model(&models.Report{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.StatusCompleted,
			"markdown":   markdown,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update markdown: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("report not found")
	}

	return nil
}

func (r *reportRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Report{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("report not found")
	}

	return nil
}

func (r *reportRepository) FindPendingJobs(limit int) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&reports).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return reports, nil
}

// HasActiveReport reports whether the session already has an analysis in
// flight. One session never runs two analyses concurrently.
func (r *reportRepository) HasActiveReport(sessionID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Report{}).
		Where("session_id = ? AND status IN ?", sessionID,
			[]models.ReportStatus{models.StatusQueued, models.StatusProcessing}).
		Count(&count).Error

	if err != nil {
		return false, fmt.Errorf("failed to count active reports: %w", err)
	}

	return count > 0, nil
}
