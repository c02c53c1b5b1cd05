package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"careercopilot/internal/models"
	"careercopilot/internal/repositories"
	"careercopilot/internal/services"
)

type ReportHandler struct {
	sessionRepo repositories.SessionRepository
	reportRepo  repositories.ReportRepository
	analyzer    services.AnalyzerService
	worker      services.Worker
}

func NewReportHandler(
	sessionRepo repositories.SessionRepository,
	reportRepo repositories.ReportRepository,
	analyzer services.AnalyzerService,
	worker services.Worker,
) *ReportHandler {
	return &ReportHandler{
		sessionRepo: sessionRepo,
		reportRepo:  reportRepo,
		analyzer:    analyzer,
		worker:      worker,
	}
}

// HandleAnalyze handles POST /sessions/:id/analyze. The action fires only
// when the session's last parsed snapshot is ready; the word floor on the
// stored job description is re-verified here, independently of the
// recorded verdict. One session gets one analysis in flight at a time.
func (h *ReportHandler) HandleAnalyze(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	session, err := h.sessionRepo.FindByID(sessionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	if !services.AnalyzeEnabled(session) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Session is not ready. Upload a resume, paste the job description, and run parse first.",
			"state": string(services.GateOf(session)),
		})
	}

	active, err := h.reportRepo.HasActiveReport(sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check running analyses",
		})
	}
	if active {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "An analysis is already running for this session",
		})
	}

	report := &models.Report{
		ID:        uuid.New(),
		SessionID: sessionID,
		Status:    models.StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.reportRepo.Create(report); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create analysis job",
		})
	}

	h.worker.EnqueueReport(report.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.AnalyzeResponse{
		ReportID: report.ID.String(),
		Status:   string(models.StatusQueued),
	})
}

// HandleGetReport handles GET /reports/:id.
func (h *ReportHandler) HandleGetReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid report ID format",
		})
	}

	report, err := h.reportRepo.FindByID(reportID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Report not found",
		})
	}

	response := models.ReportResponse{
		ID:        report.ID.String(),
		SessionID: report.SessionID.String(),
		Status:    string(report.Status),
	}

	if report.Status == models.StatusCompleted {
		response.Markdown = &report.Markdown
	}

	if report.Status == models.StatusFailed && report.ErrorMessage != "" {
		response.ErrorMessage = &report.ErrorMessage
	}

	return c.JSON(response)
}

// HandleSimilar handles GET /reports/:id/similar.
func (h *ReportHandler) HandleSimilar(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid report ID format",
		})
	}

	similar, err := h.analyzer.SimilarReports(c.Context(), reportID, 3)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.SimilarReportsResponse{
		ReportID: reportID.String(),
		Similar:  similar,
	})
}
