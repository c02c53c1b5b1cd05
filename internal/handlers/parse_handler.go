package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"careercopilot/internal/models"
	"careercopilot/internal/services"
)

type ParseHandler struct {
	analyzer    services.AnalyzerService
	maxFileSize int64
}

func NewParseHandler(analyzer services.AnalyzerService, maxFileSize int64) *ParseHandler {
	return &ParseHandler{
		analyzer:    analyzer,
		maxFileSize: maxFileSize,
	}
}

// HandleParse handles POST /sessions/:id/parse. The multipart form must
// carry a "resume" PDF and a "job_description" text field. This is the
// only action that rewrites the session's readiness snapshot.
func (h *ParseHandler) HandleParse(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please upload a PDF resume first.",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	req := models.ParseRequest{
		JobDescription: c.FormValue("job_description"),
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please paste the job description.",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open uploaded file",
		})
	}
	defer file.Close()

	pdfData, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}

	outcome, err := h.analyzer.ParseSession(c.Context(), sessionID, fileHeader.Filename, pdfData, req.JobDescription)
	if err != nil {
		var extractionErr *services.ExtractionError
		if errors.As(err, &extractionErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": fmt.Sprintf("Resume parsing failed: %v", extractionErr),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Parse failed: %v", err),
		})
	}

	resp := models.ParseResponse{
		SessionID:          sessionID.String(),
		State:              string(outcome.State),
		Verdict:            outcome.Verdict,
		ShortResumeWarning: outcome.ShortResumeWarning,
		AnalyzeEnabled:     outcome.AnalyzeEnabled,
		ResumePreview:      outcome.ResumePreview,
	}
	if outcome.ShortResumeWarning {
		resp.Warning = "I could not extract much text from this PDF. " +
			"If it's a scanned image, consider exporting a text-based PDF."
	}

	return c.JSON(resp)
}
