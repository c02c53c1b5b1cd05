package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"careercopilot/internal/models"
	"careercopilot/internal/repositories"
	"careercopilot/internal/services"
)

type SessionHandler struct {
	sessionRepo repositories.SessionRepository
}

func NewSessionHandler(sessionRepo repositories.SessionRepository) *SessionHandler {
	return &SessionHandler{
		sessionRepo: sessionRepo,
	}
}

// HandleCreate handles POST /sessions. A session starts empty; nothing is
// enabled until its first parse.
func (h *SessionHandler) HandleCreate(c *fiber.Ctx) error {
	session := &models.Session{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.sessionRepo.Create(session); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.SessionResponse{
		ID:    session.ID.String(),
		State: string(services.StateEmpty),
	})
}

// HandleGet handles GET /sessions/:id and returns the readiness snapshot.
func (h *SessionHandler) HandleGet(c *fiber.Ctx) error {
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

	return c.JSON(sessionResponse(session))
}

func sessionResponse(session *models.Session) models.SessionResponse {
	return models.SessionResponse{
		ID:                  session.ID.String(),
		State:               string(services.GateOf(session)),
		ResumeFilename:      session.OriginalFilename,
		ResumeChars:         len(session.ResumeText),
		JobDescriptionWords: services.WordCount(session.JobDescription),
		JDValid:             session.JDValid,
		ValidationReason:    session.ValidationReason,
		ShortResumeWarning:  session.ShortResumeWarning,
		AnalyzeEnabled:      services.AnalyzeEnabled(session),
	}
}
