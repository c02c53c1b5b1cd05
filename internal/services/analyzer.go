package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"careercopilot/internal/models"
	"careercopilot/internal/repositories"
)

const (
	analysisTemperature = 0.3
	resumePreviewChars  = 2000
	jdSnippetChars      = 200
)

type AnalyzerService interface {
	ParseSession(ctx context.Context, sessionID uuid.UUID, originalFilename string, pdfData []byte, jobDescription string) (*ParseOutcome, error)
	ProcessReport(ctx context.Context, reportID uuid.UUID) error
	SimilarReports(ctx context.Context, reportID uuid.UUID, limit int) ([]models.SimilarReport, error)
}

// ParseOutcome is what one parse action produced: the snapshot facts the
// readiness gate will see, plus user-facing warnings.
type ParseOutcome struct {
	Verdict            models.Verdict
	ShortResumeWarning bool
	State              GateState
	AnalyzeEnabled     bool
	ResumePreview      string
}

type analyzerService struct {
	sessionRepo   repositories.SessionRepository
	reportRepo    repositories.ReportRepository
	gemini        GeminiService
	archive       ArchiveService
	pdfParser     PDFParserService
	classifier    TextClassifier
	promptBuilder *PromptBuilder
	storage       StorageService
}

func NewAnalyzerService(
	sessionRepo repositories.SessionRepository,
	reportRepo repositories.ReportRepository,
	gemini GeminiService,
	archive ArchiveService,
	pdfParser PDFParserService,
	classifier TextClassifier,
	storage StorageService,
) AnalyzerService {
	return &analyzerService{
		sessionRepo:   sessionRepo,
		reportRepo:    reportRepo,
		gemini:        gemini,
		archive:       archive,
		pdfParser:     pdfParser,
		classifier:    classifier,
		promptBuilder: NewPromptBuilder(),
		storage:       storage,
	}
}

// ParseSession runs the full parse action: extract text from the uploaded
// PDF, normalize it, trim and classify the job description, and publish
// all readiness facts into the session in one write. An extraction
// failure aborts the attempt and leaves the previous snapshot intact; a
// short or empty extraction result is only a warning and the pipeline
// still proceeds through classification.
func (a *analyzerService) ParseSession(ctx context.Context, sessionID uuid.UUID, originalFilename string, pdfData []byte, jobDescription string) (*ParseOutcome, error) {
	if _, err := a.sessionRepo.FindByID(sessionID); err != nil {
		return nil, err
	}

	raw, err := a.pdfParser.ExtractText(pdfData)
	if err != nil {
		return nil, err
	}

	resumeText := Normalize(raw)
	jdText := strings.TrimSpace(jobDescription)

	shortResume := len(resumeText) < MinResumeChars
	if shortResume {
		log.Printf("⚠️  Session %s: extracted only %d characters from resume\n", sessionID, len(resumeText))
	}

	verdict := a.classifier.Classify(ctx, jdText)

	filename, _, err := a.storage.SaveResume(originalFilename, pdfData)
	if err != nil {
		return nil, fmt.Errorf("failed to store resume file: %w", err)
	}

	snapshot := &repositories.SessionSnapshot{
		ResumeFilename:     filename,
		OriginalFilename:   originalFilename,
		ResumeText:         resumeText,
		JobDescription:     jdText,
		JDValid:            verdict.IsValid,
		ValidationReason:   verdict.Reason,
		ShortResumeWarning: shortResume,
	}

	if err := a.sessionRepo.PublishSnapshot(sessionID, snapshot); err != nil {
		// Cleanup the stored file if the snapshot never landed
		a.storage.DeleteFile(filename)
		return nil, err
	}

	session := &models.Session{
		ResumeText:     resumeText,
		JobDescription: jdText,
		JDValid:        verdict.IsValid,
	}

	return &ParseOutcome{
		Verdict:            verdict,
		ShortResumeWarning: shortResume,
		State:              GateOf(session),
		AnalyzeEnabled:     AnalyzeEnabled(session),
		ResumePreview:      truncate(resumeText, resumePreviewChars),
	}, nil
}

// ProcessReport generates the Markdown analysis for a queued report. Any
// generation failure is recorded verbatim on the report; there is no
// automatic retry of the analysis call.
func (a *analyzerService) ProcessReport(ctx context.Context, reportID uuid.UUID) error {
	if err := a.reportRepo.UpdateStatus(reportID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting analysis for report %s\n", reportID)

	report, err := a.reportRepo.FindByID(reportID)
	if err != nil {
		a.reportRepo.UpdateError(reportID, err.Error())
		return fmt.Errorf("failed to get report: %w", err)
	}

	session, err := a.sessionRepo.FindByID(report.SessionID)
	if err != nil {
		a.reportRepo.UpdateError(reportID, fmt.Sprintf("session not found: %v", err))
		return fmt.Errorf("failed to get session: %w", err)
	}

	system, user := a.promptBuilder.BuildAnalysisPrompt(session.ResumeText, session.JobDescription)

	markdown, err := a.gemini.GenerateText(ctx, system, user, analysisTemperature)
	if err != nil {
		a.reportRepo.UpdateError(reportID, err.Error())
		return fmt.Errorf("failed to generate analysis: %w", err)
	}

	if err := a.reportRepo.UpdateMarkdown(reportID, strings.TrimSpace(markdown)); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	// Archiving is best-effort: a completed report never fails because the
	// archive is unavailable.
	a.archiveReport(ctx, reportID, session.JobDescription)

	log.Printf("✅ Analysis completed for report %s\n", reportID)
	return nil
}

func (a *analyzerService) archiveReport(ctx context.Context, reportID uuid.UUID, jobDescription string) {
	embedding, err := a.gemini.GenerateEmbedding(ctx, jobDescription)
	if err != nil {
		log.Printf("⚠️  Failed to embed job description for report %s: %v\n", reportID, err)
		return
	}

	if err := a.archive.ArchiveReport(ctx, reportID.String(), truncate(jobDescription, jdSnippetChars), embedding); err != nil {
		log.Printf("⚠️  Failed to archive report %s: %v\n", reportID, err)
	}
}

// SimilarReports returns earlier completed reports whose job descriptions
// most resemble the given report's.
func (a *analyzerService) SimilarReports(ctx context.Context, reportID uuid.UUID, limit int) ([]models.SimilarReport, error) {
	report, err := a.reportRepo.FindByID(reportID)
	if err != nil {
		return nil, err
	}

	if report.Status != models.StatusCompleted {
		return nil, fmt.Errorf("report is not completed yet")
	}

	session, err := a.sessionRepo.FindByID(report.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	embedding, err := a.gemini.GenerateEmbedding(ctx, session.JobDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to embed job description: %w", err)
	}

	return a.archive.FindSimilar(ctx, embedding, reportID.String(), limit)
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "…"
}
