package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"careercopilot/internal/models"
)

// TextClassifier decides whether a block of pasted text is a genuine job
// description. Implementations never fail open: any failure along the way
// yields an invalid verdict with a diagnostic reason rather than an error,
// because the downstream cost of a false positive is a full LLM analysis
// call.
type TextClassifier interface {
	Classify(ctx context.Context, text string) models.Verdict
}

// NewJDClassifier composes the cheap length heuristic with the model-based
// fallback: texts under the word floor are rejected without touching the
// network.
func NewJDClassifier(gemini GeminiService) TextClassifier {
	return &heuristicClassifier{
		next: &geminiClassifier{gemini: gemini},
	}
}

type heuristicClassifier struct {
	next TextClassifier
}

// Classify implements TextClassifier.
func (c *heuristicClassifier) Classify(ctx context.Context, text string) models.Verdict {
	if WordCount(text) < MinJobDescriptionWords {
		return models.Verdict{IsValid: false, Reason: "too short"}
	}
	return c.next.Classify(ctx, text)
}

const classifierSystemInstruction = "You are a strict recruiter judging whether a block of text is a genuine job posting. " +
	"A genuine posting describes a role's responsibilities, requirements, or qualifications. " +
	"Answer only with the JSON object requested."

type geminiClassifier struct {
	gemini GeminiService
}

// Classify implements TextClassifier.
func (c *geminiClassifier) Classify(ctx context.Context, text string) models.Verdict {
	prompt := fmt.Sprintf(`Decide whether the following text is a real job description.

Return ONLY a JSON object in this exact format:
{"is_valid": true or false, "reason": "<one short sentence>"}

--- TEXT ---
%s`, text)

	response, err := c.gemini.GenerateText(ctx, classifierSystemInstruction, prompt, 0.0)
	if err != nil {
		log.Printf("⚠️  JD classification call failed: %v\n", err)
		return models.Verdict{IsValid: false, Reason: fmt.Sprintf("classification failed: %v", err)}
	}

	verdict, err := parseVerdict(response)
	if err != nil {
		log.Printf("⚠️  Failed to parse classification response: %v\n", err)
		return models.Verdict{IsValid: false, Reason: fmt.Sprintf("could not parse classifier response: %v", err)}
	}

	return verdict
}

func parseVerdict(response string) (models.Verdict, error) {
	raw := extractJSON(response)

	// Distinguish a missing field from a present-but-false one, so a
	// response shaped like {"reason": "..."} fails closed as malformed
	// instead of passing for an explicit rejection.
	var parsed struct {
		IsValid *bool  `json:"is_valid"`
		Reason  string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return models.Verdict{}, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	if parsed.IsValid == nil {
		return models.Verdict{}, fmt.Errorf("response missing is_valid field")
	}

	return models.Verdict{IsValid: *parsed.IsValid, Reason: parsed.Reason}, nil
}

// extractJSON tries to extract JSON from text that might contain markdown
// or other formatting around the object.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
