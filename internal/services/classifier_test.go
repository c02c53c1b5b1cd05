package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGemini is an in-memory GeminiService for classifier and analyzer
// tests. It counts generation calls so tests can assert the cheap
// heuristic short-circuits before any network call.
type fakeGemini struct {
	generateResponse string
	generateErr      error
	generateCalls    int
	lastSystem       string
	lastPrompt       string

	embedding []float32
	embedErr  error
}

func (f *fakeGemini) GenerateText(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	f.generateCalls++
	f.lastSystem = system
	f.lastPrompt = prompt
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return f.generateResponse, nil
}

func (f *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return f.embedding, nil
}

func wordsOfText(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestClassifierShortCircuitsBelowWordFloor(t *testing.T) {
	gemini := &fakeGemini{generateResponse: `{"is_valid": true, "reason": "looks real"}`}
	classifier := NewJDClassifier(gemini)

	verdict := classifier.Classify(context.Background(), "lorem ipsum dolor sit")

	assert.False(t, verdict.IsValid)
	assert.Equal(t, "too short", verdict.Reason)
	assert.Zero(t, gemini.generateCalls, "heuristic rejection must not invoke the model")
}

func TestClassifierBoundaryAtWordFloor(t *testing.T) {
	gemini := &fakeGemini{generateResponse: `{"is_valid": true, "reason": "genuine posting"}`}
	classifier := NewJDClassifier(gemini)

	// 39 words: rejected locally
	verdict := classifier.Classify(context.Background(), wordsOfText(MinJobDescriptionWords-1))
	assert.False(t, verdict.IsValid)
	assert.Zero(t, gemini.generateCalls)

	// 40 words: delegated to the model
	verdict = classifier.Classify(context.Background(), wordsOfText(MinJobDescriptionWords))
	assert.True(t, verdict.IsValid)
	assert.Equal(t, "genuine posting", verdict.Reason)
	assert.Equal(t, 1, gemini.generateCalls)
}

func TestClassifierParsesModelVerdict(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		wantValid bool
		wantRsn   string
	}{
		{
			name:      "plain JSON",
			response:  `{"is_valid": true, "reason": "describes a role"}`,
			wantValid: true,
			wantRsn:   "describes a role",
		},
		{
			name:      "markdown fenced JSON",
			response:  "```json\n{\"is_valid\": false, \"reason\": \"marketing copy\"}\n```",
			wantValid: false,
			wantRsn:   "marketing copy",
		},
		{
			name:      "JSON surrounded by prose",
			response:  "Here is my verdict: {\"is_valid\": true, \"reason\": \"real posting\"} Hope that helps!",
			wantValid: true,
			wantRsn:   "real posting",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gemini := &fakeGemini{generateResponse: tt.response}
			classifier := NewJDClassifier(gemini)

			verdict := classifier.Classify(context.Background(), wordsOfText(60))
			assert.Equal(t, tt.wantValid, verdict.IsValid)
			assert.Equal(t, tt.wantRsn, verdict.Reason)
		})
	}
}

func TestClassifierFailsClosed(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
	}{
		{name: "non-JSON response", response: "I think this is probably a job description."},
		{name: "empty response", response: ""},
		{name: "missing is_valid field", response: `{"reason": "no verdict given"}`},
		{name: "generation error", err: errors.New("upstream timeout")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gemini := &fakeGemini{generateResponse: tt.response, generateErr: tt.err}
			classifier := NewJDClassifier(gemini)

			verdict := classifier.Classify(context.Background(), wordsOfText(60))
			assert.False(t, verdict.IsValid, "ambiguous output must never default to valid")
			assert.NotEmpty(t, verdict.Reason, "fail-closed verdicts carry a diagnostic reason")
		})
	}
}

func TestClassifierSendsTextAndInstruction(t *testing.T) {
	gemini := &fakeGemini{generateResponse: `{"is_valid": true, "reason": "ok"}`}
	classifier := NewJDClassifier(gemini)

	jd := wordsOfText(50)
	classifier.Classify(context.Background(), jd)

	require.Equal(t, 1, gemini.generateCalls)
	assert.Contains(t, gemini.lastPrompt, jd)
	assert.Contains(t, gemini.lastSystem, "strict recruiter")
}
