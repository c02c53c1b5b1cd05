package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"careercopilot/internal/models"
)

func TestGateOf(t *testing.T) {
	tests := []struct {
		name    string
		session models.Session
		want    GateState
	}{
		{
			name:    "fresh session",
			session: models.Session{},
			want:    StateEmpty,
		},
		{
			name:    "resume only",
			session: models.Session{ResumeText: "some resume"},
			want:    StateEmpty,
		},
		{
			name:    "job description only",
			session: models.Session{JobDescription: "some jd"},
			want:    StateEmpty,
		},
		{
			name:    "parsed but verdict negative",
			session: models.Session{ResumeText: "resume", JobDescription: "jd"},
			want:    StateParsed,
		},
		{
			name:    "parsed and validated",
			session: models.Session{ResumeText: "resume", JobDescription: "jd", JDValid: true},
			want:    StateReady,
		},
		{
			name:    "empty extraction result stays empty even with verdict",
			session: models.Session{ResumeText: "", JobDescription: "jd", JDValid: true},
			want:    StateEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GateOf(&tt.session))
		})
	}
}

func TestAnalyzeEnabled(t *testing.T) {
	longJD := wordsOfText(MinJobDescriptionWords)

	t.Run("enabled when ready and word floor holds", func(t *testing.T) {
		session := &models.Session{ResumeText: "resume", JobDescription: longJD, JDValid: true}
		assert.True(t, AnalyzeEnabled(session))
	})

	t.Run("disabled without positive verdict", func(t *testing.T) {
		session := &models.Session{ResumeText: "resume", JobDescription: longJD}
		assert.False(t, AnalyzeEnabled(session))
	})

	t.Run("redundant word-count check catches a stale verdict", func(t *testing.T) {
		// The recorded verdict says valid but the stored text is below the
		// floor; the independent re-check wins.
		session := &models.Session{
			ResumeText:     "resume",
			JobDescription: wordsOfText(MinJobDescriptionWords - 1),
			JDValid:        true,
		}
		assert.False(t, AnalyzeEnabled(session))
	})

	t.Run("disabled on empty session", func(t *testing.T) {
		assert.False(t, AnalyzeEnabled(&models.Session{}))
	})
}
