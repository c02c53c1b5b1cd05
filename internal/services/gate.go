package services

import (
	"careercopilot/internal/models"
)

// GateState is the readiness state of a session. Only the parse action
// moves a session between states; editing the inputs afterwards never
// retroactively changes the recorded snapshot.
type GateState string

const (
	// StateEmpty: nothing parsed yet.
	StateEmpty GateState = "empty"
	// StateParsed: resume text and job description recorded, but the last
	// validation verdict was not positive.
	StateParsed GateState = "parsed"
	// StateReady: resume text, job description, and a positive verdict all
	// recorded by the same parse action.
	StateReady GateState = "ready"
)

// GateOf derives the readiness state from a session's last parsed
// snapshot: whether resume text was extracted, whether a job description
// was recorded, and whether the last verdict on it was positive.
func GateOf(session *models.Session) GateState {
	resumePresent := session.ResumeText != ""
	jdPresent := session.JobDescription != ""

	switch {
	case resumePresent && jdPresent && session.JDValid:
		return StateReady
	case resumePresent && jdPresent:
		return StateParsed
	default:
		return StateEmpty
	}
}

// AnalyzeEnabled reports whether the analyze action may fire. Beyond the
// READY state it re-verifies the job-description word floor directly
// against the stored snapshot, a short-circuit guard in case the recorded
// verdict ever drifts from the text it was computed for.
func AnalyzeEnabled(session *models.Session) bool {
	if GateOf(session) != StateReady {
		return false
	}
	return WordCount(session.JobDescription) >= MinJobDescriptionWords
}
