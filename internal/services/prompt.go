package services

import (
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

const advisorSystemInstruction = "You are a precise career advisor. Analyze a candidate's resume against a job description. " +
	"Be specific, concise, and actionable. Use clear section headers and bullet points. " +
	"Do not invent facts; use only provided text."

// BuildAnalysisPrompt assembles the instruction pair for the analysis
// call. A job description below the word floor selects the resume-only
// template, which tells the model outright that no comparison is
// possible; otherwise the five-section comparison template is used. Both
// templates embed the inputs verbatim with no truncation.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeText, jobDescription string) (system, user string) {
	if WordCount(jobDescription) < MinJobDescriptionWords {
		return advisorSystemInstruction, pb.buildResumeOnlyPrompt(resumeText)
	}
	return advisorSystemInstruction, pb.buildComparisonPrompt(resumeText, jobDescription)
}

func (pb *PromptBuilder) buildComparisonPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`Return your answer in **Markdown** with these sections:

1) **Strengths vs JD** — 3–6 bullets
2) **Skill/Experience Gaps** — 3–6 bullets (use verb–noun phrasing, e.g., "Hands-on Databricks pipelines")
3) **Resume Bullet Rewrites (ATS-ready)** — 3–6 bullets; use strong verbs + quantification placeholders if needed
4) **Tailored Professional Summary (3–4 sentences)** — role-aligned, no fluff
5) **Top Keywords to Add** — comma-separated

--- RESUME ---
%s

--- JOB DESCRIPTION ---
%s`, resumeText, jobDescription)
}

func (pb *PromptBuilder) buildResumeOnlyPrompt(resumeText string) string {
	return fmt.Sprintf(`The job description provided is too short to support a comparison, so no comparison against a job description is possible. Analyze the resume on its own.

Return your answer in **Markdown** with these sections:

1) **Resume Strengths** — 3–6 bullets
2) **Areas to Improve** — 3–6 bullets
3) **Professional Summary (3–4 sentences)** — no fluff
4) **Suggested Keywords** — comma-separated

--- RESUME ---
%s`, resumeText)
}
