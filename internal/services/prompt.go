package services

import (
	"fmt"

	"alfredoptarigan/resume-tailor/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildKeywordExtractionPrompt creates the prompt for pulling keywords out
// of a job description. The output contract is a bare comma-separated list.
func (pb *PromptBuilder) BuildKeywordExtractionPrompt(jobDescription string) string {
	return fmt.Sprintf(`Extract the most important 10-15 keywords, key skills, and essential requirements from the following job description.
List them as a comma-separated string. Do not include any other text or conversational phrases.

Job Description:
%s

Keywords:`, jobDescription)
}

// styleGuidance returns the rewrite instruction for a tailoring style.
func styleGuidance(style models.TailoringStyle) string {
	switch style {
	case models.StyleConcise:
		return "Make the tailored resume concise and to the point, focusing only on the most relevant information."
	case models.StyleDetailed:
		return "Provide a detailed and comprehensive tailored resume, elaborating on experiences where relevant."
	default:
		return "Provide a balanced and standard tailored resume."
	}
}

// BuildTailoringPrompt creates the rewrite prompt. The keywords argument is
// optional; when empty, no keyword-highlighting instruction is embedded.
func (pb *PromptBuilder) BuildTailoringPrompt(resume, jobTitle, jobDescription, keywords string, style models.TailoringStyle) string {
	keywordsInstruction := ""
	if keywords != "" {
		keywordsInstruction = fmt.Sprintf("Ensure the tailored resume highlights these specific keywords and phrases: %s. ", keywords)
	}

	return fmt.Sprintf(`You are an expert resume writer and career coach. Your task is to tailor a given resume to a specific job description and job title.
%s
Focus on highlighting relevant skills, experiences, and achievements that directly match the requirements and keywords in the job description.
%sEnsure the tone is professional and impactful.
The output should ONLY be the tailored resume text. Do NOT include any conversational text, introductions, or conclusions.

---
**Original Resume:**
%s

---
**Job Title:**
%s

---
**Job Description:**
%s

---
**Tailored Resume:**`,
		styleGuidance(style), keywordsInstruction, resume, jobTitle, jobDescription)
}

// BuildReviewPrompt creates the scoring prompt. The response is constrained
// server-side by the review schema; the prompt restates the contract anyway.
func (pb *PromptBuilder) BuildReviewPrompt(tailoredResume, jobTitle, jobDescription string) string {
	return fmt.Sprintf(`You are an expert ATS (Applicant Tracking System) and a human recruiter.
Your task is to review the following TAILORED resume against the provided Job Title and Job Description.

Provide a score out of 100 for its ATS compatibility. A higher score means better keyword matching and formatting for ATS.
Then, provide a humanized review, focusing on:
- Overall readability and clarity.
- Impact and strength of language.
- How well it highlights relevant experience and skills for the specific job.
- Any suggestions for further improvement from a human perspective.
- Ensure the resume is highly ATS friendly AND humanized.

Respond ONLY with a JSON object containing 'ats_score' (integer out of 100) and 'review' (string).

---
**Tailored Resume:**
%s

---
**Job Title:**
%s

---
**Job Description:**
%s

---
JSON Output:`,
		tailoredResume, jobTitle, jobDescription)
}
