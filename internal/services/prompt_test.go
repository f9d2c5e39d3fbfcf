package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/resume-tailor/internal/models"
)

func TestBuildKeywordExtractionPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildKeywordExtractionPrompt("Looking for a Go developer with Kubernetes experience.")

	assert.Contains(t, prompt, "10-15 keywords")
	assert.Contains(t, prompt, "comma-separated")
	assert.Contains(t, prompt, "Looking for a Go developer with Kubernetes experience.")
}

func TestBuildTailoringPrompt_WithKeywords(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildTailoringPrompt(
		"My resume body",
		"Senior Software Engineer",
		"Job description body",
		"Go, Kubernetes, gRPC",
		models.StyleStandard,
	)

	assert.Contains(t, prompt, "My resume body")
	assert.Contains(t, prompt, "Senior Software Engineer")
	assert.Contains(t, prompt, "Job description body")
	assert.Contains(t, prompt, "Go, Kubernetes, gRPC")
	assert.Contains(t, prompt, "ONLY be the tailored resume text")
}

func TestBuildTailoringPrompt_WithoutKeywords(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildTailoringPrompt(
		"My resume body",
		"Senior Software Engineer",
		"Job description body",
		"",
		models.StyleStandard,
	)

	// Empty keyword extraction must not embed a highlighting instruction
	assert.NotContains(t, prompt, "highlights these specific keywords")
}

func TestBuildTailoringPrompt_StyleGuidance(t *testing.T) {
	pb := NewPromptBuilder()

	standard := pb.BuildTailoringPrompt("r", "t", "d", "", models.StyleStandard)
	concise := pb.BuildTailoringPrompt("r", "t", "d", "", models.StyleConcise)
	detailed := pb.BuildTailoringPrompt("r", "t", "d", "", models.StyleDetailed)

	assert.Contains(t, standard, "balanced and standard")
	assert.Contains(t, concise, "concise and to the point")
	assert.Contains(t, detailed, "detailed and comprehensive")

	assert.NotEqual(t, standard, concise)
	assert.NotEqual(t, standard, detailed)
	assert.NotEqual(t, concise, detailed)
}

func TestStyleGuidance_UnknownStyleFallsBackToStandard(t *testing.T) {
	assert.Equal(t, styleGuidance(models.StyleStandard), styleGuidance(models.TailoringStyle("Whimsical")))
}

func TestBuildReviewPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildReviewPrompt("Tailored resume body", "Data Engineer", "Job description body")

	assert.Contains(t, prompt, "Tailored resume body")
	assert.Contains(t, prompt, "Data Engineer")
	assert.Contains(t, prompt, "Job description body")
	assert.Contains(t, prompt, "'ats_score'")
	assert.Contains(t, prompt, "'review'")
	assert.Contains(t, prompt, "Respond ONLY with a JSON object")
}
