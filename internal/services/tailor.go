package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"alfredoptarigan/resume-tailor/internal/models"
	"alfredoptarigan/resume-tailor/internal/repositories"
)

// Canonical temperature and output cap per pipeline step.
const (
	keywordTemperature = float32(0.3)
	keywordMaxTokens   = int32(100)

	tailorTemperature = float32(0.7)
	tailorMaxTokens   = int32(2048)

	reviewTemperature = float32(0.5)
	reviewMaxTokens   = int32(500)
)

// User-visible notices for steps that could not complete.
const (
	NoticeKeywordsFailed = "Could not extract keywords. Proceeding with general tailoring."
	NoticeReviewFailed   = "Could not generate ATS score and review. Please try again."
)

// reviewSchema is the single structured-output contract used by the tool.
var reviewSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"ats_score": {
			Type:        genai.TypeInteger,
			Description: "ATS compatibility score out of 100",
		},
		"review": {
			Type:        genai.TypeString,
			Description: "Humanized review of the resume",
		},
	},
	Required: []string{"ats_score", "review"},
}

// reviewPayload decodes the structured review response. Pointer fields
// distinguish a missing field from a zero value: a response with either
// field absent is rejected whole, never half-populated.
type reviewPayload struct {
	ATSScore *int    `json:"ats_score"`
	Review   *string `json:"review"`
}

// PipelineResult is the outcome of one submission. It is built fresh per
// run and replaced wholesale; steps never mutate a prior run's result.
type PipelineResult struct {
	Keywords       string
	TailoredResume string
	Diff           []models.DiffLine
	DiffHTML       string
	Review         *models.ReviewData
	Notices        []string
}

type TailorService interface {
	Run(ctx context.Context, session *models.TailoringSession) (*PipelineResult, error)
}

type tailorService struct {
	sessionRepo   repositories.SessionRepository
	geminiService GeminiService
	qdrantService QdrantService
	diffService   DiffService
	promptBuilder *PromptBuilder
}

func NewTailorService(
	sessionRepo repositories.SessionRepository,
	geminiService GeminiService,
	qdrantService QdrantService,
	diffService DiffService,
) TailorService {
	return &tailorService{
		sessionRepo:   sessionRepo,
		geminiService: geminiService,
		qdrantService: qdrantService,
		diffService:   diffService,
		promptBuilder: NewPromptBuilder(),
	}
}

// Run implements TailorService. Steps execute in strict sequence:
// keyword extraction (best-effort), tailoring (fatal on failure), diff,
// review (best-effort). The session record is saved once, wholesale, when
// the pipeline settles.
func (s *tailorService) Run(ctx context.Context, session *models.TailoringSession) (*PipelineResult, error) {
	result := &PipelineResult{}

	log.Printf("🔄 Starting tailoring pipeline for session %s\n", session.ID)

	// Step 1: Extract keywords (absence is non-fatal)
	log.Println("🔍 Extracting keywords from job description...")
	keywords, err := s.extractKeywords(ctx, session.JobDescription)
	if err != nil {
		log.Printf("⚠️  Keyword extraction failed: %v\n", err)
		result.Notices = append(result.Notices, NoticeKeywordsFailed)
	}
	result.Keywords = keywords

	// Step 2: Tailor the resume
	log.Println("🤖 Tailoring resume with LLM...")
	tailored, err := s.tailorResume(ctx, session, keywords)
	if err != nil {
		s.failSession(session, fmt.Sprintf("Failed to tailor resume: %v", err))
		return nil, fmt.Errorf("failed to tailor resume: %w", err)
	}
	result.TailoredResume = tailored

	// Step 3: Diff original vs tailored
	result.Diff = s.diffService.Compare(session.OriginalResume, tailored)
	result.DiffHTML = s.diffService.RenderHTML(result.Diff)

	// Step 4: Score and review the tailored resume (absence is non-fatal)
	log.Println("📊 Requesting ATS score and review...")
	review, err := s.reviewResume(ctx, tailored, session.JobTitle, session.JobDescription)
	if err != nil {
		log.Printf("⚠️  Review scoring failed: %v\n", err)
		result.Notices = append(result.Notices, NoticeReviewFailed)
	}
	result.Review = review

	// Step 5: Record the completed session wholesale
	session.Keywords = keywords
	session.TailoredResume = &tailored
	if review != nil {
		score := review.ATSScore
		text := review.Review
		session.ATSScore = &score
		session.Review = &text
	}
	session.Status = models.StatusCompleted
	session.ErrorMessage = nil

	if err := s.sessionRepo.Save(session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	// Step 6: Index the job description for related-session lookups
	s.indexSession(ctx, session)

	log.Printf("✅ Tailoring pipeline completed for session %s\n", session.ID)
	return result, nil
}

func (s *tailorService) extractKeywords(ctx context.Context, jobDescription string) (string, error) {
	prompt := s.promptBuilder.BuildKeywordExtractionPrompt(jobDescription)

	keywords, err := s.geminiService.GenerateText(ctx, prompt, keywordTemperature, keywordMaxTokens)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(keywords), nil
}

func (s *tailorService) tailorResume(ctx context.Context, session *models.TailoringSession, keywords string) (string, error) {
	prompt := s.promptBuilder.BuildTailoringPrompt(
		session.OriginalResume,
		session.JobTitle,
		session.JobDescription,
		keywords,
		session.Style,
	)

	tailored, err := s.geminiService.GenerateText(ctx, prompt, tailorTemperature, tailorMaxTokens)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(tailored), nil
}

func (s *tailorService) reviewResume(ctx context.Context, tailoredResume, jobTitle, jobDescription string) (*models.ReviewData, error) {
	prompt := s.promptBuilder.BuildReviewPrompt(tailoredResume, jobTitle, jobDescription)

	raw, err := s.geminiService.GenerateStructured(ctx, prompt, reviewTemperature, reviewMaxTokens, reviewSchema)
	if err != nil {
		return nil, err
	}

	var payload reviewPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	if payload.ATSScore == nil || payload.Review == nil {
		return nil, fmt.Errorf("%w: missing required field", ErrMalformedJSON)
	}

	return &models.ReviewData{
		ATSScore: clampScore(*payload.ATSScore),
		Review:   *payload.Review,
	}, nil
}

// failSession marks the session failed and saves it. The save error, if
// any, is logged; the pipeline error takes precedence.
func (s *tailorService) failSession(session *models.TailoringSession, message string) {
	session.Status = models.StatusFailed
	session.ErrorMessage = &message

	if err := s.sessionRepo.Save(session); err != nil {
		log.Printf("⚠️  Failed to record session failure: %v\n", err)
	}
}

// indexSession embeds the job description and upserts it into Qdrant.
// Best-effort: indexing failures never affect the submission outcome.
func (s *tailorService) indexSession(ctx context.Context, session *models.TailoringSession) {
	embedding, err := s.geminiService.GenerateEmbedding(ctx, session.JobDescription)
	if err != nil {
		log.Printf("⚠️  Failed to embed job description for session %s: %v\n", session.ID, err)
		return
	}

	if err := s.qdrantService.IndexSession(ctx, session.ID, session.JobTitle, embedding); err != nil {
		log.Printf("⚠️  Failed to index session %s: %v\n", session.ID, err)
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
