package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-tailor/internal/models"
	"alfredoptarigan/resume-tailor/internal/repositories"
)

// DownloadHandler serves the artifacts of a completed session: the tailored
// resume as plain text and the review as plain text or JSON.
type DownloadHandler struct {
	sessionRepo repositories.SessionRepository
}

func NewDownloadHandler(sessionRepo repositories.SessionRepository) *DownloadHandler {
	return &DownloadHandler{
		sessionRepo: sessionRepo,
	}
}

// HandleDownloadResume handles GET /sessions/:id/download/resume
func (h *DownloadHandler) HandleDownloadResume(c *fiber.Ctx) error {
	session, err := h.findCompletedSession(c)
	if err != nil {
		return err
	}

	if session.TailoredResume == nil {
		return fiber.NewError(fiber.StatusNotFound, "No tailored resume available for this session")
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="tailored_resume.txt"`)
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.SendString(*session.TailoredResume)
}

// HandleDownloadReview handles GET /sessions/:id/download/review
func (h *DownloadHandler) HandleDownloadReview(c *fiber.Ctx) error {
	session, err := h.findCompletedSession(c)
	if err != nil {
		return err
	}

	if !session.HasReview() {
		return fiber.NewError(fiber.StatusNotFound, "No review was generated for this session")
	}

	summary := fmt.Sprintf("ATS Compatibility Score: %d/100\n\nReview:\n%s\n",
		*session.ATSScore, *session.Review)

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resume_review.txt"`)
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.SendString(summary)
}

// HandleDownloadReviewJSON handles GET /sessions/:id/download/review.json
func (h *DownloadHandler) HandleDownloadReviewJSON(c *fiber.Ctx) error {
	session, err := h.findCompletedSession(c)
	if err != nil {
		return err
	}

	if !session.HasReview() {
		return fiber.NewError(fiber.StatusNotFound, "No review was generated for this session")
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resume_review.json"`)
	return c.JSON(models.ReviewData{
		ATSScore: *session.ATSScore,
		Review:   *session.Review,
	})
}

func (h *DownloadHandler) findCompletedSession(c *fiber.Ctx) (*models.TailoringSession, error) {
	idParam := c.Params("id")
	sessionID, err := uuid.Parse(idParam)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session ID format")
	}

	session, err := h.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	if session.Status != models.StatusCompleted {
		return nil, fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("Session is %s; artifacts are only available for completed sessions", session.Status))
	}

	return session, nil
}
