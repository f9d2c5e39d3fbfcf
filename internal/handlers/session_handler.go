package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-tailor/internal/models"
	"alfredoptarigan/resume-tailor/internal/repositories"
	"alfredoptarigan/resume-tailor/internal/services"
)

type SessionHandler struct {
	sessionRepo   repositories.SessionRepository
	geminiService services.GeminiService
	qdrantService services.QdrantService
}

func NewSessionHandler(
	sessionRepo repositories.SessionRepository,
	geminiService services.GeminiService,
	qdrantService services.QdrantService,
) *SessionHandler {
	return &SessionHandler{
		sessionRepo:   sessionRepo,
		geminiService: geminiService,
		qdrantService: qdrantService,
	}
}

// HandleGetSession handles GET /sessions/:id
func (h *SessionHandler) HandleGetSession(c *fiber.Ctx) error {
	session, err := h.findSession(c)
	if err != nil {
		return err
	}

	response := models.SessionResponse{
		ID:        session.ID.String(),
		Status:    string(session.Status),
		JobTitle:  session.JobTitle,
		Style:     string(session.Style),
		CreatedAt: session.CreatedAt,
	}

	if session.Status == models.StatusCompleted {
		response.Keywords = session.Keywords
		response.TailoredResume = session.TailoredResume
		if session.HasReview() {
			response.Review = &models.ReviewData{
				ATSScore: *session.ATSScore,
				Review:   *session.Review,
			}
		}
	}

	if session.Status == models.StatusFailed {
		response.ErrorMessage = session.ErrorMessage
	}

	return c.JSON(response)
}

// HandleGetRelated handles GET /sessions/:id/related. It embeds the
// session's job description and looks up prior sessions with similar job
// descriptions.
func (h *SessionHandler) HandleGetRelated(c *fiber.Ctx) error {
	session, err := h.findSession(c)
	if err != nil {
		return err
	}

	embedding, err := h.geminiService.GenerateEmbedding(c.UserContext(), session.JobDescription)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Failed to embed job description")
	}

	// Fetch one extra so the session itself can be dropped from its own
	// results
	found, err := h.qdrantService.FindRelated(c.UserContext(), embedding, 6)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Failed to search related sessions")
	}

	related := []services.RelatedSession{}
	for _, r := range found {
		if r.SessionID == session.ID.String() {
			continue
		}
		related = append(related, r)
		if len(related) == 5 {
			break
		}
	}

	return c.JSON(fiber.Map{
		"id":      session.ID.String(),
		"related": related,
	})
}

func (h *SessionHandler) findSession(c *fiber.Ctx) (*models.TailoringSession, error) {
	idParam := c.Params("id")
	sessionID, err := uuid.Parse(idParam)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session ID format")
	}

	session, err := h.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	return session, nil
}
