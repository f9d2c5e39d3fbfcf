package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-tailor/internal/models"
	"alfredoptarigan/resume-tailor/internal/repositories"
	"alfredoptarigan/resume-tailor/internal/services"
)

type TailorHandler struct {
	docRepo       repositories.DocumentRepository
	sessionRepo   repositories.SessionRepository
	storage       services.StorageService
	pdfParser     services.PDFParserService
	tailorService services.TailorService
	runner        services.Runner
	maxFileSize   int64
}

func NewTailorHandler(
	docRepo repositories.DocumentRepository,
	sessionRepo repositories.SessionRepository,
	storage services.StorageService,
	pdfParser services.PDFParserService,
	tailorService services.TailorService,
	runner services.Runner,
	maxFileSize int64,
) *TailorHandler {
	return &TailorHandler{
		docRepo:       docRepo,
		sessionRepo:   sessionRepo,
		storage:       storage,
		pdfParser:     pdfParser,
		tailorService: tailorService,
		runner:        runner,
		maxFileSize:   maxFileSize,
	}
}

// HandleTailor handles POST /tailor. The whole pipeline runs synchronously
// within the request; the response carries the completed result.
func (h *TailorHandler) HandleTailor(c *fiber.Ctx) error {
	jobTitle := strings.TrimSpace(c.FormValue("job_title"))
	jobDescription := strings.TrimSpace(c.FormValue("job_description"))
	style := models.ParseStyle(c.FormValue("style"))

	// Input errors are rejected before any remote call is attempted
	if jobTitle == "" {
		return fiber.NewError(fiber.StatusBadRequest, "job_title is required")
	}

	if jobDescription == "" {
		return fiber.NewError(fiber.StatusBadRequest, "job_description is required")
	}

	resumeText, resumeDocID, err := h.resolveResume(c)
	if err != nil {
		return err
	}

	session := &models.TailoringSession{
		ID:               uuid.New(),
		JobTitle:         jobTitle,
		JobDescription:   jobDescription,
		Style:            style,
		ResumeDocumentID: resumeDocID,
		OriginalResume:   resumeText,
		Status:           models.StatusProcessing,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.sessionRepo.Create(session); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create tailoring session")
	}

	// One submission at a time; the pipeline is strictly sequential
	var result *services.PipelineResult
	err = h.runner.Run(func() error {
		var runErr error
		result, runErr = h.tailorService.Run(c.UserContext(), session)
		return runErr
	})

	if errors.Is(err, services.ErrBusy) {
		return fiber.NewError(fiber.StatusConflict, "Another submission is still being processed. Please wait for it to finish.")
	}

	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":      "Failed to tailor resume. Please try again.",
			"session_id": session.ID.String(),
		})
	}

	response := models.TailorResponse{
		ID:             session.ID.String(),
		Status:         string(session.Status),
		Keywords:       result.Keywords,
		TailoredResume: result.TailoredResume,
		Diff:           result.Diff,
		DiffHTML:       result.DiffHTML,
		Review:         result.Review,
		Notices:        result.Notices,
	}

	return c.JSON(response)
}

// resolveResume extracts the resume text from either an uploaded file or
// the resume_text form field. A non-nil error is a *fiber.Error rendered by
// the app error handler; nil means resumeText is usable (possibly empty,
// e.g. an image-only PDF scan).
func (h *TailorHandler) resolveResume(c *fiber.Ctx) (string, *uuid.UUID, error) {
	file, err := c.FormFile("resume")
	if err != nil {
		// No file uploaded; fall back to raw text
		resumeText := c.FormValue("resume_text")
		if strings.TrimSpace(resumeText) == "" {
			return "", nil, fiber.NewError(fiber.StatusBadRequest,
				"Please upload your resume as a TXT or PDF file, or provide resume_text.")
		}
		return resumeText, nil, nil
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".txt" && ext != ".pdf" {
		return "", nil, fiber.NewError(fiber.StatusBadRequest,
			"Unsupported file type. Please upload a TXT or PDF file.")
	}

	if file.Size > h.maxFileSize {
		return "", nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize))
	}

	filename, filePath, err := h.storage.SaveFile(file, "resume")
	if err != nil {
		return "", nil, fiber.NewError(fiber.StatusInternalServerError,
			fmt.Sprintf("failed to save resume file: %v", err))
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FileType:         strings.TrimPrefix(ext, "."),
		FilePath:         filePath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storage.DeleteFile(filename)
		return "", nil, fiber.NewError(fiber.StatusInternalServerError,
			"failed to save resume document record")
	}

	resumeText, err := h.extractText(filePath, ext)
	if err != nil {
		return "", nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("An error occurred while processing the file: %v", err))
	}

	return resumeText, &doc.ID, nil
}

// extractText reads the uploaded file as plain text. An image-only PDF
// legitimately yields empty text; that is ordinary empty input, not an
// error.
func (h *TailorHandler) extractText(filePath, ext string) (string, error) {
	if ext == ".txt" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return string(data), nil
	}

	return h.pdfParser.ExtractText(filePath)
}
