package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-tailor/internal/models"
)

type SessionRepository interface {
	Create(session *models.TailoringSession) error
	// Save replaces the stored record wholesale. Pipeline steps never
	// update individual columns; the finished session is written in one go.
	Save(session *models.TailoringSession) error
	FindByID(id uuid.UUID) (*models.TailoringSession, error)
	FindCompleted(limit int) ([]models.TailoringSession, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create implements SessionRepository.
func (r *sessionRepository) Create(session *models.TailoringSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Save implements SessionRepository.
func (r *sessionRepository) Save(session *models.TailoringSession) error {
	if err := r.db.Save(session).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// FindByID implements SessionRepository.
func (r *sessionRepository) FindByID(id uuid.UUID) (*models.TailoringSession, error) {
	var session models.TailoringSession
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

// FindCompleted implements SessionRepository.
func (r *sessionRepository) FindCompleted(limit int) ([]models.TailoringSession, error) {
	var sessions []models.TailoringSession
	err := r.db.
		Where("status = ?", models.StatusCompleted).
		Order("created_at DESC").
		Limit(limit).
		Find(&sessions).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find completed sessions: %w", err)
	}

	return sessions, nil
}
