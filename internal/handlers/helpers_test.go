package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"alfredoptarigan/resume-tailor/internal/models"
	"alfredoptarigan/resume-tailor/internal/services"
)

type fakeDocRepo struct {
	created   []*models.Document
	createErr error
}

func (f *fakeDocRepo) Create(document *models.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, document)
	return nil
}

func (f *fakeDocRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	return nil, errors.New("document not found")
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*models.TailoringSession
	created  []*models.TailoringSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*models.TailoringSession)}
}

func (f *fakeSessionRepo) Create(session *models.TailoringSession) error {
	f.created = append(f.created, session)
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) Save(session *models.TailoringSession) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) FindByID(id uuid.UUID) (*models.TailoringSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session not found")
	}
	return session, nil
}

func (f *fakeSessionRepo) FindCompleted(limit int) ([]models.TailoringSession, error) {
	return nil, nil
}

type fakeTailorService struct {
	result      *services.PipelineResult
	err         error
	lastSession *models.TailoringSession
}

func (f *fakeTailorService) Run(ctx context.Context, session *models.TailoringSession) (*services.PipelineResult, error) {
	f.lastSession = session
	if f.err != nil {
		return nil, f.err
	}
	session.Status = models.StatusCompleted
	return f.result, nil
}

type fakeRunner struct {
	busy bool
}

func (f *fakeRunner) Run(fn func() error) error {
	if f.busy {
		return services.ErrBusy
	}
	return fn()
}

type fakeGemini struct {
	embedding []float32
	embedErr  error
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string, temperature float32, maxOutputTokens int32) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeGemini) GenerateStructured(ctx context.Context, prompt string, temperature float32, maxOutputTokens int32, schema *genai.Schema) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return f.embedding, f.embedErr
}

type fakeQdrant struct {
	related   []services.RelatedSession
	searchErr error
}

func (f *fakeQdrant) InitCollection() error { return nil }

func (f *fakeQdrant) IndexSession(ctx context.Context, sessionID uuid.UUID, jobTitle string, embedding []float32) error {
	return nil
}

func (f *fakeQdrant) FindRelated(ctx context.Context, queryEmbedding []float32, limit int) ([]services.RelatedSession, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.related, nil
}

// multipartRequest builds a multipart/form-data POST with text fields and an
// optional file part.
func multipartRequest(url string, fields map[string]string, fileField, fileName string, fileContent []byte) (*http.Request, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, err
		}
	}

	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(fileContent); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return req, nil
}
