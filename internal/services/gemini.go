package services

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Error categories for remote generation calls. Callers surface these as
// user-visible notices; nothing is retried.
var (
	// ErrGenerateFailed covers transport failures: connectivity, timeout,
	// non-success status from the generation API.
	ErrGenerateFailed = errors.New("text generation request failed")
	// ErrUnexpectedResponse covers responses missing the expected content
	// wrapper (no candidates, no text parts).
	ErrUnexpectedResponse = errors.New("unexpected generation response shape")
	// ErrMalformedJSON covers structured responses that did not parse as
	// JSON matching the requested schema.
	ErrMalformedJSON = errors.New("malformed structured response")
)

type GeminiService interface {
	GenerateText(ctx context.Context, prompt string, temperature float32, maxOutputTokens int32) (string, error)
	GenerateStructured(ctx context.Context, prompt string, temperature float32, maxOutputTokens int32, schema *genai.Schema) ([]byte, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

func NewGeminiService(apiKey string) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  "gemini-2.5-flash",
		embedModel: "text-embedding-004",
	}, nil
}

// generationConfig builds the per-call config. Sampling knobs besides
// temperature stay fixed across all three pipeline steps.
func generationConfig(temperature float32, maxOutputTokens int32) *genai.GenerateContentConfig {
	topP := float32(0.95)
	topK := float32(40)

	return &genai.GenerateContentConfig{
		Temperature:     &temperature,
		TopP:            &topP,
		TopK:            &topK,
		MaxOutputTokens: maxOutputTokens,
	}
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32, maxOutputTokens int32) (string, error) {
	config := generationConfig(temperature, maxOutputTokens)

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerateFailed, err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: nil response", ErrUnexpectedResponse)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: no text content in response", ErrUnexpectedResponse)
	}

	return text, nil
}

// GenerateStructured implements GeminiService. It asks the model to emit
// JSON conforming to the supplied schema and returns the raw JSON bytes;
// decoding and required-field validation are the caller's concern.
func (g *geminiService) GenerateStructured(ctx context.Context, prompt string, temperature float32, maxOutputTokens int32, schema *genai.Schema) ([]byte, error) {
	config := generationConfig(temperature, maxOutputTokens)
	config.ResponseMIMEType = "application/json"
	config.ResponseSchema = schema

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateFailed, err)
	}

	if resp == nil {
		return nil, fmt.Errorf("%w: nil response", ErrUnexpectedResponse)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: no text content in response", ErrUnexpectedResponse)
	}

	return []byte(text), nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}
