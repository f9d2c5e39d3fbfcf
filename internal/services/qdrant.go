package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

type QdrantService interface {
	InitCollection() error
	IndexSession(ctx context.Context, sessionID uuid.UUID, jobTitle string, embedding []float32) error
	FindRelated(ctx context.Context, queryEmbedding []float32, limit int) ([]RelatedSession, error)
}

// RelatedSession is a prior completed session whose job description is
// similar to the query.
type RelatedSession struct {
	SessionID string  `json:"session_id"`
	JobTitle  string  `json:"job_title"`
	Score     float32 `json:"score"`
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantService(urlStr, apiKey, collectionName string) (QdrantService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements QdrantService.
func (q *qdrantService) InitCollection() error {
	ctx := context.Background()

	// Check if collection exists
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	// Create collection
	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// IndexSession implements QdrantService. The point ID is the session ID, so
// re-indexing the same session overwrites its point.
func (q *qdrantService) IndexSession(ctx context.Context, sessionID uuid.UUID, jobTitle string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(sessionID.String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"session_id": sessionID.String(),
			"job_title":  jobTitle,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// FindRelated implements QdrantService.
func (q *qdrantService) FindRelated(ctx context.Context, queryEmbedding []float32, limit int) ([]RelatedSession, error) {
	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []RelatedSession
	for _, point := range searchResult {
		related := RelatedSession{
			Score: point.Score,
		}

		if payload := point.Payload; payload != nil {
			if v, ok := payload["session_id"]; ok {
				related.SessionID = v.GetStringValue()
			}
			if v, ok := payload["job_title"]; ok {
				related.JobTitle = v.GetStringValue()
			}
		}

		results = append(results, related)
	}

	return results, nil
}
