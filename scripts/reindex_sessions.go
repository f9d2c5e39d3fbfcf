package main

import (
	"context"
	"log"

	"alfredoptarigan/resume-tailor/internal/config"
	"alfredoptarigan/resume-tailor/internal/repositories"
	"alfredoptarigan/resume-tailor/internal/services"
)

// Backfills the Qdrant session index from completed sessions in Postgres.
// Useful after wiping the vector store or changing the embedding model.
func main() {
	log.Println("🚀 Starting session reindex...")

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	sessionRepo := repositories.NewSessionRepository(db)

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	sessions, err := sessionRepo.FindCompleted(500)
	if err != nil {
		log.Fatalf("❌ Failed to load completed sessions: %v", err)
	}

	log.Printf("📋 Found %d completed sessions\n", len(sessions))

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for _, session := range sessions {
		log.Printf("\n📄 Reindexing session: %s", session.ID)
		log.Printf("   Job title: %s", session.JobTitle)

		embedding, err := geminiService.GenerateEmbedding(ctx, session.JobDescription)
		if err != nil {
			log.Printf("   ❌ Failed to generate embedding: %v", err)
			failCount++
			continue
		}

		if err := qdrantService.IndexSession(ctx, session.ID, session.JobTitle, embedding); err != nil {
			log.Printf("   ❌ Failed to upsert: %v", err)
			failCount++
			continue
		}

		log.Println("   ✅ Indexed")
		successCount++
	}

	log.Printf("\n✅ Reindex finished: %d indexed, %d failed\n", successCount, failCount)
}
