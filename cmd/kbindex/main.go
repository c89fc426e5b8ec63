package main

import (
	"context"
	"log"

	"luma-chat-be/internal/config"
	"luma-chat-be/pkg/embedding"
	"luma-chat-be/pkg/kb"
)

// Offline knowledge-base index builder. The serving path never rebuilds the
// artifact itself; run this after editing the KB folder, or hit
// POST /api/v1/kb/reindex on a running instance.
func main() {
	cfg := config.Load()

	var provider embedding.Provider
	switch cfg.Ai.EmbeddingProvider {
	case "gemini":
		provider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
	case "huggingface":
		provider = embedding.NewHuggingFaceProvider(cfg.Ai.HuggingFaceKey, "")
	default:
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	}

	log.Printf("Building knowledge-base index from %s ...", cfg.Kb.Folder)

	index, err := kb.BuildIndex(context.Background(), cfg.Kb.Folder, provider)
	if err != nil {
		log.Fatalf("Index build failed: %v", err)
	}
	if index.Len() == 0 {
		log.Printf("No KB documents found in %s, writing an empty index", cfg.Kb.Folder)
	}

	if err := index.Save(cfg.Kb.IndexPath); err != nil {
		log.Fatalf("Failed to save index: %v", err)
	}

	log.Printf("KB index built: %d documents -> %s", index.Len(), cfg.Kb.IndexPath)
}
