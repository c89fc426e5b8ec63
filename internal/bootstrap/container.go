package bootstrap

import (
	"log"

	"luma-chat-be/internal/config"
	"luma-chat-be/internal/controller"
	"luma-chat-be/internal/pkg/logger"
	"luma-chat-be/internal/repository/memory"
	"luma-chat-be/internal/service"
	"luma-chat-be/pkg/embedding"
	"luma-chat-be/pkg/kb"
	"luma-chat-be/pkg/llm/factory"
	pktNats "luma-chat-be/pkg/nats"
	"luma-chat-be/pkg/nlu"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const reindexTopic = "KB_REINDEX"

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.Provider
	switch cfg.Ai.EmbeddingProvider {
	case "gemini":
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	case "huggingface":
		embeddingProvider = embedding.NewHuggingFaceProvider(cfg.Ai.HuggingFaceKey, "")
		log.Printf("[INFO] Using Embedding Provider: HUGGINGFACE")
	default:
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	}

	llmProvider, err := factory.NewLLMProvider(cfg)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s", cfg.Ai.LLMProvider)

	classifier := nlu.NewClassifier(cfg.Ai.HuggingFaceKey, cfg.Ai.IntentModel, cfg.Ai.EmotionModel)

	// 4. Knowledge base. A missing artifact is fine: retrieval degrades to
	// the static context table until an offline build runs.
	index, err := kb.LoadIndex(cfg.Kb.IndexPath)
	if err != nil {
		log.Printf("[WARN] Failed to load KB index: %v. Starting with an empty index", err)
		index = &kb.Index{}
	}
	retriever := kb.NewRetriever(index, embeddingProvider, cfg.Kb.TopK)
	log.Printf("[INFO] KB index loaded with %d documents", index.Len())

	// 5. Session storage
	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.MaxTurns)

	// 6. NATS analytics publisher (best-effort, optional)
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// 7. Services
	publisherService := service.NewPublisherService(reindexTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		reindexTopic,
		cfg.Kb,
		embeddingProvider,
		retriever,
		sysLogger,
	)
	chatService := service.NewChatService(
		llmProvider,
		classifier,
		retriever,
		sessionRepo,
		natsPub,
		sysLogger,
	)

	return &Container{
		ChatController:  controller.NewChatController(chatService, publisherService),
		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
