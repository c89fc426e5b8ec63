package service

import (
	"context"
	"strings"

	"luma-chat-be/internal/dto"
	"luma-chat-be/internal/pkg/logger"
	"luma-chat-be/internal/repository/memory"
	"luma-chat-be/pkg/events"
	"luma-chat-be/pkg/kb"
	"luma-chat-be/pkg/llm"
	natspub "luma-chat-be/pkg/nats"
	"luma-chat-be/pkg/nlu"
	"luma-chat-be/pkg/rag/prompt"

	"github.com/google/uuid"
)

// IChatService defines the chat orchestration interface
type IChatService interface {
	Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
}

// chatService runs one conversation turn end to end: session resolution,
// NLU, retrieval, prompt assembly, generation, history append.
type chatService struct {
	llmProvider llm.LLMProvider
	classifier  *nlu.Classifier
	retriever   *kb.Retriever
	sessionRepo *memory.SessionRepository
	publisher   *natspub.Publisher
	log         logger.ILogger
}

func NewChatService(
	llmProvider llm.LLMProvider,
	classifier *nlu.Classifier,
	retriever *kb.Retriever,
	sessionRepo *memory.SessionRepository,
	publisher *natspub.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		llmProvider: llmProvider,
		classifier:  classifier,
		retriever:   retriever,
		sessionRepo: sessionRepo,
		publisher:   publisher,
		log:         log,
	}
}

func (cs *chatService) Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	// 1. Resolve session. Anonymous callers get a fresh id instead of a
	// shared bucket; the id is echoed back so the client can continue.
	sessionId := request.SessionId
	if sessionId == "" {
		sessionId = uuid.NewString()
		cs.log.Info("chat", "No session_id provided, generated a new one", map[string]interface{}{
			"session_id": sessionId,
		})
	}

	history := cs.sessionRepo.History(sessionId)

	// 2. NLU. Classifier failure never reaches the caller.
	intent, emotion := cs.analyze(ctx, request.Message)

	// 3. Retrieval, with the static table as the safety net.
	retrieved := cs.retrieve(ctx, request.Message, intent)

	cs.log.Info("chat", "Retrieved context for intent", map[string]interface{}{
		"session_id": sessionId,
		"intent":     intent,
		"context":    retrieved,
	})

	// 4. Generation. Failures propagate untouched so the controller can
	// map llm.ErrUnavailable to a 503; history must stay as it was.
	messages := prompt.NewBuilder(request.Message, intent, retrieved, history).Build()
	reply, err := cs.llmProvider.Chat(ctx, messages)
	if err != nil {
		cs.log.Error("chat", "Generation call failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return nil, err
	}

	// 5. Persist the two new turns only after a successful generation.
	cs.sessionRepo.AppendTurns(sessionId, request.Message, reply)

	cs.publishTurnCompleted(ctx, sessionId, intent, emotion)

	return &dto.ChatResponse{
		Response:         reply,
		DetectedIntent:   intent,
		RetrievedContext: retrieved,
		SessionId:        sessionId,
	}, nil
}

// analyze asks the hosted classifier first and falls back to the keyword
// resolver on any failure.
func (cs *chatService) analyze(ctx context.Context, message string) (intent string, emotion string) {
	if cs.classifier != nil {
		analysis, err := cs.classifier.Analyze(ctx, message)
		if err == nil {
			return analysis.Intent, analysis.Emotion
		}
		cs.log.Warn("nlu", "Classifier unavailable, using keyword fallback", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return nlu.FallbackIntent(message), ""
}

// retrieve runs the vector search and joins the top documents. An empty or
// failed retrieval falls back to the curated intent table.
func (cs *chatService) retrieve(ctx context.Context, message string, intent string) string {
	results, err := cs.retriever.Retrieve(ctx, message)
	if err != nil {
		cs.log.Warn("retriever", "Vector retrieval failed, using static context", map[string]interface{}{
			"error": err.Error(),
		})
		return kb.StaticContext(intent)
	}
	if len(results) == 0 {
		return kb.StaticContext(intent)
	}

	texts := make([]string, len(results))
	for i, res := range results {
		texts[i] = res.Text
	}
	return strings.Join(texts, "\n\n")
}

func (cs *chatService) publishTurnCompleted(ctx context.Context, sessionId, intent, emotion string) {
	if cs.publisher == nil {
		return
	}
	event := events.NewChatTurnCompleted(sessionId, intent, emotion)
	if err := cs.publisher.Publish(ctx, event); err != nil {
		cs.log.Warn("events", "Failed to publish chat turn event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
