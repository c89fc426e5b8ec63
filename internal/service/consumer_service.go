package service

import (
	"context"
	"encoding/json"

	"luma-chat-be/internal/config"
	"luma-chat-be/internal/dto"
	"luma-chat-be/internal/pkg/logger"
	"luma-chat-be/pkg/embedding"
	"luma-chat-be/pkg/kb"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService rebuilds the knowledge-base index on request. The rebuild
// is whole-corpus: load every document, embed, persist the artifact, then
// swap the retriever over to the new index in one step.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	kbCfg             config.KBConfig
	embeddingProvider embedding.Provider
	retriever         *kb.Retriever
	log               logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	kbCfg config.KBConfig,
	embeddingProvider embedding.Provider,
	retriever *kb.Retriever,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		kbCfg:             kbCfg,
		embeddingProvider: embeddingProvider,
		retriever:         retriever,
		log:               log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ReindexRequestMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "Failed to unmarshal reindex message", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack invalid messages to prevent infinite retry
		msg.Ack()
		return
	}

	cs.log.Info("consumer", "Rebuilding knowledge-base index", map[string]interface{}{
		"folder": cs.kbCfg.Folder,
	})

	index, err := kb.BuildIndex(ctx, cs.kbCfg.Folder, cs.embeddingProvider)
	if err != nil {
		cs.log.Error("consumer", "Index rebuild failed", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack: gochannel redelivers nacked messages in a tight loop. A failed
		// rebuild is dropped; the live index stays as-is until the next request.
		msg.Ack()
		return
	}

	if err := index.Save(cs.kbCfg.IndexPath); err != nil {
		cs.log.Error("consumer", "Failed to persist index artifact", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	cs.retriever.SwapIndex(index)
	cs.log.Info("consumer", "Knowledge-base index rebuilt", map[string]interface{}{
		"documents": index.Len(),
	})
	msg.Ack()
}
