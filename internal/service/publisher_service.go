package service

import (
	"context"
	"encoding/json"
	"time"

	"luma-chat-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishReindexRequest(ctx context.Context) error
}

// publisherService pushes knowledge-base rebuild requests onto the
// in-process bus; the consumer service picks them up in the background so
// the serving path never blocks on an index rebuild.
type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (ps *publisherService) PublishReindexRequest(ctx context.Context) error {
	payload := dto.ReindexRequestMessage{
		RequestedAt: time.Now(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	return ps.pubSub.Publish(ps.topicName, msg)
}
