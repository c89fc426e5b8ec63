package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"luma-chat-be/internal/config"
	"luma-chat-be/pkg/kb"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEmbedder counts invocations and optionally fails every call.
type countingEmbedder struct {
	calls atomic.Int64
	err   error
}

func (e *countingEmbedder) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	e.calls.Add(1)
	if e.err != nil {
		return nil, e.err
	}
	return []float32{1, 0, 0}, nil
}

func newConsumerFixture(t *testing.T, embedder *countingEmbedder) (*gochannel.GoChannel, *kb.Retriever, config.KBConfig) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.txt"), []byte("breathing exercise"), 0644))

	kbCfg := config.KBConfig{
		Folder:    dir,
		IndexPath: filepath.Join(dir, "kb_index.json"),
		TopK:      2,
	}
	retriever := kb.NewRetriever(&kb.Index{}, embedder, kbCfg.TopK)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	svc := NewConsumerService(pubSub, "KB_REINDEX", kbCfg, embedder, retriever, nopLogger{})
	require.NoError(t, svc.Consume(context.Background()))

	return pubSub, retriever, kbCfg
}

func TestConsumerRebuildsAndSwapsIndex(t *testing.T) {
	embedder := &countingEmbedder{}
	pubSub, retriever, kbCfg := newConsumerFixture(t, embedder)

	publisher := NewPublisherService("KB_REINDEX", pubSub)
	require.NoError(t, publisher.PublishReindexRequest(context.Background()))

	require.Eventually(t, func() bool {
		results, err := retriever.Retrieve(context.Background(), "breathing")
		return err == nil && len(results) == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, err := os.Stat(kbCfg.IndexPath)
	assert.NoError(t, err, "rebuild should persist the index artifact")
}

func TestConsumerDropsFailedRebuild(t *testing.T) {
	embedder := &countingEmbedder{err: errors.New("embedding backend down")}
	pubSub, retriever, _ := newConsumerFixture(t, embedder)

	publisher := NewPublisherService("KB_REINDEX", pubSub)
	require.NoError(t, publisher.PublishReindexRequest(context.Background()))

	// One document in the folder means a single rebuild attempt embeds once.
	// The message must be dropped after failure, not redelivered in a loop.
	require.Eventually(t, func() bool {
		return embedder.calls.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)

	assert.Equal(t, int64(1), embedder.calls.Load(), "failed rebuild should be attempted exactly once")

	// The live index is untouched by the failed rebuild.
	results, err := retriever.Retrieve(context.Background(), "breathing")
	require.NoError(t, err)
	assert.Empty(t, results)
}
