package kb

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder returns a fixed vector per known text so distances are
// fully controlled by the test.
type stubEmbedder struct {
	vectors map[string][]float32
}

func (s *stubEmbedder) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	return nil, fmt.Errorf("no stub vector for %q", text)
}

func buildTestIndex() (*Index, *stubEmbedder) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"doc about work":  {1, 0, 0},
		"doc about study": {0, 1, 0},
		"doc about mood":  {0, 0, 1},
	}}
	idx := &Index{
		Texts: []string{"doc about work", "doc about study", "doc about mood"},
		Paths: []string{"kb/work.txt", "kb/study.txt", "kb/mood.txt"},
		Embeddings: [][]float32{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
	}
	return idx, embedder
}

func TestRetrieveExactMatchIsTopWithZeroDistance(t *testing.T) {
	idx, embedder := buildTestIndex()
	r := NewRetriever(idx, embedder, 2)

	results, err := r.Retrieve(context.Background(), "doc about study")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "doc about study", results[0].Text)
	assert.Equal(t, float32(0), results[0].Distance)
}

func TestRetrieveEmptyIndexReturnsNothing(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{}}
	r := NewRetriever(&Index{}, embedder, 2)

	results, err := r.Retrieve(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetrieveRespectsTopK(t *testing.T) {
	idx, embedder := buildTestIndex()
	r := NewRetriever(idx, embedder, 1)

	results, err := r.Retrieve(context.Background(), "doc about work")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSwapIndexReplacesCorpus(t *testing.T) {
	idx, embedder := buildTestIndex()
	r := NewRetriever(&Index{}, embedder, 2)

	results, err := r.Retrieve(context.Background(), "doc about work")
	require.NoError(t, err)
	require.Empty(t, results)

	r.SwapIndex(idx)

	results, err = r.Retrieve(context.Background(), "doc about work")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "doc about work", results[0].Text)
}

func TestStaticContextFallbackTable(t *testing.T) {
	curated := StaticContext("study_anxiety")
	assert.NotEmpty(t, curated)
	assert.NotEqual(t, defaultContext, curated)

	assert.Equal(t, defaultContext, StaticContext("unknown_label"))
}
