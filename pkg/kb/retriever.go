package kb

import (
	"context"
	"sort"
	"sync"

	"luma-chat-be/pkg/embedding"
)

// Retriever answers queries with a brute-force L2 scan over the index.
// Linear search is deliberate: the corpus is a handful of short documents,
// so an ANN structure would buy nothing.
type Retriever struct {
	mu       sync.RWMutex
	index    *Index
	provider embedding.Provider
	topK     int
}

func NewRetriever(index *Index, provider embedding.Provider, topK int) *Retriever {
	if topK <= 0 {
		topK = 2
	}
	return &Retriever{
		index:    index,
		provider: provider,
		topK:     topK,
	}
}

// SwapIndex atomically replaces the index after an offline rebuild.
func (r *Retriever) SwapIndex(index *Index) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index = index
}

// Result is one retrieved document with its L2 distance to the query.
type Result struct {
	Text     string
	Path     string
	Distance float32
}

// Retrieve embeds the query and returns the topK closest documents.
// An empty index returns no results and no error.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]Result, error) {
	r.mu.RLock()
	index := r.index
	r.mu.RUnlock()

	if index == nil || index.Len() == 0 {
		return nil, nil
	}

	queryVec, err := r.provider.Generate(ctx, query, embedding.TaskQuery)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, index.Len())
	for i, docVec := range index.Embeddings {
		results = append(results, Result{
			Text:     index.Texts[i],
			Path:     index.Paths[i],
			Distance: l2Distance(queryVec, docVec),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if len(results) > r.topK {
		results = results[:r.topK]
	}
	return results, nil
}

// l2Distance returns the squared L2 distance; ordering is identical and
// the sqrt is wasted work for ranking.
func l2Distance(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
