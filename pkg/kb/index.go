package kb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"luma-chat-be/pkg/embedding"
)

// Index pairs each knowledge-base document with its embedding vector.
// It is immutable after build; a rebuild replaces it wholesale.
type Index struct {
	Texts      []string    `json:"texts"`
	Paths      []string    `json:"paths"`
	Embeddings [][]float32 `json:"embeddings"`
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	return len(idx.Texts)
}

// BuildIndex loads the corpus from folder and embeds every document.
func BuildIndex(ctx context.Context, folder string, provider embedding.Provider) (*Index, error) {
	docs, err := LoadDocuments(folder)
	if err != nil {
		return nil, fmt.Errorf("load kb documents: %w", err)
	}

	idx := &Index{}
	for _, doc := range docs {
		vec, err := provider.Generate(ctx, doc.Text, embedding.TaskDocument)
		if err != nil {
			return nil, fmt.Errorf("embed %s: %w", doc.Path, err)
		}
		idx.Texts = append(idx.Texts, doc.Text)
		idx.Paths = append(idx.Paths, doc.Path)
		idx.Embeddings = append(idx.Embeddings, vec)
	}
	return idx, nil
}

// Save persists the index as a JSON artifact.
func (idx *Index) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.Marshal(idx)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadIndex reads a previously built artifact. A missing file returns an
// empty index so the caller can serve with the static fallback until an
// offline rebuild runs.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Index{}, nil
		}
		return nil, err
	}
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse kb index %s: %w", path, err)
	}
	return &idx, nil
}
