package kb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKBFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestBuildIndexFromFolder(t *testing.T) {
	dir := t.TempDir()
	writeKBFile(t, dir, "work.txt", "grounding technique for work stress")
	writeKBFile(t, dir, "study.txt", "pomodoro technique for studying")
	writeKBFile(t, dir, "empty.txt", "   ")
	writeKBFile(t, dir, "notes.md", "not a kb document")

	embedder := &stubEmbedder{vectors: map[string][]float32{
		"grounding technique for work stress": {1, 0},
		"pomodoro technique for studying":     {0, 1},
	}}

	idx, err := BuildIndex(context.Background(), dir, embedder)
	require.NoError(t, err)
	require.Equal(t, 2, idx.Len(), "empty and non-txt files should be skipped")
	assert.Len(t, idx.Embeddings, 2)
	assert.Len(t, idx.Paths, 2)
}

func TestBuildIndexMissingFolder(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{}}
	idx, err := BuildIndex(context.Background(), filepath.Join(t.TempDir(), "nope"), embedder)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
}

func TestSaveAndLoadIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts", "kb_index.json")

	idx := &Index{
		Texts:      []string{"doc"},
		Paths:      []string{"kb/doc.txt"},
		Embeddings: [][]float32{{0.5, 0.5}},
	}
	require.NoError(t, idx.Save(path))

	loaded, err := LoadIndex(path)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
	assert.Equal(t, "doc", loaded.Texts[0])
}

func TestLoadIndexMissingArtifact(t *testing.T) {
	loaded, err := LoadIndex(filepath.Join(t.TempDir(), "kb_index.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len(), "missing artifact should load as empty index")
}
