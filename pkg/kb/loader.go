package kb

import (
	"os"
	"path/filepath"
	"strings"
)

// Document is one knowledge-base entry: a short advisory text and the file
// it was loaded from.
type Document struct {
	Text string `json:"text"`
	Path string `json:"path"`
}

// LoadDocuments reads every .txt file in the folder, one document per file.
// Empty files are skipped. A missing folder yields an empty corpus, not an
// error; the retriever degrades to its static fallback in that case.
func LoadDocuments(folder string) ([]Document, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		path := filepath.Join(folder, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		text := strings.TrimSpace(string(content))
		if text == "" {
			continue
		}
		docs = append(docs, Document{Text: text, Path: path})
	}
	return docs, nil
}
