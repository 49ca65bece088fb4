package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
)

// LoadDocuments reads every .txt file in dir into a Document. The file
// name (without extension) becomes the document ID and the modification
// time becomes the creation date used to anchor relative date resolution.
func LoadDocuments(dir string) ([]model.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read document dir: %w", err)
	}

	var docs []model.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read document %s: %w", entry.Name(), err)
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat document %s: %w", entry.Name(), err)
		}
		docs = append(docs, model.Document{
			ID:           strings.TrimSuffix(entry.Name(), ".txt"),
			Content:      string(content),
			CreationDate: info.ModTime().UTC(),
		})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	if len(docs) == 0 {
		return nil, fmt.Errorf("no .txt documents in %s", dir)
	}
	return docs, nil
}
