// Package semantic is the best-effort fourth analysis lane: theme
// extraction by keyword frequency and pairwise document similarity. Its
// results enrich cross-analysis but nothing downstream depends on it.
package semantic

import (
	"context"
	"sort"
	"strings"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/textutil"
)

// Theme is a recurring keyword across the document set.
type Theme struct {
	Keyword   string   `json:"keyword"`
	Frequency int      `json:"frequency"`
	Documents []string `json:"documents"`
}

// Similarity is the token-overlap score between one document pair.
type Similarity struct {
	DocA  string  `json:"doc_a"`
	DocB  string  `json:"doc_b"`
	Score float64 `json:"score"`
}

// Result is the semantic lane's output.
type Result struct {
	Themes       []Theme      `json:"themes"`
	Similarities []Similarity `json:"similarities"`
	Status       string       `json:"processing_status"`
}

// maxThemes caps the theme list at the most frequent keywords.
const maxThemes = 15

// Engine computes themes and similarities over anonymized documents.
type Engine struct{}

// NewEngine creates a semantic analysis engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Analyze tokenizes every document, surfaces the most frequent non-entity
// keywords as themes, and scores every document pair's token overlap.
func (e *Engine) Analyze(ctx context.Context, docs []model.AnonymizedDocument) (*Result, error) {
	tokens := make(map[string][]string, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tokens[doc.ID] = textutil.Tokenize(doc.Content)
	}

	result := &Result{
		Themes:       themes(docs, tokens),
		Similarities: similarities(docs, tokens),
		Status:       "ok",
	}
	return result, nil
}

func themes(docs []model.AnonymizedDocument, tokens map[string][]string) []Theme {
	freq := make(map[string]int)
	inDocs := make(map[string]map[string]bool)

	for _, doc := range docs {
		for _, tok := range tokens[doc.ID] {
			// Placeholder tokens are entity references, not themes.
			if strings.HasPrefix(tok, "<") {
				continue
			}
			freq[tok]++
			if inDocs[tok] == nil {
				inDocs[tok] = make(map[string]bool)
			}
			inDocs[tok][doc.ID] = true
		}
	}

	var out []Theme
	for keyword, count := range freq {
		if count < 2 {
			continue
		}
		docIDs := make([]string, 0, len(inDocs[keyword]))
		for id := range inDocs[keyword] {
			docIDs = append(docIDs, id)
		}
		sort.Strings(docIDs)
		out = append(out, Theme{Keyword: keyword, Frequency: count, Documents: docIDs})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Keyword < out[j].Keyword
	})
	if len(out) > maxThemes {
		out = out[:maxThemes]
	}
	return out
}

func similarities(docs []model.AnonymizedDocument, tokens map[string][]string) []Similarity {
	var out []Similarity
	for i := range docs {
		for j := i + 1; j < len(docs); j++ {
			score := textutil.Jaccard(tokens[docs[i].ID], tokens[docs[j].ID])
			if score == 0 {
				continue
			}
			out = append(out, Similarity{DocA: docs[i].ID, DocB: docs[j].ID, Score: score})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
