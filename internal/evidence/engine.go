// Package evidence extracts evidentiary sentences from anonymized case
// documents, classifies and strength-scores them, groups corroborating
// assertions, and enumerates the structural gaps in the record.
//
// All scores here are heuristic, rule-derived floats meant for triage and
// explanation. They are not probabilities and make no legal determination.
package evidence

import (
	"context"
	"log/slog"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
)

// Engine runs the evidence analysis lane.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates an evidence analysis engine.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Analyze runs the full pipeline: extract, classify, score, corroborate,
// enumerate gaps.
func (e *Engine) Analyze(ctx context.Context, docs []model.AnonymizedDocument) (*Result, error) {
	var items []Item
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items = append(items, extractItems(doc)...)
	}

	counts := make(map[string]int)
	for i := range items {
		classify(&items[i])
		scoreStrength(&items[i])
		counts[items[i].Category]++
	}

	networks := buildCorroboration(items)
	gaps := enumerateGaps(items, networks)

	e.logger.Debug("evidence analysis complete",
		"items", len(items),
		"networks", len(networks),
		"gaps", len(gaps))

	return &Result{
		Items:          items,
		Corroboration:  networks,
		Gaps:           gaps,
		CategoryCounts: counts,
		Status:         "ok",
	}, nil
}
