package anonymize

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
)

// Engine rewrites document text so that no detected entity value survives,
// then verifies its own output leaked nothing. Verification over threshold is
// a hard failure: downstream lanes assume zero leakage.
type Engine struct {
	registry      *Registry
	riskThreshold float64
	logger        *slog.Logger
}

// Result is the outcome of anonymizing one document.
type Result struct {
	Document     model.AnonymizedDocument
	Verification VerificationReport
	SpanCount    int
}

// NewEngine creates an anonymization engine. A nil registry means no
// extractors; the engine then only anonymizes caller-supplied spans.
func NewEngine(registry *Registry, riskThreshold float64, logger *slog.Logger) *Engine {
	if registry == nil {
		registry = NewRegistry()
	}
	if riskThreshold <= 0 || riskThreshold > 1 {
		riskThreshold = 0.01
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		registry:      registry,
		riskThreshold: riskThreshold,
		logger:        logger,
	}
}

// AnonymizeDocument runs the registered extractors over the document, merges
// their spans with any caller-supplied ones, rewrites the text against the
// session mapping, and verifies the output. Returns a VerificationError when
// the risk score exceeds the engine threshold.
func (e *Engine) AnonymizeDocument(ctx context.Context, doc model.Document, extra []model.Span, session *Session) (*Result, error) {
	spans, errs := e.registry.ExtractAll(ctx, doc.Content)
	for _, err := range errs {
		e.logger.Warn("span extractor failed", "document", doc.ID, "error", err)
	}
	spans = append(spans, extra...)

	merged := MergeSpans(spans)
	anonymized, entities := e.rewrite(doc.Content, merged, session)

	report := e.verify(ctx, doc.ID, anonymized, session)
	if report.RiskScore > e.riskThreshold {
		findings := make([]string, len(report.Findings))
		for i, f := range report.Findings {
			findings[i] = f.Check + ": " + f.Detail
		}
		return nil, &model.VerificationError{
			DocumentID: doc.ID,
			RiskScore:  report.RiskScore,
			Threshold:  e.riskThreshold,
			Findings:   findings,
		}
	}

	return &Result{
		Document: model.AnonymizedDocument{
			ID:               doc.ID,
			Content:          anonymized,
			EntitiesDetected: entities,
			Timestamp:        time.Now().UTC(),
			CreationDate:     doc.CreationDate,
		},
		Verification: report,
		SpanCount:    len(merged),
	}, nil
}

// MergeSpans deduplicates overlapping spans from independent extractors.
// When two spans overlap the higher-confidence one wins; on a tie the span
// seen first is kept. The result is sorted by start offset.
func MergeSpans(spans []model.Span) []model.Span {
	if len(spans) == 0 {
		return nil
	}

	// Stable sort preserves first-seen order among equal-confidence overlaps.
	ordered := make([]model.Span, len(spans))
	copy(ordered, spans)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Confidence > ordered[j].Confidence
	})

	var kept []model.Span
	for _, candidate := range ordered {
		if candidate.Text == "" || isPlaceholder(candidate.Text) || containsPlaceholder(candidate.Text) {
			continue
		}
		overlaps := false
		for _, existing := range kept {
			if candidate.Overlaps(existing) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, candidate)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	return kept
}

// rewrite replaces spans in reverse position order so earlier offsets remain
// valid, and collects the per-placeholder entity summary.
func (e *Engine) rewrite(text string, spans []model.Span, session *Session) (string, []model.Entity) {
	type entityAgg struct {
		entityType  string
		confidence  float64
		occurrences int
	}
	agg := make(map[string]*entityAgg)

	out := text
	for i := len(spans) - 1; i >= 0; i-- {
		span := spans[i]
		if span.Start < 0 || span.End > len(out) {
			continue
		}
		token := session.TokenFor(span.Type, span.Text)
		if token == "" {
			continue
		}
		out = out[:span.Start] + token + out[span.End:]

		if a, ok := agg[token]; ok {
			a.occurrences++
			if span.Confidence > a.confidence {
				a.confidence = span.Confidence
			}
		} else {
			agg[token] = &entityAgg{entityType: span.Type, confidence: span.Confidence, occurrences: 1}
		}
	}

	entities := make([]model.Entity, 0, len(agg))
	for token, a := range agg {
		entities = append(entities, model.Entity{
			Placeholder: token,
			Type:        a.entityType,
			Confidence:  a.confidence,
			Occurrences: a.occurrences,
		})
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i].Placeholder < entities[j].Placeholder })
	return out, entities
}
