package anonymize

import (
	"context"
	"fmt"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
)

// SpanExtractor identifies candidate entity spans in text. Implementations
// range from built-in regex spotters to remote NER services; the engine makes
// no assumption about how many run or which types they cover.
type SpanExtractor interface {
	Name() string
	Extract(ctx context.Context, text string) ([]model.Span, error)
}

// Registry holds the configured extractors for a run.
type Registry struct {
	extractors []SpanExtractor
}

// NewRegistry creates a registry with the given extractors.
func NewRegistry(extractors ...SpanExtractor) *Registry {
	return &Registry{extractors: extractors}
}

// Register appends an extractor.
func (r *Registry) Register(e SpanExtractor) {
	r.extractors = append(r.extractors, e)
}

// Len returns the number of registered extractors.
func (r *Registry) Len() int {
	return len(r.extractors)
}

// ExtractAll runs every extractor over the text and concatenates their spans,
// stamping each span with its extractor's name as provenance. A failing
// extractor is skipped; its error is collected so callers can log it, because
// partial span coverage is tolerable while a hard stop is not.
func (r *Registry) ExtractAll(ctx context.Context, text string) ([]model.Span, []error) {
	var spans []model.Span
	var errs []error

	for _, e := range r.extractors {
		found, err := e.Extract(ctx, text)
		if err != nil {
			errs = append(errs, fmt.Errorf("extractor %s: %w", e.Name(), err))
			continue
		}
		for i := range found {
			if found[i].Source == "" {
				found[i].Source = e.Name()
			}
		}
		spans = append(spans, found...)
	}

	return spans, errs
}
