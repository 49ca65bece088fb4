package anonymize

import (
	"context"
	"regexp"
	"strings"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
)

// RegexExtractor is a built-in pattern-based span spotter. These exist so the
// pipeline works without any remote NER collaborator and so verification has
// a second opinion to re-scan anonymized output with.
type RegexExtractor struct {
	name       string
	entityType string
	patterns   []*regexp.Regexp
	confidence float64
}

// Name returns the extractor's provenance name.
func (e *RegexExtractor) Name() string { return e.name }

// Extract returns one span per non-overlapping pattern match.
func (e *RegexExtractor) Extract(_ context.Context, text string) ([]model.Span, error) {
	var spans []model.Span
	for _, pattern := range e.patterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			spans = append(spans, model.Span{
				Text:       text[loc[0]:loc[1]],
				Type:       e.entityType,
				Start:      loc[0],
				End:        loc[1],
				Confidence: e.confidence,
				Source:     e.name,
			})
		}
	}
	return spans, nil
}

var honorifics = `(?:Mr|Mrs|Ms|Dr|Prof|Judge|Justice)\.?\s+`

// NewPersonExtractor spots capitalized name pairs, with or without an
// honorific. Deliberately does not match placeholder tokens, which are
// all-caps with underscores.
func NewPersonExtractor() *RegexExtractor {
	return &RegexExtractor{
		name:       "builtin-person",
		entityType: model.EntityPerson,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(honorifics + `[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?`),
			regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`),
		},
		confidence: 0.6,
	}
}

// NewEmailExtractor spots email addresses.
func NewEmailExtractor() *RegexExtractor {
	return &RegexExtractor{
		name:       "builtin-email",
		entityType: model.EntityEmail,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}\b`),
		},
		confidence: 0.95,
	}
}

// NewPhoneExtractor spots common UK/US phone shapes.
func NewPhoneExtractor() *RegexExtractor {
	return &RegexExtractor{
		name:       "builtin-phone",
		entityType: model.EntityPhone,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\+?\d{1,3}[\s\-]?\(?\d{2,4}\)?[\s\-]?\d{3,4}[\s\-]?\d{3,4}\b`),
			regexp.MustCompile(`\b0\d{3,4}[\s\-]?\d{5,7}\b`),
		},
		confidence: 0.8,
	}
}

// NewAmountExtractor spots monetary amounts with currency symbols or codes.
func NewAmountExtractor() *RegexExtractor {
	return &RegexExtractor{
		name:       "builtin-amount",
		entityType: model.EntityAmount,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`[$£€]\s?\d[\d,]*(?:\.\d{2})?`),
			regexp.MustCompile(`\b\d[\d,]*(?:\.\d{2})?\s?(?:GBP|USD|EUR)\b`),
		},
		confidence: 0.9,
	}
}

// NewDateExtractor spots explicit date formats (ISO, slashed, textual).
func NewDateExtractor() *RegexExtractor {
	return &RegexExtractor{
		name:       "builtin-date",
		entityType: model.EntityDate,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
			regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
			regexp.MustCompile(`\b\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}\b`),
			regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`),
		},
		confidence: 0.85,
	}
}

// NewOrgExtractor spots organization names by corporate suffix.
func NewOrgExtractor() *RegexExtractor {
	return &RegexExtractor{
		name:       "builtin-org",
		entityType: model.EntityOrganization,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[A-Z][A-Za-z0-9&\-]*(?:\s+[A-Z][A-Za-z0-9&\-]*)*\s+(?:Ltd|Limited|LLC|LLP|Inc|Corp|Corporation|PLC|plc|GmbH)\.?\b`),
		},
		confidence: 0.75,
	}
}

// NewCaseRefExtractor spots court case reference numbers.
func NewCaseRefExtractor() *RegexExtractor {
	return &RegexExtractor{
		name:       "builtin-caseref",
		entityType: model.EntityCaseRef,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(?:Case|Claim)\s+(?:No\.?|Number)\s*[A-Z0-9\-/]+\b`),
			regexp.MustCompile(`\[\d{4}\]\s+[A-Z]+\s+\d+`),
		},
		confidence: 0.85,
	}
}

// BuiltinExtractors returns the full built-in extractor set in registration
// order. Order matters only for overlap ties, where the first-seen span wins.
func BuiltinExtractors() []SpanExtractor {
	return []SpanExtractor{
		NewEmailExtractor(),
		NewPhoneExtractor(),
		NewAmountExtractor(),
		NewDateExtractor(),
		NewCaseRefExtractor(),
		NewOrgExtractor(),
		NewPersonExtractor(),
	}
}

// isPlaceholder reports whether text looks like an already-assigned
// placeholder token, e.g. "<PERSON_1>".
func isPlaceholder(text string) bool {
	return placeholderPattern.MatchString(text)
}

var placeholderPattern = regexp.MustCompile(`^<[A-Z_]+_\d+>$`)

// containsPlaceholder reports whether a span's text intersects a placeholder
// token. Extractors that match fragments of placeholders (the person spotter
// can match "PERSON" look-alikes in odd inputs) must not re-anonymize them.
func containsPlaceholder(text string) bool {
	return strings.ContainsRune(text, '<') || strings.ContainsRune(text, '>')
}
