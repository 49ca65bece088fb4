package model

// Span is a typed, confidence-scored substring identified by an extractor
// as a candidate entity. Spans are never persisted after anonymization.
type Span struct {
	Text       string  `json:"text"`
	Type       string  `json:"type"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source,omitempty"` // extractor provenance only
}

// Entity type labels shared between extractors and the anonymizer.
const (
	EntityPerson       = "person"
	EntityOrganization = "organization"
	EntityEmail        = "email"
	EntityPhone        = "phone"
	EntityAmount       = "amount"
	EntityDate         = "date"
	EntityLocation     = "location"
	EntityCaseRef      = "case_ref"
)

// Overlaps reports whether two spans cover intersecting character ranges.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Len returns the covered character count.
func (s Span) Len() int {
	return s.End - s.Start
}
