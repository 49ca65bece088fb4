package evidence

import "time"

// Evidence categories.
const (
	CategoryDocumentary = "documentary"
	CategoryTestimonial = "testimonial"
	CategoryDigital     = "digital"
	CategoryPhysical    = "physical"
)

// Item is one qualifying evidentiary sentence. Immutable once produced.
type Item struct {
	ID                  string  `json:"id"`
	SourceDocument      string  `json:"source_document"`
	Content             string  `json:"content"`
	Context             string  `json:"context,omitempty"`
	Category            string  `json:"category"`
	Subcategory         string  `json:"subcategory,omitempty"`
	LegalClassification string  `json:"legal_classification,omitempty"`
	PriorityScore       float64 `json:"priority_score"`

	Strength StrengthProfile `json:"strength"`

	date *time.Time // extracted date, for temporal consistency checks
}

// StrengthProfile holds the four independent strength factors and their
// fixed weighted combination. Weight is never independently settable.
type StrengthProfile struct {
	Authenticity  float64 `json:"authenticity"`
	Relevance     float64 `json:"relevance"`
	Reliability   float64 `json:"reliability"`
	Admissibility float64 `json:"admissibility"`
	Weight        float64 `json:"weight"`
}

// CorroborationNetwork groups items that independently assert the same
// normalized fact.
type CorroborationNetwork struct {
	Fact                  string   `json:"fact"`
	SupportingEvidence    []string `json:"supporting_evidence"` // item IDs
	CorroborationStrength float64  `json:"corroboration_strength"`
	IndependenceScore     float64  `json:"independence_score"`
	TemporalConsistency   float64  `json:"temporal_consistency"`
	Circular              bool     `json:"circular,omitempty"`
}

// Gap is a structural weakness in the evidence record. Severity feeds the
// fixed ranking high=3, medium=2, low=1.
type Gap struct {
	Kind        string `json:"kind"` // missing_category, insufficient_corroboration, missing_element, date_range
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// Result is the evidence lane's complete output.
type Result struct {
	Items          []Item                 `json:"items"`
	Corroboration  []CorroborationNetwork `json:"corroboration_networks"`
	Gaps           []Gap                  `json:"gaps"`
	CategoryCounts map[string]int         `json:"category_counts"`
	Status         string                 `json:"processing_status"`
}

var severityRank = map[string]int{"high": 3, "medium": 2, "low": 1}
