package temporal

import "time"

// EventType classifies how a timeline event's date was obtained.
type EventType string

const (
	EventExplicitDate     EventType = "explicit_date"
	EventResolvedRelative EventType = "resolved_relative"
	EventSequence         EventType = "sequence_event"
)

// Narrative positions inferred from sequence-marker vocabulary.
const (
	posBeginning = 0
	posMiddle    = 1
	posEnd       = 2
)

// Event is one point on the reconstructed timeline. Date is nil for
// sequence events, which carry ordering information only.
type Event struct {
	ID               string     `json:"id"`
	Type             EventType  `json:"type"`
	Date             *time.Time `json:"date,omitempty"`
	Confidence       float64    `json:"confidence"`
	SourceDocument   string     `json:"source_document"`
	RawReference     string     `json:"raw_reference"`
	Context          string     `json:"context"`
	ResolutionMethod string     `json:"resolution_method"`

	position  int // character offset in the source document
	seqWeight int // narrative position from sequence markers
	hasMarker bool
}

// CausationLink is a directed causal edge between two events. Strength is
// the semantic certainty of the causal language; Confidence is the
// reliability of the underlying events. The two axes are independent.
type CausationLink struct {
	CauseEventID  string  `json:"cause_event_id"`
	EffectEventID string  `json:"effect_event_id"`
	CausationType string  `json:"causation_type"`
	Strength      float64 `json:"strength"`
	Confidence    float64 `json:"confidence"`
}

// Gap is a stretch of more than thirty days between consecutive dated
// events.
type Gap struct {
	AfterEventID    string    `json:"after_event_id"`
	BeforeEventID   string    `json:"before_event_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	GapDurationDays int       `json:"gap_duration_days"`
	Severity        string    `json:"severity"`
}

// Conflict records two events whose declared ordering contradicts their
// dates or each other. Conflicts are reported, never silently resolved.
type Conflict struct {
	EventAID string `json:"event_a_id"`
	EventBID string `json:"event_b_id"`
	Reason   string `json:"reason"`
}

// Inconsistency is a structural reliability concern with the timeline as a
// whole.
type Inconsistency struct {
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// Result is the complete temporal reconstruction for one run.
type Result struct {
	Events          []Event         `json:"events"`
	Links           []CausationLink `json:"causation_links"`
	Gaps            []Gap           `json:"gaps"`
	Conflicts       []Conflict      `json:"conflicts"`
	Inconsistencies []Inconsistency `json:"inconsistencies"`
	Status          string          `json:"processing_status"`
}
