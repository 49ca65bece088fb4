// Package pipeline orchestrates the analysis lanes over a set of case
// documents: anonymize everything first, run the lanes, cross-correlate,
// and fuse the results into one case report. The report is the sole
// contract with rendering collaborators and never contains
// pre-anonymization text.
package pipeline

import (
	"time"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/evidence"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/relgraph"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/semantic"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/temporal"
)

// Lane status values carried in the final report.
const (
	StatusOK       = "ok"
	StatusFallback = "fallback"
	StatusSkipped  = "skipped"
	StatusCached   = "cached"
)

// Insight is one ranked unified finding.
type Insight struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// Pattern is a cross-lane correlation elevated above a single finding.
type Pattern struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Support     float64 `json:"support"`
}

// CaseStrength is the fused assessment of the case across lanes.
type CaseStrength struct {
	OverallScore      float64 `json:"overall_score"`
	EvidenceScore     float64 `json:"evidence_score"`
	TimelineScore     float64 `json:"timeline_score"`
	RelationshipScore float64 `json:"relationship_score"`
	Assessment        string  `json:"assessment"` // strong, moderate, weak
}

// DetailedResults bundles the per-lane outputs.
type DetailedResults struct {
	Temporal      *temporal.Result `json:"temporal"`
	Relationship  *relgraph.Result `json:"relationship"`
	Evidence      *evidence.Result `json:"evidence"`
	Semantic      *semantic.Result `json:"semantic,omitempty"`
	CrossAnalysis *CrossAnalysis   `json:"cross_analysis"`
}

// PrivacyProtection summarizes the anonymization boundary for the run.
// Only aggregate counts and scores appear here; never original values.
type PrivacyProtection struct {
	AnonymizationSummary map[string]int `json:"anonymization_summary"` // entity type -> count
	PrivacyGrade         string         `json:"privacy_grade"`         // A..D
	EntitiesProcessed    int            `json:"entities_processed"`
	MaxRiskScore         float64        `json:"max_risk_score"`
}

// ExcludedDocument records a per-document input rejection.
type ExcludedDocument struct {
	DocumentID string `json:"document_id"`
	Reason     string `json:"reason"`
}

// ProcessingSummary describes how the run itself went.
type ProcessingSummary struct {
	DocumentsAnalyzed int                `json:"documents_analyzed"`
	DocumentsExcluded []ExcludedDocument `json:"documents_excluded,omitempty"`
	LaneStatus        map[string]string  `json:"lane_status"`
	CacheHits         int                `json:"cache_hits"`
	Duration          time.Duration      `json:"duration"`
	CompletedAt       time.Time          `json:"completed_at"`
}

// CaseReport is the unified output of one analysis run.
type CaseReport struct {
	CaseContext       string            `json:"case_context,omitempty"`
	UnifiedInsights   []Insight         `json:"unified_insights"`
	EnhancedPatterns  []Pattern         `json:"enhanced_patterns"`
	CaseStrength      CaseStrength      `json:"case_strength"`
	DetailedResults   DetailedResults   `json:"detailed_results"`
	PrivacyProtection PrivacyProtection `json:"privacy_protection"`
	ProcessingSummary ProcessingSummary `json:"processing_summary"`
}

// Fallback results are structurally valid but empty, so consumers can
// distinguish "no findings" from "this lane failed".

func fallbackTemporal() *temporal.Result {
	return &temporal.Result{Status: StatusFallback}
}

func fallbackRelationship() *relgraph.Result {
	return &relgraph.Result{Status: StatusFallback}
}

func fallbackEvidence() *evidence.Result {
	return &evidence.Result{CategoryCounts: map[string]int{}, Status: StatusFallback}
}

func fallbackSemantic(status string) *semantic.Result {
	return &semantic.Result{Status: status}
}
