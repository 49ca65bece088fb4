package anonymize

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// VerificationReport is the outcome of re-scanning anonymized output for
// leaked data. Each failed check adds a penalty to the risk score; any
// non-zero score above the engine threshold blocks release of the document.
type VerificationReport struct {
	DocumentID string                `json:"document_id"`
	RiskScore  float64               `json:"risk_score"`
	Findings   []VerificationFinding `json:"findings,omitempty"`
	Checks     []string              `json:"checks"`
}

// VerificationFinding records one detected problem. Detail never contains
// the leaked value itself, only its shape, so the report stays exportable.
type VerificationFinding struct {
	Check   string  `json:"check"`
	Detail  string  `json:"detail"`
	Penalty float64 `json:"penalty"`
}

// Penalties per check class. Literal leakage is catastrophic; residual
// detections and leftover shapes are strong signals on their own since the
// default threshold is 0.01.
const (
	penaltyLiteralLeak   = 1.0
	penaltyResidualSpan  = 0.2
	penaltySuspectShape  = 0.05
)

var (
	nameShapePattern  = regexp.MustCompile(`\b[A-Z][a-z]{2,}\s+[A-Z][a-z]{2,}\b`)
	phoneShapePattern = regexp.MustCompile(`\b\d{3,5}[-.\s]\d{3,4}[-.\s]\d{3,4}\b`)
	emailShapePattern = regexp.MustCompile(`\b[\w.+\-]+@[\w\-]+\.\w{2,}\b`)
	tokenPattern      = regexp.MustCompile(`<[A-Z_]+_\d+>`)
)

// verify re-scans anonymized output three ways: literal substring search over
// every original value in the session mapping, a re-run of all extractors,
// and shape patterns for anything the extractors missed.
func (e *Engine) verify(ctx context.Context, docID, anonymized string, session *Session) VerificationReport {
	report := VerificationReport{
		DocumentID: docID,
		Checks:     []string{"literal_leakage", "residual_detection", "suspect_shapes"},
	}

	// (a) No original value may survive as a substring.
	for _, literal := range session.Literals() {
		if literal == "" {
			continue
		}
		if strings.Contains(anonymized, literal) {
			report.Findings = append(report.Findings, VerificationFinding{
				Check:   "literal_leakage",
				Detail:  fmt.Sprintf("mapped value of length %d present in output", len(literal)),
				Penalty: penaltyLiteralLeak,
			})
			report.RiskScore += penaltyLiteralLeak
		}
	}

	// (b) Re-running the extractors must find nothing new.
	residual, _ := e.registry.ExtractAll(ctx, anonymized)
	for _, span := range residual {
		if isPlaceholder(span.Text) || containsPlaceholder(span.Text) {
			continue
		}
		report.Findings = append(report.Findings, VerificationFinding{
			Check:   "residual_detection",
			Detail:  fmt.Sprintf("%s still detects a %s span", span.Source, span.Type),
			Penalty: penaltyResidualSpan * span.Confidence,
		})
		report.RiskScore += penaltyResidualSpan * span.Confidence
	}

	// (c) Leftover suspicious shapes not caught above.
	stripped := tokenPattern.ReplaceAllString(anonymized, " ")
	for shape, pattern := range map[string]*regexp.Regexp{
		"name":  nameShapePattern,
		"phone": phoneShapePattern,
		"email": emailShapePattern,
	} {
		if n := len(pattern.FindAllString(stripped, -1)); n > 0 {
			report.Findings = append(report.Findings, VerificationFinding{
				Check:   "suspect_shapes",
				Detail:  fmt.Sprintf("%d %s-shaped fragment(s) remain", n, shape),
				Penalty: penaltySuspectShape * float64(n),
			})
			report.RiskScore += penaltySuspectShape * float64(n)
		}
	}

	return report
}
