package temporal

import (
	"fmt"
	"time"
)

// gapThresholdDays is the minimum silence between consecutive dated events
// worth reporting.
const gapThresholdDays = 30

// detectGaps reports stretches over the threshold between consecutive dated
// events, with severity scaled by duration.
func detectGaps(events []Event) []Gap {
	var gaps []Gap
	var prev *Event

	for i := range events {
		ev := &events[i]
		if ev.Date == nil {
			continue
		}
		if prev != nil {
			days := int(ev.Date.Sub(*prev.Date) / (24 * time.Hour))
			if days > gapThresholdDays {
				gaps = append(gaps, Gap{
					AfterEventID:    prev.ID,
					BeforeEventID:   ev.ID,
					StartDate:       *prev.Date,
					EndDate:         *ev.Date,
					GapDurationDays: days,
					Severity:        gapSeverity(days),
				})
			}
		}
		prev = ev
	}
	return gaps
}

func gapSeverity(days int) string {
	switch {
	case days >= 180:
		return "high"
	case days >= 90:
		return "medium"
	default:
		return "low"
	}
}

// detectConflicts finds events whose declared ordering contradicts their
// dates or each other. Nothing here is resolved; conflicts are surfaced for
// a human reviewer.
func detectConflicts(events []Event) []Conflict {
	var conflicts []Conflict

	// Same-day events from one document with contradictory sequence
	// markers: an "end" marker positioned before a "beginning" marker.
	byDocDay := make(map[string][]*Event)
	for i := range events {
		ev := &events[i]
		if ev.Date == nil || !ev.hasMarker {
			continue
		}
		key := ev.SourceDocument + "|" + ev.Date.Format("2006-01-02")
		byDocDay[key] = append(byDocDay[key], ev)
	}
	for _, group := range byDocDay {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				if b.position < a.position {
					a, b = b, a
				}
				if a.seqWeight > b.seqWeight {
					conflicts = append(conflicts, Conflict{
						EventAID: a.ID,
						EventBID: b.ID,
						Reason:   "same-day events carry contradictory sequence markers",
					})
				}
			}
		}
	}

	// A "then/subsequently" event dated before the latest preceding dated
	// event in the same document contradicts its own narrative claim.
	lastDated := make(map[string]*Event)
	for i := range events {
		ev := &events[i]
		if ev.Date == nil {
			continue
		}
		if prev, ok := lastDated[ev.SourceDocument]; ok && ev.hasMarker && ev.seqWeight >= posMiddle && ev.position > prev.position {
			if ev.Date.Before(*prev.Date) && !sameDay(*ev.Date, *prev.Date) {
				conflicts = append(conflicts, Conflict{
					EventAID: prev.ID,
					EventBID: ev.ID,
					Reason:   "declared sequence contradicts resolved dates",
				})
			}
		}
		if prev, ok := lastDated[ev.SourceDocument]; !ok || ev.position > prev.position {
			lastDated[ev.SourceDocument] = ev
		}
	}

	return conflicts
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// detectInconsistencies flags structural reliability concerns: over-reliance
// on relative resolution and low-confidence events at timeline boundaries.
func detectInconsistencies(events []Event) []Inconsistency {
	var out []Inconsistency
	if len(events) == 0 {
		return out
	}

	relative := 0
	dated := 0
	for _, ev := range events {
		if ev.Date == nil {
			continue
		}
		dated++
		if ev.Type == EventResolvedRelative {
			relative++
		}
	}
	if dated > 0 {
		ratio := float64(relative) / float64(dated)
		if ratio > 0.5 {
			out = append(out, Inconsistency{
				Description: fmt.Sprintf("%.0f%% of dated events rely on relative resolution", ratio*100),
				Severity:    "medium",
			})
		}
	}

	const boundaryConfidence = 0.5
	if first := events[0]; first.Confidence < boundaryConfidence {
		out = append(out, Inconsistency{
			Description: "first timeline event has low confidence",
			Severity:    "medium",
		})
	}
	if last := events[len(events)-1]; len(events) > 1 && last.Confidence < boundaryConfidence {
		out = append(out, Inconsistency{
			Description: "last timeline event has low confidence",
			Severity:    "medium",
		})
	}

	return out
}
