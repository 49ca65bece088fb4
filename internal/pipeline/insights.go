package pipeline

import (
	"fmt"
	"sort"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/evidence"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/relgraph"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/temporal"
)

// unifiedInsights ranks findings from every lane by confidence and keeps
// the top N.
func unifiedInsights(temp *temporal.Result, rel *relgraph.Result, evid *evidence.Result, cross *CrossAnalysis, topN int) []Insight {
	var insights []Insight

	if evid != nil {
		for _, item := range evid.Items {
			insights = append(insights, Insight{
				Category:    "evidence",
				Description: fmt.Sprintf("%s evidence in %s: %s", item.Category, item.SourceDocument, item.Content),
				Confidence:  item.Strength.Weight,
			})
		}
		for _, net := range evid.Corroboration {
			if net.Circular {
				continue
			}
			insights = append(insights, Insight{
				Category:    "corroboration",
				Description: fmt.Sprintf("fact %q corroborated by %d items", net.Fact, len(net.SupportingEvidence)),
				Confidence:  net.CorroborationStrength,
			})
		}
		for _, gap := range evid.Gaps {
			if gap.Severity != "high" {
				continue
			}
			insights = append(insights, Insight{
				Category:    "evidence_gap",
				Description: gap.Description,
				Confidence:  0.6,
			})
		}
	}

	if temp != nil {
		for _, link := range temp.Links {
			insights = append(insights, Insight{
				Category:    "causation",
				Description: fmt.Sprintf("%s causation from %s to %s", link.CausationType, link.CauseEventID, link.EffectEventID),
				Confidence:  link.Confidence,
			})
		}
		for _, conflict := range temp.Conflicts {
			insights = append(insights, Insight{
				Category:    "timeline_conflict",
				Description: conflict.Reason,
				Confidence:  0.7,
			})
		}
	}

	if rel != nil {
		for _, bridge := range rel.Bridges {
			desc := fmt.Sprintf("entity %s bridges otherwise-separate groups", bridge.NodeID)
			conf := 0.65
			if bridge.TypeDiverse {
				desc += " spanning multiple entity types"
				conf = 0.8
			}
			insights = append(insights, Insight{Category: "relationship", Description: desc, Confidence: conf})
		}
	}

	if cross != nil {
		for _, match := range cross.EntityEvidence {
			if !match.Central {
				continue
			}
			insights = append(insights, Insight{
				Category:    "cross",
				Description: fmt.Sprintf("central entity %s backed by %d evidence items", match.EntityID, len(match.EvidenceIDs)),
				Confidence:  match.AverageWeight,
			})
		}
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Confidence > insights[j].Confidence
	})
	if topN > 0 && len(insights) > topN {
		insights = insights[:topN]
	}
	return insights
}

// enhancedPatterns elevates cross-lane correlations that recur.
func enhancedPatterns(cross *CrossAnalysis) []Pattern {
	if cross == nil {
		return nil
	}
	var patterns []Pattern

	for _, match := range cross.ThemeTimeline {
		if len(match.EventIDs) < 2 || match.WindowStart == nil || match.WindowEnd == nil {
			continue
		}
		days := int(match.WindowEnd.Sub(*match.WindowStart).Hours() / 24)
		if days > 90 {
			continue
		}
		patterns = append(patterns, Pattern{
			Name:        "clustered_theme",
			Description: fmt.Sprintf("theme %q recurs across %d events within %d days", match.Theme, len(match.EventIDs), days),
			Support:     float64(len(match.EventIDs)),
		})
	}

	for _, match := range cross.EntityEvidence {
		if !match.Central || match.AverageWeight < 0.6 {
			continue
		}
		patterns = append(patterns, Pattern{
			Name:        "corroborated_hub",
			Description: fmt.Sprintf("central entity %s carries strong evidence (avg weight %.2f)", match.EntityID, match.AverageWeight),
			Support:     float64(len(match.EvidenceIDs)),
		})
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Support > patterns[j].Support
	})
	return patterns
}

// caseStrength fuses per-lane quality into one assessment. Fallback lanes
// contribute zero, dragging the score down rather than hiding the failure.
func caseStrength(temp *temporal.Result, rel *relgraph.Result, evid *evidence.Result) CaseStrength {
	strength := CaseStrength{
		EvidenceScore:     evidenceScore(evid),
		TimelineScore:     timelineScore(temp),
		RelationshipScore: relationshipScore(rel),
	}
	strength.OverallScore = clampScore(0.4*strength.EvidenceScore + 0.3*strength.TimelineScore + 0.3*strength.RelationshipScore)

	switch {
	case strength.OverallScore >= 0.7:
		strength.Assessment = "strong"
	case strength.OverallScore >= 0.4:
		strength.Assessment = "moderate"
	default:
		strength.Assessment = "weak"
	}
	return strength
}

func evidenceScore(evid *evidence.Result) float64 {
	if evid == nil || evid.Status != StatusOK && evid.Status != StatusCached || len(evid.Items) == 0 {
		return 0
	}
	var sum float64
	for _, item := range evid.Items {
		sum += item.Strength.Weight
	}
	score := sum / float64(len(evid.Items))
	for _, gap := range evid.Gaps {
		if gap.Severity == "high" {
			score -= 0.05
		}
	}
	return clampScore(score)
}

func timelineScore(temp *temporal.Result) float64 {
	if temp == nil || temp.Status != StatusOK && temp.Status != StatusCached || len(temp.Events) == 0 {
		return 0
	}
	var sum float64
	for _, ev := range temp.Events {
		sum += ev.Confidence
	}
	score := sum / float64(len(temp.Events))
	score -= 0.1 * float64(len(temp.Conflicts))
	for _, gap := range temp.Gaps {
		switch gap.Severity {
		case "high":
			score -= 0.1
		case "medium":
			score -= 0.05
		}
	}
	return clampScore(score)
}

func relationshipScore(rel *relgraph.Result) float64 {
	if rel == nil || rel.Status != StatusOK && rel.Status != StatusCached || len(rel.Edges) == 0 {
		return 0
	}
	var sum float64
	for _, edge := range rel.Edges {
		sum += edge.Confidence
	}
	return clampScore(sum / float64(len(rel.Edges)))
}

// privacyGrade maps the worst verification risk of the run onto A..D.
// Anything over the threshold aborts before grading, so D is only
// reachable when the threshold itself was misconfigured upward.
func privacyGrade(maxRisk, threshold float64) string {
	switch {
	case maxRisk == 0:
		return "A"
	case maxRisk <= threshold/2:
		return "B"
	case maxRisk <= threshold:
		return "C"
	default:
		return "D"
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
