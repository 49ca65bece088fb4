package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/evidence"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/relgraph"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/semantic"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/temporal"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/textutil"
)

// ThemeTimelineMatch aligns one semantic theme with the timeline events
// whose context mentions it. The window spans the dated matches.
type ThemeTimelineMatch struct {
	Theme       string     `json:"theme"`
	EventIDs    []string   `json:"event_ids"`
	WindowStart *time.Time `json:"window_start,omitempty"`
	WindowEnd   *time.Time `json:"window_end,omitempty"`
}

// EntityEvidenceMatch aligns one graph entity with the evidence items that
// reference its placeholder.
type EntityEvidenceMatch struct {
	EntityID      string   `json:"entity_id"`
	EvidenceIDs   []string `json:"evidence_ids"`
	AverageWeight float64  `json:"average_weight"`
	Central       bool     `json:"central"`
}

// CrossAnalysis is the correlation layer between lanes.
type CrossAnalysis struct {
	ThemeTimeline  []ThemeTimelineMatch  `json:"theme_timeline"`
	EntityEvidence []EntityEvidenceMatch `json:"entity_evidence"`
}

// crossCorrelate consumes the typed lane results. Lanes that fell back
// contribute nothing; the correlation layer never fails.
func crossCorrelate(sem *semantic.Result, temp *temporal.Result, rel *relgraph.Result, evid *evidence.Result) *CrossAnalysis {
	cross := &CrossAnalysis{}
	if sem != nil && sem.Status == StatusOK && temp != nil {
		cross.ThemeTimeline = matchThemesToTimeline(sem.Themes, temp.Events)
	}
	if rel != nil && evid != nil {
		cross.EntityEvidence = matchEntitiesToEvidence(rel, evid.Items)
	}
	return cross
}

func matchThemesToTimeline(themes []semantic.Theme, events []temporal.Event) []ThemeTimelineMatch {
	var matches []ThemeTimelineMatch
	for _, theme := range themes {
		var ids []string
		var start, end *time.Time
		for _, ev := range events {
			if !textutil.ContainsWord(strings.ToLower(ev.Context), theme.Keyword) {
				continue
			}
			ids = append(ids, ev.ID)
			if ev.Date == nil {
				continue
			}
			if start == nil || ev.Date.Before(*start) {
				d := *ev.Date
				start = &d
			}
			if end == nil || ev.Date.After(*end) {
				d := *ev.Date
				end = &d
			}
		}
		if len(ids) == 0 {
			continue
		}
		matches = append(matches, ThemeTimelineMatch{
			Theme:       theme.Keyword,
			EventIDs:    ids,
			WindowStart: start,
			WindowEnd:   end,
		})
	}
	return matches
}

func matchEntitiesToEvidence(rel *relgraph.Result, items []evidence.Item) []EntityEvidenceMatch {
	central := make(map[string]bool)
	for i, node := range rel.Central {
		if i >= 5 {
			break
		}
		central[node.NodeID] = true
	}

	var matches []EntityEvidenceMatch
	for _, node := range rel.Nodes {
		var ids []string
		var weightSum float64
		for _, item := range items {
			if !strings.Contains(item.Content, node.ID) {
				continue
			}
			ids = append(ids, item.ID)
			weightSum += item.Strength.Weight
		}
		if len(ids) == 0 {
			continue
		}
		matches = append(matches, EntityEvidenceMatch{
			EntityID:      node.ID,
			EvidenceIDs:   ids,
			AverageWeight: weightSum / float64(len(ids)),
			Central:       central[node.ID],
		})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].AverageWeight != matches[j].AverageWeight {
			return matches[i].AverageWeight > matches[j].AverageWeight
		}
		return matches[i].EntityID < matches[j].EntityID
	})
	return matches
}
