package evidence

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/textutil"
)

// evidenceDateGapDays is the largest tolerable silence between dated
// evidence items.
const evidenceDateGapDays = 90

// expectedElements are the factual building blocks a contract dispute
// record is expected to evidence.
var expectedElements = map[string][]string{
	"contract_formation": {"signed", "agreement", "contract", "executed"},
	"payment_terms":      {"payment", "paid", "invoice", "price", "fee"},
	"performance":        {"delivered", "performed", "completed", "supplied"},
	"breach_notice":      {"breach", "notice", "notified", "default"},
	"damages":            {"damages", "loss", "losses", "costs"},
}

// enumerateGaps reports structural weaknesses: absent categories,
// single-source facts, missing expected elements, and long date-range gaps.
func enumerateGaps(items []Item, networks []CorroborationNetwork) []Gap {
	var gaps []Gap

	present := make(map[string]bool)
	for _, item := range items {
		present[item.Category] = true
	}
	for _, category := range []string{CategoryDocumentary, CategoryTestimonial, CategoryDigital, CategoryPhysical} {
		if !present[category] {
			severity := "low"
			if category == CategoryDocumentary {
				severity = "high"
			} else if category == CategoryTestimonial {
				severity = "medium"
			}
			gaps = append(gaps, Gap{
				Kind:        "missing_category",
				Description: fmt.Sprintf("no %s evidence in the record", category),
				Severity:    severity,
			})
		}
	}

	for _, network := range networks {
		if network.Circular {
			gaps = append(gaps, Gap{
				Kind:        "insufficient_corroboration",
				Description: fmt.Sprintf("fact %q is supported only by a single source", network.Fact),
				Severity:    "medium",
			})
		}
	}

	all := strings.ToLower(joinContents(items))
	for element, cues := range expectedElements {
		found := false
		for _, cue := range cues {
			if textutil.ContainsWord(all, cue) {
				found = true
				break
			}
		}
		if !found {
			gaps = append(gaps, Gap{
				Kind:        "missing_element",
				Description: fmt.Sprintf("no evidence of %s", strings.ReplaceAll(element, "_", " ")),
				Severity:    "high",
			})
		}
	}

	gaps = append(gaps, dateRangeGaps(items)...)

	// Fixed severity ranking drives the report order.
	sort.SliceStable(gaps, func(i, j int) bool {
		return severityRank[gaps[i].Severity] > severityRank[gaps[j].Severity]
	})
	return gaps
}

func joinContents(items []Item) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(item.Content)
		b.WriteByte(' ')
	}
	return b.String()
}

func dateRangeGaps(items []Item) []Gap {
	var dates []time.Time
	for _, item := range items {
		if item.date != nil {
			dates = append(dates, *item.date)
		}
	}
	if len(dates) < 2 {
		return nil
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var gaps []Gap
	for i := 1; i < len(dates); i++ {
		days := int(dates[i].Sub(dates[i-1]).Hours() / 24)
		if days <= evidenceDateGapDays {
			continue
		}
		severity := "medium"
		if days >= 180 {
			severity = "high"
		}
		gaps = append(gaps, Gap{
			Kind: "date_range",
			Description: fmt.Sprintf("no dated evidence between %s and %s (%d days)",
				dates[i-1].Format("2006-01-02"), dates[i].Format("2006-01-02"), days),
			Severity: severity,
		})
	}
	return gaps
}
