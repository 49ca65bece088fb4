package evidence

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/textutil"
)

// Fact key extraction: each key is a normalized assertion dimension shared
// across documents. Amounts drop separators so "$10,000" and "$10000" meet.
var (
	factAmountPattern = regexp.MustCompile(`[$£€]\s?\d[\d,]*(?:\.\d{2})?`)
	factActionWords   = []string{"paid", "signed", "delivered", "terminated", "breached", "transferred", "agreed", "notified"}
)

// factKeys derives the normalized fact keys asserted by one item.
func factKeys(item Item) []string {
	var keys []string

	for _, raw := range factAmountPattern.FindAllString(item.Content, -1) {
		normalized := strings.NewReplacer(",", "", " ", "").Replace(raw)
		keys = append(keys, "amount:"+normalized)
	}

	if item.date != nil {
		keys = append(keys, "date:"+item.date.Format("2006-01-02"))
	}

	for _, token := range textutil.Placeholders(item.Content) {
		if strings.HasPrefix(token, "<PERSON_") {
			keys = append(keys, "person:"+token)
		}
		if strings.HasPrefix(token, "<ORGANIZATION_") {
			keys = append(keys, "org:"+token)
		}
	}

	lower := strings.ToLower(item.Content)
	for _, action := range factActionWords {
		if textutil.ContainsWord(lower, action) {
			keys = append(keys, "action:"+action)
		}
	}

	return keys
}

// buildCorroboration groups items asserting the same fact key into
// networks, scoring strength by volume and diversity, independence by
// source spread, and temporal consistency by date agreement.
func buildCorroboration(items []Item) []CorroborationNetwork {
	byFact := make(map[string][]*Item)
	for i := range items {
		for _, key := range factKeys(items[i]) {
			byFact[key] = append(byFact[key], &items[i])
		}
	}

	var networks []CorroborationNetwork
	for fact, supporters := range byFact {
		if len(supporters) < 2 {
			continue
		}

		ids := make([]string, len(supporters))
		sources := make(map[string]bool)
		categories := make(map[string]bool)
		for i, item := range supporters {
			ids[i] = item.ID
			sources[item.SourceDocument] = true
			categories[item.Category] = true
		}
		sort.Strings(ids)

		independence := float64(len(sources)) / float64(len(supporters))
		circular := len(sources) == 1

		volume := math.Min(float64(len(supporters))/4.0, 1.0)
		diversity := math.Min(float64(len(categories))/3.0, 1.0)
		strength := 0.4*volume + 0.3*diversity + 0.3*independence

		networks = append(networks, CorroborationNetwork{
			Fact:                  fact,
			SupportingEvidence:    ids,
			CorroborationStrength: strength,
			IndependenceScore:     independence,
			TemporalConsistency:   temporalConsistency(supporters),
			Circular:              circular,
		})
	}

	sort.Slice(networks, func(i, j int) bool {
		if networks[i].CorroborationStrength != networks[j].CorroborationStrength {
			return networks[i].CorroborationStrength > networks[j].CorroborationStrength
		}
		return networks[i].Fact < networks[j].Fact
	})
	return networks
}

// temporalConsistency scores how tightly the dated supporters cluster.
// Undated supporters neither help nor hurt.
func temporalConsistency(supporters []*Item) float64 {
	var dates []time.Time
	for _, item := range supporters {
		if item.date != nil {
			dates = append(dates, *item.date)
		}
	}
	if len(dates) < 2 {
		return 1
	}

	minDate, maxDate := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}
	spreadDays := maxDate.Sub(minDate).Hours() / 24
	return math.Max(0, 1-spreadDays/90)
}
