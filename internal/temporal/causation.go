package temporal

import (
	"math"
	"strings"
	"time"
)

// causal marker vocabulary by class. Strength reflects how certain the
// causal language itself is, independent of event reliability.
var causalMarkers = map[string]struct {
	words    []string
	strength float64
}{
	"direct":        {words: []string{"because of", "because", "due to", "as a result of", "owing to"}, strength: 0.9},
	"forward":       {words: []string{"led to", "resulted in", "caused", "gave rise to", "triggered"}, strength: 0.85},
	"consequential": {words: []string{"therefore", "consequently", "thus", "accordingly", "hence"}, strength: 0.75},
	"enabling":      {words: []string{"enabled", "allowed", "permitted", "made possible"}, strength: 0.7},
	"temporal":      {words: []string{"after", "following", "subsequent to", "once"}, strength: 0.6},
}

// causationWindowDays limits causal candidates to date-proximate pairs.
const causationWindowDays = 90

// detectCausation walks the ordered event list and links adjacent events
// whose effect-side context contains causal language. Adjacency means either
// date proximity within the window or neighboring narrative positions in the
// same document.
func detectCausation(events []Event) []CausationLink {
	var links []CausationLink

	for i := 0; i+1 < len(events); i++ {
		cause, effect := events[i], events[i+1]
		if !causalCandidates(cause, effect) {
			continue
		}

		class, strength, diversity := strongestMarker(effect.Context)
		if class == "" {
			continue
		}

		// Confidence derives from the underlying events plus marker
		// diversity; a link is never more reliable than its events.
		eventConf := (cause.Confidence + effect.Confidence) / 2
		confidence := math.Min(0.95, eventConf*(0.7+0.1*float64(diversity)))

		links = append(links, CausationLink{
			CauseEventID:  cause.ID,
			EffectEventID: effect.ID,
			CausationType: class,
			Strength:      strength,
			Confidence:    confidence,
		})
	}

	return links
}

// causalCandidates reports whether two ordered events are close enough to
// test for causal language.
func causalCandidates(cause, effect Event) bool {
	if cause.Date != nil && effect.Date != nil {
		days := effect.Date.Sub(*cause.Date) / (24 * time.Hour)
		return days >= 0 && int(days) <= causationWindowDays
	}
	// Undated pairs qualify only through positional adjacency in one
	// document.
	return cause.SourceDocument == effect.SourceDocument
}

// strongestMarker returns the highest-strength marker class found in the
// text, along with how many distinct classes matched.
func strongestMarker(text string) (string, float64, int) {
	lower := strings.ToLower(text)

	best := ""
	bestStrength := 0.0
	diversity := 0
	for class, def := range causalMarkers {
		matched := false
		for _, w := range def.words {
			if containsWord(lower, w) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		diversity++
		if def.strength > bestStrength {
			best = class
			bestStrength = def.strength
		}
	}
	return best, bestStrength, diversity
}
