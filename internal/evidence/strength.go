package evidence

import (
	"math"
	"strings"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/textutil"
)

// Fixed weight split for the combined strength score.
const (
	weightAuthenticity  = 0.25
	weightRelevance     = 0.30
	weightReliability   = 0.25
	weightAdmissibility = 0.20
)

// scoreStrength fills the four independent factors and their fixed
// combination. Every rule's contribution is a plain additive constant so
// the resulting numbers stay explainable.
func scoreStrength(item *Item) {
	lower := strings.ToLower(item.Content + " " + item.Context)

	item.Strength = StrengthProfile{
		Authenticity:  scoreAuthenticity(lower),
		Relevance:     scoreRelevance(item, lower),
		Reliability:   scoreReliability(item, lower),
		Admissibility: scoreAdmissibility(lower),
	}
	item.Strength.Weight = CombineWeight(item.Strength)
}

// CombineWeight is the fixed linear combination of the four factors,
// clamped to [0,1]. It is the only way Weight is ever produced.
func CombineWeight(p StrengthProfile) float64 {
	w := weightAuthenticity*p.Authenticity +
		weightRelevance*p.Relevance +
		weightReliability*p.Reliability +
		weightAdmissibility*p.Admissibility
	return math.Max(0, math.Min(1, w))
}

// Authenticity: signature and chain-of-custody language.
var authenticityCues = []string{
	"signed", "signature", "executed", "notarized", "certified",
	"original", "sealed", "chain of custody", "authenticated",
}

func scoreAuthenticity(lower string) float64 {
	score := 0.4
	for _, cue := range authenticityCues {
		if textutil.ContainsWord(lower, cue) {
			score += 0.15
		}
	}
	return math.Min(score, 1)
}

// Relevance: legal-term density plus factual specificity.
var legalTerms = []string{
	"breach", "obligation", "liability", "damages", "consideration",
	"warranty", "indemnity", "negligence", "misrepresentation", "term",
	"clause", "default", "remedy",
}

func scoreRelevance(item *Item, lower string) float64 {
	score := 0.3
	for _, term := range legalTerms {
		if textutil.ContainsWord(lower, term) {
			score += 0.1
		}
	}
	if amountPattern.MatchString(item.Content) {
		score += 0.1
	}
	if datePattern.MatchString(item.Content) {
		score += 0.1
	}
	return math.Min(score, 1)
}

// Reliability: source and objectivity cues; hedged language reduces it.
var objectivityCues = []string{"recorded", "dated", "contemporaneous", "official", "registered"}
var hedgeCues = []string{"believed", "possibly", "perhaps", "allegedly", "seemed", "appeared", "might", "unsure"}

func scoreReliability(item *Item, lower string) float64 {
	score := 0.5
	switch item.Category {
	case CategoryDocumentary:
		score += 0.2
	case CategoryDigital:
		score += 0.15
	case CategoryPhysical:
		score += 0.1
	}
	for _, cue := range objectivityCues {
		if textutil.ContainsWord(lower, cue) {
			score += 0.05
		}
	}
	for _, cue := range hedgeCues {
		if textutil.ContainsWord(lower, cue) {
			score -= 0.1
		}
	}
	return math.Max(0, math.Min(score, 1))
}

// Admissibility triage: hearsay markers push the score down unless a
// recognized exception marker is present; privilege markers push it down
// hard; best-evidence cues push it up slightly. Rule-of-thumb only.
var hearsayMarkers = []string{
	"told me", "said that", "heard that", "according to", "informed me",
	"reported that", "claimed that",
}

var hearsayExceptions = []string{
	"business record", "public record", "excited utterance",
	"present sense impression", "dying declaration",
	"statement against interest", "prior testimony", "party admission",
	"in the ordinary course of business",
}

var privilegeMarkers = []string{
	"attorney-client", "legal advice", "without prejudice",
	"privileged", "work product",
}

var bestEvidenceCues = []string{"original document", "original copy", "certified copy"}

func scoreAdmissibility(lower string) float64 {
	score := 0.7

	hearsay := false
	for _, marker := range hearsayMarkers {
		if strings.Contains(lower, marker) {
			hearsay = true
			break
		}
	}
	if hearsay {
		excepted := false
		for _, exception := range hearsayExceptions {
			if strings.Contains(lower, exception) {
				excepted = true
				break
			}
		}
		if excepted {
			score -= 0.1
		} else {
			score -= 0.35
		}
	}

	for _, marker := range privilegeMarkers {
		if strings.Contains(lower, marker) {
			score -= 0.3
			break
		}
	}
	for _, cue := range bestEvidenceCues {
		if strings.Contains(lower, cue) {
			score += 0.1
			break
		}
	}

	return math.Max(0, math.Min(score, 1))
}
