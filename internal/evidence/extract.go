package evidence

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/textutil"
)

// minEvidentiaryScore gates which sentences become evidence items.
const minEvidentiaryScore = 0.6

// factual assertion markers: verbs that state something happened.
var factualMarkers = []string{
	"signed", "paid", "agreed", "delivered", "received", "sent",
	"stated", "confirmed", "transferred", "invoiced", "executed",
	"terminated", "breached", "notified", "refused", "failed",
	"witnessed", "testified", "acknowledged", "admitted",
}

var (
	amountPattern = regexp.MustCompile(`[$£€]\s?\d[\d,]*(?:\.\d{2})?`)
	datePattern   = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b|\b\d{1,2}/\d{1,2}/\d{4}\b|\b\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}\b`)
)

// extractItems scores every sentence of a document and keeps those above
// the evidentiary threshold.
func extractItems(doc model.AnonymizedDocument) []Item {
	var items []Item
	seq := 0

	sentences := textutil.SplitSentences(doc.Content)
	for i, sentence := range sentences {
		score := evidentiaryScore(sentence.Text)
		if score <= minEvidentiaryScore {
			continue
		}

		seq++
		item := Item{
			ID:             fmt.Sprintf("%s-ev-%d", doc.ID, seq),
			SourceDocument: doc.ID,
			Content:        sentence.Text,
			Context:        surrounding(sentences, i),
			PriorityScore:  score,
			date:           sentenceDate(sentence.Text),
		}
		items = append(items, item)
	}
	return items
}

// evidentiaryScore combines factual-assertion markers, entity density, and
// date/amount specificity into a heuristic [0,1] score.
func evidentiaryScore(sentence string) float64 {
	lower := strings.ToLower(sentence)

	factual := 0.0
	for _, marker := range factualMarkers {
		if textutil.ContainsWord(lower, marker) {
			factual += 0.25
		}
	}
	factual = math.Min(factual, 0.5)

	entities := float64(len(textutil.Placeholders(sentence)))
	entityDensity := math.Min(entities*0.15, 0.3)

	specificity := 0.0
	if amountPattern.MatchString(sentence) {
		specificity += 0.15
	}
	if datePattern.MatchString(sentence) {
		specificity += 0.15
	}

	return math.Min(factual+entityDensity+specificity, 1)
}

// surrounding returns the neighboring sentences as context.
func surrounding(sentences []textutil.Sentence, i int) string {
	var parts []string
	if i > 0 {
		parts = append(parts, sentences[i-1].Text)
	}
	if i+1 < len(sentences) {
		parts = append(parts, sentences[i+1].Text)
	}
	return strings.Join(parts, " ")
}

// sentenceDate extracts the first parseable date from the sentence.
func sentenceDate(sentence string) *time.Time {
	raw := datePattern.FindString(sentence)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", "2/1/2006", "1/2/2006", "2 January 2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
