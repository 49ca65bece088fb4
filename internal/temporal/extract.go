package temporal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/textutil"
)

// datePattern pairs a regex with parse layouts and a confidence. Patterns
// are tried ISO-first; confidence reflects how unambiguous the format is.
type datePattern struct {
	re         *regexp.Regexp
	layouts    []string
	method     string
	confidence float64
}

var datePatterns = []datePattern{
	{
		re:         regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
		layouts:    []string{"2006-01-02"},
		method:     "iso_format",
		confidence: 0.95,
	},
	{
		re:         regexp.MustCompile(`\b\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}\b`),
		layouts:    []string{"2 January 2006"},
		method:     "textual_date",
		confidence: 0.9,
	},
	{
		re:         regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`),
		layouts:    []string{"January 2, 2006", "January 2 2006"},
		method:     "textual_date",
		confidence: 0.9,
	},
	{
		// Ambiguous locale form: day-first is tried before month-first, so
		// confidence sits below the unambiguous formats.
		re:         regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
		layouts:    []string{"2/1/2006", "1/2/2006"},
		method:     "slash_date",
		confidence: 0.8,
	},
}

// relativePattern maps a relative expression to a day offset from the
// document's creation date.
type relativePattern struct {
	re     *regexp.Regexp
	offset func(match []string) (int, bool)
	method string
}

var relativePatterns = []relativePattern{
	{
		re:     regexp.MustCompile(`(?i)\byesterday\b`),
		offset: func([]string) (int, bool) { return -1, true },
		method: "relative_keyword",
	},
	{
		re:     regexp.MustCompile(`(?i)\blast week\b`),
		offset: func([]string) (int, bool) { return -7, true },
		method: "relative_keyword",
	},
	{
		re:     regexp.MustCompile(`(?i)\blast month\b`),
		offset: func([]string) (int, bool) { return -30, true },
		method: "relative_keyword",
	},
	{
		re:     regexp.MustCompile(`(?i)\bthe next day\b`),
		offset: func([]string) (int, bool) { return 1, true },
		method: "relative_keyword",
	},
	{
		re:     regexp.MustCompile(`(?i)\bthe following week\b`),
		offset: func([]string) (int, bool) { return 7, true },
		method: "relative_keyword",
	},
	{
		re: regexp.MustCompile(`(?i)\b(\d+)\s+days?\s+(after|later)\b`),
		offset: func(m []string) (int, bool) {
			n, err := strconv.Atoi(m[1])
			return n, err == nil
		},
		method: "relative_offset",
	},
	{
		re: regexp.MustCompile(`(?i)\b(\d+)\s+days?\s+(before|earlier|prior)\b`),
		offset: func(m []string) (int, bool) {
			n, err := strconv.Atoi(m[1])
			return -n, err == nil
		},
		method: "relative_offset",
	},
	{
		re: regexp.MustCompile(`(?i)\b(\d+)\s+weeks?\s+(after|later)\b`),
		offset: func(m []string) (int, bool) {
			n, err := strconv.Atoi(m[1])
			return n * 7, err == nil
		},
		method: "relative_offset",
	},
}

// Sequence marker vocabulary, by narrative position.
var sequenceMarkers = map[int][]string{
	posBeginning: {"first", "firstly", "initially", "at the outset", "to begin"},
	posMiddle:    {"then", "next", "subsequently", "afterwards", "after that", "later", "meanwhile"},
	posEnd:       {"finally", "ultimately", "lastly", "in the end", "eventually"},
}

// base confidences per resolution tier; explicit dates always outrank
// resolved relatives, which outrank sequence-only events.
const (
	relativeConfidence = 0.6
	sequenceConfidence = 0.4
)

// extractEvents pulls every dated, relative, and sequence-marked event out
// of one anonymized document.
func extractEvents(doc model.AnonymizedDocument) []Event {
	var events []Event
	seq := 0

	newID := func() string {
		seq++
		return fmt.Sprintf("%s-evt-%d", doc.ID, seq)
	}

	sentences := textutil.SplitSentences(doc.Content)
	for _, sentence := range sentences {
		weight, marked := sequencePosition(sentence.Text)

		dated := false
		for _, span := range explicitDates(sentence.Text) {
			dated = true
			date := span.date
			events = append(events, Event{
				ID:               newID(),
				Type:             EventExplicitDate,
				Date:             &date,
				Confidence:       span.confidence,
				SourceDocument:   doc.ID,
				RawReference:     span.raw,
				Context:          sentence.Text,
				ResolutionMethod: span.method,
				position:         sentence.Start + span.offset,
				seqWeight:        weight,
				hasMarker:        marked,
			})
		}
		if dated {
			continue
		}

		if ev, ok := resolveRelative(sentence.Text, doc); ok {
			ev.ID = newID()
			ev.Context = sentence.Text
			ev.position = sentence.Start
			ev.seqWeight = weight
			ev.hasMarker = marked
			events = append(events, ev)
			continue
		}

		// No date at all: keep ordering-only information when the sentence
		// carries a sequence marker.
		if marked {
			events = append(events, Event{
				ID:               newID(),
				Type:             EventSequence,
				Confidence:       sequenceConfidence,
				SourceDocument:   doc.ID,
				RawReference:     markerText(sentence.Text),
				Context:          sentence.Text,
				ResolutionMethod: "sequence_marker",
				position:         sentence.Start,
				seqWeight:        weight,
				hasMarker:        true,
			})
		}
	}

	return events
}

type dateSpan struct {
	date       time.Time
	raw        string
	method     string
	confidence float64
	offset     int
}

// explicitDates finds explicit date expressions in a sentence, ISO-first.
// Later patterns skip text ranges already claimed by earlier ones.
func explicitDates(text string) []dateSpan {
	var spans []dateSpan
	claimed := make([][2]int, 0, 2)

	overlapsClaimed := func(start, end int) bool {
		for _, c := range claimed {
			if start < c[1] && c[0] < end {
				return true
			}
		}
		return false
	}

	for _, pattern := range datePatterns {
		for _, loc := range pattern.re.FindAllStringIndex(text, -1) {
			if overlapsClaimed(loc[0], loc[1]) {
				continue
			}
			raw := text[loc[0]:loc[1]]
			parsed, ok := parseWithLayouts(raw, pattern.layouts)
			if !ok {
				continue
			}
			claimed = append(claimed, [2]int{loc[0], loc[1]})
			spans = append(spans, dateSpan{
				date:       parsed,
				raw:        raw,
				method:     pattern.method,
				confidence: pattern.confidence,
				offset:     loc[0],
			})
		}
	}
	return spans
}

func parseWithLayouts(raw string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// resolveRelative resolves a relative date expression against the document's
// creation date. Without an anchor the expression is unresolvable and the
// caller degrades the sentence to a sequence event or drops it.
func resolveRelative(text string, doc model.AnonymizedDocument) (Event, bool) {
	for _, pattern := range relativePatterns {
		match := pattern.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		if doc.CreationDate.IsZero() {
			return Event{}, false
		}
		days, ok := pattern.offset(match)
		if !ok {
			return Event{}, false
		}
		resolved := doc.CreationDate.AddDate(0, 0, days)
		return Event{
			Type:             EventResolvedRelative,
			Date:             &resolved,
			Confidence:       relativeConfidence,
			SourceDocument:   doc.ID,
			RawReference:     match[0],
			ResolutionMethod: pattern.method,
		}, true
	}
	return Event{}, false
}

// sequencePosition returns the narrative position implied by the strongest
// sequence marker in the sentence, defaulting to middle.
func sequencePosition(text string) (int, bool) {
	lower := strings.ToLower(text)
	for _, pos := range []int{posBeginning, posEnd, posMiddle} {
		for _, marker := range sequenceMarkers[pos] {
			if containsWord(lower, marker) {
				return pos, true
			}
		}
	}
	return posMiddle, false
}

func markerText(text string) string {
	lower := strings.ToLower(text)
	for _, markers := range sequenceMarkers {
		for _, marker := range markers {
			if containsWord(lower, marker) {
				return marker
			}
		}
	}
	return ""
}

func containsWord(haystack, word string) bool {
	return textutil.ContainsWord(haystack, word)
}
