// Package textutil holds the small text heuristics shared by the analysis
// lanes: sentence splitting and tokenization over anonymized plain text.
package textutil

import (
	"regexp"
	"strings"
)

// Sentence is a sentence with its character offset in the source text.
type Sentence struct {
	Text  string
	Start int
}

// minimum sentence length worth analyzing; fragments below this are noise.
const minSentenceLen = 15

// SplitSentences splits plain text into sentences on terminator punctuation,
// keeping character offsets so callers can reason about narrative position.
func SplitSentences(text string) []Sentence {
	var sentences []Sentence
	start := 0
	flush := func(end int) {
		s := strings.TrimSpace(text[start:end])
		if len(s) >= minSentenceLen {
			offset := start + strings.Index(text[start:end], s[:1])
			sentences = append(sentences, Sentence{Text: s, Start: offset})
		}
		start = end
	}

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			// Avoid splitting decimals and common abbreviations.
			if i+1 < len(text) && text[i+1] != ' ' && text[i+1] != '\n' && text[i+1] != '\t' {
				continue
			}
			flush(i + 1)
		case '\n':
			if i+1 < len(text) && text[i+1] == '\n' {
				flush(i + 1)
			}
		}
	}
	if start < len(text) {
		flush(len(text))
	}
	return sentences
}

var tokenPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z'\-]+|<[A-Z_]+_\d+>`)

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "that": true, "this": true,
	"with": true, "was": true, "were": true, "are": true, "has": true,
	"had": true, "have": true, "been": true, "from": true, "not": true,
	"but": true, "his": true, "her": true, "its": true, "their": true,
	"which": true, "will": true, "would": true, "shall": true, "any": true,
	"all": true, "may": true, "can": true, "such": true, "other": true,
}

// Tokenize lowercases and splits text into word tokens, dropping stopwords.
// Placeholder tokens are preserved verbatim so entity references survive.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(text, -1)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if strings.HasPrefix(tok, "<") {
			out = append(out, tok)
			continue
		}
		lower := strings.ToLower(tok)
		if len(lower) < 3 || stopwords[lower] {
			continue
		}
		out = append(out, lower)
	}
	return out
}

// Jaccard computes token-set overlap between two token lists.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]bool, len(a))
	for _, t := range a {
		setA[t] = true
	}
	setB := make(map[string]bool, len(b))
	for _, t := range b {
		setB[t] = true
	}

	intersection := 0
	for t := range setA {
		if setB[t] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// ContainsWord reports whether haystack contains word (or a multi-word
// phrase) on word boundaries, so "then" never fires inside "authentic".
// Both arguments are expected lowercased.
func ContainsWord(haystack, word string) bool {
	idx := 0
	for {
		i := strings.Index(haystack[idx:], word)
		if i < 0 {
			return false
		}
		i += idx
		before := i == 0 || !isWordByte(haystack[i-1])
		afterIdx := i + len(word)
		after := afterIdx >= len(haystack) || !isWordByte(haystack[afterIdx])
		if before && after {
			return true
		}
		idx = i + len(word)
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// Placeholders returns the distinct placeholder tokens referenced in text,
// in first-appearance order.
var placeholderPattern = regexp.MustCompile(`<[A-Z_]+_\d+>`)

func Placeholders(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range placeholderPattern.FindAllString(text, -1) {
		if !seen[tok] {
			seen[tok] = true
			out = append(out, tok)
		}
	}
	return out
}
