package evidence

import (
	"strings"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/textutil"
)

// categoryIndicators drive the primary classification vote. Each matched
// indicator is one vote for its category.
var categoryIndicators = map[string][]string{
	CategoryDocumentary: {
		"contract", "agreement", "invoice", "letter", "deed", "notice",
		"receipt", "statement of account", "signed", "document", "clause",
	},
	CategoryTestimonial: {
		"testified", "stated", "witnessed", "recalled", "declared",
		"witness", "deposition", "affidavit", "told", "said",
	},
	CategoryDigital: {
		"email", "emailed", "text message", "whatsapp", "attachment",
		"metadata", "login", "server", "database", "screenshot",
	},
	CategoryPhysical: {
		"photograph", "sample", "object", "damaged goods", "item",
		"inspection", "exhibit", "physical", "scene",
	},
}

// subcategoryIndicators refine within a category.
var subcategoryIndicators = map[string]map[string][]string{
	CategoryDocumentary: {
		"contract":         {"contract", "agreement", "clause", "deed"},
		"financial_record": {"invoice", "receipt", "statement of account", "payment"},
		"correspondence":   {"letter", "notice", "memo"},
	},
	CategoryTestimonial: {
		"witness_statement": {"witness", "witnessed", "recalled", "testified"},
		"sworn_statement":   {"affidavit", "deposition", "declared", "under oath"},
	},
	CategoryDigital: {
		"email":            {"email", "emailed", "attachment"},
		"message":          {"text message", "whatsapp"},
		"system_record":    {"login", "server", "database", "metadata"},
	},
	CategoryPhysical: {
		"photographic": {"photograph", "screenshot", "image"},
		"exhibit":      {"exhibit", "sample", "object", "item"},
	},
}

// category prototypes used when no indicator votes land: the sentence is
// compared for token overlap against a short description of each category.
var categoryPrototypes = map[string]string{
	CategoryDocumentary: "written contract agreement invoice letter record paper filing",
	CategoryTestimonial: "person witness spoke account recollection interview statement",
	CategoryDigital:     "electronic computer email message online system data file",
	CategoryPhysical:    "physical object item material tangible inspection condition",
}

// classify assigns category and subcategory by indicator-pattern voting,
// falling back to prototype text similarity when nothing votes.
func classify(item *Item) {
	lower := strings.ToLower(item.Content + " " + item.Context)

	bestCategory := ""
	bestVotes := 0
	for category, indicators := range categoryIndicators {
		votes := 0
		for _, indicator := range indicators {
			if textutil.ContainsWord(lower, indicator) {
				votes++
			}
		}
		if votes > bestVotes || (votes == bestVotes && votes > 0 && category < bestCategory) {
			bestCategory = category
			bestVotes = votes
		}
	}

	if bestVotes == 0 {
		bestCategory = similarityFallback(lower)
	}

	item.Category = bestCategory
	item.Subcategory = subcategory(bestCategory, lower)
	item.LegalClassification = legalClassification(item)
}

func similarityFallback(lower string) string {
	tokens := textutil.Tokenize(lower)
	best := CategoryDocumentary
	bestScore := -1.0
	for _, category := range []string{CategoryDocumentary, CategoryTestimonial, CategoryDigital, CategoryPhysical} {
		score := textutil.Jaccard(tokens, textutil.Tokenize(categoryPrototypes[category]))
		if score > bestScore {
			best = category
			bestScore = score
		}
	}
	return best
}

func subcategory(category, lower string) string {
	subs, ok := subcategoryIndicators[category]
	if !ok {
		return ""
	}
	best := ""
	bestVotes := 0
	for sub, indicators := range subs {
		votes := 0
		for _, indicator := range indicators {
			if textutil.ContainsWord(lower, indicator) {
				votes++
			}
		}
		if votes > bestVotes {
			best = sub
			bestVotes = votes
		}
	}
	return best
}

// legalClassification is a coarse triage label derived from category and
// admissibility cues; advisory only, never a legal determination.
func legalClassification(item *Item) string {
	switch item.Category {
	case CategoryDocumentary:
		return "direct_documentary"
	case CategoryTestimonial:
		return "testimonial_account"
	case CategoryDigital:
		return "electronic_record"
	case CategoryPhysical:
		return "real_evidence"
	default:
		return "unclassified"
	}
}
