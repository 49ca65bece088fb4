package relgraph

import (
	"math"
	"strings"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/textutil"
)

// minRelationshipConfidence gates which candidate relationships materialize.
const minRelationshipConfidence = 0.7

// relationship type inference: keyword sets scanned in the text between two
// entity references. Base confidence rewards the more specific types.
var relationshipTypes = []struct {
	name     string
	keywords []string
	baseConf float64
}{
	{"financial", []string{"paid", "payment", "invoice", "transfer", "owed", "loan", "deposit", "refund"}, 0.9},
	{"contractual", []string{"agreement", "contract", "signed", "clause", "terms", "obligation", "breach"}, 0.9},
	{"legal", []string{"claim", "court", "proceedings", "liability", "sued", "settlement", "judgment"}, 0.85},
	{"temporal", []string{"before", "after", "during", "when", "until", "meeting", "met"}, 0.8},
	{"geographical", []string{"at", "located", "address", "premises", "site", "office"}, 0.75},
}

const defaultRelType = "co_occurrence"
const defaultBaseConf = 0.75

// Builder constructs the entity relationship graph from per-document
// co-occurrence of anonymized entities.
type Builder struct {
	minConfidence float64
}

// NewBuilder creates a graph builder with the standard confidence gate.
func NewBuilder() *Builder {
	return &Builder{minConfidence: minRelationshipConfidence}
}

// Build materializes the relationship graph across all documents. Every
// pair of entities referenced in one document is a candidate; only pairs
// whose combined confidence clears the gate become edges.
func (b *Builder) Build(docs []model.AnonymizedDocument) *Graph {
	graph := NewGraph()

	// Count cross-document co-occurrence first so repeat pairs strengthen
	// the edges they produce.
	pairDocs := make(map[[2]string]int)
	for _, doc := range docs {
		for i, a := range doc.EntitiesDetected {
			for _, other := range doc.EntitiesDetected[i+1:] {
				pairDocs[pairKey(a.Placeholder, other.Placeholder)]++
			}
		}
	}

	for _, doc := range docs {
		entities := doc.EntitiesDetected
		for _, entity := range entities {
			graph.AddNode(Node{
				ID:              entity.Placeholder,
				Type:            entity.Type,
				AnonymizedValue: entity.Placeholder,
				Confidence:      entity.Confidence,
			})
		}

		for i, a := range entities {
			for _, other := range entities[i+1:] {
				edge, ok := b.candidate(doc, a, other, pairDocs[pairKey(a.Placeholder, other.Placeholder)])
				if ok {
					graph.AddEdge(edge)
				}
			}
		}
	}

	return graph
}

// candidate scores one entity pair within one document. A relationship's
// confidence is capped by its least-certain participant.
func (b *Builder) candidate(doc model.AnonymizedDocument, a, other model.Entity, docCount int) (Edge, bool) {
	posA := strings.Index(doc.Content, a.Placeholder)
	posB := strings.Index(doc.Content, other.Placeholder)
	if posA < 0 || posB < 0 {
		return Edge{}, false
	}

	relType, baseConf := inferType(between(doc.Content, posA, posB))

	avgConf := (a.Confidence + other.Confidence) / 2
	proximity := proximityScore(posA, posB, len(doc.Content))
	repeat := math.Min(float64(docCount)/3.0, 1.0)
	strength := 0.4*avgConf + 0.3*proximity + 0.3*repeat

	minConf := math.Min(a.Confidence, other.Confidence)
	confidence := math.Min(baseConf*0.5+strength*0.5, minConf)

	if confidence <= b.minConfidence {
		return Edge{}, false
	}

	return Edge{
		NodeA:            a.Placeholder,
		NodeB:            other.Placeholder,
		RelationshipType: relType,
		Strength:         clamp01(strength),
		Confidence:       clamp01(confidence),
		EvidenceRefs:     []string{doc.ID},
		CoOccurrences:    1,
	}, true
}

// between returns the text between two entity references, plus a margin on
// each side for context keywords.
func between(content string, posA, posB int) string {
	const margin = 60
	start, end := posA, posB
	if start > end {
		start, end = end, start
	}
	start -= margin
	if start < 0 {
		start = 0
	}
	end += margin
	if end > len(content) {
		end = len(content)
	}
	return content[start:end]
}

func inferType(context string) (string, float64) {
	lower := strings.ToLower(context)
	for _, rt := range relationshipTypes {
		for _, kw := range rt.keywords {
			if textutil.ContainsWord(lower, kw) {
				return rt.name, rt.baseConf
			}
		}
	}
	return defaultRelType, defaultBaseConf
}

// proximityScore rewards entity references that sit close together in the
// document.
func proximityScore(posA, posB, docLen int) float64 {
	if docLen == 0 {
		return 0
	}
	dist := posA - posB
	if dist < 0 {
		dist = -dist
	}
	return 1 - math.Min(float64(dist)/float64(docLen), 1)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
