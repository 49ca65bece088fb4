package relgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
)

func anonDoc(id, content string, entities ...model.Entity) model.AnonymizedDocument {
	return model.AnonymizedDocument{ID: id, Content: content, EntitiesDetected: entities}
}

func TestBuilder_MaterializesConfidentPairs(t *testing.T) {
	builder := NewBuilder()
	docs := []model.AnonymizedDocument{
		anonDoc("d1", "<PERSON_1> paid an invoice to <ORGANIZATION_1> under the signed agreement.",
			model.Entity{Placeholder: "<PERSON_1>", Type: "person", Confidence: 0.95},
			model.Entity{Placeholder: "<ORGANIZATION_1>", Type: "organization", Confidence: 0.95},
		),
		anonDoc("d2", "<PERSON_1> transferred a payment to <ORGANIZATION_1> the same week.",
			model.Entity{Placeholder: "<PERSON_1>", Type: "person", Confidence: 0.95},
			model.Entity{Placeholder: "<ORGANIZATION_1>", Type: "organization", Confidence: 0.95},
		),
	}

	graph := builder.Build(docs)

	edge, ok := graph.GetEdge("<PERSON_1>", "<ORGANIZATION_1>")
	require.True(t, ok, "high-confidence co-occurring pair must materialize")
	assert.Equal(t, "financial", edge.RelationshipType)
	assert.Equal(t, 2, edge.CoOccurrences, "repeat co-occurrence accumulates")
	assert.ElementsMatch(t, []string{"d1", "d2"}, edge.EvidenceRefs)
	assert.Greater(t, edge.Confidence, minRelationshipConfidence)
}

func TestBuilder_ConfidenceCappedByWeakestParticipant(t *testing.T) {
	builder := NewBuilder()
	docs := []model.AnonymizedDocument{
		anonDoc("d1", "<PERSON_1> paid an invoice to <ORGANIZATION_1> promptly.",
			model.Entity{Placeholder: "<PERSON_1>", Type: "person", Confidence: 0.95},
			model.Entity{Placeholder: "<ORGANIZATION_1>", Type: "organization", Confidence: 0.5},
		),
	}

	graph := builder.Build(docs)

	_, ok := graph.GetEdge("<PERSON_1>", "<ORGANIZATION_1>")
	assert.False(t, ok, "a relationship cannot be more certain than its least-certain participant")
}

func TestBuilder_DefaultTypeIsCoOccurrence(t *testing.T) {
	builder := NewBuilder()
	docs := []model.AnonymizedDocument{
		anonDoc("d1", "<PERSON_1> and <PERSON_2> were both present in the room that afternoon.",
			model.Entity{Placeholder: "<PERSON_1>", Type: "person", Confidence: 0.95},
			model.Entity{Placeholder: "<PERSON_2>", Type: "person", Confidence: 0.95},
		),
	}

	graph := builder.Build(docs)

	edge, ok := graph.GetEdge("<PERSON_1>", "<PERSON_2>")
	require.True(t, ok)
	assert.Equal(t, "co_occurrence", edge.RelationshipType)
}

func TestBuilder_NodesAlwaysAdded(t *testing.T) {
	builder := NewBuilder()
	docs := []model.AnonymizedDocument{
		anonDoc("d1", "<PERSON_1> wrote a long report.",
			model.Entity{Placeholder: "<PERSON_1>", Type: "person", Confidence: 0.9},
		),
	}

	graph := builder.Build(docs)
	assert.Equal(t, 1, graph.NodeCount())
	assert.Equal(t, 0, graph.EdgeCount())
}
