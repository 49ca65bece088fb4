package evidence

import (
	"context"
	"math/rand"
	"testing"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
)

func anonDoc(id, content string) model.AnonymizedDocument {
	return model.AnonymizedDocument{ID: id, Content: content}
}

func TestAnalyze_ExtractsQualifyingSentences(t *testing.T) {
	engine := NewEngine(nil)
	docs := []model.AnonymizedDocument{
		anonDoc("d1", "<PERSON_1> signed the agreement with <ORGANIZATION_1> on 2023-01-10 and paid the deposit. The weather was mild that week."),
	}

	result, err := engine.Analyze(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 evidentiary sentence, got %d", len(result.Items))
	}

	item := result.Items[0]
	if item.PriorityScore <= minEvidentiaryScore {
		t.Errorf("kept item must clear the threshold, got %.2f", item.PriorityScore)
	}
	if item.Category != CategoryDocumentary {
		t.Errorf("expected documentary category, got %s", item.Category)
	}
	if item.Subcategory != "contract" {
		t.Errorf("expected contract subcategory, got %s", item.Subcategory)
	}
}

func TestAnalyze_CorroborationAcrossDocuments(t *testing.T) {
	engine := NewEngine(nil)
	docs := []model.AnonymizedDocument{
		anonDoc("d1", "<ORGANIZATION_1> confirmed that <PERSON_1> paid $10,000 on 1/5/2023."),
		anonDoc("d2", "<PERSON_1> stated that a $10,000 payment was delivered to <ORGANIZATION_1>."),
	}

	result, err := engine.Analyze(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var amountNetwork *CorroborationNetwork
	for i := range result.Corroboration {
		if result.Corroboration[i].Fact == "amount:$10000" {
			amountNetwork = &result.Corroboration[i]
			break
		}
	}
	if amountNetwork == nil {
		t.Fatalf("expected a corroboration network keyed on the amount, got %+v", result.Corroboration)
	}
	if len(amountNetwork.SupportingEvidence) != 2 {
		t.Errorf("expected 2 supporting items, got %d", len(amountNetwork.SupportingEvidence))
	}
	if amountNetwork.Circular {
		t.Error("two independent sources must not be flagged circular")
	}
	if amountNetwork.IndependenceScore != 1 {
		t.Errorf("expected full independence across two documents, got %.2f", amountNetwork.IndependenceScore)
	}
}

func TestAnalyze_CircularCorroborationFlagged(t *testing.T) {
	engine := NewEngine(nil)
	docs := []model.AnonymizedDocument{
		anonDoc("d1", "<PERSON_1> confirmed the sum of $5,000 was paid on 2023-02-01 in full. <PERSON_1> later stated the $5,000 payment was delivered as agreed."),
	}

	result, err := engine.Analyze(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, network := range result.Corroboration {
		if network.Fact == "amount:$5000" {
			found = true
			if !network.Circular {
				t.Error("same-source corroboration must be flagged circular")
			}
		}
	}
	if !found {
		t.Fatalf("expected amount network, got %+v", result.Corroboration)
	}

	insufficient := false
	for _, gap := range result.Gaps {
		if gap.Kind == "insufficient_corroboration" {
			insufficient = true
		}
	}
	if !insufficient {
		t.Error("circular networks must surface an insufficient_corroboration gap")
	}
}

func TestAnalyze_DateRangeGap(t *testing.T) {
	engine := NewEngine(nil)
	docs := []model.AnonymizedDocument{
		anonDoc("d1", "<PERSON_1> signed the contract with <ORGANIZATION_1> on 2023-01-01 as agreed. <PERSON_1> notified <ORGANIZATION_1> of the breach on 2023-05-01 by letter."),
	}

	result, err := engine.Analyze(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var dateGap *Gap
	for i := range result.Gaps {
		if result.Gaps[i].Kind == "date_range" {
			dateGap = &result.Gaps[i]
		}
	}
	if dateGap == nil {
		t.Fatalf("expected a date_range gap for a 120-day silence, got %+v", result.Gaps)
	}
	if dateGap.Severity != "medium" {
		t.Errorf("120 days should rank medium, got %s", dateGap.Severity)
	}
}

func TestAnalyze_GapsSortedBySeverity(t *testing.T) {
	engine := NewEngine(nil)
	docs := []model.AnonymizedDocument{
		anonDoc("d1", "<PERSON_1> signed the agreement and paid the invoice on 2023-01-10 promptly."),
	}

	result, err := engine.Analyze(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(result.Gaps); i++ {
		if severityRank[result.Gaps[i].Severity] > severityRank[result.Gaps[i-1].Severity] {
			t.Fatalf("gaps out of severity order at %d: %+v", i, result.Gaps)
		}
	}
}

func TestCombineWeight_BoundsForRandomInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		p := StrengthProfile{
			Authenticity:  rng.Float64(),
			Relevance:     rng.Float64(),
			Reliability:   rng.Float64(),
			Admissibility: rng.Float64(),
		}
		w := CombineWeight(p)
		if w < 0 || w > 1 {
			t.Fatalf("weight out of bounds: %.4f for %+v", w, p)
		}
		expected := 0.25*p.Authenticity + 0.30*p.Relevance + 0.25*p.Reliability + 0.20*p.Admissibility
		if diff := w - expected; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("weight is not the fixed combination: got %.6f want %.6f", w, expected)
		}
	}
}

func TestScoreAdmissibility_HearsayAndExceptions(t *testing.T) {
	plain := scoreAdmissibility("the contract was signed by both parties")
	hearsay := scoreAdmissibility("a colleague told me that the payment was late")
	excepted := scoreAdmissibility("a colleague told me the figure, recorded in the ordinary course of business")

	if hearsay >= plain {
		t.Errorf("hearsay must score below plain assertions: %.2f vs %.2f", hearsay, plain)
	}
	if excepted <= hearsay {
		t.Errorf("a recognized exception must soften the hearsay penalty: %.2f vs %.2f", excepted, hearsay)
	}
}

func TestScoreStrength_PrivilegeReducesAdmissibility(t *testing.T) {
	privileged := scoreAdmissibility("the letter was marked without prejudice and contained legal advice")
	plain := scoreAdmissibility("the letter confirmed the delivery schedule")
	if privileged >= plain {
		t.Errorf("privilege markers must reduce admissibility: %.2f vs %.2f", privileged, plain)
	}
}
