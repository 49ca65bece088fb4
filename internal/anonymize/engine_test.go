package anonymize

import (
	"context"
	"strings"
	"testing"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
)

func TestMergeSpans_OverlapKeepsHigherConfidence(t *testing.T) {
	spans := []model.Span{
		{Text: "John Smith", Type: model.EntityPerson, Start: 0, End: 10, Confidence: 0.6, Source: "a"},
		{Text: "John", Type: model.EntityPerson, Start: 0, End: 4, Confidence: 0.9, Source: "b"},
		{Text: "Smith", Type: model.EntityPerson, Start: 5, End: 10, Confidence: 0.5, Source: "c"},
	}

	merged := MergeSpans(spans)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged span, got %d", len(merged))
	}
	if merged[0].Text != "John" {
		t.Errorf("expected highest-confidence span to win, got %q", merged[0].Text)
	}
}

func TestMergeSpans_TiePrefersFirstSeen(t *testing.T) {
	spans := []model.Span{
		{Text: "Acme Ltd", Type: model.EntityOrganization, Start: 10, End: 18, Confidence: 0.7, Source: "first"},
		{Text: "Acme", Type: model.EntityOrganization, Start: 10, End: 14, Confidence: 0.7, Source: "second"},
	}

	merged := MergeSpans(spans)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged span, got %d", len(merged))
	}
	if merged[0].Source != "first" {
		t.Errorf("expected first-seen span on tie, got source %q", merged[0].Source)
	}
}

func TestMergeSpans_SortsByStart(t *testing.T) {
	spans := []model.Span{
		{Text: "b@c.com", Type: model.EntityEmail, Start: 20, End: 27, Confidence: 0.9},
		{Text: "$5,000", Type: model.EntityAmount, Start: 3, End: 9, Confidence: 0.9},
	}

	merged := MergeSpans(spans)
	if len(merged) != 2 || merged[0].Start != 3 {
		t.Fatalf("expected spans ordered by start, got %+v", merged)
	}
}

func TestAnonymize_ExampleScenario(t *testing.T) {
	text := "John Smith paid $5,000 to Acme Ltd on 03/04/2022"
	spans := []model.Span{
		{Text: "John Smith", Type: model.EntityPerson, Start: 0, End: 10, Confidence: 0.9},
		{Text: "$5,000", Type: model.EntityAmount, Start: 16, End: 22, Confidence: 0.9},
		{Text: "Acme Ltd", Type: model.EntityOrganization, Start: 26, End: 34, Confidence: 0.9},
		{Text: "03/04/2022", Type: model.EntityDate, Start: 38, End: 48, Confidence: 0.9},
	}

	engine := NewEngine(NewRegistry(), 0.01, nil)
	session := NewSession()
	defer session.Clear()

	doc := model.Document{ID: "doc-1", Content: text}
	result, err := engine.AnonymizeDocument(context.Background(), doc, spans, session)
	if err != nil {
		t.Fatalf("expected clean anonymization, got %v", err)
	}

	if len(result.Document.EntitiesDetected) != 4 {
		t.Errorf("expected 4 distinct placeholders, got %d", len(result.Document.EntitiesDetected))
	}
	if result.Verification.RiskScore != 0 {
		t.Errorf("expected risk score 0, got %.4f", result.Verification.RiskScore)
	}

	for _, original := range []string{"John Smith", "$5,000", "Acme Ltd", "03/04/2022"} {
		if strings.Contains(result.Document.Content, original) {
			t.Errorf("original value %q leaked into anonymized output", original)
		}
	}
	for _, token := range []string{"<PERSON_1>", "<AMOUNT_1>", "<ORGANIZATION_1>", "<DATE_1>"} {
		if !strings.Contains(result.Document.Content, token) {
			t.Errorf("expected placeholder %s in output %q", token, result.Document.Content)
		}
	}
}

func TestAnonymize_LeakageInvariantWithSharedPrefixes(t *testing.T) {
	text := "Johnson met John at noon"
	spans := []model.Span{
		{Text: "Johnson", Type: model.EntityPerson, Start: 0, End: 7, Confidence: 0.8},
		{Text: "John", Type: model.EntityPerson, Start: 12, End: 16, Confidence: 0.8},
	}

	engine := NewEngine(NewRegistry(), 0.01, nil)
	session := NewSession()
	defer session.Clear()

	result, err := engine.AnonymizeDocument(context.Background(), model.Document{ID: "d", Content: text}, spans, session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// "Johnson" and "John" are distinct literals of the same type and must
	// not collide on one placeholder.
	if session.TokenFor(model.EntityPerson, "Johnson") == session.TokenFor(model.EntityPerson, "John") {
		t.Error("distinct literals collided on one placeholder")
	}
	if strings.Contains(result.Document.Content, "Johnson") {
		t.Errorf("leaked: %q", result.Document.Content)
	}
}

func TestAnonymize_MappingStability(t *testing.T) {
	text := "Acme Ltd invoiced Acme Ltd suppliers"
	spans := []model.Span{
		{Text: "Acme Ltd", Type: model.EntityOrganization, Start: 0, End: 8, Confidence: 0.8},
		{Text: "Acme Ltd", Type: model.EntityOrganization, Start: 18, End: 26, Confidence: 0.8},
	}

	engine := NewEngine(NewRegistry(), 0.01, nil)
	session := NewSession()
	defer session.Clear()

	result, err := engine.AnonymizeDocument(context.Background(), model.Document{ID: "d", Content: text}, spans, session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Count(result.Document.Content, "<ORGANIZATION_1>") != 2 {
		t.Errorf("same literal should map to one stable token, got %q", result.Document.Content)
	}
	if len(result.Document.EntitiesDetected) != 1 {
		t.Errorf("expected 1 distinct entity, got %d", len(result.Document.EntitiesDetected))
	}
	if result.Document.EntitiesDetected[0].Occurrences != 2 {
		t.Errorf("expected 2 occurrences, got %d", result.Document.EntitiesDetected[0].Occurrences)
	}
}

func TestAnonymize_IdempotentOnAnonymizedText(t *testing.T) {
	registry := NewRegistry(BuiltinExtractors()...)
	engine := NewEngine(registry, 0.01, nil)
	session := NewSession()
	defer session.Clear()

	anonymized := "<PERSON_1> paid <AMOUNT_1> to <ORGANIZATION_1> on <DATE_1>"
	result, err := engine.AnonymizeDocument(context.Background(), model.Document{ID: "d", Content: anonymized}, nil, session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.SpanCount != 0 {
		t.Errorf("anonymized text is a fixed point; expected 0 new spans, got %d", result.SpanCount)
	}
	if result.Document.Content != anonymized {
		t.Errorf("content changed: %q", result.Document.Content)
	}
}

func TestAnonymize_VerificationFailsOnLeak(t *testing.T) {
	// A span whose offsets miss one occurrence of the literal leaves the
	// other occurrence in the output, which verification must catch.
	text := "Jane Doe and Jane Doe"
	spans := []model.Span{
		{Text: "Jane Doe", Type: model.EntityPerson, Start: 0, End: 8, Confidence: 0.9},
	}

	engine := NewEngine(NewRegistry(), 0.01, nil)
	session := NewSession()
	defer session.Clear()

	_, err := engine.AnonymizeDocument(context.Background(), model.Document{ID: "d", Content: text}, spans, session)
	if err == nil {
		t.Fatal("expected verification error, got nil")
	}
	if !model.IsVerificationError(err) {
		t.Fatalf("expected VerificationError, got %T", err)
	}
}

func TestBuiltinExtractors_DetectCoreTypes(t *testing.T) {
	text := "Contact Mr. Smith at smith@example.com or +44 20 7946 0123 about the $12,500.00 invoice from Globex Corp dated 2023-05-01."
	registry := NewRegistry(BuiltinExtractors()...)

	spans, errs := registry.ExtractAll(context.Background(), text)
	if len(errs) != 0 {
		t.Fatalf("unexpected extractor errors: %v", errs)
	}

	types := make(map[string]bool)
	for _, s := range spans {
		types[s.Type] = true
	}
	for _, want := range []string{model.EntityEmail, model.EntityPhone, model.EntityAmount, model.EntityDate, model.EntityOrganization} {
		if !types[want] {
			t.Errorf("expected a %s span, found types %v", want, types)
		}
	}
}
