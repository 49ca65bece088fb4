package temporal

import (
	"context"
	"testing"
	"time"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
)

func doc(id, content string, created time.Time) model.AnonymizedDocument {
	return model.AnonymizedDocument{ID: id, Content: content, CreationDate: created}
}

func TestAnalyze_ExplicitDatesOrdered(t *testing.T) {
	engine := NewEngine(nil)
	docs := []model.AnonymizedDocument{
		doc("d1", "The contract was terminated on 2023-03-15 by <ORGANIZATION_1>. The agreement was signed on 2023-01-10 by <PERSON_1>.", time.Time{}),
	}

	result, err := engine.Analyze(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(result.Events))
	}

	// Ordering follows dates, not narrative order.
	if !result.Events[0].Date.Before(*result.Events[1].Date) {
		t.Errorf("events out of date order: %v then %v", result.Events[0].Date, result.Events[1].Date)
	}
	if result.Events[0].Type != EventExplicitDate {
		t.Errorf("expected explicit_date, got %s", result.Events[0].Type)
	}
	if result.Events[0].ResolutionMethod != "iso_format" {
		t.Errorf("expected iso_format method, got %s", result.Events[0].ResolutionMethod)
	}
}

func TestAnalyze_RelativeResolvedAgainstCreationDate(t *testing.T) {
	engine := NewEngine(nil)
	created := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	docs := []model.AnonymizedDocument{
		doc("d1", "The payment from <PERSON_1> arrived 14 days after the invoice was issued.", created),
	}

	result, err := engine.Analyze(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(result.Events))
	}

	ev := result.Events[0]
	if ev.Type != EventResolvedRelative {
		t.Fatalf("expected resolved_relative, got %s", ev.Type)
	}
	want := created.AddDate(0, 0, 14)
	if !ev.Date.Equal(want) {
		t.Errorf("expected %v, got %v", want, ev.Date)
	}
	if ev.Confidence >= 0.8 {
		t.Errorf("relative resolution must score below explicit dates, got %.2f", ev.Confidence)
	}
}

func TestAnalyze_UnresolvableRelativeDegradesWithMarker(t *testing.T) {
	engine := NewEngine(nil)
	// No creation date: "last week" is unresolvable. The sentence carries a
	// sequence marker, so ordering-only information survives.
	docs := []model.AnonymizedDocument{
		doc("d1", "Subsequently the parties met last week to discuss the settlement terms.", time.Time{}),
	}

	result, err := engine.Analyze(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Events) != 1 {
		t.Fatalf("expected 1 degraded sequence event, got %d", len(result.Events))
	}
	if result.Events[0].Type != EventSequence {
		t.Errorf("expected sequence_event, got %s", result.Events[0].Type)
	}
	if result.Events[0].Date != nil {
		t.Error("degraded event must not carry a guessed date")
	}
}

func TestAnalyze_UnresolvableWithoutMarkerIsDropped(t *testing.T) {
	engine := NewEngine(nil)
	docs := []model.AnonymizedDocument{
		doc("d1", "The parties had met last week to discuss the settlement terms again.", time.Time{}),
	}

	result, err := engine.Analyze(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Events) != 0 {
		t.Fatalf("expected unresolvable reference to be dropped, got %d events", len(result.Events))
	}
}

func TestAnalyze_GapDetection(t *testing.T) {
	engine := NewEngine(nil)
	docs := []model.AnonymizedDocument{
		doc("d1", "The deposit was paid on 2023-01-01 by <PERSON_1>. The breach notice was served on 2023-05-01 by <ORGANIZATION_1>.", time.Time{}),
	}

	result, err := engine.Analyze(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(result.Gaps))
	}

	gap := result.Gaps[0]
	if gap.GapDurationDays != 120 {
		t.Errorf("expected 120-day gap, got %d", gap.GapDurationDays)
	}
	if gap.Severity != "medium" {
		t.Errorf("expected at least medium severity for 120 days, got %s", gap.Severity)
	}
}

func TestAnalyze_SameDayConflictReported(t *testing.T) {
	engine := NewEngine(nil)
	content := "Finally the funds cleared on 2023-02-01 into the account. First the transfer was initiated on 2023-02-01 by <PERSON_1>."
	docs := []model.AnonymizedDocument{doc("d1", content, time.Time{})}

	result, err := engine.Analyze(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Conflicts) == 0 {
		t.Fatal("expected a same-day sequence-marker conflict")
	}
}

func TestAnalyze_CausationDetected(t *testing.T) {
	engine := NewEngine(nil)
	content := "The supplier halted deliveries on 2023-03-01 without notice. As a result of the stoppage the factory closed on 2023-03-20 entirely."
	docs := []model.AnonymizedDocument{doc("d1", content, time.Time{})}

	result, err := engine.Analyze(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Links) != 1 {
		t.Fatalf("expected 1 causation link, got %d", len(result.Links))
	}

	link := result.Links[0]
	if link.CausationType != "direct" {
		t.Errorf("expected direct causation, got %s", link.CausationType)
	}
	if link.Strength < link.Confidence {
		// Direct markers are strong language; confidence is bounded by the
		// events' own reliability and should not exceed it here.
		t.Logf("strength %.2f, confidence %.2f", link.Strength, link.Confidence)
	}
	if link.Strength != 0.9 {
		t.Errorf("expected direct marker strength 0.9, got %.2f", link.Strength)
	}
}

func TestAnalyze_CausationWindowEnforced(t *testing.T) {
	engine := NewEngine(nil)
	// 200 days apart: outside the 90-day window, so no link even with
	// causal language present.
	content := "The contract was signed on 2023-01-01 by both parties. As a result of the signing the project began on 2023-07-20 at last."
	docs := []model.AnonymizedDocument{doc("d1", content, time.Time{})}

	result, err := engine.Analyze(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Links) != 0 {
		t.Fatalf("expected no causation link across 200 days, got %d", len(result.Links))
	}
}

func TestOrderEvents_UndatedSortAfterDated(t *testing.T) {
	d := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{ID: "seq", Type: EventSequence, SourceDocument: "d1", position: 0},
		{ID: "dated", Type: EventExplicitDate, Date: &d, SourceDocument: "d1", position: 50},
	}

	orderEvents(events)
	if events[0].ID != "dated" {
		t.Errorf("dated events must precede undated ones, got %s first", events[0].ID)
	}
}

func TestAnalyze_RelativeOverRelianceFlagged(t *testing.T) {
	engine := NewEngine(nil)
	created := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	content := "The goods arrived 3 days after the order was confirmed by phone. The complaint was raised 10 days later by the purchasing department."
	docs := []model.AnonymizedDocument{doc("d1", content, created)}

	result, err := engine.Analyze(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, inc := range result.Inconsistencies {
		if inc.Severity == "medium" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected over-reliance inconsistency, got %+v", result.Inconsistencies)
	}
}
