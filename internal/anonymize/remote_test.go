package anonymize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
)

func TestRemoteExtractor_Extract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" {
			http.NotFound(w, r)
			return
		}
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		results := []analyzeResult{
			{EntityType: "PERSON", Start: 0, End: 10, Score: 0.85},
			{EntityType: "DATE_TIME", Start: 24, End: 34, Score: 0.7},
			{EntityType: "PERSON", Start: -1, End: 4, Score: 0.9}, // invalid offsets, must be dropped
		}
		_ = json.NewEncoder(w).Encode(results)
	}))
	defer server.Close()

	extractor := NewRemoteExtractor(server.URL, 5*time.Second, 100)
	text := "John Smith signed it on 03/04/2022"

	spans, err := extractor.Extract(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spans) != 2 {
		t.Fatalf("expected 2 valid spans, got %d", len(spans))
	}
	if spans[0].Type != model.EntityPerson || spans[0].Text != "John Smith" {
		t.Errorf("unexpected first span: %+v", spans[0])
	}
	if spans[1].Type != model.EntityDate {
		t.Errorf("expected date type, got %s", spans[1].Type)
	}
}

func TestRemoteExtractor_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "analyzer not available", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	extractor := NewRemoteExtractor(server.URL, 5*time.Second, 100)
	if _, err := extractor.Extract(context.Background(), "some text"); err == nil {
		t.Fatal("expected error on 503 response")
	}
}

func TestRemoteExtractor_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	extractor := NewRemoteExtractor(server.URL, 5*time.Second, 100)
	if err := extractor.Health(context.Background()); err != nil {
		t.Fatalf("unexpected health error: %v", err)
	}
}

func TestMapRemoteEntityType(t *testing.T) {
	cases := map[string]string{
		"PERSON":        model.EntityPerson,
		"EMAIL_ADDRESS": model.EntityEmail,
		"ORG":           model.EntityOrganization,
		"MONEY":         model.EntityAmount,
		"UK_NHS":        "uk_nhs",
	}
	for remote, want := range cases {
		if got := mapRemoteEntityType(remote); got != want {
			t.Errorf("mapRemoteEntityType(%q) = %q, want %q", remote, got, want)
		}
	}
}
