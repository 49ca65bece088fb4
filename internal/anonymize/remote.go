package anonymize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
)

// RemoteExtractor calls an external NER analysis service over HTTP. The wire
// contract matches the presidio-style analyze endpoint:
//
//	POST {endpoint}/analyze  {"text": "...", "language": "en"}
//	->   [{"entity_type": "PERSON", "start": 0, "end": 10, "score": 0.85}]
//
// Requests are rate limited per extractor so a large document batch cannot
// overwhelm the collaborator service.
type RemoteExtractor struct {
	name       string
	endpoint   string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewRemoteExtractor creates a client for one analysis service endpoint.
func NewRemoteExtractor(endpoint string, timeout time.Duration, requestsPerSecond float64) *RemoteExtractor {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}
	return &RemoteExtractor{
		name:     "remote:" + strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://"),
		endpoint: strings.TrimSuffix(endpoint, "/"),
		language: "en",
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 2),
	}
}

// WithLanguage sets the analysis language passed to the service.
func (e *RemoteExtractor) WithLanguage(lang string) *RemoteExtractor {
	if lang != "" {
		e.language = lang
	}
	return e
}

// Name returns the extractor's provenance name.
func (e *RemoteExtractor) Name() string { return e.name }

type analyzeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type analyzeResult struct {
	EntityType string  `json:"entity_type"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Score      float64 `json:"score"`
}

// Extract posts the text to the analysis service and converts the returned
// entity offsets into spans.
func (e *RemoteExtractor) Extract(ctx context.Context, text string) ([]model.Span, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	body, err := json.Marshal(analyzeRequest{Text: text, Language: e.language})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analyze returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10_000_000))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var results []analyzeResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	spans := make([]model.Span, 0, len(results))
	for _, r := range results {
		if r.Start < 0 || r.End > len(text) || r.Start >= r.End {
			continue
		}
		spans = append(spans, model.Span{
			Text:       text[r.Start:r.End],
			Type:       mapRemoteEntityType(r.EntityType),
			Start:      r.Start,
			End:        r.End,
			Confidence: r.Score,
			Source:     e.name,
		})
	}
	return spans, nil
}

// Health checks the service's health endpoint.
func (e *RemoteExtractor) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.endpoint+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health returned status %d", resp.StatusCode)
	}
	return nil
}

// mapRemoteEntityType normalizes service entity labels onto the shared
// entity type vocabulary.
func mapRemoteEntityType(remote string) string {
	switch strings.ToUpper(remote) {
	case "PERSON", "PER":
		return model.EntityPerson
	case "ORG", "ORGANIZATION":
		return model.EntityOrganization
	case "EMAIL_ADDRESS", "EMAIL":
		return model.EntityEmail
	case "PHONE_NUMBER", "PHONE":
		return model.EntityPhone
	case "DATE_TIME", "DATE":
		return model.EntityDate
	case "LOCATION", "GPE", "LOC":
		return model.EntityLocation
	case "MONEY", "AMOUNT":
		return model.EntityAmount
	default:
		return strings.ToLower(remote)
	}
}
