package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
)

func TestRenderer_JSONAndMarkdown(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Pipeline.CacheResults = false
	orch := newTestOrchestrator(cfg, nil)

	report, err := orch.AnalyzeCase(context.Background(), testDocs(), "smith-v-acme")
	require.NoError(t, err)

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "report.json")
	mdPath := filepath.Join(dir, "report.md")

	renderer := NewRenderer(true)
	require.NoError(t, renderer.RenderJSON(report, jsonPath))
	require.NoError(t, renderer.RenderMarkdown(report, mdPath))

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var decoded CaseReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.CaseStrength.Assessment, decoded.CaseStrength.Assessment)

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	text := string(md)
	assert.Contains(t, text, "# Case Analysis Report")
	assert.Contains(t, text, "smith-v-acme")
	assert.Contains(t, text, "## Privacy Protection")
	assert.Contains(t, text, "Generated by legalintel")
}

func TestRenderer_NoFooter(t *testing.T) {
	report := &CaseReport{
		CaseStrength:      CaseStrength{Assessment: "weak"},
		ProcessingSummary: ProcessingSummary{LaneStatus: map[string]string{}},
	}

	mdPath := filepath.Join(t.TempDir(), "report.md")
	require.NoError(t, NewRenderer(false).RenderMarkdown(report, mdPath))

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.NotContains(t, string(md), "Generated by legalintel")
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("Second document content."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("First document content."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.pdf"), []byte("binary"), 0o644))

	docs, err := LoadDocuments(dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)
	assert.False(t, docs[0].CreationDate.IsZero())

	_, err = LoadDocuments(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
