package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Renderer writes a case report as JSON or Markdown and prints the
// colored console summary.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a report renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(report *CaseReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the human-readable report.
func (r *Renderer) RenderMarkdown(report *CaseReport, path string) error {
	var b strings.Builder

	b.WriteString("# Case Analysis Report\n\n")
	if report.CaseContext != "" {
		fmt.Fprintf(&b, "**Case:** %s\n\n", report.CaseContext)
	}
	fmt.Fprintf(&b, "**Case strength:** %s (%.2f)\n\n", report.CaseStrength.Assessment, report.CaseStrength.OverallScore)
	fmt.Fprintf(&b, "| Dimension | Score |\n|---|---|\n| Evidence | %.2f |\n| Timeline | %.2f |\n| Relationships | %.2f |\n\n",
		report.CaseStrength.EvidenceScore, report.CaseStrength.TimelineScore, report.CaseStrength.RelationshipScore)

	b.WriteString("## Key Findings\n\n")
	if len(report.UnifiedInsights) == 0 {
		b.WriteString("No findings.\n\n")
	}
	for i, insight := range report.UnifiedInsights {
		fmt.Fprintf(&b, "%d. [%s] %s (confidence %.2f)\n", i+1, insight.Category, insight.Description, insight.Confidence)
	}
	b.WriteString("\n")

	if len(report.EnhancedPatterns) > 0 {
		b.WriteString("## Patterns\n\n")
		for _, pattern := range report.EnhancedPatterns {
			fmt.Fprintf(&b, "- **%s**: %s\n", pattern.Name, pattern.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Privacy Protection\n\n")
	fmt.Fprintf(&b, "- Grade: %s\n- Entities anonymized: %d\n- Max verification risk: %.4f\n",
		report.PrivacyProtection.PrivacyGrade, report.PrivacyProtection.EntitiesProcessed, report.PrivacyProtection.MaxRiskScore)
	for entityType, count := range report.PrivacyProtection.AnonymizationSummary {
		fmt.Fprintf(&b, "  - %s: %d\n", entityType, count)
	}
	b.WriteString("\n")

	b.WriteString("## Processing\n\n")
	fmt.Fprintf(&b, "- Documents analyzed: %d\n", report.ProcessingSummary.DocumentsAnalyzed)
	for _, ex := range report.ProcessingSummary.DocumentsExcluded {
		fmt.Fprintf(&b, "- Excluded %s: %s\n", ex.DocumentID, ex.Reason)
	}
	for lane, status := range report.ProcessingSummary.LaneStatus {
		fmt.Fprintf(&b, "- Lane %s: %s\n", lane, status)
	}
	fmt.Fprintf(&b, "- Cache hits: %d\n- Duration: %s\n", report.ProcessingSummary.CacheHits, report.ProcessingSummary.Duration.Round(time.Millisecond))

	if r.includeFooter {
		fmt.Fprintf(&b, "\n---\nGenerated by legalintel at %s\n", report.ProcessingSummary.CompletedAt.Format(time.RFC3339))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderSummary prints the colored console summary.
func (r *Renderer) RenderSummary(report *CaseReport) {
	bold := color.New(color.Bold)
	_, _ = bold.Println("Case Analysis Summary")

	assessColor := color.New(color.FgRed)
	switch report.CaseStrength.Assessment {
	case "strong":
		assessColor = color.New(color.FgGreen)
	case "moderate":
		assessColor = color.New(color.FgYellow)
	}
	fmt.Printf("  Strength:  %s (%.2f)\n", assessColor.Sprint(report.CaseStrength.Assessment), report.CaseStrength.OverallScore)

	gradeColor := color.New(color.FgGreen)
	if report.PrivacyProtection.PrivacyGrade != "A" {
		gradeColor = color.New(color.FgYellow)
	}
	fmt.Printf("  Privacy:   grade %s, %d entities anonymized\n",
		gradeColor.Sprint(report.PrivacyProtection.PrivacyGrade), report.PrivacyProtection.EntitiesProcessed)

	fmt.Printf("  Documents: %d analyzed, %d excluded\n",
		report.ProcessingSummary.DocumentsAnalyzed, len(report.ProcessingSummary.DocumentsExcluded))

	for _, lane := range []string{"temporal", "relationship", "evidence", "semantic"} {
		status := report.ProcessingSummary.LaneStatus[lane]
		line := fmt.Sprintf("  Lane %-13s %s", lane+":", status)
		if status == StatusFallback {
			_, _ = color.New(color.FgRed).Println(line)
		} else {
			fmt.Println(line)
		}
	}

	if len(report.UnifiedInsights) > 0 {
		fmt.Printf("  Top finding: %s\n", report.UnifiedInsights[0].Description)
	}
}

// RenderReport writes the requested outputs and prints the summary.
func (r *Renderer) RenderReport(report *CaseReport, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := r.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}
	if mdPath != "" {
		if err := r.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}
	r.RenderSummary(report)
	return nil
}
