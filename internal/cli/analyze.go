package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/pipeline"
)

var (
	outJSON        string
	outMD          string
	analyzeTimeout time.Duration
	caseContext    string
	noCache        bool
	noFooter       bool
	noParallel     bool
	perfMode       string
	riskThreshold  float64
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <dir>",
	Short: "Analyze one case directory of plain-text documents",
	Long: `Analyze runs the full pipeline over every .txt file in a directory:
anonymization with verification, then the temporal, relationship,
evidence, and semantic lanes, fused into one case report.

Example:
  legalintel analyze ./cases/smith-v-acme
  legalintel analyze ./cases/smith-v-acme --json report.json --md report.md
  legalintel analyze ./cases/smith-v-acme --mode thorough --risk-threshold 0.005`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&caseContext, "case", "", "case context label (default: directory name)")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the stage-result cache")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	analyzeCmd.Flags().BoolVar(&noParallel, "no-parallel", false, "run analysis lanes sequentially")
	analyzeCmd.Flags().StringVar(&perfMode, "mode", model.ModeBalanced, "performance mode (fast, balanced, thorough)")
	analyzeCmd.Flags().Float64Var(&riskThreshold, "risk-threshold", 0, "anonymization risk threshold override (0 keeps configured value)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	cfg.Pipeline.CacheResults = cfg.Pipeline.CacheResults && !noCache
	cfg.Pipeline.EnableParallelProcessing = cfg.Pipeline.EnableParallelProcessing && !noParallel
	cfg.Pipeline.PerformanceMode = perfMode
	if riskThreshold > 0 {
		cfg.Pipeline.AnonymizationRiskThreshold = riskThreshold
	}
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	docs, err := pipeline.LoadDocuments(dir)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing %d documents from %s\n\n", len(docs), dir)
	}

	label := caseContext
	if label == "" {
		label = dir
	}

	orch := buildOrchestrator(cfg)
	report, err := orch.AnalyzeCase(ctx, docs, label)
	if err != nil {
		if model.IsVerificationError(err) {
			return fmt.Errorf("run aborted, anonymization could not be verified: %w", err)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if err := renderer.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}
