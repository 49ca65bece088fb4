package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/pipeline"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple case directories from a list file in parallel",
	Long: `Batch reads case directories from a file (one per line, # comments
allowed) and analyzes them concurrently. Each case gets its own report
in the output directory.

Example:
  legalintel batch cases.txt
  legalintel batch cases.txt --concurrency 4 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent case analyses")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./legalintel-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Output.Verbose = verbose

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	orch := buildOrchestrator(cfg)
	processor := worker.NewBatchProcessor(orch, concurrency)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	succeeded, failed := 0, 0
	for _, result := range results {
		if result.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Dir, result.Error)
			continue
		}
		succeeded++

		slug := filepath.Base(result.Dir)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")
		if err := renderer.RenderReport(result.Report, jsonPath, mdPath, verbose); err != nil {
			fmt.Fprintf(os.Stderr, "✗ render %s: %v\n", result.Dir, err)
		}
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d succeeded, %d failed (of %d)\n", succeeded, failed, len(results))
	if failed > 0 && succeeded == 0 {
		return fmt.Errorf("all %d case analyses failed", failed)
	}
	return nil
}
