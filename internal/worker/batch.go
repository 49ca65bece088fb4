package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/pipeline"
)

// CaseAnalyzer runs the full pipeline over one document set.
type CaseAnalyzer interface {
	AnalyzeCase(ctx context.Context, docs []model.Document, caseContext string) (*pipeline.CaseReport, error)
}

// CaseJob analyzes all documents in one case directory.
type CaseJob struct {
	Dir      string
	Analyzer CaseAnalyzer
}

// CaseResult is the outcome of one case analysis.
type CaseResult struct {
	Dir    string
	Report *pipeline.CaseReport
	Error  error
}

// GetError returns the job's error, if any.
func (r *CaseResult) GetError() error { return r.Error }

// Execute loads the case directory and runs the analyzer over it.
func (j *CaseJob) Execute(ctx context.Context) Result {
	docs, err := pipeline.LoadDocuments(j.Dir)
	if err != nil {
		return &CaseResult{Dir: j.Dir, Error: err}
	}

	caseContext := filepath.Base(j.Dir)
	report, err := j.Analyzer.AnalyzeCase(ctx, docs, caseContext)
	if err != nil {
		return &CaseResult{Dir: j.Dir, Error: err}
	}
	return &CaseResult{Dir: j.Dir, Report: report}
}

// BatchProcessor analyzes multiple case directories concurrently.
type BatchProcessor struct {
	analyzer    CaseAnalyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor with the given concurrency.
func NewBatchProcessor(analyzer CaseAnalyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{analyzer: analyzer, concurrency: concurrency}
}

// ProcessDirs runs the analyzer over every case directory.
func (b *BatchProcessor) ProcessDirs(ctx context.Context, dirs []string) []*CaseResult {
	if len(dirs) == 0 {
		return []*CaseResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()
	for _, dir := range dirs {
		pool.Submit(&CaseJob{Dir: dir, Analyzer: b.analyzer})
	}

	results := pool.Wait()
	caseResults := make([]*CaseResult, len(results))
	for i, result := range results {
		caseResults[i] = result.(*CaseResult)
	}
	return caseResults
}

// ProcessFile reads a case list file and processes every listed directory.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*CaseResult, error) {
	dirs, err := ReadCaseListFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case list: %w", err)
	}
	return b.ProcessDirs(ctx, dirs), nil
}

// ReadCaseListFromFile reads case directories from a file, one per line.
// Blank lines and # comments are skipped; duplicates are dropped.
func ReadCaseListFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var dirs []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			dirs = append(dirs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return dirs, nil
}
