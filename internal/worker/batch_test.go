package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/pipeline"
)

type fakeAnalyzer struct{}

func (fakeAnalyzer) AnalyzeCase(_ context.Context, docs []model.Document, caseContext string) (*pipeline.CaseReport, error) {
	return &pipeline.CaseReport{
		CaseContext: caseContext,
		ProcessingSummary: pipeline.ProcessingSummary{
			DocumentsAnalyzed: len(docs),
		},
	}, nil
}

func writeCaseDir(t *testing.T, root, name string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for file, content := range files {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestBatchProcessor_ProcessDirs(t *testing.T) {
	root := t.TempDir()
	dirA := writeCaseDir(t, root, "case-a", map[string]string{
		"letter.txt": "The invoice was disputed.",
		"notes.md":   "not a document",
	})
	dirB := writeCaseDir(t, root, "case-b", map[string]string{
		"claim.txt":    "Payment was received.",
		"response.txt": "The claim was denied.",
	})

	processor := NewBatchProcessor(fakeAnalyzer{}, 2)
	results := processor.ProcessDirs(context.Background(), []string{dirA, dirB})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	byDir := make(map[string]*CaseResult)
	for _, result := range results {
		if result.GetError() != nil {
			t.Fatalf("unexpected error for %s: %v", result.Dir, result.Error)
		}
		byDir[result.Dir] = result
	}
	if got := byDir[dirA].Report.ProcessingSummary.DocumentsAnalyzed; got != 1 {
		t.Errorf("case-a: expected 1 document (.md skipped), got %d", got)
	}
	if got := byDir[dirB].Report.ProcessingSummary.DocumentsAnalyzed; got != 2 {
		t.Errorf("case-b: expected 2 documents, got %d", got)
	}
	if byDir[dirB].Report.CaseContext != "case-b" {
		t.Errorf("case context should be the directory base name, got %q", byDir[dirB].Report.CaseContext)
	}
}

func TestBatchProcessor_EmptyDirReportsError(t *testing.T) {
	root := t.TempDir()
	empty := writeCaseDir(t, root, "empty-case", nil)

	processor := NewBatchProcessor(fakeAnalyzer{}, 1)
	results := processor.ProcessDirs(context.Background(), []string{empty})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].GetError() == nil {
		t.Error("expected an error for a case directory with no documents")
	}
}

func TestReadCaseListFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.txt")
	content := "# active cases\n/data/case-a\n\n/data/case-b\n/data/case-a\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	dirs, err := ReadCaseListFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"/data/case-a", "/data/case-b"}
	if len(dirs) != len(want) {
		t.Fatalf("expected %d dirs, got %d: %v", len(want), len(dirs), dirs)
	}
	for i := range want {
		if dirs[i] != want[i] {
			t.Errorf("dir %d: expected %s, got %s", i, want[i], dirs[i])
		}
	}
}
