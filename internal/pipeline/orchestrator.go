package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/anonymize"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/cache"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/evidence"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/relgraph"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/semantic"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/temporal"
)

// Orchestrator runs the full analysis pipeline over one document set.
// Anonymization always completes for every document before any lane sees
// text; the lanes then read the same immutable anonymized set and write
// only their own results.
type Orchestrator struct {
	cfg      *model.Config
	anon     *anonymize.Engine
	temporal *temporal.Engine
	evidence *evidence.Engine
	semantic *semantic.Engine
	store    cache.Cache
	logger   *slog.Logger
}

// NewOrchestrator wires the engines together. store may be nil to disable
// caching regardless of configuration.
func NewOrchestrator(cfg *model.Config, registry *anonymize.Registry, store cache.Cache, logger *slog.Logger) *Orchestrator {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		cfg:      cfg,
		anon:     anonymize.NewEngine(registry, cfg.Pipeline.AnonymizationRiskThreshold, logger),
		temporal: temporal.NewEngine(logger),
		evidence: evidence.NewEngine(logger),
		semantic: semantic.NewEngine(),
		store:    store,
		logger:   logger,
	}
}

// laneOutcome carries one lane's status back from its goroutine.
type laneOutcome struct {
	status   string
	cacheHit bool
}

// AnalyzeCase runs the pipeline. The only error returned is a privacy
// integrity failure (or an entirely unusable input set); analytical lane
// failures degrade to fallback results inside the report.
func (o *Orchestrator) AnalyzeCase(ctx context.Context, docs []model.Document, caseContext string) (*CaseReport, error) {
	start := time.Now()

	valid, excluded := o.screen(docs)
	if len(valid) == 0 {
		return nil, fmt.Errorf("no analyzable documents in batch of %d", len(docs))
	}

	// One mapping per run, zeroed no matter how we leave.
	session := anonymize.NewSession()
	defer session.Clear()

	anonDocs := make([]model.AnonymizedDocument, 0, len(valid))
	maxRisk := 0.0
	for _, doc := range valid {
		res, err := o.anon.AnonymizeDocument(ctx, doc, nil, session)
		if err != nil {
			return nil, err
		}
		anonDocs = append(anonDocs, res.Document)
		if res.Verification.RiskScore > maxRisk {
			maxRisk = res.Verification.RiskScore
		}
	}

	fp := Fingerprint(valid, caseContext)

	var (
		semRes  *semantic.Result
		tempRes *temporal.Result
		relRes  *relgraph.Result
		evidRes *evidence.Result

		semOut, tempOut, relOut, evidOut laneOutcome
	)

	runSemantic := func() {
		if o.cfg.Pipeline.PerformanceMode == model.ModeFast {
			semRes, semOut = fallbackSemantic(StatusSkipped), laneOutcome{status: StatusSkipped}
			return
		}
		semRes, semOut = runLane(o, "semantic", fp, fallbackSemantic(StatusFallback), func() (*semantic.Result, error) {
			return o.semantic.Analyze(ctx, anonDocs)
		})
	}
	runTemporal := func() {
		tempRes, tempOut = runLane(o, "temporal", fp, fallbackTemporal(), func() (*temporal.Result, error) {
			return o.temporal.Analyze(ctx, anonDocs)
		})
	}
	runRelationship := func() {
		relRes, relOut = runLane(o, "relationship", fp, fallbackRelationship(), func() (*relgraph.Result, error) {
			return relgraph.NewBuilder().Build(anonDocs).Analyze(), nil
		})
	}
	runEvidence := func() {
		evidRes, evidOut = runLane(o, "evidence", fp, fallbackEvidence(), func() (*evidence.Result, error) {
			return o.evidence.Analyze(ctx, anonDocs)
		})
	}

	if o.cfg.Pipeline.EnableParallelProcessing {
		sem := newSemaphore(o.cfg.Pipeline.MaxConcurrentAnalyses)
		runGroup(sem, runSemantic, runTemporal)
		runGroup(sem, runRelationship, runEvidence)
	} else {
		runSemantic()
		runTemporal()
		runRelationship()
		runEvidence()
	}

	cross := crossCorrelate(semRes, tempRes, relRes, evidRes)

	report := &CaseReport{
		CaseContext:      caseContext,
		UnifiedInsights:  unifiedInsights(tempRes, relRes, evidRes, cross, o.cfg.Pipeline.TopFindings),
		EnhancedPatterns: enhancedPatterns(cross),
		CaseStrength:     caseStrength(tempRes, relRes, evidRes),
		DetailedResults: DetailedResults{
			Temporal:      tempRes,
			Relationship:  relRes,
			Evidence:      evidRes,
			Semantic:      semRes,
			CrossAnalysis: cross,
		},
		PrivacyProtection: PrivacyProtection{
			AnonymizationSummary: session.CountsByType(),
			PrivacyGrade:         privacyGrade(maxRisk, o.cfg.Pipeline.AnonymizationRiskThreshold),
			EntitiesProcessed:    session.Count(),
			MaxRiskScore:         maxRisk,
		},
		ProcessingSummary: ProcessingSummary{
			DocumentsAnalyzed: len(valid),
			DocumentsExcluded: excluded,
			LaneStatus: map[string]string{
				"semantic":     semOut.status,
				"temporal":     tempOut.status,
				"relationship": relOut.status,
				"evidence":     evidOut.status,
			},
			CacheHits:   countHits(semOut, tempOut, relOut, evidOut),
			Duration:    time.Since(start),
			CompletedAt: time.Now(),
		},
	}
	return report, nil
}

// screen rejects malformed or oversized documents without aborting the
// batch.
func (o *Orchestrator) screen(docs []model.Document) ([]model.Document, []ExcludedDocument) {
	maxBytes := o.cfg.Pipeline.MaxDocumentBytes
	var valid []model.Document
	var excluded []ExcludedDocument
	for _, doc := range docs {
		var reason string
		switch {
		case doc.ID == "":
			reason = "missing document id"
		case doc.Content == "":
			reason = "empty content"
		case maxBytes > 0 && len(doc.Content) > maxBytes:
			reason = fmt.Sprintf("content exceeds %d bytes", maxBytes)
		}
		if reason == "" {
			valid = append(valid, doc)
			continue
		}
		inputErr := &model.InputError{DocumentID: doc.ID, Reason: reason}
		o.logger.Warn("document excluded", "error", inputErr)
		excluded = append(excluded, ExcludedDocument{DocumentID: doc.ID, Reason: reason})
	}
	return valid, excluded
}

// runLane executes one analysis lane with cache lookup and fallback
// substitution. A failed lane is logged as a StageError and replaced by
// the structurally valid fallback; it never aborts the run.
func runLane[T any](o *Orchestrator, stage, fp string, fallback *T, compute func() (*T, error)) (*T, laneOutcome) {
	cacheable := o.cfg.Pipeline.CacheResults && o.store != nil
	key := cache.ResultKey(stage, fp)

	if cacheable {
		if data, found := o.store.Get(key); found {
			cached := new(T)
			if err := json.Unmarshal(data, cached); err == nil {
				o.logger.Debug("lane served from cache", "stage", stage)
				return cached, laneOutcome{status: StatusOK, cacheHit: true}
			}
			_ = o.store.Delete(key)
		}
	}

	result, err := compute()
	if err != nil {
		stageErr := &model.StageError{Stage: stage, Err: err}
		o.logger.Error("analysis lane failed, substituting fallback", "stage", stage, "error", stageErr)
		return fallback, laneOutcome{status: StatusFallback}
	}

	if cacheable {
		if data, err := json.Marshal(result); err == nil {
			if err := o.store.Set(key, data, 0); err != nil {
				o.logger.Warn("cache store failed", "stage", stage, "error", err)
			}
		}
	}
	return result, laneOutcome{status: StatusOK}
}

// runGroup runs the lanes of one group concurrently and waits for all of
// them, bounded by the shared semaphore.
func runGroup(sem chan struct{}, lanes ...func()) {
	var wg sync.WaitGroup
	for _, lane := range lanes {
		wg.Add(1)
		go func(run func()) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			run()
		}(lane)
	}
	wg.Wait()
}

func newSemaphore(n int) chan struct{} {
	if n <= 0 {
		n = 1
	}
	return make(chan struct{}, n)
}

func countHits(outcomes ...laneOutcome) int {
	hits := 0
	for _, out := range outcomes {
		if out.cacheHit {
			hits++
		}
	}
	return hits
}
