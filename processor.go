// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/docsift/outline/logger"
)

// Processor defines the contract for deriving outlines from documents.
type Processor interface {
	Process(ctx context.Context, path string) (Result, error)
	ProcessAll(ctx context.Context, paths []string) ([]DocumentResult, error)
}

// Source is the upstream extraction collaborator: it turns a file into the
// per-line text and font records the pipeline consumes.
type Source interface {
	Load(ctx context.Context, path string) (*Document, error)
}

// DocumentResult is the per-document outcome of a batch run.
type DocumentResult struct {
	Path   string
	Result Result
	Err    error
}

// processor manages outline derivation with concurrency control across
// documents. Within one document the pipeline is strictly sequential and
// shares no state with other documents.
type processor struct {
	cfg    *Config
	sem    *semaphore.Weighted
	source Source
}

// NewProcessor validates the config and creates a new processor reading
// documents through the default PDF source.
func NewProcessor(cfg *Config) *processor {
	return NewProcessorWithSource(cfg, NewPDFSource())
}

// NewProcessorWithSource creates a processor with a caller-supplied document
// source.
func NewProcessorWithSource(cfg *Config, source Source) *processor {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	if cfg.Logger != nil {
		logger.SetLogger(cfg.Logger)
	}

	logger.Debug(fmt.Sprintf("Processor initialized: parsing_mode=%v, detection_mode=%v, max_concurrent_docs=%d, max_workers_per_run=%d",
		cfg.ParsingMode, cfg.DetectionMode, cfg.MaxConcurrentDocs, cfg.MaxWorkersPerRun), true)

	return &processor{
		cfg:    cfg,
		sem:    semaphore.NewWeighted(int64(cfg.MaxConcurrentDocs)),
		source: source,
	}
}

// Process derives the outline of a single document.
func (p *processor) Process(ctx context.Context, path string) (Result, error) {
	if err := p.acquireSlot(ctx); err != nil {
		return Result{}, err
	}
	defer p.sem.Release(1)

	return p.processOne(ctx, path)
}

// ProcessAll derives outlines for a batch of documents using a worker pool,
// returning results in input order. In strict mode the first document error
// fails the batch; in best-effort mode errors are recorded per document.
func (p *processor) ProcessAll(ctx context.Context, paths []string) ([]DocumentResult, error) {
	logger.Debug(fmt.Sprintf("Starting batch: documents=%d", len(paths)), true)

	if err := p.acquireSlot(ctx); err != nil {
		return nil, err
	}
	defer p.sem.Release(1)

	if len(paths) == 0 {
		return nil, nil
	}

	numWorkers := p.adjustWorkerCount(p.cfg.MaxWorkersPerRun)
	jobs := make(chan int, len(paths))
	out := make([]DocumentResult, len(paths))

	var wg sync.WaitGroup
	for w := 1; w <= numWorkers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Debug(fmt.Sprintf("Worker started: id=%d", id), true)
			for i := range jobs {
				res, err := p.processOne(ctx, paths[i])
				out[i] = DocumentResult{Path: paths[i], Result: res, Err: err}
				if err != nil {
					logger.Debug(fmt.Sprintf("Worker: document failed: worker_id=%d path=%s err=%v", id, paths[i], err), true)
				} else {
					logger.Debug(fmt.Sprintf("Worker: document processed: worker_id=%d path=%s headings=%d", id, paths[i], len(res.Outline)), true)
				}
			}
			logger.Debug(fmt.Sprintf("Worker finished: id=%d", id), true)
		}(w)
	}

	for i := range paths {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for _, r := range out {
		if r.Err == nil {
			continue
		}
		if p.cfg.ParsingMode == Strict {
			logger.Debug(fmt.Sprintf("Strict mode error — failing batch: path=%s err=%v", r.Path, r.Err))
			return nil, fmt.Errorf("strict mode failed on %s: %w", r.Path, r.Err)
		}
		failed++
	}
	if failed > 0 {
		logger.Warn(fmt.Sprintf("batch finished with failures: failed=%d total=%d", failed, len(paths)))
	}

	logger.Debug(fmt.Sprintf("Batch completed: documents=%d", len(paths)), true)
	return out, nil
}

// processOne loads a document (with retries) and runs the detection
// pipeline under the per-document timeout.
func (p *processor) processOne(ctx context.Context, path string) (Result, error) {
	logger.Debug(fmt.Sprintf("Starting document: path=%s", path), true)

	var doc *Document
	var err error
	for attempt := 0; attempt <= p.cfg.MaxRetries; attempt++ {
		docCtx, cancel := context.WithTimeout(ctx, p.cfg.WorkerTimeout)
		doc, err = p.source.Load(docCtx, path)
		cancel()
		if err == nil {
			break
		}
		logger.Debug(fmt.Sprintf("Retrying document load: path=%s attempt=%d err=%v", path, attempt, err), true)
	}
	if err != nil {
		logger.Error(fmt.Sprintf("failed to load document: path=%s err=%v", path, err))
		return Result{}, fmt.Errorf("load %s: %w", path, err)
	}

	detector := detectorFor(doc, p.cfg)
	res, err := detector.Detect(doc)
	if err != nil {
		return Result{}, fmt.Errorf("detect %s: %w", path, err)
	}

	logger.Debug(fmt.Sprintf("Document completed: path=%s headings=%d", path, len(res.Outline)), true)
	return res, nil
}

func (p *processor) acquireSlot(ctx context.Context) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire slot: %w", err)
	}
	logger.Debug("Slot acquired successfully", true)
	return nil
}

func (p *processor) adjustWorkerCount(maxWorkers int) int {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if maxWorkers > runtime.NumCPU() {
		maxWorkers = runtime.NumCPU()
	}
	logger.Debug(fmt.Sprintf("Adjusted worker count: workers=%d", maxWorkers), true)
	return maxWorkers
}
