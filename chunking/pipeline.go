// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package chunking

import (
	"context"
	"log/slog"

	"github.com/poiesic/docchunk/ai"
	"github.com/poiesic/docchunk/core"
)

// Status reports how a pipeline run ended.
type Status string

const (
	// StatusCompleted means the run produced a definite chunk list.
	StatusCompleted Status = "completed"
	// StatusError means the run failed before producing chunks.
	StatusError Status = "error"
)

// Result is the outcome of one pipeline run. On success Chunks holds the
// final ordered sequence; chunk IDs are never renumbered after this handoff
// because the downstream embedding store keys vectors by them.
type Result struct {
	Status     Status
	DocumentId string
	Chunks     []*core.Chunk
	Report     core.ChunkingReport
}

// Engine runs the two-stage chunking pipeline:
// split, extract boundaries, review concurrently, merge.
//
// An Engine is constructed once with its dependencies and reused across
// runs; runs do not share mutable state with each other.
type Engine struct {
	splitter *Splitter
	reviewer *Reviewer
	config   *Config
	tokens   TokenCounter
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	logger *slog.Logger
	tokens TokenCounter
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTokenCounter sets the token counter used for chunk token counts.
// Default is WhitespaceTokenCounter.
func WithTokenCounter(tokens TokenCounter) Option {
	return func(o *engineOptions) {
		if tokens != nil {
			o.tokens = tokens
		}
	}
}

// NewEngine creates a chunking engine over the given AI provider.
// A nil config uses DefaultConfig().
func NewEngine(provider ai.AIProvider, config *Config, opts ...Option) (*Engine, error) {
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	options := &engineOptions{
		logger: slog.Default(),
		tokens: WhitespaceTokenCounter,
	}
	for _, opt := range opts {
		opt(options)
	}

	splitter, err := NewSplitter(config, provider.Embedder(), options.tokens, options.logger)
	if err != nil {
		return nil, err
	}

	agent, err := NewBoundaryAgent(provider.BoundaryJudge(), config.ReviewTimeout, options.logger)
	if err != nil {
		return nil, err
	}

	reviewer, err := NewReviewer(agent, config.MaxConcurrentReviews, options.logger)
	if err != nil {
		return nil, err
	}

	return &Engine{
		splitter: splitter,
		reviewer: reviewer,
		config:   config,
		tokens:   options.tokens,
		logger:   options.logger.With("component", "chunking-engine"),
	}, nil
}

// ChunkDocument runs the full pipeline for one document. On non-empty input
// it always returns a definite chunk list: if the oracle is wholly
// unavailable, every boundary degrades to keep and the output equals the
// stage-one sequence. Errors are returned only for empty input or a merge
// contract violation; oracle failures surface solely through the report.
func (e *Engine) ChunkDocument(ctx context.Context, documentID, text string) (*Result, error) {
	logger := e.logger.With("document", documentID)
	logger.Debug("pipeline started")

	chunks, err := e.splitter.Split(ctx, documentID, text)
	if err != nil {
		logger.Error("split failed", "err", err)
		return nil, err
	}
	logger.Debug("split complete", "chunks", len(chunks))

	candidates := ExtractBoundaryCandidates(chunks, e.config.BoundaryWindow)
	logger.Debug("boundaries extracted", "candidates", len(candidates))

	decisions, report := e.reviewer.Review(ctx, candidates)

	metadata := core.ChunkMetadata{
		TargetChunkSize:     e.config.TargetChunkSize,
		SimilarityThreshold: e.config.SimilarityThreshold,
		OracleModel:         e.config.OracleModel,
	}
	merged, err := Merge(chunks, decisions, metadata, e.tokens)
	if err != nil {
		logger.Error("merge failed", "err", err)
		return nil, err
	}

	report.InitialChunks = len(chunks)
	report.FinalChunks = len(merged)

	logger.Info("pipeline complete",
		"initial", report.InitialChunks,
		"final", report.FinalChunks,
		"merged", report.MergeCount,
		"errors", report.ErrorCount)

	return &Result{
		Status:     StatusCompleted,
		DocumentId: documentID,
		Chunks:     merged,
		Report:     report,
	}, nil
}

// Release frees the engine's worker pool.
// The engine should not be used after calling Release.
func (e *Engine) Release() {
	e.reviewer.Release()
}
