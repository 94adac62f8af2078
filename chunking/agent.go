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
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/docchunk/ai"
	"github.com/poiesic/docchunk/core"
)

// BoundaryAgent wraps one oracle call per boundary under a fixed timeout.
// It never returns an error: any failure becomes the conservative keep
// verdict with a tagged status. Merging under uncertainty would destroy a
// potential split irreversibly; keeping a split is cheaply correctable.
type BoundaryAgent struct {
	judge   ai.BoundaryJudge
	timeout time.Duration
	logger  *slog.Logger
}

// NewBoundaryAgent creates a boundary agent over the given judge.
func NewBoundaryAgent(judge ai.BoundaryJudge, timeout time.Duration, logger *slog.Logger) (*BoundaryAgent, error) {
	if judge == nil {
		return nil, ErrJudgeRequired
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BoundaryAgent{
		judge:   judge,
		timeout: timeout,
		logger:  logger.With("component", "boundary-agent"),
	}, nil
}

type judgeResult struct {
	opinion ai.BoundaryOpinion
	err     error
}

// Review obtains a decision for one boundary candidate. The oracle call runs
// in its own goroutine so the timeout holds even against a judge that
// ignores context cancellation. Latency is recorded on every outcome.
func (a *BoundaryAgent) Review(ctx context.Context, candidate core.BoundaryCandidate) core.BoundaryDecision {
	start := time.Now()

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resultCh := make(chan judgeResult, 1)
	go func() {
		opinion, err := a.judge.JudgeBoundary(callCtx, candidate.Snippet)
		resultCh <- judgeResult{opinion: opinion, err: err}
	}()

	var result judgeResult
	select {
	case result = <-resultCh:
	case <-callCtx.Done():
		result = judgeResult{err: callCtx.Err()}
	}
	latency := time.Since(start)

	switch {
	case result.err == nil:
		verdict := core.VerdictKeep
		if result.opinion.Merge {
			verdict = core.VerdictMerge
		}
		confidence := result.opinion.Confidence
		if confidence < 0 {
			confidence = 0
		}
		if confidence > 1 {
			confidence = 1
		}
		return core.BoundaryDecision{
			BoundaryIndex: candidate.BoundaryIndex,
			Verdict:       verdict,
			Confidence:    confidence,
			Status:        core.StatusSuccess,
			Latency:       latency,
		}

	case errors.Is(result.err, context.DeadlineExceeded):
		a.logger.Warn("boundary review timed out, keeping boundary",
			"boundary", candidate.BoundaryIndex, "timeout", a.timeout)
		return core.BoundaryDecision{
			BoundaryIndex: candidate.BoundaryIndex,
			Verdict:       core.VerdictKeep,
			Confidence:    0,
			Status:        core.StatusTimeout,
			Latency:       latency,
		}

	default:
		a.logger.Warn("boundary review failed, keeping boundary",
			"boundary", candidate.BoundaryIndex, "err", result.err)
		return core.BoundaryDecision{
			BoundaryIndex: candidate.BoundaryIndex,
			Verdict:       core.VerdictKeep,
			Confidence:    0,
			Status:        core.StatusError,
			Latency:       latency,
		}
	}
}
