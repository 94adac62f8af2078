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
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/docchunk/core"
)

// Reviewer fans boundary reviews out over a fixed-size worker pool and
// collects the decisions back in boundary order. A single call's failure
// never aborts the batch; it degrades to the agent's conservative default.
type Reviewer struct {
	agent  *BoundaryAgent
	pool   *ants.Pool
	logger *slog.Logger
}

// NewReviewer creates a reviewer with a worker pool of size maxConcurrent.
// The pool is created once and reused across Review calls; at most
// maxConcurrent oracle calls are in flight at any instant.
func NewReviewer(agent *BoundaryAgent, maxConcurrent int, logger *slog.Logger) (*Reviewer, error) {
	if agent == nil {
		return nil, ErrAgentRequired
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	pool, err := ants.NewPool(maxConcurrent)
	if err != nil {
		return nil, err
	}

	return &Reviewer{
		agent:  agent,
		pool:   pool,
		logger: logger.With("component", "reviewer"),
	}, nil
}

// Review obtains a decision for every candidate. Each candidate is processed
// by exactly one worker which writes into its own slot of the result slice,
// so the returned list is ordered by boundary index regardless of completion
// order. With no candidates it returns an empty list and zeroed statistics
// without touching the oracle.
func (r *Reviewer) Review(ctx context.Context, candidates []core.BoundaryCandidate) ([]core.BoundaryDecision, core.ChunkingReport) {
	if len(candidates) == 0 {
		return []core.BoundaryDecision{}, core.ChunkingReport{}
	}

	start := time.Now()
	decisions := make([]core.BoundaryDecision, len(candidates))

	var wg sync.WaitGroup
	for i, candidate := range candidates {
		slot := i
		cand := candidate

		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			decisions[slot] = r.agent.Review(ctx, cand)
		})
		if err != nil {
			// Pool rejected the task (e.g. released); degrade this
			// boundary to the conservative default.
			r.logger.Error("failed to submit boundary review", "boundary", cand.BoundaryIndex, "err", err)
			decisions[slot] = core.BoundaryDecision{
				BoundaryIndex: cand.BoundaryIndex,
				Verdict:       core.VerdictKeep,
				Confidence:    0,
				Status:        core.StatusError,
			}
			wg.Done()
		}
	}
	wg.Wait()

	report := summarizeDecisions(decisions, time.Since(start))
	r.logger.Info("boundary review complete",
		"boundaries", len(decisions),
		"merge", report.MergeCount,
		"keep", report.KeepCount,
		"errors", report.ErrorCount,
		"elapsed", report.Elapsed)

	return decisions, report
}

// Release frees the worker pool. The reviewer must not be used afterwards.
func (r *Reviewer) Release() {
	r.pool.Release()
}

// summarizeDecisions aggregates batch statistics. Mean confidence covers
// successful decisions only; timeouts count toward the error total.
func summarizeDecisions(decisions []core.BoundaryDecision, elapsed time.Duration) core.ChunkingReport {
	report := core.ChunkingReport{Elapsed: elapsed}

	var confidenceSum float64
	var successCount int

	for _, decision := range decisions {
		switch decision.Status {
		case core.StatusSuccess:
			successCount++
			confidenceSum += decision.Confidence
			if decision.Verdict == core.VerdictMerge {
				report.MergeCount++
			} else {
				report.KeepCount++
			}
		case core.StatusTimeout:
			report.TimeoutCount++
			report.ErrorCount++
		case core.StatusError:
			report.ErrorCount++
		}
	}

	if successCount > 0 {
		report.MeanConfidence = confidenceSum / float64(successCount)
	}
	return report
}
