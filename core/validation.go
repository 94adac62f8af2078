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


package core

import "fmt"

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Contents must not be empty
//   - DocumentId must not be empty
//   - Index must not be negative
//
// NOT validated (populated later in the lifecycle):
//   - Vector (can be empty until the vectorizer runs)
//   - TokenCount (informational)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Contents == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}

	if chunk.DocumentId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyDocumentID)
	}

	if chunk.Index < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrNegativeChunkIndex)
	}

	return nil
}

// ValidateBoundaryDecision validates a BoundaryDecision according to domain rules.
//
// Validation rules:
//   - Verdict must be valid (Keep or Merge)
//   - Status must be valid (success, timeout or error)
//   - Confidence must be in [0,1]
//   - BoundaryIndex must not be negative
func ValidateBoundaryDecision(decision *BoundaryDecision) error {
	if decision == nil {
		return fmt.Errorf("%w: decision is nil", ErrInvalidDecision)
	}

	if err := ValidateVerdict(decision.Verdict); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDecision, err)
	}

	if err := ValidateDecisionStatus(decision.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDecision, err)
	}

	if decision.Confidence < 0 || decision.Confidence > 1 {
		return fmt.Errorf("%w: %w", ErrInvalidDecision, ErrConfidenceOutOfRange)
	}

	if decision.BoundaryIndex < 0 {
		return fmt.Errorf("%w: boundary index %d", ErrInvalidDecision, decision.BoundaryIndex)
	}

	return nil
}

// ValidateVerdict validates that a Verdict has a valid value.
func ValidateVerdict(verdict Verdict) error {
	if verdict != VerdictKeep && verdict != VerdictMerge {
		return fmt.Errorf("%w: value %d", ErrInvalidVerdict, verdict)
	}
	return nil
}

// ValidateDecisionStatus validates that a DecisionStatus has a valid value.
func ValidateDecisionStatus(status DecisionStatus) error {
	if status != StatusSuccess && status != StatusTimeout && status != StatusError {
		return fmt.Errorf("%w: value %d", ErrInvalidDecisionStatus, status)
	}
	return nil
}
