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

import "errors"

// Domain validation errors
var (
	// ErrEmptyDocument indicates the input text is blank or absent.
	ErrEmptyDocument = errors.New("document text cannot be empty")

	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrEmptyContent indicates the Contents field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyDocumentID indicates the DocumentId field is empty.
	ErrEmptyDocumentID = errors.New("document id cannot be empty")

	// ErrNegativeChunkIndex indicates a chunk index below zero.
	ErrNegativeChunkIndex = errors.New("chunk index cannot be negative")

	// ErrInvalidVerdict indicates an invalid Verdict value.
	ErrInvalidVerdict = errors.New("invalid verdict")

	// ErrInvalidDecisionStatus indicates an invalid DecisionStatus value.
	ErrInvalidDecisionStatus = errors.New("invalid decision status")

	// ErrInvalidDecision indicates a BoundaryDecision failed validation.
	ErrInvalidDecision = errors.New("invalid boundary decision")

	// ErrConfidenceOutOfRange indicates a confidence outside [0,1].
	ErrConfidenceOutOfRange = errors.New("confidence must be between 0 and 1")

	// ErrDecisionCountMismatch indicates the decision list does not line up
	// with the chunk sequence. This is a caller contract violation.
	ErrDecisionCountMismatch = errors.New("decision count must equal chunk count minus one")
)
