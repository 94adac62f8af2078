package core

import (
	"errors"
	"testing"
)

func TestValidateChunk(t *testing.T) {
	tests := []struct {
		name    string
		chunk   *Chunk
		wantErr error
	}{
		{
			name: "valid chunk",
			chunk: &Chunk{
				Id:         ChunkID("doc-1", 0),
				DocumentId: "doc-1",
				Contents:   "Hello world",
				Index:      0,
			},
			wantErr: nil,
		},
		{
			name: "valid chunk with empty vector",
			chunk: &Chunk{
				Id:         ChunkID("doc-1", 2),
				DocumentId: "doc-1",
				Contents:   "Some content",
				Index:      2,
				Vector:     nil,
			},
			wantErr: nil,
		},
		{
			name:    "nil chunk",
			chunk:   nil,
			wantErr: ErrInvalidChunk,
		},
		{
			name: "empty content",
			chunk: &Chunk{
				DocumentId: "doc-1",
				Contents:   "",
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "empty document id",
			chunk: &Chunk{
				DocumentId: "",
				Contents:   "Some content",
			},
			wantErr: ErrEmptyDocumentID,
		},
		{
			name: "negative index",
			chunk: &Chunk{
				DocumentId: "doc-1",
				Contents:   "Some content",
				Index:      -1,
			},
			wantErr: ErrNegativeChunkIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunk(tt.chunk)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateChunk() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateChunk() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBoundaryDecision(t *testing.T) {
	tests := []struct {
		name     string
		decision *BoundaryDecision
		wantErr  error
	}{
		{
			name: "valid successful decision",
			decision: &BoundaryDecision{
				BoundaryIndex: 0,
				Verdict:       VerdictMerge,
				Confidence:    0.9,
				Status:        StatusSuccess,
			},
			wantErr: nil,
		},
		{
			name: "valid conservative default",
			decision: &BoundaryDecision{
				BoundaryIndex: 3,
				Verdict:       VerdictKeep,
				Confidence:    0,
				Status:        StatusTimeout,
			},
			wantErr: nil,
		},
		{
			name:     "nil decision",
			decision: nil,
			wantErr:  ErrInvalidDecision,
		},
		{
			name: "invalid verdict",
			decision: &BoundaryDecision{
				Verdict: Verdict(0),
				Status:  StatusSuccess,
			},
			wantErr: ErrInvalidVerdict,
		},
		{
			name: "invalid status",
			decision: &BoundaryDecision{
				Verdict: VerdictKeep,
				Status:  DecisionStatus(42),
			},
			wantErr: ErrInvalidDecisionStatus,
		},
		{
			name: "confidence above one",
			decision: &BoundaryDecision{
				Verdict:    VerdictMerge,
				Status:     StatusSuccess,
				Confidence: 1.5,
			},
			wantErr: ErrConfidenceOutOfRange,
		},
		{
			name: "negative confidence",
			decision: &BoundaryDecision{
				Verdict:    VerdictKeep,
				Status:     StatusError,
				Confidence: -0.1,
			},
			wantErr: ErrConfidenceOutOfRange,
		},
		{
			name: "negative boundary index",
			decision: &BoundaryDecision{
				BoundaryIndex: -1,
				Verdict:       VerdictKeep,
				Status:        StatusSuccess,
			},
			wantErr: ErrInvalidDecision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBoundaryDecision(tt.decision)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateBoundaryDecision() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateBoundaryDecision() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
