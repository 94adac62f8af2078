package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "test content",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestChunkID(t *testing.T) {
	// Stable across calls
	if ChunkID("doc-1", 0) != ChunkID("doc-1", 0) {
		t.Errorf("ChunkID() not stable for identical input")
	}

	// Distinct per position
	if ChunkID("doc-1", 0) == ChunkID("doc-1", 1) {
		t.Errorf("ChunkID() produced same ID for different positions")
	}

	// Distinct per document
	if ChunkID("doc-1", 0) == ChunkID("doc-2", 0) {
		t.Errorf("ChunkID() produced same ID for different documents")
	}

	// Position encoding must not be ambiguous between documents
	if ChunkID("doc-1", 11) == ChunkID("doc-11", 1) {
		t.Errorf("ChunkID() collision between document and position encoding")
	}
}

func TestVerdict_String(t *testing.T) {
	tests := []struct {
		verdict Verdict
		want    string
	}{
		{VerdictKeep, "keep"},
		{VerdictMerge, "merge"},
		{Verdict(0), "unknown"},
		{Verdict(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.verdict.String(); got != tt.want {
			t.Errorf("Verdict(%d).String() = %v, want %v", tt.verdict, got, tt.want)
		}
	}
}

func TestDecisionStatus_String(t *testing.T) {
	tests := []struct {
		status DecisionStatus
		want   string
	}{
		{StatusSuccess, "success"},
		{StatusTimeout, "timeout"},
		{StatusError, "error"},
		{DecisionStatus(0), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("DecisionStatus(%d).String() = %v, want %v", tt.status, got, tt.want)
		}
	}
}
