package core

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Chunk IDs are derived deterministically from document and position so that
// re-running the engine over identical input yields identical IDs.
type ID uint64

// IDFromContent generates a deterministic ID from text using BLAKE2b hashing.
// Identical input always produces the same ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ChunkID derives the identifier for a chunk from its owning document and its
// position in the final sequence. The downstream embedding store keys vectors
// by this ID, so it must never change for a given (document, position) pair.
func ChunkID(documentID string, index int) ID {
	return IDFromContent(documentID + "#" + strconv.Itoa(index))
}

// Chunk is a contiguous span of document text treated as one retrieval unit.
type Chunk struct {
	Id         ID
	DocumentId string
	Contents   string
	Index      int // Position in the chunk sequence, contiguous from 0
	TokenCount int
	Vector     []float32 // Embedding vector (populated by the vectorizer)
	Metadata   ChunkMetadata
	InsertedAt time.Time // When the chunk was persisted
	UpdatedAt  time.Time // When the chunk was last updated
}

// ChunkMetadata records the configuration that produced a chunk.
// It is attached identically to every chunk of a pipeline run.
type ChunkMetadata struct {
	TargetChunkSize     int
	SimilarityThreshold float64
	OracleModel         string
}

// Verdict is the oracle's answer for a single boundary.
type Verdict int

const (
	// VerdictKeep leaves the boundary in place. This is also the
	// conservative default when no reliable answer could be obtained.
	VerdictKeep Verdict = iota + 1
	// VerdictMerge joins the two chunks adjacent to the boundary.
	VerdictMerge
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictKeep:
		return "keep"
	case VerdictMerge:
		return "merge"
	default:
		return "unknown"
	}
}

// DecisionStatus tags how a boundary decision was obtained.
type DecisionStatus int

const (
	// StatusSuccess means the oracle answered within the timeout.
	StatusSuccess DecisionStatus = iota + 1
	// StatusTimeout means the oracle did not answer in time.
	StatusTimeout
	// StatusError means the oracle failed or returned a malformed answer.
	StatusError
)

// String returns the status name.
func (s DecisionStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusTimeout:
		return "timeout"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// BoundaryCandidate is the bounded-context snippet around the join point of
// two adjacent chunks. BoundaryIndex is the position of the left chunk and
// ranges 0..N-2 for N stage-one chunks.
type BoundaryCandidate struct {
	BoundaryIndex int
	Snippet       string
}

// BoundaryDecision is the reviewed outcome for a single boundary.
// Status must be matched exhaustively at call sites; only StatusSuccess
// carries an oracle-supplied verdict and confidence.
type BoundaryDecision struct {
	BoundaryIndex int
	Verdict       Verdict
	Confidence    float64 // In [0,1]; 0 for timeout/error outcomes
	Status        DecisionStatus
	Latency       time.Duration
}

// ChunkingReport aggregates statistics for one pipeline run.
type ChunkingReport struct {
	InitialChunks  int
	FinalChunks    int
	MergeCount     int
	KeepCount      int
	TimeoutCount   int
	ErrorCount     int           // Includes timeouts
	MeanConfidence float64       // Over successful decisions only
	Elapsed        time.Duration // Wall-clock time of the review phase
}

// SimilarChunk is a chunk match from vector similarity search.
type SimilarChunk struct {
	Chunk *Chunk
	Score float32
}
