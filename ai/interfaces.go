package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// BoundaryJudge renders a merge-or-keep opinion for a chunk boundary.
// Implementations must be thread-safe for concurrent use; the reviewer
// issues many calls against a single judge at once.
type BoundaryJudge interface {
	// JudgeBoundary examines a boundary snippet (tail of the left chunk,
	// a marker, head of the right chunk) and answers whether the two
	// chunks belong together. Implementations must honor ctx cancellation.
	// Returns an error if no reliable opinion could be obtained; the
	// caller is expected to fall back to keeping the boundary.
	JudgeBoundary(ctx context.Context, snippet string) (BoundaryOpinion, error)
}

// BoundaryOpinion is the oracle's raw answer for a single boundary.
type BoundaryOpinion struct {
	// Merge is true when the two chunks around the boundary should be
	// joined into one.
	Merge bool

	// Confidence is the oracle's self-reported certainty in [0,1].
	Confidence float64
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// BoundaryJudge instances, ensuring they share configuration appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// BoundaryJudge returns the boundary decision service.
	// The returned BoundaryJudge is safe for concurrent use.
	BoundaryJudge() BoundaryJudge

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
