package storage

import (
	"context"

	"github.com/poiesic/docchunk/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ChunkRepository provides operations for managing document chunks.
type ChunkRepository interface {
	Repository

	// AddChunks adds one or more chunks to storage. Chunk IDs are
	// content-derived and must already be set. Sets InsertedAt if not
	// already set. Returns the stored chunks with timestamps populated.
	AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// UpdateChunks updates existing chunks and refreshes UpdatedAt.
	// Returns ErrNotFound if any chunk doesn't exist.
	UpdateChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// GetChunk retrieves a single chunk by ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error)

	// GetChunks retrieves multiple chunks by their IDs.
	// Returns only the chunks that exist (no error for missing chunks).
	GetChunks(ctx context.Context, ids ...core.ID) ([]*core.Chunk, error)

	// GetChunksByDocument retrieves all chunks of a document ordered by
	// chunk index. Returns an empty slice for an unknown document.
	GetChunksByDocument(ctx context.Context, documentID string) ([]*core.Chunk, error)

	// DeleteDocumentChunks removes every chunk of a document, including
	// document index entries. Unknown documents are a no-op.
	DeleteDocumentChunks(ctx context.Context, documentID string) error

	// FindSimilar finds chunks similar to the given vector.
	// Returns chunks with similarity >= minSimilarity, up to limit results,
	// ordered by similarity score (highest first). Chunks without vectors
	// are skipped.
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SimilarChunk, error)
}
