package vectorize

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/docchunk/ai"
	"github.com/poiesic/docchunk/core"
	"github.com/poiesic/docchunk/storage"
)

// Processor attaches embeddings to stored chunks. Vectors are keyed by chunk
// ID, so re-running a document produces vectors for the same IDs the pipeline
// emitted. All vectors are normalized before storage so similarity search can
// use plain dot products.
type Processor struct {
	repo           storage.ChunkRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

// NewProcessor creates a vectorization processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewProcessor(repo storage.ChunkRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
		logger:         logger.With("component", "vectorizer"),
	}
}

// Process generates embeddings for a batch of chunks and updates them in
// storage. Chunks and embeddings correspond 1:1 by position.
func (p *Processor) Process(ctx context.Context, chunks []*core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Contents
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = p.embedder.EmbedTexts(ctx, texts)
		return err
	}, p.maxRetries, p.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", p.maxRetries, err)
	}

	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(embeddings))
	}

	for i := range chunks {
		chunks[i].Vector = NormalizeVector(embeddings[i])
	}

	if _, err := p.repo.UpdateChunks(ctx, chunks...); err != nil {
		return fmt.Errorf("failed to update chunks: %w", err)
	}

	p.logger.Debug("chunks vectorized", "count", len(chunks))
	return nil
}

// ProcessDocument embeds every stored chunk of a document.
func (p *Processor) ProcessDocument(ctx context.Context, documentID string) error {
	chunks, err := p.repo.GetChunksByDocument(ctx, documentID)
	if err != nil {
		return err
	}
	return p.Process(ctx, chunks)
}

// Verify checks the stored chunks of a document for vector consistency:
// every chunk carries a vector, all vectors share one dimension, and each
// chunk ID matches its document and position. Returns the first violation.
func (p *Processor) Verify(ctx context.Context, documentID string) error {
	chunks, err := p.repo.GetChunksByDocument(ctx, documentID)
	if err != nil {
		return err
	}

	dimension := -1
	for _, chunk := range chunks {
		if len(chunk.Vector) == 0 {
			return fmt.Errorf("%w: document %s chunk %d", ErrMissingVector, documentID, chunk.Index)
		}
		if dimension == -1 {
			dimension = len(chunk.Vector)
		} else if len(chunk.Vector) != dimension {
			return fmt.Errorf("%w: document %s chunk %d has %d, expected %d",
				ErrDimensionMismatch, documentID, chunk.Index, len(chunk.Vector), dimension)
		}
		if chunk.Id != core.ChunkID(chunk.DocumentId, chunk.Index) {
			return fmt.Errorf("%w: document %s chunk %d", ErrIDMismatch, documentID, chunk.Index)
		}
	}
	return nil
}
