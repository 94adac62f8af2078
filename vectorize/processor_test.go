package vectorize

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/docchunk/ai/mock"
	"github.com/poiesic/docchunk/core"
	"github.com/poiesic/docchunk/storage"
	"github.com/poiesic/docchunk/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) storage.ChunkRepository {
	t.Helper()
	repo, err := badger.NewMemoryChunkRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func storeChunks(t *testing.T, repo storage.ChunkRepository, documentID string, contents ...string) []*core.Chunk {
	t.Helper()
	chunks := make([]*core.Chunk, len(contents))
	for i, c := range contents {
		chunks[i] = &core.Chunk{
			Id:         core.ChunkID(documentID, i),
			DocumentId: documentID,
			Contents:   c,
			Index:      i,
			TokenCount: 1,
		}
	}
	_, err := repo.AddChunks(context.Background(), chunks...)
	require.NoError(t, err)
	return chunks
}

func TestProcessorAttachesVectors(t *testing.T) {
	repo := newTestStore(t)
	storeChunks(t, repo, "doc-1", "first chunk", "second chunk", "third chunk")

	processor := NewProcessor(repo, mock.NewMockEmbedder(), 3, time.Millisecond, nil)
	require.NoError(t, processor.ProcessDocument(context.Background(), "doc-1"))

	chunks, err := repo.GetChunksByDocument(context.Background(), "doc-1")
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	for _, chunk := range chunks {
		assert.NotEmpty(t, chunk.Vector)
	}

	assert.NoError(t, processor.Verify(context.Background(), "doc-1"))
}

func TestProcessorEmptyBatch(t *testing.T) {
	repo := newTestStore(t)
	processor := NewProcessor(repo, mock.NewMockEmbedder(), 3, time.Millisecond, nil)
	assert.NoError(t, processor.Process(context.Background(), nil))
}

func TestProcessorRetriesTransientFailures(t *testing.T) {
	repo := newTestStore(t)
	storeChunks(t, repo, "doc-2", "content")

	embedder := mock.NewMockEmbedder()
	attempts := 0
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("transient")
		}
		out := make([][]float32, len(texts))
		for i := range out {
			out[i] = []float32{1, 0}
		}
		return out, nil
	}

	processor := NewProcessor(repo, embedder, 5, time.Millisecond, nil)
	require.NoError(t, processor.ProcessDocument(context.Background(), "doc-2"))
	assert.Equal(t, 3, attempts)
}

func TestProcessorExhaustedRetries(t *testing.T) {
	repo := newTestStore(t)
	storeChunks(t, repo, "doc-3", "content")

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("down")
	}

	processor := NewProcessor(repo, embedder, 2, time.Millisecond, nil)
	assert.Error(t, processor.ProcessDocument(context.Background(), "doc-3"))
}

func TestProcessorCountMismatch(t *testing.T) {
	repo := newTestStore(t)
	storeChunks(t, repo, "doc-4", "one", "two")

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1}}, nil
	}

	processor := NewProcessor(repo, embedder, 1, time.Millisecond, nil)
	err := processor.ProcessDocument(context.Background(), "doc-4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
}

func TestVerifyDetectsMissingVector(t *testing.T) {
	repo := newTestStore(t)
	storeChunks(t, repo, "doc-5", "never embedded")

	processor := NewProcessor(repo, mock.NewMockEmbedder(), 1, time.Millisecond, nil)
	assert.ErrorIs(t, processor.Verify(context.Background(), "doc-5"), ErrMissingVector)
}

func TestVerifyDetectsDimensionMismatch(t *testing.T) {
	repo := newTestStore(t)
	chunks := storeChunks(t, repo, "doc-6", "a", "b")

	chunks[0].Vector = []float32{1, 0}
	chunks[1].Vector = []float32{1, 0, 0}
	_, err := repo.UpdateChunks(context.Background(), chunks...)
	require.NoError(t, err)

	processor := NewProcessor(repo, mock.NewMockEmbedder(), 1, time.Millisecond, nil)
	assert.ErrorIs(t, processor.Verify(context.Background(), "doc-6"), ErrDimensionMismatch)
}
