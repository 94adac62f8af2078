package badger

import (
	"context"
	"testing"

	"github.com/poiesic/docchunk/core"
	"github.com/poiesic/docchunk/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.ChunkRepository {
	t.Helper()
	repo, err := NewMemoryChunkRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testChunk(documentID string, index int, contents string) *core.Chunk {
	return &core.Chunk{
		Id:         core.ChunkID(documentID, index),
		DocumentId: documentID,
		Contents:   contents,
		Index:      index,
		TokenCount: 1,
	}
}

func TestAddAndGetChunk(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	chunk := testChunk("doc-1", 0, "hello world")
	stored, err := repo.AddChunks(ctx, chunk)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.False(t, stored[0].InsertedAt.IsZero())
	assert.Equal(t, stored[0].InsertedAt, stored[0].UpdatedAt)

	got, err := repo.GetChunk(ctx, chunk.Id)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got.Contents)
	assert.Equal(t, "doc-1", got.DocumentId)
	assert.Equal(t, 0, got.Index)
}

func TestAddChunksValidates(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.AddChunks(context.Background(), &core.Chunk{DocumentId: "doc", Index: 0})
	assert.ErrorIs(t, err, core.ErrInvalidChunk)
}

func TestGetChunkNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetChunk(context.Background(), core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetChunksSkipsMissing(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	chunk := testChunk("doc-1", 0, "present")
	_, err := repo.AddChunks(ctx, chunk)
	require.NoError(t, err)

	got, err := repo.GetChunks(ctx, chunk.Id, core.ID(99999))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, chunk.Id, got[0].Id)
}

func TestUpdateChunks(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	chunk := testChunk("doc-1", 0, "original")
	_, err := repo.AddChunks(ctx, chunk)
	require.NoError(t, err)

	chunk.Vector = []float32{0.5, 0.5}
	updated, err := repo.UpdateChunks(ctx, chunk)
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.False(t, updated[0].UpdatedAt.Before(updated[0].InsertedAt))

	got, err := repo.GetChunk(ctx, chunk.Id)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.5}, got.Vector)
}

func TestUpdateChunksNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.UpdateChunks(context.Background(), testChunk("doc-x", 0, "ghost"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetChunksByDocumentOrdering(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Insert out of order; retrieval must come back in chunk order.
	_, err := repo.AddChunks(ctx,
		testChunk("doc-ord", 2, "third"),
		testChunk("doc-ord", 0, "first"),
		testChunk("doc-ord", 1, "second"),
	)
	require.NoError(t, err)

	// A second document must not leak into the scan.
	_, err = repo.AddChunks(ctx, testChunk("doc-other", 0, "elsewhere"))
	require.NoError(t, err)

	chunks, err := repo.GetChunksByDocument(ctx, "doc-ord")
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "first", chunks[0].Contents)
	assert.Equal(t, "second", chunks[1].Contents)
	assert.Equal(t, "third", chunks[2].Contents)
}

func TestGetChunksByDocumentUnknown(t *testing.T) {
	repo := newTestRepo(t)

	chunks, err := repo.GetChunksByDocument(context.Background(), "no-such-doc")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestDeleteDocumentChunks(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	kept := testChunk("doc-keep", 0, "survivor")
	_, err := repo.AddChunks(ctx,
		testChunk("doc-del", 0, "a"),
		testChunk("doc-del", 1, "b"),
		kept,
	)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteDocumentChunks(ctx, "doc-del"))

	chunks, err := repo.GetChunksByDocument(ctx, "doc-del")
	require.NoError(t, err)
	assert.Empty(t, chunks)

	_, err = repo.GetChunk(ctx, core.ChunkID("doc-del", 0))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	got, err := repo.GetChunk(ctx, kept.Id)
	require.NoError(t, err)
	assert.Equal(t, "survivor", got.Contents)
}

func TestDeleteDocumentChunksUnknownIsNoop(t *testing.T) {
	repo := newTestRepo(t)
	assert.NoError(t, repo.DeleteDocumentChunks(context.Background(), "no-such-doc"))
}

func TestFindSimilar(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	near := testChunk("doc-sim", 0, "near match")
	near.Vector = []float32{1, 0, 0}
	far := testChunk("doc-sim", 1, "far match")
	far.Vector = []float32{0, 1, 0}
	unembedded := testChunk("doc-sim", 2, "no vector yet")

	_, err := repo.AddChunks(ctx, near, far, unembedded)
	require.NoError(t, err)

	results, err := repo.FindSimilar(ctx, []float32{0.9, 0.1, 0}, 0.05, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Highest similarity first; the unembedded chunk is skipped.
	assert.Equal(t, near.Id, results[0].Chunk.Id)
	assert.Equal(t, far.Id, results[1].Chunk.Id)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestFindSimilarRespectsLimitAndThreshold(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		chunk := testChunk("doc-lim", i, "entry")
		chunk.Vector = []float32{1, 0}
		_, err := repo.AddChunks(ctx, chunk)
		require.NoError(t, err)
	}

	results, err := repo.FindSimilar(ctx, []float32{1, 0}, 0.5, 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)

	results, err = repo.FindSimilar(ctx, []float32{0, 1}, 0.5, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}
