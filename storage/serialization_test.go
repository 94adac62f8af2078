package storage

import (
	"testing"
	"time"

	"github.com/poiesic/docchunk/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	ids := []core.ID{0, 1, 255, 1 << 20, 1<<63 - 1, core.IDFromContent("doc#0")}

	for _, id := range ids {
		data := MarshalID(id)
		require.NotEmpty(t, data)

		decoded, err := UnmarshalID(data)
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}

func TestUnmarshalIDTruncated(t *testing.T) {
	_, err := UnmarshalID(nil)
	assert.Error(t, err)
}

func TestMarshalUnmarshalChunk(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	chunk := &core.Chunk{
		Id:         core.ChunkID("doc-7", 2),
		DocumentId: "doc-7",
		Contents:   "the quick brown fox",
		Index:      2,
		TokenCount: 4,
		Vector:     []float32{0.1, -0.5, 0.9},
		Metadata: core.ChunkMetadata{
			TargetChunkSize:     1600,
			SimilarityThreshold: 0.72,
			OracleModel:         "qwen2.5:3b",
		},
		InsertedAt: now,
		UpdatedAt:  now.Add(time.Minute),
	}

	data := MarshalChunk(chunk)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalChunk(data)
	require.NoError(t, err)
	assert.Equal(t, chunk, decoded)
}

func TestMarshalUnmarshalChunkWithoutVector(t *testing.T) {
	chunk := &core.Chunk{
		Id:         core.ChunkID("doc-8", 0),
		DocumentId: "doc-8",
		Contents:   "unembedded chunk",
		TokenCount: 2,
	}

	decoded, err := UnmarshalChunk(MarshalChunk(chunk))
	require.NoError(t, err)
	assert.Empty(t, decoded.Vector)
	assert.Equal(t, chunk.Contents, decoded.Contents)
	assert.Equal(t, chunk.Id, decoded.Id)
}

func TestUnmarshalChunkCorrupted(t *testing.T) {
	_, err := UnmarshalChunk([]byte{0xff})
	assert.Error(t, err)
}
