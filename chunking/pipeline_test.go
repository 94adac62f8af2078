package chunking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/docchunk/ai"
	"github.com/poiesic/docchunk/ai/mock"
	"github.com/poiesic/docchunk/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, provider ai.AIProvider, cfg *Config) *Engine {
	t.Helper()
	engine, err := NewEngine(provider, cfg)
	require.NoError(t, err)
	t.Cleanup(engine.Release)
	return engine
}

func TestNewEngineRequiresProvider(t *testing.T) {
	_, err := NewEngine(nil, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	_, err := NewEngine(mock.NewMockProvider(), NewConfig(WithTargetChunkSize(0)))
	assert.Error(t, err)
}

func TestChunkDocumentEmptyInput(t *testing.T) {
	engine := newTestEngine(t, mock.NewMockProvider(), nil)

	_, err := engine.ChunkDocument(context.Background(), "doc", "   ")
	assert.ErrorIs(t, err, core.ErrEmptyDocument)

	_, err = engine.ChunkDocument(context.Background(), "", "text")
	assert.ErrorIs(t, err, core.ErrEmptyDocumentID)
}

func TestChunkDocumentEndToEnd(t *testing.T) {
	provider := mock.NewMockProvider()
	cfg := NewConfig(
		WithTargetChunkSize(120),
		WithMaxConcurrentReviews(4),
		WithReviewTimeout(time.Second),
	)
	engine := newTestEngine(t, provider, cfg)

	text := strings.Repeat("the mitochondria is the powerhouse of the cell. ", 30)
	result, err := engine.ChunkDocument(context.Background(), "doc-e2e", text)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, "doc-e2e", result.DocumentId)
	require.NotEmpty(t, result.Chunks)

	assert.Equal(t, result.Report.FinalChunks, len(result.Chunks))
	assert.GreaterOrEqual(t, result.Report.InitialChunks, result.Report.FinalChunks)

	for i, chunk := range result.Chunks {
		assert.Equal(t, i, chunk.Index)
		assert.Equal(t, core.ChunkID("doc-e2e", i), chunk.Id)
		assert.Equal(t, cfg.TargetChunkSize, chunk.Metadata.TargetChunkSize)
		assert.Equal(t, cfg.OracleModel, chunk.Metadata.OracleModel)
		assert.Positive(t, chunk.TokenCount)
	}
}

func TestChunkDocumentDeterministicIDs(t *testing.T) {
	text := strings.Repeat("consistent input yields consistent identifiers. ", 25)
	cfg := NewConfig(WithTargetChunkSize(100), WithReviewTimeout(time.Second))

	run := func() []core.ID {
		engine := newTestEngine(t, mock.NewMockProvider(), cfg)
		result, err := engine.ChunkDocument(context.Background(), "doc-det", text)
		require.NoError(t, err)
		ids := make([]core.ID, len(result.Chunks))
		for i, chunk := range result.Chunks {
			ids[i] = chunk.Id
		}
		return ids
	}

	assert.Equal(t, run(), run())
}

func TestChunkDocumentMergesOnVerdict(t *testing.T) {
	judge := mock.NewMockBoundaryJudge()
	judge.JudgeBoundaryFunc = func(ctx context.Context, snippet string) (ai.BoundaryOpinion, error) {
		return ai.BoundaryOpinion{Merge: true, Confidence: 0.95}, nil
	}
	provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), judge)

	cfg := NewConfig(WithTargetChunkSize(60), WithReviewTimeout(time.Second))
	engine := newTestEngine(t, provider, cfg)

	text := strings.Repeat("all of this belongs together. ", 20)
	result, err := engine.ChunkDocument(context.Background(), "doc-merge", text)
	require.NoError(t, err)

	// Every boundary merged: one final chunk regardless of the split count.
	require.Len(t, result.Chunks, 1)
	assert.Greater(t, result.Report.InitialChunks, 1)
	assert.Equal(t, 1, result.Report.FinalChunks)
	assert.Equal(t, result.Report.InitialChunks-1, result.Report.MergeCount)
}

func TestChunkDocumentDegradesWhenOracleUnavailable(t *testing.T) {
	judge := mock.NewMockBoundaryJudge()
	judge.JudgeBoundaryFunc = func(ctx context.Context, snippet string) (ai.BoundaryOpinion, error) {
		return ai.BoundaryOpinion{}, errors.New("connection refused")
	}
	provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), judge)

	cfg := NewConfig(WithTargetChunkSize(60), WithReviewTimeout(time.Second))
	engine := newTestEngine(t, provider, cfg)

	text := strings.Repeat("independent sentence here. ", 20)
	result, err := engine.ChunkDocument(context.Background(), "doc-degrade", text)
	require.NoError(t, err)

	// Total oracle failure degrades to the stage-one sequence intact.
	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, result.Report.InitialChunks, result.Report.FinalChunks)
	assert.Equal(t, result.Report.InitialChunks-1, result.Report.ErrorCount)
	assert.Zero(t, result.Report.MergeCount)
	assert.Zero(t, result.Report.MeanConfidence)
}

func TestChunkDocumentPreservesContent(t *testing.T) {
	provider := mock.NewMockProvider()
	cfg := NewConfig(WithTargetChunkSize(80), WithReviewTimeout(time.Second))
	engine := newTestEngine(t, provider, cfg)

	text := "lorem ipsum dolor sit amet consectetur adipiscing elit sed do " +
		"eiusmod tempor incididunt ut labore et dolore magna aliqua"
	result, err := engine.ChunkDocument(context.Background(), "doc-content", text)
	require.NoError(t, err)

	var joined strings.Builder
	for i, chunk := range result.Chunks {
		if i > 0 {
			joined.WriteByte(' ')
		}
		joined.WriteString(chunk.Contents)
	}
	// All input words survive, in order.
	assert.Equal(t, strings.Fields(text), strings.Fields(joined.String()))
}
