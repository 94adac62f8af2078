package chunking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/docchunk/ai"
	"github.com/poiesic/docchunk/ai/mock"
	"github.com/poiesic/docchunk/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundaryAgentRequiresJudge(t *testing.T) {
	_, err := NewBoundaryAgent(nil, time.Second, nil)
	assert.ErrorIs(t, err, ErrJudgeRequired)
}

func TestBoundaryAgentSuccess(t *testing.T) {
	judge := mock.NewMockBoundaryJudge()
	judge.JudgeBoundaryFunc = func(ctx context.Context, snippet string) (ai.BoundaryOpinion, error) {
		return ai.BoundaryOpinion{Merge: true, Confidence: 0.9}, nil
	}

	agent, err := NewBoundaryAgent(judge, time.Second, nil)
	require.NoError(t, err)

	decision := agent.Review(context.Background(), core.BoundaryCandidate{BoundaryIndex: 3, Snippet: "a|b"})
	assert.Equal(t, 3, decision.BoundaryIndex)
	assert.Equal(t, core.VerdictMerge, decision.Verdict)
	assert.Equal(t, core.StatusSuccess, decision.Status)
	assert.Equal(t, 0.9, decision.Confidence)
	assert.Greater(t, decision.Latency, time.Duration(0))
}

func TestBoundaryAgentClampsConfidence(t *testing.T) {
	judge := mock.NewMockBoundaryJudge()
	judge.JudgeBoundaryFunc = func(ctx context.Context, snippet string) (ai.BoundaryOpinion, error) {
		return ai.BoundaryOpinion{Merge: false, Confidence: 1.8}, nil
	}

	agent, err := NewBoundaryAgent(judge, time.Second, nil)
	require.NoError(t, err)

	decision := agent.Review(context.Background(), core.BoundaryCandidate{})
	assert.Equal(t, core.StatusSuccess, decision.Status)
	assert.Equal(t, 1.0, decision.Confidence)
}

func TestBoundaryAgentTimeout(t *testing.T) {
	judge := mock.NewMockBoundaryJudge()
	judge.Delay = 500 * time.Millisecond

	agent, err := NewBoundaryAgent(judge, 20*time.Millisecond, nil)
	require.NoError(t, err)

	start := time.Now()
	decision := agent.Review(context.Background(), core.BoundaryCandidate{BoundaryIndex: 1})
	elapsed := time.Since(start)

	assert.Equal(t, core.StatusTimeout, decision.Status)
	assert.Equal(t, core.VerdictKeep, decision.Verdict)
	assert.Zero(t, decision.Confidence)
	assert.Equal(t, 1, decision.BoundaryIndex)
	// The hard timeout fires without waiting for the judge to return.
	assert.Less(t, elapsed, 400*time.Millisecond)
}

func TestBoundaryAgentError(t *testing.T) {
	judge := mock.NewMockBoundaryJudge()
	judge.JudgeBoundaryFunc = func(ctx context.Context, snippet string) (ai.BoundaryOpinion, error) {
		return ai.BoundaryOpinion{}, errors.New("model not loaded")
	}

	agent, err := NewBoundaryAgent(judge, time.Second, nil)
	require.NoError(t, err)

	decision := agent.Review(context.Background(), core.BoundaryCandidate{BoundaryIndex: 2})
	assert.Equal(t, core.StatusError, decision.Status)
	assert.Equal(t, core.VerdictKeep, decision.Verdict)
	assert.Zero(t, decision.Confidence)
	assert.Equal(t, 2, decision.BoundaryIndex)
}

func TestBoundaryAgentCanceledContext(t *testing.T) {
	judge := mock.NewMockBoundaryJudge()
	judge.Delay = time.Second

	agent, err := NewBoundaryAgent(judge, 5*time.Second, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	decision := agent.Review(ctx, core.BoundaryCandidate{})
	assert.Equal(t, core.VerdictKeep, decision.Verdict)
	assert.Equal(t, core.StatusError, decision.Status)
}
