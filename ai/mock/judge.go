package mock

import (
	"context"
	"sync"
	"time"

	"github.com/poiesic/docchunk/ai"
)

// MockBoundaryJudge is a test double for ai.BoundaryJudge.
// It allows custom behavior injection via function fields, supports
// artificial latency, and records the peak number of concurrent calls
// so tests can assert concurrency caps.
type MockBoundaryJudge struct {
	// JudgeBoundaryFunc is called by JudgeBoundary if set.
	// If nil, uses the default conservative behavior (keep, 0.75).
	JudgeBoundaryFunc func(ctx context.Context, snippet string) (ai.BoundaryOpinion, error)

	// Delay is an artificial latency applied before answering.
	// The delay honors context cancellation.
	Delay time.Duration

	mu          sync.Mutex
	callCount   int
	inFlight    int
	maxInFlight int
}

// NewMockBoundaryJudge creates a mock boundary judge with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockJudge().
func NewMockBoundaryJudge() *MockBoundaryJudge {
	return &MockBoundaryJudge{}
}

// JudgeBoundary returns a scripted or default opinion after the configured delay.
func (m *MockBoundaryJudge) JudgeBoundary(ctx context.Context, snippet string) (ai.BoundaryOpinion, error) {
	m.enter()
	defer m.exit()

	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ai.BoundaryOpinion{}, ctx.Err()
		case <-timer.C:
		}
	}

	if m.JudgeBoundaryFunc != nil {
		return m.JudgeBoundaryFunc(ctx, snippet)
	}

	// Default: conservative keep
	return ai.BoundaryOpinion{Merge: false, Confidence: 0.75}, nil
}

// CallCount returns the number of times JudgeBoundary was called.
func (m *MockBoundaryJudge) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// MaxInFlight returns the peak number of concurrent JudgeBoundary calls observed.
func (m *MockBoundaryJudge) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}

// Reset clears counters and custom behavior.
func (m *MockBoundaryJudge) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.inFlight = 0
	m.maxInFlight = 0
	m.JudgeBoundaryFunc = nil
	m.Delay = 0
}

func (m *MockBoundaryJudge) enter() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
}

func (m *MockBoundaryJudge) exit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight--
}
