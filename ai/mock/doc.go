// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.BoundaryJudge,
// and ai.AIProvider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	opinion, err := mockProvider.BoundaryJudge().JudgeBoundary(ctx, snippet)
//
//	// Custom behavior injection
//	judge := mock.NewMockBoundaryJudge()
//	judge.JudgeBoundaryFunc = func(ctx context.Context, snippet string) (ai.BoundaryOpinion, error) {
//	    return ai.BoundaryOpinion{Merge: true, Confidence: 0.9}, nil
//	}
//
//	// Concurrency assertions
//	judge.Delay = 20 * time.Millisecond
//	// ... run reviewer ...
//	peak := judge.MaxInFlight()
//
// # Default Behavior
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockBoundaryJudge: Returns keep with confidence 0.75
//   - MockProvider: Aggregates mock embedder and judge
package mock
