package chunking

import "errors"

var (
	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrJudgeRequired is returned when a boundary judge is not provided.
	ErrJudgeRequired = errors.New("boundary judge required")

	// ErrAgentRequired is returned when a boundary agent is not provided.
	ErrAgentRequired = errors.New("boundary agent required")

	// ErrSemanticSplitFailed indicates the semantic splitting path produced
	// no usable chunks. It is recovered internally via the greedy fallback
	// and never surfaces from the engine.
	ErrSemanticSplitFailed = errors.New("semantic split produced no chunks")
)
