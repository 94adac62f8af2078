// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/docchunk/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// BoundaryJudge implements ai.BoundaryJudge using OpenAI-compatible chat APIs.
// The system prompt is built once at construction and reused for every call.
type BoundaryJudge struct {
	client       llms.Model
	systemPrompt string
	logger       *slog.Logger
}

// boundaryAnswer is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type boundaryAnswer struct {
	Verdict    string  `json:"verdict"`
	Confidence float64 `json:"confidence"`
}

// newBoundaryJudge is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newBoundaryJudge(config *ai.Config) (*BoundaryJudge, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat/classification
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.OracleHost),
		openai.WithToken("none"),
		openai.WithModel(config.OracleModel),
	)
	if err != nil {
		return nil, err
	}

	return &BoundaryJudge{
		client:       client,
		systemPrompt: buildBoundaryPrompt(),
		logger:       slog.Default().With("component", "openai-judge"),
	}, nil
}

// NewBoundaryJudge creates a new boundary judge using the provided configuration.
//
// Returns ai.BoundaryJudge interface to enforce abstraction.
func NewBoundaryJudge(config *ai.Config) (ai.BoundaryJudge, error) {
	return newBoundaryJudge(config)
}

// JudgeBoundary asks the LLM whether the two chunks around a boundary snippet
// belong together. It returns an error for transport failures and for
// responses that remain malformed after retries; the caller decides the
// fallback verdict.
func (j *BoundaryJudge) JudgeBoundary(ctx context.Context, snippet string) (ai.BoundaryOpinion, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(j.systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(snippet),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var answer boundaryAnswer
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := j.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			j.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return ai.BoundaryOpinion{}, err
		}

		if len(response.Choices) < 1 {
			j.logger.Debug("no choices returned from model", "snippet", clipString(snippet, 80))
			return ai.BoundaryOpinion{}, fmt.Errorf("oracle returned no choices")
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &answer); err != nil {
			lastErr = err
			j.logger.Warn("error parsing oracle response",
				"attempt", attempt+1,
				"response", clipString(responseText, 200),
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		j.logger.Error("failed to parse oracle response after retries", "err", lastErr)
		return ai.BoundaryOpinion{}, lastErr
	}

	opinion, err := parseBoundaryAnswer(answer)
	if err != nil {
		j.logger.Warn("oracle returned unusable verdict", "verdict", answer.Verdict, "err", err)
		return ai.BoundaryOpinion{}, err
	}

	j.logger.Debug("boundary judged",
		"merge", opinion.Merge,
		"confidence", opinion.Confidence)

	return opinion, nil
}

// parseBoundaryAnswer converts the raw LLM answer into a BoundaryOpinion.
// Confidence is clamped to [0,1]; an unrecognized verdict is an error.
func parseBoundaryAnswer(answer boundaryAnswer) (ai.BoundaryOpinion, error) {
	confidence := answer.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	switch strings.ToLower(strings.TrimSpace(answer.Verdict)) {
	case "merge":
		return ai.BoundaryOpinion{Merge: true, Confidence: confidence}, nil
	case "keep":
		return ai.BoundaryOpinion{Merge: false, Confidence: confidence}, nil
	default:
		return ai.BoundaryOpinion{}, fmt.Errorf("unrecognized verdict %q", answer.Verdict)
	}
}
