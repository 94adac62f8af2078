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


package chunking

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/poiesic/docchunk/ai"
	"github.com/poiesic/docchunk/core"
	"github.com/tmc/langchaingo/textsplitter"
)

// minSegmentSize keeps the pre-split segments large enough for the
// embedder to produce meaningful vectors.
const minSegmentSize = 64

// Splitter produces the stage-one chunk sequence. The semantic path cuts at
// embedding-similarity discontinuities; when it is unavailable or fails, the
// deterministic greedy path takes over. Stage one never surfaces a semantic
// failure to the caller.
type Splitter struct {
	config   *Config
	embedder ai.Embedder // nil disables the semantic path
	tokens   TokenCounter
	logger   *slog.Logger
}

// NewSplitter creates a stage-one splitter. A nil embedder restricts the
// splitter to the greedy fallback path.
func NewSplitter(config *Config, embedder ai.Embedder, tokens TokenCounter, logger *slog.Logger) (*Splitter, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if tokens == nil {
		tokens = WhitespaceTokenCounter
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Splitter{
		config:   config,
		embedder: embedder,
		tokens:   tokens,
		logger:   logger.With("component", "splitter"),
	}, nil
}

// Split cuts text into an ordered, non-empty sequence of chunks.
// Returns core.ErrEmptyDocument for blank input.
func (s *Splitter) Split(ctx context.Context, documentID, text string) ([]*core.Chunk, error) {
	if documentID == "" {
		return nil, core.ErrEmptyDocumentID
	}
	if strings.TrimSpace(text) == "" {
		return nil, core.ErrEmptyDocument
	}

	if s.embedder != nil {
		chunks, err := s.semanticSplit(ctx, documentID, text)
		if err == nil && len(chunks) > 0 {
			s.logger.Debug("semantic split succeeded", "document", documentID, "chunks", len(chunks))
			return chunks, nil
		}
		s.logger.Warn("semantic split unavailable, using greedy fallback",
			"document", documentID, "err", err)
	}

	return s.greedySplit(documentID, text), nil
}

// semanticSplit segments the text, embeds every segment in one batch, and
// cuts wherever adjacent segments diverge semantically or the accumulated
// chunk would exceed the target size. Reconstruction is best-effort: the
// segmenter normalizes whitespace at segment edges.
func (s *Splitter) semanticSplit(ctx context.Context, documentID, text string) ([]*core.Chunk, error) {
	segmentSize := s.config.TargetChunkSize / 4
	if segmentSize < minSegmentSize {
		segmentSize = minSegmentSize
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(segmentSize),
		textsplitter.WithChunkOverlap(0),
	)
	segments, err := splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("segmenting text: %w", err)
	}
	if len(segments) == 0 {
		return nil, ErrSemanticSplitFailed
	}
	if len(segments) == 1 {
		return []*core.Chunk{s.newStageChunk(documentID, 0, segments[0])}, nil
	}

	vectors, err := s.embedder.EmbedTexts(ctx, segments)
	if err != nil {
		return nil, fmt.Errorf("embedding segments: %w", err)
	}
	if len(vectors) != len(segments) {
		return nil, fmt.Errorf("embedding result mismatch: expected %d, received %d", len(segments), len(vectors))
	}

	var chunks []*core.Chunk
	group := []string{segments[0]}
	groupLen := len(segments[0])

	flush := func() {
		content := strings.Join(group, " ")
		if strings.TrimSpace(content) == "" {
			return
		}
		chunks = append(chunks, s.newStageChunk(documentID, len(chunks), content))
	}

	for i := 1; i < len(segments); i++ {
		similarity := cosineSimilarity(vectors[i-1], vectors[i])
		wouldOverflow := groupLen+1+len(segments[i]) > s.config.TargetChunkSize

		if similarity < s.config.SimilarityThreshold || wouldOverflow {
			flush()
			group = group[:0]
			groupLen = 0
		}

		group = append(group, segments[i])
		if groupLen > 0 {
			groupLen++ // joining space
		}
		groupLen += len(segments[i])
	}
	flush()

	if len(chunks) == 0 {
		return nil, ErrSemanticSplitFailed
	}
	return chunks, nil
}

// greedySplit accumulates whitespace-delimited tokens until adding the next
// would exceed the target size, then cuts. Joining the produced chunks with
// single spaces reconstructs the whitespace-normalized input exactly.
func (s *Splitter) greedySplit(documentID, text string) []*core.Chunk {
	words := strings.Fields(text)

	var chunks []*core.Chunk
	var sb strings.Builder

	flush := func() {
		if sb.Len() == 0 {
			return
		}
		chunks = append(chunks, s.newStageChunk(documentID, len(chunks), sb.String()))
		sb.Reset()
	}

	for _, word := range words {
		if sb.Len() > 0 && sb.Len()+1+len(word) > s.config.TargetChunkSize {
			flush()
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(word)
	}
	flush()

	return chunks
}

// newStageChunk builds a provisional stage-one chunk. The merger reassigns
// indices, IDs and metadata on the final sequence.
func (s *Splitter) newStageChunk(documentID string, index int, content string) *core.Chunk {
	return &core.Chunk{
		Id:         core.ChunkID(documentID, index),
		DocumentId: documentID,
		Contents:   content,
		Index:      index,
		TokenCount: s.tokens(content),
	}
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths are compared over the shared prefix; zero vectors
// yield zero similarity.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
