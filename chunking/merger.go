package chunking

import (
	"fmt"
	"strings"

	"github.com/poiesic/docchunk/core"
)

// Merge applies boundary decisions to the stage-one sequence and produces the
// final chunk list. A merge appends the right chunk's content to the left
// verbatim, with no separator: concatenating the output always reproduces the
// concatenated input byte for byte. Indices and IDs are reassigned on the
// final sequence and the run's metadata is attached to every output chunk.
//
// Returns core.ErrDecisionCountMismatch when the decision list does not
// contain exactly len(chunks)-1 entries; that is a caller contract violation,
// not a recoverable condition.
func Merge(chunks []*core.Chunk, decisions []core.BoundaryDecision, metadata core.ChunkMetadata, tokens TokenCounter) ([]*core.Chunk, error) {
	if len(decisions) != len(chunks)-1 {
		return nil, fmt.Errorf("%w: %d decisions for %d chunks",
			core.ErrDecisionCountMismatch, len(decisions), len(chunks))
	}
	if tokens == nil {
		tokens = WhitespaceTokenCounter
	}

	documentID := chunks[0].DocumentId
	var merged []*core.Chunk
	var accumulator strings.Builder
	accumulator.WriteString(chunks[0].Contents)

	finalize := func() {
		index := len(merged)
		content := accumulator.String()
		merged = append(merged, &core.Chunk{
			Id:         core.ChunkID(documentID, index),
			DocumentId: documentID,
			Contents:   content,
			Index:      index,
			TokenCount: tokens(content),
			Metadata:   metadata,
		})
	}

	for i, decision := range decisions {
		if decision.Verdict == core.VerdictMerge {
			accumulator.WriteString(chunks[i+1].Contents)
			continue
		}
		finalize()
		accumulator.Reset()
		accumulator.WriteString(chunks[i+1].Contents)
	}
	finalize()

	return merged, nil
}
