package chunking

import (
	"strings"

	"github.com/poiesic/docchunk/core"
)

// BoundaryMarker separates the "before" and "after" context in a boundary
// snippet. The oracle prompt names the same marker.
const BoundaryMarker = "\n---BOUNDARY---\n"

// ExtractBoundaryCandidates builds one bounded-context snippet per adjacent
// chunk pair: the trailing window of chunk[i], the marker, and the leading
// window of chunk[i+1]. It is a pure function and returns exactly N-1
// candidates for N chunks, indexed by the left chunk's position.
func ExtractBoundaryCandidates(chunks []*core.Chunk, window int) []core.BoundaryCandidate {
	if len(chunks) < 2 {
		return []core.BoundaryCandidate{}
	}

	candidates := make([]core.BoundaryCandidate, 0, len(chunks)-1)
	for i := 0; i < len(chunks)-1; i++ {
		var sb strings.Builder
		sb.WriteString(tailRunes(chunks[i].Contents, window))
		sb.WriteString(BoundaryMarker)
		sb.WriteString(headRunes(chunks[i+1].Contents, window))

		candidates = append(candidates, core.BoundaryCandidate{
			BoundaryIndex: i,
			Snippet:       sb.String(),
		})
	}
	return candidates
}

// tailRunes returns the last n runes of s, or all of s if shorter.
func tailRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}

// headRunes returns the first n runes of s, or all of s if shorter.
func headRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
