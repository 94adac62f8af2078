// Package chunking implements the two-stage semantic chunking engine.
//
// Stage one splits extracted document text into an initial ordered chunk
// sequence at semantic-similarity breakpoints, with a deterministic greedy
// fallback when the semantic path is unavailable. Stage two builds a
// bounded-context snippet for every adjacent chunk pair, fans the snippets
// out to an LLM oracle under a fixed concurrency cap, and merges chunks the
// oracle judges to belong together.
//
// The engine guarantees:
//
//   - the final decision list is ordered by boundary index regardless of
//     oracle completion order
//   - a failed or slow oracle call degrades that single boundary to the
//     conservative keep verdict and never aborts the batch
//   - merging is pure concatenation, so the final content is lossless with
//     respect to the stage-one sequence
//   - chunk IDs are a deterministic function of document and position, so
//     identical input and configuration reproduce identical IDs
//
// Each oracle call carries its own timeout; there is no engine-level batch
// deadline. Callers wanting one impose it on the context they pass in.
package chunking
