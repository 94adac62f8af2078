// Package vectorize attaches embedding vectors to stored document chunks.
//
// This package supports batch embedding with retry and exponential backoff,
// vector normalization for dot-product similarity search, and a consistency
// check over a document's stored chunks.
package vectorize
