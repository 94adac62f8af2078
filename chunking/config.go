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
	"errors"
	"time"
)

// Config holds the knobs for one chunking engine instance.
type Config struct {
	// TargetChunkSize is the upper bound, in characters, that stage one
	// aims for when cutting chunks. Actual sizes vary with semantic
	// boundaries; merged chunks may exceed it.
	TargetChunkSize int

	// SimilarityThreshold is the cosine similarity below which two adjacent
	// segments are considered semantically discontinuous. In [0,1].
	SimilarityThreshold float64

	// BoundaryWindow is the number of characters of context taken from each
	// side of a boundary when building the snippet shown to the oracle.
	BoundaryWindow int

	// MaxConcurrentReviews caps the number of oracle calls in flight at once.
	MaxConcurrentReviews int

	// ReviewTimeout bounds each individual oracle call. Expiry cancels only
	// that call; sibling calls are unaffected.
	ReviewTimeout time.Duration

	// OracleModel is the model identifier recorded in chunk metadata and
	// used by the oracle service.
	OracleModel string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithTargetChunkSize sets the stage-one target chunk size in characters.
func WithTargetChunkSize(size int) ConfigOption {
	return func(c *Config) {
		c.TargetChunkSize = size
	}
}

// WithSimilarityThreshold sets the semantic breakpoint threshold.
func WithSimilarityThreshold(threshold float64) ConfigOption {
	return func(c *Config) {
		c.SimilarityThreshold = threshold
	}
}

// WithBoundaryWindow sets the per-side boundary context window in characters.
func WithBoundaryWindow(window int) ConfigOption {
	return func(c *Config) {
		c.BoundaryWindow = window
	}
}

// WithMaxConcurrentReviews sets the concurrency cap for boundary reviews.
func WithMaxConcurrentReviews(max int) ConfigOption {
	return func(c *Config) {
		c.MaxConcurrentReviews = max
	}
}

// WithReviewTimeout sets the per-call oracle timeout.
func WithReviewTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.ReviewTimeout = timeout
	}
}

// WithOracleModel sets the oracle model identifier.
func WithOracleModel(model string) ConfigOption {
	return func(c *Config) {
		c.OracleModel = model
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		TargetChunkSize:      1600,
		SimilarityThreshold:  0.72,
		BoundaryWindow:       240,
		MaxConcurrentReviews: 4,
		ReviewTimeout:        10 * time.Second,
		OracleModel:          "qwen2.5:3b",
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is valid and complete.
func (c *Config) Validate() error {
	if c.TargetChunkSize < 1 {
		return errors.New("chunking config: TargetChunkSize must be positive")
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return errors.New("chunking config: SimilarityThreshold must be between 0 and 1")
	}
	if c.BoundaryWindow < 1 {
		return errors.New("chunking config: BoundaryWindow must be positive")
	}
	if c.MaxConcurrentReviews < 1 {
		return errors.New("chunking config: MaxConcurrentReviews must be at least 1")
	}
	if c.ReviewTimeout <= 0 {
		return errors.New("chunking config: ReviewTimeout must be positive")
	}
	if c.OracleModel == "" {
		return errors.New("chunking config: OracleModel is required")
	}
	return nil
}
