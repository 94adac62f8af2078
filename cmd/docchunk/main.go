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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/docchunk"
	"github.com/poiesic/docchunk/ai"
	"github.com/poiesic/docchunk/chunking"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "docchunk",
		Usage:  "Two-stage semantic chunking for RAG document stores",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "chunk",
				Usage:  "Chunk a document, store and embed the result",
				Action: chunkCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the extracted document text",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "doc-id",
						Usage: "Document identifier (defaults to the file name)",
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "oracle-model",
						Usage: "Boundary oracle model name",
						Value: "qwen2.5:3b",
					},
					&cli.IntFlag{
						Name:  "target-size",
						Usage: "Stage-one target chunk size in characters",
						Value: 1600,
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Semantic similarity breakpoint threshold",
						Value: 0.72,
					},
					&cli.IntFlag{
						Name:  "window",
						Usage: "Boundary context window per side in characters",
						Value: 240,
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Maximum concurrent boundary reviews",
						Value: 4,
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Per-boundary oracle call timeout",
						Value: 10 * time.Second,
					},
				},
			},
			{
				Name:   "show",
				Usage:  "List the stored chunks of a document",
				Action: showCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "doc-id",
						Usage:    "Document identifier",
						Required: true,
					},
				},
			},
			{
				Name:   "search",
				Usage:  "Find stored chunks similar to a query",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Search query text",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 5,
					},
					&cli.Float64Flag{
						Name:  "min-similarity",
						Usage: "Minimum similarity score",
						Value: 0.3,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func chunkCommand(c *cli.Context) error {
	ctx := context.Background()

	text, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	documentID := c.String("doc-id")
	if documentID == "" {
		documentID = filepath.Base(c.String("file"))
	}

	chunkingConfig := chunking.NewConfig(
		chunking.WithTargetChunkSize(c.Int("target-size")),
		chunking.WithSimilarityThreshold(c.Float64("threshold")),
		chunking.WithBoundaryWindow(c.Int("window")),
		chunking.WithMaxConcurrentReviews(c.Int("concurrency")),
		chunking.WithReviewTimeout(c.Duration("timeout")),
		chunking.WithOracleModel(c.String("oracle-model")),
	)
	if err := chunkingConfig.Validate(); err != nil {
		return fmt.Errorf("invalid chunking configuration: %w", err)
	}

	service, err := docchunk.NewService(c.String("db"),
		docchunk.WithAIConfig(newAIConfig(c)),
		docchunk.WithChunkingConfig(chunkingConfig),
		docchunk.WithServiceTokenCounter(tokenCounter()),
	)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer service.Close()

	result, err := service.ChunkDocument(ctx, documentID, string(text))
	if err != nil {
		return fmt.Errorf("chunking failed: %w", err)
	}

	report := result.Report
	fmt.Printf("Document: %s\n", result.DocumentId)
	fmt.Printf("Initial chunks:  %d\n", report.InitialChunks)
	fmt.Printf("Final chunks:    %d\n", report.FinalChunks)
	fmt.Printf("Merged:          %d\n", report.MergeCount)
	fmt.Printf("Kept:            %d\n", report.KeepCount)
	fmt.Printf("Timeouts:        %d\n", report.TimeoutCount)
	fmt.Printf("Errors:          %d\n", report.ErrorCount)
	fmt.Printf("Mean confidence: %0.3f\n", report.MeanConfidence)
	fmt.Printf("Review elapsed:  %s\n", report.Elapsed)
	return nil
}

func showCommand(c *cli.Context) error {
	ctx := context.Background()

	service, err := docchunk.NewService(c.String("db"),
		docchunk.WithAIConfig(newAIConfig(c)))
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer service.Close()

	chunks, err := service.DocumentChunks(ctx, c.String("doc-id"))
	if err != nil {
		return err
	}

	fmt.Printf("Found %d chunks\n", len(chunks))
	for _, chunk := range chunks {
		fmt.Printf("%d (%d): %d tokens, %d dims\n%s\n\n",
			chunk.Index, chunk.Id, chunk.TokenCount, len(chunk.Vector), chunk.Contents)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	service, err := docchunk.NewService(c.String("db"),
		docchunk.WithAIConfig(newAIConfig(c)))
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer service.Close()

	results, err := service.SearchChunks(ctx, c.String("query"),
		float32(c.Float64("min-similarity")), c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: doc=%s chunk=%d [%0.3f]\n%s\n\n",
			i, hit.Chunk.DocumentId, hit.Chunk.Index, hit.Score, hit.Chunk.Contents)
	}
	return nil
}

// newAIConfig builds the provider configuration from command flags. Commands
// that only read the store never call the oracle, but the provider still
// needs a complete configuration.
func newAIConfig(c *cli.Context) *ai.Config {
	opts := []ai.ConfigOption{}
	if host := c.String("host"); host != "" {
		opts = append(opts, ai.WithHost(host))
	}
	if model := c.String("embedding-model"); model != "" {
		opts = append(opts, ai.WithEmbeddingModel(model))
	}
	if model := c.String("oracle-model"); model != "" {
		opts = append(opts, ai.WithOracleModel(model))
	}
	return ai.NewConfig(opts...)
}

// tokenCounter prefers tiktoken counts and falls back to whitespace counting
// when the encoding data is unavailable (e.g. offline).
func tokenCounter() chunking.TokenCounter {
	counter, err := chunking.NewTiktokenCounter("cl100k_base")
	if err != nil {
		slog.Warn("tiktoken encoding unavailable, counting whitespace tokens", "err", err)
		return chunking.WhitespaceTokenCounter
	}
	return counter
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
