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


package docchunk

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/docchunk/ai"
	"github.com/poiesic/docchunk/ai/openai"
	"github.com/poiesic/docchunk/chunking"
	"github.com/poiesic/docchunk/core"
	"github.com/poiesic/docchunk/storage"
	"github.com/poiesic/docchunk/storage/badger"
	"github.com/poiesic/docchunk/vectorize"
)

const (
	embedMaxRetries     = 3
	embedRetryBaseDelay = 500 * time.Millisecond
)

// Service wires the chunking engine, chunk store, and vectorizer behind one
// handle. It owns every dependency it creates and releases them on Close.
type Service struct {
	backend    *badger.Backend
	chunkRepo  storage.ChunkRepository
	provider   ai.AIProvider
	engine     *chunking.Engine
	vectorizer *vectorize.Processor
	logger     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig       *ai.Config
	chunkingConfig *chunking.Config
	provider       ai.AIProvider
	tokens         chunking.TokenCounter
}

// WithAIConfig sets the AI provider configuration used when no explicit
// provider is supplied.
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithChunkingConfig sets the chunking engine configuration.
func WithChunkingConfig(cfg *chunking.Config) ServiceOption {
	return func(o *serviceOptions) {
		if cfg != nil {
			o.chunkingConfig = cfg
		}
	}
}

// WithProvider supplies an AI provider, bypassing provider construction.
// Used by tests to inject mocks.
func WithProvider(provider ai.AIProvider) ServiceOption {
	return func(o *serviceOptions) {
		if provider != nil {
			o.provider = provider
		}
	}
}

// WithServiceTokenCounter sets the token counter used for chunk token counts.
func WithServiceTokenCounter(tokens chunking.TokenCounter) ServiceOption {
	return func(o *serviceOptions) {
		if tokens != nil {
			o.tokens = tokens
		}
	}
}

// NewService opens the chunk store at filePath and wires the pipeline.
// An empty filePath opens an in-memory store.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig:       ai.DefaultConfig(),
		chunkingConfig: chunking.DefaultConfig(),
		tokens:         chunking.WhitespaceTokenCounter,
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, filePath == "")
	if err != nil {
		return nil, err
	}
	chunkRepo := badger.NewBackendChunkRepository(backend)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	engine, err := chunking.NewEngine(provider, options.chunkingConfig,
		chunking.WithTokenCounter(options.tokens))
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	vectorizer := vectorize.NewProcessor(chunkRepo, provider.Embedder(),
		embedMaxRetries, embedRetryBaseDelay, slog.Default())

	return &Service{
		backend:    backend,
		chunkRepo:  chunkRepo,
		provider:   provider,
		engine:     engine,
		vectorizer: vectorizer,
		logger:     slog.Default(),
	}, nil
}

// Close releases the engine, provider, and storage.
func (s *Service) Close() error {
	s.engine.Release()

	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// ChunkRepository exposes the underlying chunk store.
func (s *Service) ChunkRepository() storage.ChunkRepository {
	return s.chunkRepo
}

// ChunkDocument runs the chunking pipeline on text, replaces any previously
// stored chunks of the document, and embeds the stored chunks. The returned
// result reflects the pipeline run; the persisted chunks carry vectors.
func (s *Service) ChunkDocument(ctx context.Context, documentID, text string) (*chunking.Result, error) {
	result, err := s.engine.ChunkDocument(ctx, documentID, text)
	if err != nil {
		return nil, err
	}

	// Deterministic IDs make re-chunking idempotent only when the split is
	// unchanged; drop stale chunks from earlier runs first.
	if err := s.chunkRepo.DeleteDocumentChunks(ctx, documentID); err != nil {
		return nil, fmt.Errorf("clearing previous chunks: %w", err)
	}

	if _, err := s.chunkRepo.AddChunks(ctx, result.Chunks...); err != nil {
		return nil, fmt.Errorf("storing chunks: %w", err)
	}

	if err := s.vectorizer.Process(ctx, result.Chunks); err != nil {
		return nil, fmt.Errorf("vectorizing chunks: %w", err)
	}

	return result, nil
}

// DocumentChunks returns the stored chunks of a document in chunk order.
func (s *Service) DocumentChunks(ctx context.Context, documentID string) ([]*core.Chunk, error) {
	return s.chunkRepo.GetChunksByDocument(ctx, documentID)
}

// DeleteDocument removes every stored chunk of a document.
func (s *Service) DeleteDocument(ctx context.Context, documentID string) error {
	return s.chunkRepo.DeleteDocumentChunks(ctx, documentID)
}

// SearchChunks embeds the query and returns stored chunks by similarity,
// highest first.
func (s *Service) SearchChunks(ctx context.Context, query string, minSimilarity float32, limit int) ([]*core.SimilarChunk, error) {
	vector, err := s.provider.Embedder().EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	return s.chunkRepo.FindSimilar(ctx, vectorize.NormalizeVector(vector), minSimilarity, limit)
}

// VerifyDocument checks stored chunk/vector consistency for a document.
func (s *Service) VerifyDocument(ctx context.Context, documentID string) error {
	return s.vectorizer.Verify(ctx, documentID)
}
