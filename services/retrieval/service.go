package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// RetrievalService answers informational queries by embedding them and
// concatenating the nearest indexed passages into a context string. The
// embedder injected here is the same one the index embeds passages with.
type RetrievalService struct {
	embedder Embedder
	index    *EmbeddingIndex
	chunker  *DocumentChunker
	topK     int
	logger   *zap.Logger
}

func NewRetrievalService(
	embedder Embedder,
	index *EmbeddingIndex,
	chunker *DocumentChunker,
	topK int,
	logger *zap.Logger,
) *RetrievalService {
	if topK <= 0 {
		topK = 3
	}
	return &RetrievalService{
		embedder: embedder,
		index:    index,
		chunker:  chunker,
		topK:     topK,
		logger:   logger,
	}
}

// Bootstrap loads a previously persisted index, if any. A missing index is
// not an error; the service then answers without context until documents
// are ingested.
func (s *RetrievalService) Bootstrap() error {
	err := s.index.Load()
	if errors.Is(err, ErrIndexNotFound) {
		s.logger.Info("no persisted vector store found, starting empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load vector store: %w", err)
	}
	s.logger.Info("vector store loaded", zap.Int("passages", s.index.Size()))
	return nil
}

// Answer embeds the query and returns the topK nearest passages joined with
// newlines. ok is false (with no error) when nothing has been indexed yet;
// callers fall back to ungrounded response generation.
func (s *RetrievalService) Answer(ctx context.Context, query string, k int) (string, bool, error) {
	if k <= 0 {
		k = s.topK
	}
	if s.index.Size() == 0 {
		return "", false, nil
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return "", false, fmt.Errorf("embed query: %w", err)
	}

	passages := s.index.Search(queryVec, k)
	if len(passages) == 0 {
		return "", false, nil
	}
	return strings.Join(passages, "\n"), true, nil
}

// IngestDocument chunks the document text, indexes the chunks (building the
// index on first use, extending it afterwards) and persists the result.
// Returns the number of passages added.
func (s *RetrievalService) IngestDocument(ctx context.Context, text string) (int, error) {
	if s.embedder == nil {
		return 0, errors.New("no embedding provider configured")
	}
	chunks := s.chunker.Split(text)
	if len(chunks) == 0 {
		return 0, errors.New("document contains no text")
	}

	var err error
	if s.index.Size() == 0 {
		err = s.index.Build(ctx, chunks)
	} else {
		err = s.index.Add(ctx, chunks)
	}
	if err != nil {
		return 0, fmt.Errorf("index document: %w", err)
	}

	if err := s.index.Persist(); err != nil {
		return 0, fmt.Errorf("persist vector store: %w", err)
	}

	s.logger.Info("document ingested",
		zap.Int("chunks", len(chunks)),
		zap.Int("totalPassages", s.index.Size()),
	)
	return len(chunks), nil
}
