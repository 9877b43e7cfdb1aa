package retrieval

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, embedder Embedder) *RetrievalService {
	t.Helper()
	dir := t.TempDir()
	idx := NewEmbeddingIndex(dir, embedder)
	chunker := NewDocumentChunker(120, 20)
	return NewRetrievalService(embedder, idx, chunker, 2, zap.NewNop())
}

func TestAnswer_EmptyIndexIsNotAnError(t *testing.T) {
	svc := newTestService(t, charEmbedder{})

	answer, ok, err := svc.Answer(context.Background(), "when are you open?", 0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, answer)
}

func TestIngestDocument_ThenAnswer(t *testing.T) {
	svc := newTestService(t, charEmbedder{})

	doc := strings.Join(testPassages, "\n\n")
	n, err := svc.IngestDocument(context.Background(), doc)
	require.NoError(t, err)
	assert.Greater(t, n, 0)

	answer, ok, err := svc.Answer(context.Background(), testPassages[0], 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, answer, "9 AM to 8 PM")
}

func TestIngestDocument_SecondDocumentExtendsIndex(t *testing.T) {
	svc := newTestService(t, charEmbedder{})

	_, err := svc.IngestDocument(context.Background(), testPassages[0])
	require.NoError(t, err)
	first := svc.index.Size()

	_, err = svc.IngestDocument(context.Background(), testPassages[1])
	require.NoError(t, err)
	assert.Greater(t, svc.index.Size(), first)
}

func TestIngestDocument_PersistsAcrossBootstrap(t *testing.T) {
	embedder := charEmbedder{}
	dir := t.TempDir()

	idx := NewEmbeddingIndex(dir, embedder)
	svc := NewRetrievalService(embedder, idx, NewDocumentChunker(120, 20), 2, zap.NewNop())
	_, err := svc.IngestDocument(context.Background(), testPassages[0])
	require.NoError(t, err)

	// A second service over the same directory picks the index back up.
	idx2 := NewEmbeddingIndex(dir, embedder)
	svc2 := NewRetrievalService(embedder, idx2, NewDocumentChunker(120, 20), 2, zap.NewNop())
	require.NoError(t, svc2.Bootstrap())

	answer, ok, err := svc2.Answer(context.Background(), testPassages[0], 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, answer, "Monday through Saturday")
}

func TestBootstrap_MissingStoreIsFine(t *testing.T) {
	svc := newTestService(t, charEmbedder{})
	assert.NoError(t, svc.Bootstrap())
	assert.Equal(t, 0, svc.index.Size())
}

func TestIngestDocument_RequiresEmbedder(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.IngestDocument(context.Background(), "some document")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no embedding provider")
}

func TestIngestDocument_RejectsEmptyText(t *testing.T) {
	svc := newTestService(t, charEmbedder{})

	_, err := svc.IngestDocument(context.Background(), "")
	require.Error(t, err)
}
