package retrieval

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

var (
	// ErrNotInitialized means Add was called before any Build.
	ErrNotInitialized = errors.New("embedding index not initialized")
	// ErrIndexNotFound means one or both persisted artifacts are missing.
	ErrIndexNotFound = errors.New("persisted embedding index not found")
)

// On-disk artifact names. Both must exist for Load to succeed; they are
// written via temp files and renamed so a crash never leaves a mismatched
// pair behind.
const (
	vectorsFile  = "index.gob"
	passagesFile = "passages.gob"
)

// Embedder maps text into a fixed-dimension dense vector. The same instance
// must serve both index build and query time; mixing embedding providers
// across that boundary is a caller error.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbeddingIndex is a flat, exact nearest-neighbor index over order-aligned
// (passage, vector) pairs. Index position is the join key; there is no
// separate ID. Writers are serialized against readers with a RWMutex, so
// document ingestion and query-time search may run concurrently from
// independent conversations.
type EmbeddingIndex struct {
	mu       sync.RWMutex
	embedder Embedder
	dir      string

	passages []string
	vectors  [][]float32
	built    bool
}

func NewEmbeddingIndex(dir string, embedder Embedder) *EmbeddingIndex {
	return &EmbeddingIndex{embedder: embedder, dir: dir}
}

// Build embeds the passages and replaces any existing index contents.
func (idx *EmbeddingIndex) Build(ctx context.Context, passages []string) error {
	vectors, err := idx.embedder.EmbedBatch(ctx, passages)
	if err != nil {
		return fmt.Errorf("embed passages: %w", err)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.passages = append([]string(nil), passages...)
	idx.vectors = vectors
	idx.built = true
	return nil
}

// Add embeds the passages and appends them, preserving existing entries.
func (idx *EmbeddingIndex) Add(ctx context.Context, passages []string) error {
	idx.mu.RLock()
	built := idx.built
	idx.mu.RUnlock()
	if !built {
		return ErrNotInitialized
	}

	vectors, err := idx.embedder.EmbedBatch(ctx, passages)
	if err != nil {
		return fmt.Errorf("embed passages: %w", err)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.passages = append(idx.passages, passages...)
	idx.vectors = append(idx.vectors, vectors...)
	return nil
}

// Search returns the k passages nearest the query vector by Euclidean
// distance, nearest first. Fewer than k are returned when the index holds
// fewer entries.
func (idx *EmbeddingIndex) Search(query []float32, k int) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if k > len(idx.vectors) {
		k = len(idx.vectors)
	}
	if k <= 0 {
		return nil
	}

	order := make([]int, len(idx.vectors))
	dists := make([]float64, len(idx.vectors))
	for i, v := range idx.vectors {
		order[i] = i
		dists[i] = squaredDistance(v, query)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dists[order[a]] < dists[order[b]]
	})

	results := make([]string, k)
	for i := 0; i < k; i++ {
		results[i] = idx.passages[order[i]]
	}
	return results
}

// Size returns the number of indexed passages.
func (idx *EmbeddingIndex) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.passages)
}

// Persist writes the vectors and the passage list as two companion
// artifacts. Both are staged as temp files and renamed on success.
func (idx *EmbeddingIndex) Persist() error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if !idx.built {
		return ErrNotInitialized
	}
	if err := os.MkdirAll(idx.dir, 0o755); err != nil {
		return fmt.Errorf("create vector store dir: %w", err)
	}

	vecTmp := filepath.Join(idx.dir, vectorsFile+".tmp")
	pasTmp := filepath.Join(idx.dir, passagesFile+".tmp")
	if err := writeGob(vecTmp, idx.vectors); err != nil {
		return fmt.Errorf("write vectors: %w", err)
	}
	if err := writeGob(pasTmp, idx.passages); err != nil {
		os.Remove(vecTmp)
		return fmt.Errorf("write passages: %w", err)
	}

	if err := os.Rename(vecTmp, filepath.Join(idx.dir, vectorsFile)); err != nil {
		os.Remove(pasTmp)
		return fmt.Errorf("swap vectors artifact: %w", err)
	}
	if err := os.Rename(pasTmp, filepath.Join(idx.dir, passagesFile)); err != nil {
		return fmt.Errorf("swap passages artifact: %w", err)
	}
	return nil
}

// Load reads both artifacts back. It fails with ErrIndexNotFound when either
// is missing and never partially loads: memory is only replaced once both
// artifacts have decoded and their lengths agree.
func (idx *EmbeddingIndex) Load() error {
	vecPath := filepath.Join(idx.dir, vectorsFile)
	pasPath := filepath.Join(idx.dir, passagesFile)
	if !fileExists(vecPath) || !fileExists(pasPath) {
		return ErrIndexNotFound
	}

	var vectors [][]float32
	if err := readGob(vecPath, &vectors); err != nil {
		return fmt.Errorf("read vectors: %w", err)
	}
	var passages []string
	if err := readGob(pasPath, &passages); err != nil {
		return fmt.Errorf("read passages: %w", err)
	}
	if len(vectors) != len(passages) {
		return fmt.Errorf("artifact mismatch: %d vectors vs %d passages", len(vectors), len(passages))
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.vectors = vectors
	idx.passages = passages
	idx.built = true
	return nil
}

// Clear discards in-memory state and removes the on-disk artifacts.
func (idx *EmbeddingIndex) Clear() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.passages = nil
	idx.vectors = nil
	idx.built = false

	for _, name := range []string{vectorsFile, passagesFile} {
		if err := os.Remove(filepath.Join(idx.dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	return nil
}

func squaredDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

func writeGob(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readGob(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewDecoder(f).Decode(v)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
