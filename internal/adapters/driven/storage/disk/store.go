// Package disk persists the corpus and index artifacts as plain files.
//
// Layout under the data directory:
//
//	chunks.json        corpus, a JSON array rewritten wholesale
//	index/model.gob    fitted term model
//	index/matrix.gob   row-aligned weight matrix
//
// The two index artifacts are written into a staging directory and swapped
// in with a single rename, so readers see both or neither.
package disk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/casegen/internal/adapters/driven/storage/codec"
	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
)

// File names inside the data directory.
const (
	ChunksFile = "chunks.json"
	IndexDir   = "index"
	ModelFile  = "model.gob"
	MatrixFile = "matrix.gob"
)

// Store is a file-based store for the corpus and index artifacts.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dataDir.
// If dataDir is empty, defaults to ~/.casegen/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".casegen", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dir: dataDir}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Close releases resources (no-op for files).
func (s *Store) Close() error {
	return nil
}

// ChunkStore returns a ChunkStore backed by chunks.json.
func (s *Store) ChunkStore() driven.ChunkStore {
	return &chunkStore{path: filepath.Join(s.dir, ChunksFile)}
}

// IndexStore returns an IndexStore backed by the index directory.
func (s *Store) IndexStore() driven.IndexStore {
	return &indexStore{dir: s.dir}
}

// ==================== Chunk Store ====================

type chunkStore struct {
	path string
}

var _ driven.ChunkStore = (*chunkStore)(nil)

// Save rewrites chunks.json with chunks.
func (c *chunkStore) Save(ctx context.Context, chunks []domain.Chunk) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if chunks == nil {
		chunks = []domain.Chunk{}
	}
	data, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling chunks: %w", err)
	}
	return writeAtomic(c.path, data)
}

// Load reads chunks.json. A missing file is an empty corpus.
func (c *chunkStore) Load(ctx context.Context) ([]domain.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Chunk{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading chunks: %w", err)
	}
	var chunks []domain.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", c.path, err)
	}
	if chunks == nil {
		chunks = []domain.Chunk{}
	}
	return chunks, nil
}

// ==================== Index Store ====================

type indexStore struct {
	dir string
}

var _ driven.IndexStore = (*indexStore)(nil)

// Save writes both artifacts into a staging directory and swaps it in.
func (x *indexStore) Save(ctx context.Context, model *domain.TermModel, matrix *domain.WeightMatrix) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	modelData, err := codec.ModelBytes(model)
	if err != nil {
		return err
	}
	matrixData, err := codec.MatrixBytes(matrix)
	if err != nil {
		return err
	}

	staging, err := os.MkdirTemp(x.dir, IndexDir+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := os.WriteFile(filepath.Join(staging, ModelFile), modelData, 0600); err != nil {
		return fmt.Errorf("writing model: %w", err)
	}
	if err := os.WriteFile(filepath.Join(staging, MatrixFile), matrixData, 0600); err != nil {
		return fmt.Errorf("writing matrix: %w", err)
	}

	final := filepath.Join(x.dir, IndexDir)
	if err := os.RemoveAll(final); err != nil {
		return fmt.Errorf("removing old index: %w", err)
	}
	if err := os.Rename(staging, final); err != nil {
		return fmt.Errorf("installing index: %w", err)
	}
	return nil
}

// Load reads both artifacts. If either is missing it returns domain.ErrNotFound.
func (x *indexStore) Load(ctx context.Context) (*domain.TermModel, *domain.WeightMatrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	modelPath := filepath.Join(x.dir, IndexDir, ModelFile)
	matrixPath := filepath.Join(x.dir, IndexDir, MatrixFile)
	if !exists(modelPath) || !exists(matrixPath) {
		return nil, nil, domain.ErrNotFound
	}

	mf, err := os.Open(modelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening model: %w", err)
	}
	defer mf.Close()
	model, err := codec.DecodeModel(mf)
	if err != nil {
		return nil, nil, fmt.Errorf("reading model: %w", err)
	}

	xf, err := os.Open(matrixPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening matrix: %w", err)
	}
	defer xf.Close()
	matrix, err := codec.DecodeMatrix(xf)
	if err != nil {
		return nil, nil, fmt.Errorf("reading matrix: %w", err)
	}
	return model, matrix, nil
}

// Clear deletes both artifacts.
func (x *indexStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.RemoveAll(filepath.Join(x.dir, IndexDir)); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}
	return nil
}

// writeAtomic writes data to a temporary file and renames it over path.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming %s: %w", path, err)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
