package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
	"github.com/custodia-labs/casegen/internal/core/ports/driving"
	"github.com/custodia-labs/casegen/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// Snapshot is a consistent view of the corpus and its index.
// Index is nil when retrieval runs keyword-only.
type Snapshot struct {
	Chunks     []domain.Chunk
	Index      driven.Index
	Generation uint64
}

// IndexService owns the corpus cache and the term index. It loads both
// lazily, rebuilds when persisted artifacts are missing or stale, and
// serialises builds with reads.
type IndexService struct {
	chunks  driven.ChunkStore
	store   driven.IndexStore
	indexer driven.Indexer

	mu         sync.Mutex
	corpus     []domain.Chunk
	loaded     bool
	index      driven.Index
	model      *domain.TermModel
	generation uint64
}

// NewIndexService creates an index service. A nil indexer selects
// keyword-only retrieval and no artifacts are read or written.
func NewIndexService(chunks driven.ChunkStore, store driven.IndexStore, indexer driven.Indexer) *IndexService {
	return &IndexService{
		chunks:  chunks,
		store:   store,
		indexer: indexer,
	}
}

// Backend returns the configured index backend.
func (s *IndexService) Backend() domain.IndexBackend {
	if s.indexer == nil {
		return domain.IndexBackendKeyword
	}
	return s.indexer.Backend()
}

// Generation returns the current index generation.
func (s *IndexService) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Snapshot returns the corpus and a ready index, loading or building it
// on first use. When the index cannot be produced the snapshot still
// carries the corpus and the error wraps domain.ErrIndexUnavailable.
func (s *IndexService) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadCorpusLocked(ctx); err != nil {
		return nil, err
	}

	var indexErr error
	if s.index == nil && s.indexer != nil && len(s.corpus) > 0 {
		if !s.openPersistedLocked(ctx) {
			if err := s.buildLocked(ctx); err != nil {
				indexErr = fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
			}
		}
	}

	return &Snapshot{
		Chunks:     s.corpus,
		Index:      s.index,
		Generation: s.generation,
	}, indexErr
}

// Build reloads the corpus and rebuilds the index from it.
func (s *IndexService) Build(ctx context.Context) (*domain.IndexStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = false
	if err := s.loadCorpusLocked(ctx); err != nil {
		return nil, err
	}

	if s.indexer == nil {
		logger.Debug("Index backend is keyword; nothing to build")
		s.generation++
		return s.statsLocked(), nil
	}

	if len(s.corpus) == 0 {
		logger.Info("Corpus is empty; clearing index")
		s.index, s.model = nil, nil
		s.generation++
		if err := s.store.Clear(ctx); err != nil {
			return nil, fmt.Errorf("clear index: %w", err)
		}
		return s.statsLocked(), nil
	}

	if err := s.buildLocked(ctx); err != nil {
		return nil, err
	}
	return s.statsLocked(), nil
}

// Invalidate drops the cached corpus and index and deletes the artifacts.
func (s *IndexService) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.corpus, s.loaded = nil, false
	s.index, s.model = nil, nil
	s.generation++

	if s.store == nil {
		return nil
	}
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}
	return nil
}

// Status reports the corpus and index state. Valid persisted artifacts
// are opened but nothing is built.
func (s *IndexService) Status(ctx context.Context) (*domain.IndexStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadCorpusLocked(ctx); err != nil {
		return nil, err
	}
	if s.index == nil && s.indexer != nil && len(s.corpus) > 0 {
		s.openPersistedLocked(ctx)
	}
	return s.statsLocked(), nil
}

func (s *IndexService) loadCorpusLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	chunks, err := s.chunks.Load(ctx)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	s.corpus = chunks
	s.loaded = true
	return nil
}

// openPersistedLocked opens stored artifacts if they match the corpus.
func (s *IndexService) openPersistedLocked(ctx context.Context) bool {
	model, matrix, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Loading index artifacts: %v", err)
		}
		return false
	}

	switch {
	case model.Backend != s.indexer.Backend():
		logger.Info("Index backend changed (%s -> %s); rebuilding", model.Backend, s.indexer.Backend())
		return false
	case model.CorpusSize != len(s.corpus) || matrix.Len() != len(s.corpus):
		logger.Info("Index is stale (%d rows, corpus has %d); rebuilding", matrix.Len(), len(s.corpus))
		return false
	}

	idx, err := s.indexer.Open(model, matrix)
	if err != nil {
		logger.Warn("Opening index artifacts: %v", err)
		return false
	}
	s.index, s.model = idx, model
	logger.Debug("Loaded %s index: %d terms, %d rows", model.Backend, model.VocabularySize(), matrix.Len())
	return true
}

func (s *IndexService) buildLocked(ctx context.Context) error {
	texts := make([]string, len(s.corpus))
	for i := range s.corpus {
		texts[i] = s.corpus[i].Text
	}

	logger.Section("Index Build")
	model, matrix, err := s.indexer.Build(ctx, texts)
	if err != nil {
		return fmt.Errorf("build %s index: %w", s.indexer.Backend(), err)
	}

	idx, err := s.indexer.Open(model, matrix)
	if err != nil {
		return fmt.Errorf("open %s index: %w", s.indexer.Backend(), err)
	}

	if err := s.store.Save(ctx, model, matrix); err != nil {
		// The in-memory index is still usable for this process.
		logger.Warn("Persisting index: %v", err)
	}

	s.index, s.model = idx, model
	s.generation++
	logger.Info("Built %s index: %d terms over %d chunks", model.Backend, model.VocabularySize(), len(texts))
	return nil
}

func (s *IndexService) statsLocked() *domain.IndexStats {
	stats := &domain.IndexStats{
		CorpusStats: domain.StatsOf(s.corpus),
		Backend:     s.Backend(),
		Retrieval:   s.Backend().RetrievalMode(),
		Built:       s.index != nil,
		Generation:  s.generation,
	}
	if s.model != nil {
		stats.VocabularySize = s.model.VocabularySize()
		stats.BuiltAt = s.model.BuiltAt
	}
	return stats
}
