package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
	"github.com/custodia-labs/casegen/internal/core/ports/driving"
	"github.com/custodia-labs/casegen/internal/logger"
	"github.com/custodia-labs/casegen/internal/postprocessors/chunker"
	"github.com/custodia-labs/casegen/internal/sanitizer"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultWatchDebounce coalesces bursts of file events into one run.
const DefaultWatchDebounce = 500 * time.Millisecond

// IngestService rebuilds the corpus from files on disk.
type IngestService struct {
	factory  driven.ConnectorFactory
	registry driven.NormaliserRegistry
	chunker  driven.Chunker
	pipeline driven.PostProcessorPipeline
	chunks   driven.ChunkStore
	index    driving.IndexService

	workDir  string
	debounce time.Duration
}

// IngestOption configures an IngestService.
type IngestOption func(*IngestService)

// WithWorkDir sets the directory chunk sources are made relative to.
func WithWorkDir(dir string) IngestOption {
	return func(s *IngestService) {
		s.workDir = dir
	}
}

// WithWatchDebounce sets the watch debounce interval.
func WithWatchDebounce(d time.Duration) IngestOption {
	return func(s *IngestService) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// NewIngestService creates an ingest service. The pipeline and index
// may be nil.
func NewIngestService(
	factory driven.ConnectorFactory,
	registry driven.NormaliserRegistry,
	chunker driven.Chunker,
	pipeline driven.PostProcessorPipeline,
	chunks driven.ChunkStore,
	index driving.IndexService,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		factory:  factory,
		registry: registry,
		chunker:  chunker,
		pipeline: pipeline,
		chunks:   chunks,
		index:    index,
		debounce: DefaultWatchDebounce,
	}
	if wd, err := os.Getwd(); err == nil {
		s.workDir = wd
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest replaces the corpus with the chunks extracted from path and
// invalidates the index. Files that yield no text are skipped.
func (s *IngestService) Ingest(ctx context.Context, path string) (*domain.IngestReport, error) {
	start := time.Now()
	logger.Section("Ingest")

	conn, err := s.factory.Create(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}
	defer conn.Close()

	report := &domain.IngestReport{Root: path}
	docsCh, errsCh := conn.FullSync(ctx)

	var all []domain.Chunk
	for docsCh != nil || errsCh != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("connector error: %w", err)
			}

		case raw, ok := <-docsCh:
			if !ok {
				docsCh = nil
				continue
			}
			report.FilesSeen++
			chunks, dropped := s.processDocument(ctx, &raw)
			report.LinesDropped += dropped
			if len(chunks) == 0 {
				report.FilesSkipped++
				continue
			}
			report.ChunksEmitted += len(chunks)
			all = append(all, chunks...)
		}
	}

	if s.pipeline != nil {
		all, err = s.pipeline.Process(ctx, all)
		if err != nil {
			return nil, fmt.Errorf("post-process: %w", err)
		}
	}
	if all == nil {
		all = []domain.Chunk{}
	}

	if err := s.chunks.Save(ctx, all); err != nil {
		return nil, fmt.Errorf("save corpus: %w", err)
	}
	report.ChunksStored = len(all)

	if s.index != nil {
		if err := s.index.Invalidate(ctx); err != nil {
			return nil, fmt.Errorf("invalidate index: %w", err)
		}
	}

	report.Duration = time.Since(start)
	logger.Info("Ingested %s: %d files, %d skipped, %d chunks stored",
		path, report.FilesSeen, report.FilesSkipped, report.ChunksStored)
	return report, nil
}

// processDocument extracts, sanitises and chunks one file. Extraction
// failures are logged and yield no chunks.
func (s *IngestService) processDocument(ctx context.Context, raw *domain.RawDocument) ([]domain.Chunk, int) {
	logger.Debug("Processing: %s", raw.URI)

	result, err := s.registry.Normalise(ctx, raw)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedType) {
			logger.Debug("Skipping %s: %v", raw.URI, err)
		} else {
			logger.Warn("Extracting %s: %v", raw.URI, err)
		}
		return nil, 0
	}

	text, dropped := sanitizer.SanitizeCount(result.Text)
	if dropped > 0 {
		logger.Debug("Sanitizer dropped %d lines from %s", dropped, raw.URI)
	}
	if strings.TrimSpace(text) == "" {
		logger.Debug("No text in %s", raw.URI)
		return nil, dropped
	}

	source := s.sourceFor(raw.URI)
	filename := filepath.Base(raw.URI)
	if name, ok := raw.Metadata["filename"].(string); ok && name != "" {
		filename = name
	}

	passages := s.chunker.Split(text)
	chunks := make([]domain.Chunk, 0, len(passages))
	for i, p := range passages {
		chunks = append(chunks, domain.Chunk{
			ID:      chunker.ChunkID(source, i),
			Source:  source,
			Text:    p,
			Ordinal: i,
			Meta: domain.ChunkMeta{
				Filename: filename,
				Index:    i,
				Chars:    len([]rune(p)),
				Words:    len(strings.Fields(p)),
			},
		})
	}
	return chunks, dropped
}

// sourceFor returns uri relative to the working directory when it lies
// beneath it, otherwise the cleaned path.
func (s *IngestService) sourceFor(uri string) string {
	abs, err := filepath.Abs(uri)
	if err != nil || s.workDir == "" {
		return filepath.ToSlash(filepath.Clean(uri))
	}
	rel, err := filepath.Rel(s.workDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

// Watch re-ingests path and rebuilds the index after each burst of
// changes, until ctx is done.
func (s *IngestService) Watch(ctx context.Context, path string, onIngest func(*domain.IngestReport, error)) error {
	conn, err := s.factory.Create(ctx, path)
	if err != nil {
		return fmt.Errorf("create connector: %w", err)
	}
	defer conn.Close()

	if !conn.Capabilities().SupportsWatch {
		return fmt.Errorf("%w: connector %s cannot watch", domain.ErrUnsupportedType, conn.Type())
	}

	changes, err := conn.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	logger.Info("Watching %s", path)

	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case change, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Debug("Change %s: %s", change.Type, change.Document.URI)
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(s.debounce)
			pending = true

		case <-timer.C:
			pending = false
			report, err := s.Ingest(ctx, path)
			if err == nil && s.index != nil {
				if _, buildErr := s.index.Build(ctx); buildErr != nil {
					err = fmt.Errorf("rebuild index: %w", buildErr)
				}
			}
			if onIngest != nil {
				onIngest(report, err)
			}
		}
	}
}
