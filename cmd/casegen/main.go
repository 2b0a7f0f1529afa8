// Command casegen generates evidence-grounded use-cases from local documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/casegen/internal/adapters/driven/ai"
	"github.com/custodia-labs/casegen/internal/adapters/driven/config/file"
	"github.com/custodia-labs/casegen/internal/adapters/driven/index/bm25"
	"github.com/custodia-labs/casegen/internal/adapters/driven/index/tfidf"
	"github.com/custodia-labs/casegen/internal/adapters/driven/storage/disk"
	"github.com/custodia-labs/casegen/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/casegen/internal/adapters/driving/cli"
	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
	"github.com/custodia-labs/casegen/internal/core/services"
	"github.com/custodia-labs/casegen/internal/logger"
	"github.com/custodia-labs/casegen/internal/normalisers"
	"github.com/custodia-labs/casegen/internal/normalisers/command"
	"github.com/custodia-labs/casegen/internal/postprocessors"
	"github.com/custodia-labs/casegen/internal/postprocessors/chunker"
	"github.com/custodia-labs/casegen/internal/usecases"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// store is the persistence backend: a chunk store plus index artifacts.
type store interface {
	ChunkStore() driven.ChunkStore
	IndexStore() driven.IndexStore
	Close() error
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Could not load .env: %v", err)
	}
	logger.SetVerbose(verboseRequested(os.Args[1:]))
	defer logger.Close()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if settings.LogFile != "" {
		if err := logger.SetFile(settings.LogFile); err != nil {
			logger.Warn("Could not open log file: %v", err)
		}
	}

	st, err := openStore(settings.Storage)
	if err != nil {
		return err
	}
	defer st.Close()

	llm, err := ai.CreateAndValidateLLMService(&settings.LLM)
	if err != nil {
		logger.Warn("LLM delegate disabled, using templates: %v", err)
		llm = nil
	}
	if llm != nil {
		defer llm.Close()
	}

	caps := services.ResolveCapabilities(settings, llm, nil)

	indexService := services.NewIndexService(st.ChunkStore(), st.IndexStore(), newIndexer(settings.Retrieval))
	retriever := services.NewRetriever(indexService, settings.Retrieval)

	generator, err := newGenerator(settings, llm)
	if err != nil {
		return err
	}
	queryService := services.NewQueryService(retriever, generator, indexService, settings.Retrieval.TopK)

	ingestService, err := newIngestService(settings, caps, st.ChunkStore(), indexService)
	if err != nil {
		return err
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Ingest:       ingestService,
		Index:        indexService,
		Query:        queryService,
		Retrieval:    retriever,
		Settings:     settingsService,
		Capabilities: &caps,
	})

	return cli.Execute(context.Background())
}

func openStore(s domain.StorageSettings) (store, error) {
	switch s.Backend {
	case domain.StoreBackendSQLite:
		st, err := sqlite.NewStore(s.Dir)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return st, nil
	default:
		st, err := disk.NewStore(s.Dir)
		if err != nil {
			return nil, fmt.Errorf("opening data directory: %w", err)
		}
		return st, nil
	}
}

// newIndexer returns nil for keyword-only retrieval.
func newIndexer(s domain.RetrievalSettings) driven.Indexer {
	switch s.Backend {
	case domain.IndexBackendBM25:
		return bm25.New()
	case domain.IndexBackendKeyword:
		return nil
	default:
		return tfidf.New(tfidf.WithMaxFeatures(s.MaxFeatures))
	}
}

func newGenerator(settings *domain.AppSettings, llm driven.LLMService) (*services.Generator, error) {
	table, err := usecases.LoadTable(settings.FeaturesFile)
	if err != nil {
		return nil, err
	}

	opts := []services.GeneratorOption{services.WithFeatureTable(table)}
	if llm != nil {
		delegate := services.NewDelegate(llm, settings.LLM.Timeout)
		prompts, err := file.NewPromptStore("")
		if err != nil {
			logger.Warn("Using built-in prompts: %v", err)
		} else {
			delegate.SetPromptStore(prompts)
		}
		opts = append(opts, services.WithDelegate(delegate))
	}

	return services.NewGenerator(services.NewGate(settings.Gate.Threshold), opts...), nil
}

func newIngestService(
	settings *domain.AppSettings,
	caps domain.Capabilities,
	chunks driven.ChunkStore,
	index *services.IndexService,
) (*services.IngestService, error) {
	chunk, err := chunker.FromSettings(settings.Chunking)
	if err != nil {
		return nil, fmt.Errorf("configuring chunker: %w", err)
	}

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	pipeline, err := registry.BuildPipeline(domain.PipelineConfigFor(settings.Chunking))
	if err != nil {
		return nil, fmt.Errorf("configuring post-processors: %w", err)
	}

	return services.NewIngestService(
		services.NewConnectorFactory(),
		normalisers.Defaults(caps, command.ExecRunner{}),
		chunk,
		pipeline,
		chunks,
		index,
	), nil
}

// verboseRequested reports whether -v or --verbose is among args, so
// startup wiring logs before flags are parsed.
func verboseRequested(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-v", "--verbose", "--verbose=true":
			return true
		case "--":
			return false
		}
	}
	return false
}
