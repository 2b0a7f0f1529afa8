package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/casegen/internal/adapters/driven/storage/codec"
	"github.com/custodia-labs/casegen/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
)

// DBFile is the database file name inside the data directory.
const DBFile = "chunks.db"

// Artifact names in index_artifacts.
const (
	artifactModel  = "model"
	artifactMatrix = "matrix"
)

// Store is a SQLite-based storage that provides the chunk and index
// stores through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.casegen/data/chunks.db.
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

	dbPath := filepath.Join(dataDir, DBFile)

	// WAL mode lets the MCP server read while the CLI ingests.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ChunkStore returns a ChunkStore backed by this database.
func (s *Store) ChunkStore() driven.ChunkStore {
	return &chunkStore{db: s.db}
}

// IndexStore returns an IndexStore backed by this database.
func (s *Store) IndexStore() driven.IndexStore {
	return &indexStore{db: s.db}
}

// migrate applies pending *.up.sql files in version order.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Chunk Store ====================

type chunkStore struct {
	db *sql.DB
}

var _ driven.ChunkStore = (*chunkStore)(nil)

// Save replaces the corpus with chunks in a single transaction.
func (c *chunkStore) Save(ctx context.Context, chunks []domain.Chunk) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (seq, id, source, text, chunk_index, filename, chars, words)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, ch := range chunks {
		_, err := stmt.ExecContext(ctx, i, ch.ID, ch.Source, ch.Text, ch.Ordinal,
			ch.Meta.Filename, ch.Meta.Chars, ch.Meta.Words)
		if err != nil {
			return fmt.Errorf("inserting chunk %s: %w", ch.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing chunks: %w", err)
	}
	return nil
}

// Load returns the corpus in insertion order.
func (c *chunkStore) Load(ctx context.Context) ([]domain.Chunk, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, source, text, chunk_index, filename, chars, words
		FROM chunks ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	chunks := []domain.Chunk{}
	for rows.Next() {
		var ch domain.Chunk
		if err := rows.Scan(&ch.ID, &ch.Source, &ch.Text, &ch.Ordinal,
			&ch.Meta.Filename, &ch.Meta.Chars, &ch.Meta.Words); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		ch.Meta.Index = ch.Ordinal
		chunks = append(chunks, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return chunks, nil
}

// ==================== Index Store ====================

type indexStore struct {
	db *sql.DB
}

var _ driven.IndexStore = (*indexStore)(nil)

// Save replaces both artifacts in a single transaction.
func (x *indexStore) Save(ctx context.Context, model *domain.TermModel, matrix *domain.WeightMatrix) error {
	modelData, err := codec.ModelBytes(model)
	if err != nil {
		return err
	}
	matrixData, err := codec.MatrixBytes(matrix)
	if err != nil {
		return err
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	const upsert = `
		INSERT INTO index_artifacts (name, backend, payload, corpus_size, built_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			backend = excluded.backend,
			payload = excluded.payload,
			corpus_size = excluded.corpus_size,
			built_at = excluded.built_at
	`
	builtAt := model.BuiltAt.UTC().Format(time.RFC3339)
	for _, a := range []struct {
		name    string
		payload []byte
	}{
		{artifactModel, modelData},
		{artifactMatrix, matrixData},
	} {
		if _, err := tx.ExecContext(ctx, upsert, a.name, string(model.Backend), a.payload,
			model.CorpusSize, builtAt); err != nil {
			return fmt.Errorf("saving %s: %w", a.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	return nil
}

// Load reads both artifacts. If either is missing it returns domain.ErrNotFound.
func (x *indexStore) Load(ctx context.Context) (*domain.TermModel, *domain.WeightMatrix, error) {
	modelData, err := x.payload(ctx, artifactModel)
	if err != nil {
		return nil, nil, err
	}
	matrixData, err := x.payload(ctx, artifactMatrix)
	if err != nil {
		return nil, nil, err
	}

	model, err := codec.DecodeModel(bytes.NewReader(modelData))
	if err != nil {
		return nil, nil, fmt.Errorf("reading model: %w", err)
	}
	matrix, err := codec.DecodeMatrix(bytes.NewReader(matrixData))
	if err != nil {
		return nil, nil, fmt.Errorf("reading matrix: %w", err)
	}
	return model, matrix, nil
}

// Clear deletes both artifacts.
func (x *indexStore) Clear(ctx context.Context) error {
	if _, err := x.db.ExecContext(ctx, "DELETE FROM index_artifacts"); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}
	return nil
}

func (x *indexStore) payload(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := x.db.QueryRowContext(ctx, "SELECT payload FROM index_artifacts WHERE name = ?", name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}
