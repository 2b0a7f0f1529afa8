// Package sqlite stores the corpus and index artifacts in a single SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. It implements two store interfaces over one connection:
//
//   - ChunkStore: the chunk corpus, rewritten wholesale on each ingest
//   - IndexStore: the fitted term model and weight matrix
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files and
// applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.casegen/data/chunks.db
//
// # Consistency
//
// Both index artifacts are written in one transaction, so a reader sees
// the old pair or the new pair and never a mix.
package sqlite
