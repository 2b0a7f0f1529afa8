package domain

import "strings"

// ChunkMeta carries positional metadata for a chunk.
type ChunkMeta struct {
	// Filename is the base name of the source file.
	Filename string `json:"filename" yaml:"filename"`

	// Index is the position of the chunk within its source file.
	Index int `json:"index" yaml:"index"`

	// Chars is the length of the chunk text in characters.
	Chars int `json:"chars" yaml:"chars"`

	// Words is the whitespace token count of the chunk text.
	Words int `json:"words" yaml:"words"`
}

// Chunk is a retrievable passage of an ingested document.
// Chunks are read-only after ingestion and replaced only by
// a full re-ingestion of the corpus.
type Chunk struct {
	// ID is a stable identifier derived from Source and Ordinal.
	ID string `json:"id" yaml:"id"`

	// Source is the origin path, relative to the working directory when possible.
	Source string `json:"source" yaml:"source"`

	// Text is the sanitised chunk content.
	Text string `json:"text" yaml:"text"`

	// Ordinal is the position of the chunk within its source file.
	Ordinal int `json:"ordinal" yaml:"ordinal"`

	// Meta holds positional metadata.
	Meta ChunkMeta `json:"meta" yaml:"meta"`
}

// WordCount returns the number of whitespace separated words in the text.
func (c Chunk) WordCount() int {
	return len(strings.Fields(c.Text))
}

// CorpusStats summarises a chunk corpus.
type CorpusStats struct {
	TotalChunks   int `json:"total_chunks" yaml:"total_chunks"`
	UniqueSources int `json:"unique_sources" yaml:"unique_sources"`
}

// StatsOf computes corpus statistics.
func StatsOf(chunks []Chunk) CorpusStats {
	sources := make(map[string]struct{}, len(chunks))
	for i := range chunks {
		sources[chunks[i].Source] = struct{}{}
	}
	return CorpusStats{
		TotalChunks:   len(chunks),
		UniqueSources: len(sources),
	}
}
