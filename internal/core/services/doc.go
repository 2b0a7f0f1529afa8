// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The query path is retrieval, the evidence gate, then generation:
// templates by default, or the LLM delegate when one is configured.
// Ingestion replaces the whole corpus and invalidates the index, which
// is rebuilt lazily on the next query.
package services
