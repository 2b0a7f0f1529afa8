// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Connector: Discovers files under an ingestion root
//   - ConnectorFactory: Creates a Connector for a path
//   - Normaliser: Extracts text from a raw document
//   - NormaliserRegistry: Selects the appropriate normaliser
//   - Chunker: Splits sanitised text into passages
//   - PostProcessor: Filters and deduplicates chunks
//   - ChunkStore: Corpus persistence (overwritten wholesale)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Indexer / IndexStore: Term index. Without it, retrieval is keyword-only.
//   - LLMService: Use-case delegate. Without it, use-cases come from templates.
//   - PromptStore: Editable prompts. Without it, built-in prompts are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
