// Package domain defines the core entities for casegen.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chunk: A retrievable passage of an ingested document
//   - EvidenceItem: A scored chunk returned by retrieval
//   - UseCase: A structured, evidence-grounded test case
//   - GenerationResult: The tagged outcome of a query
//   - RawDocument: Opaque bytes from a connector
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
