// Package connectors provides the document sources for ingestion.
// The filesystem connector discovers files under a root path and, in watch
// mode, reports changes so the corpus can be rebuilt.
package connectors
