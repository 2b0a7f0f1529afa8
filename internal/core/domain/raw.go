package domain

// RawDocument represents opaque bytes fetched by a connector.
// It is the connector's output before text extraction.
type RawDocument struct {
	// SourceID names the ingestion root that produced this document.
	SourceID string

	// URI is the file path of the document.
	URI string

	// MIMEType is the content type detected from the file extension.
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains connector-specific key-value pairs
	// (filename, extension, size, modified).
	Metadata map[string]any
}

// ChangeType represents the type of document change.
type ChangeType int

const (
	// ChangeCreated indicates a new document.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified document.
	ChangeUpdated

	// ChangeDeleted indicates a removed document.
	ChangeDeleted
)

// String returns the change name for logging.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// RawDocumentChange represents a change event from a watching connector.
// Any change triggers a full re-ingestion of the root.
type RawDocumentChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Document is the affected document. Content is empty for deletions.
	Document RawDocument
}
