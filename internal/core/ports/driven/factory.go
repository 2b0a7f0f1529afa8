package driven

import "context"

// ConnectorFactory creates connectors for ingestion roots.
type ConnectorFactory interface {
	// Create returns a Connector for root, a path or file:// URI.
	// The caller closes the connector.
	Create(ctx context.Context, root string) (Connector, error)
}
