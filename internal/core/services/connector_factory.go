package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/casegen/internal/connectors/filesystem"
	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
)

// Ensure ConnectorFactory implements the interface.
var _ driven.ConnectorFactory = (*ConnectorFactory)(nil)

// ConnectorFactory creates filesystem connectors for ingestion roots.
type ConnectorFactory struct {
	extensions []string
}

// NewConnectorFactory creates a factory whose connectors accept the given
// extensions. No extensions means filesystem.DefaultExtensions.
func NewConnectorFactory(extensions ...string) *ConnectorFactory {
	if len(extensions) == 0 {
		extensions = filesystem.DefaultExtensions
	}
	return &ConnectorFactory{extensions: extensions}
}

// Create returns a connector for root. File URIs are converted to paths.
func (f *ConnectorFactory) Create(_ context.Context, root string) (driven.Connector, error) {
	path := filesystem.LocalPath(root)
	if path == "" {
		return nil, fmt.Errorf("%w: empty ingestion path", domain.ErrInvalidInput)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, path, err)
	}
	return filesystem.New(filepath.Clean(path), path, filesystem.WithExtensions(f.extensions...)), nil
}
