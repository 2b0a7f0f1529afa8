// Package filesystem discovers documents on local disk.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
	"github.com/custodia-labs/casegen/internal/logger"
)

// Type is the connector type name.
const Type = "filesystem"

// DefaultExtensions are the file types ingested by default.
var DefaultExtensions = []string{
	".txt", ".md", ".markdown", ".yaml", ".yml",
	".pdf", ".docx",
	".png", ".jpg", ".jpeg",
}

// mimeOverrides covers extensions the platform MIME table often lacks.
var mimeOverrides = map[string]string{
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".yaml":     "text/yaml",
	".yml":      "text/yaml",
	".txt":      "text/plain",
	".docx":     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pdf":      "application/pdf",
	".png":      "image/png",
	".jpg":      "image/jpeg",
	".jpeg":     "image/jpeg",
}

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector walks a directory tree (or a single file) and emits raw documents.
type Connector struct {
	sourceID   string
	rootPath   string
	extensions map[string]bool

	mu      sync.Mutex
	closed  bool
	watcher *fsnotify.Watcher
}

// Option configures a Connector.
type Option func(*Connector)

// WithExtensions restricts discovery to the given extensions (".md", ".pdf").
// An empty list accepts every file.
func WithExtensions(exts ...string) Option {
	return func(c *Connector) {
		c.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			c.extensions[strings.ToLower(ext)] = true
		}
	}
}

// New creates a filesystem connector rooted at rootPath.
func New(sourceID, rootPath string, opts ...Option) *Connector {
	c := &Connector{sourceID: sourceID, rootPath: rootPath}
	WithExtensions(DefaultExtensions...)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return Type
}

// SourceID returns the source identifier.
func (c *Connector) SourceID() string {
	return c.sourceID
}

// Capabilities returns the connector's capabilities.
func (c *Connector) Capabilities() driven.ConnectorCapabilities {
	return driven.ConnectorCapabilities{
		SupportsWatch:  true,
		SupportsBinary: true,
	}
}

// FullSync walks the root in lexical order and emits every accepted file.
// Hidden files and directories are skipped. Unreadable files are logged
// and skipped; a missing root is reported on the error channel.
func (c *Connector) FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docs := make(chan domain.RawDocument)
	errs := make(chan error, 1)

	go func() {
		defer close(docs)
		defer close(errs)

		if err := c.validateRoot(); err != nil {
			errs <- err
			return
		}

		err := filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Warn("walking %s: %v", path, err)
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if path != c.rootPath && isHidden(d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() || !c.accepts(path) {
				return nil
			}

			doc, err := c.readDocument(path)
			if err != nil {
				logger.Warn("reading %s: %v", path, err)
				return nil
			}

			select {
			case docs <- *doc:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			errs <- err
		}
	}()

	return docs, errs
}

// Watch reports create, write, remove and rename events under the root.
// New subdirectories are watched as they appear. The returned channel is
// closed when ctx is cancelled or the connector is closed.
func (c *Connector) Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, domain.ErrConnectorClosed
	}
	if err := c.validateRoot(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := addRecursive(watcher, c.rootPath); err != nil {
		watcher.Close()
		return nil, err
	}
	c.watcher = watcher

	changes := make(chan domain.RawDocumentChange)
	go func() {
		defer close(changes)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !isHidden(info.Name()) {
						if err := addRecursive(watcher, event.Name); err != nil {
							logger.Warn("watching %s: %v", event.Name, err)
						}
					}
				}
				change := c.handleFsEvent(event)
				if change == nil {
					continue
				}
				select {
				case changes <- *change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}

// Close stops any active watcher. It is safe to call more than once.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.watcher != nil {
		return c.watcher.Close()
	}
	return nil
}

// handleFsEvent maps an fsnotify event to a change, or nil if it is not
// relevant (chmod, directories, hidden or unaccepted files).
func (c *Connector) handleFsEvent(event fsnotify.Event) *domain.RawDocumentChange {
	rel, err := filepath.Rel(c.rootPath, event.Name)
	if err != nil {
		rel = event.Name
	}
	if isHidden(rel) || !c.accepts(event.Name) {
		return nil
	}

	doc := domain.RawDocument{
		SourceID: c.sourceID,
		URI:      event.Name,
		MIMEType: detectMIMEType(event.Name),
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &domain.RawDocumentChange{Type: domain.ChangeDeleted, Document: doc}
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() {
			return nil
		}
		changeType := domain.ChangeUpdated
		if event.Has(fsnotify.Create) {
			changeType = domain.ChangeCreated
		}
		return &domain.RawDocumentChange{Type: changeType, Document: doc}
	default:
		return nil
	}
}

func (c *Connector) validateRoot() error {
	if _, err := os.Stat(c.rootPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("root path error: %s does not exist", c.rootPath)
		}
		return fmt.Errorf("root path error: %w", err)
	}
	return nil
}

func (c *Connector) accepts(path string) bool {
	if len(c.extensions) == 0 {
		return true
	}
	return c.extensions[strings.ToLower(filepath.Ext(path))]
}

func (c *Connector) readDocument(path string) (*domain.RawDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &domain.RawDocument{
		SourceID: c.sourceID,
		URI:      path,
		MIMEType: detectMIMEType(path),
		Content:  content,
		Metadata: map[string]any{
			"filename":  filepath.Base(path),
			"extension": strings.ToLower(filepath.Ext(path)),
			"size":      info.Size(),
			"modified":  info.ModTime(),
		},
	}, nil
}

// addRecursive watches dir and every non-hidden directory below it.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return watcher.Add(root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// detectMIMEType maps a file extension to a MIME type without parameters.
func detectMIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "text/plain"
	}
	if m, ok := mimeOverrides[ext]; ok {
		return m
	}
	if m := mime.TypeByExtension(ext); m != "" {
		if i := strings.IndexByte(m, ';'); i >= 0 {
			m = m[:i]
		}
		return strings.TrimSpace(m)
	}
	return "application/octet-stream"
}

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
