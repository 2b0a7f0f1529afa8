// Package pdf extracts text from PDF files with poppler's pdftotext.
package pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
	"github.com/custodia-labs/casegen/internal/normalisers/command"
)

// Tool is the extraction binary.
const Tool = "pdftotext"

// maxTitleLen bounds a first-line title.
const maxTitleLen = 200

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PDF documents.
type Normaliser struct {
	runner command.Runner
}

// New creates a PDF normaliser that shells out through runner.
// A nil runner uses os/exec.
func New(runner command.Runner) *Normaliser {
	if runner == nil {
		runner = command.ExecRunner{}
	}
	return &Normaliser{runner: runner}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise pipes the PDF through `pdftotext -layout - -`.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	out, err := n.runner.Run(ctx, raw.Content, Tool, "-layout", "-", "-")
	if err != nil {
		return nil, fmt.Errorf("%w: pdftotext failed: %v", domain.ErrExtractionFailed, err)
	}

	// pdftotext separates pages with form feeds.
	text := strings.ReplaceAll(string(out), "\f", "\n\n")
	text = strings.TrimSpace(text)

	return &driven.NormaliseResult{
		Text:  text,
		Title: extractTitle(text, raw.URI),
		Metadata: map[string]any{
			"mime_type": raw.MIMEType,
			"format":    "pdf",
			"pages":     strings.Count(string(out), "\f"),
		},
	}, nil
}

// extractTitle returns the first short non-empty line, or the filename.
func extractTitle(content, uri string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.ContainsRune(line, 0) {
			continue
		}
		if len(line) <= maxTitleLen {
			return line
		}
	}

	filename := filepath.Base(uri)
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))
	return strings.NewReplacer("_", " ", "-", " ").Replace(filename)
}

// InstallInstructions returns platform hints for installing pdftotext.
func InstallInstructions() string {
	return `pdftotext (poppler) is required for PDF ingestion:
  macOS:         brew install poppler
  Debian/Ubuntu: apt install poppler-utils
  Fedora:        dnf install poppler-utils`
}
