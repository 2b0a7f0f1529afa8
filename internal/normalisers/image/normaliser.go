// Package image extracts text from PNG and JPEG images with tesseract OCR.
package image

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
	"github.com/custodia-labs/casegen/internal/normalisers/command"
)

// Tool is the OCR binary.
const Tool = "tesseract"

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser runs OCR over images.
type Normaliser struct {
	runner command.Runner
}

// New creates an OCR normaliser that shells out through runner.
// A nil runner uses os/exec.
func New(runner command.Runner) *Normaliser {
	if runner == nil {
		runner = command.ExecRunner{}
	}
	return &Normaliser{runner: runner}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"image/png", "image/jpeg"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise pipes the image through `tesseract stdin stdout`.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	out, err := n.runner.Run(ctx, raw.Content, Tool, "stdin", "stdout")
	if err != nil {
		return nil, fmt.Errorf("%w: tesseract failed: %v", domain.ErrExtractionFailed, err)
	}

	return &driven.NormaliseResult{
		Text: strings.TrimSpace(strings.ReplaceAll(string(out), "\f", "")),
		Metadata: map[string]any{
			"mime_type": raw.MIMEType,
			"format":    "ocr",
		},
	}, nil
}

// InstallInstructions returns platform hints for installing tesseract.
func InstallInstructions() string {
	return `tesseract is required for image OCR:
  macOS:         brew install tesseract
  Debian/Ubuntu: apt install tesseract-ocr`
}
