package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
)

type stubNormaliser struct {
	types    []string
	priority int
	text     string
}

func (s *stubNormaliser) SupportedMIMETypes() []string { return s.types }
func (s *stubNormaliser) Priority() int                { return s.priority }
func (s *stubNormaliser) Normalise(_ context.Context, _ *domain.RawDocument) (*driven.NormaliseResult, error) {
	return &driven.NormaliseResult{Text: s.text}, nil
}

type stubRunner struct{}

func (stubRunner) Run(_ context.Context, _ []byte, _ string, _ ...string) ([]byte, error) {
	return []byte("ocr text"), nil
}

func TestRegistry_PriorityWins(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubNormaliser{types: []string{"text/plain"}, priority: 5, text: "fallback"})
	r.Register(&stubNormaliser{types: []string{"text/plain"}, priority: 90, text: "specific"})

	result, err := r.Normalise(context.Background(), &domain.RawDocument{MIMEType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, "specific", result.Text)
}

func TestRegistry_Unsupported(t *testing.T) {
	r := NewRegistry()
	_, err := r.Normalise(context.Background(), &domain.RawDocument{MIMEType: "application/zip"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, err = r.Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDefaults_RespectCapabilities(t *testing.T) {
	t.Run("text only", func(t *testing.T) {
		r := Defaults(domain.Capabilities{}, stubRunner{})
		types := r.SupportedMIMETypes()
		assert.Contains(t, types, "text/plain")
		assert.Contains(t, types, "text/markdown")
		assert.NotContains(t, types, "application/pdf")
		assert.NotContains(t, types, "image/png")
	})

	t.Run("with pdf and ocr", func(t *testing.T) {
		r := Defaults(domain.Capabilities{PDFExtraction: true, OCR: true}, stubRunner{})
		types := r.SupportedMIMETypes()
		assert.Contains(t, types, "application/pdf")
		assert.Contains(t, types, "image/jpeg")

		result, err := r.Normalise(context.Background(), &domain.RawDocument{MIMEType: "image/png"})
		require.NoError(t, err)
		assert.Equal(t, "ocr text", result.Text)
	})
}
