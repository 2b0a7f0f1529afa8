package services

import (
	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
	"github.com/custodia-labs/casegen/internal/logger"
	"github.com/custodia-labs/casegen/internal/normalisers/command"
	"github.com/custodia-labs/casegen/internal/normalisers/image"
	"github.com/custodia-labs/casegen/internal/normalisers/pdf"
)

// ResolveCapabilities probes the optional collaborators once at startup.
// A nil available uses the PATH lookup; a nil llm means templates only.
func ResolveCapabilities(
	settings *domain.AppSettings,
	llm driven.LLMService,
	available func(string) bool,
) domain.Capabilities {
	if available == nil {
		available = command.Available
	}

	caps := domain.DefaultCapabilities()
	if settings != nil {
		caps.Retrieval = settings.Retrieval.Backend.RetrievalMode()
	}
	caps.PDFExtraction = available(pdf.Tool)
	caps.OCR = available(image.Tool)
	if llm != nil {
		caps.LLM = true
		caps.LLMModel = llm.ModelName()
	}

	logger.Debug("Capabilities: retrieval=%s pdf=%t ocr=%t llm=%t",
		caps.Retrieval, caps.PDFExtraction, caps.OCR, caps.LLM)
	return caps
}
