package llm

import (
	"context"

	"github.com/verifeye/verifeye/constants"
	"github.com/verifeye/verifeye/internal/docfields"
)

// ExtractRequest carries everything the semantic extractor may condition on.
type ExtractRequest struct {
	RawText string
	DocType constants.DocumentType
	IsBack  bool
}

// FieldExtractor is the best-effort semantic extraction seam the pipeline
// depends on. The pipeline never trusts it over the lexical extractor, and a
// returned error means "no contribution", never a pipeline failure.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req ExtractRequest) (docfields.FieldMap, []byte /*rawJSON*/, error)
}

// Disabled returns a FieldExtractor that contributes nothing. The system must
// produce a usable (if sparser) result with the collaborator fully absent.
func Disabled() FieldExtractor { return disabledExtractor{} }

type disabledExtractor struct{}

func (disabledExtractor) ExtractFields(context.Context, ExtractRequest) (docfields.FieldMap, []byte, error) {
	return docfields.FieldMap{}, nil, nil
}
