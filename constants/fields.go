package constants

import "strings"

// Canonical field vocabulary shared by the extractors, the normalizer and the
// record store. Keys are spelled exactly as they appear in persisted records.
const (
	FieldName       = "Name"
	FieldParentName = "Parent Name"
	FieldDOB        = "DOB"
	FieldGender     = "Gender"
	FieldIDNumber   = "ID Number"
	FieldVIDNumber  = "VID Number"
	FieldAddress    = "Address"
	FieldValidity   = "Validity"
	FieldIssueDate  = "Issue Date"

	// FieldConfidence is appended by the pipeline, never extracted.
	FieldConfidence = "Match Confidence"
)

// FieldVocabulary lists every extractable field in presentation order.
var FieldVocabulary = []string{
	FieldName,
	FieldParentName,
	FieldDOB,
	FieldGender,
	FieldIDNumber,
	FieldVIDNumber,
	FieldAddress,
	FieldValidity,
	FieldIssueDate,
}

// noValueSentinels are textual stand-ins the semantic extractor emits when it
// found nothing; they are treated as absence, not kept as values.
var noValueSentinels = map[string]struct{}{
	"null":        {},
	"none":        {},
	"n/a":         {},
	"unspecified": {},
}

// IsNoValue reports whether v means "no value" rather than a real field value.
func IsNoValue(v string) bool {
	_, ok := noValueSentinels[strings.ToLower(strings.TrimSpace(v))]
	return ok
}
