package docfields

import (
	"regexp"

	"github.com/verifeye/verifeye/constants"
)

// PatternFields is the output of the lexical extractor. It is authoritative:
// a non-empty value here always overrides the semantic extractor's value for
// the same field.
type PatternFields struct {
	IDNumber  string
	VIDNumber string
}

var (
	reAadhaarID = regexp.MustCompile(`\b\d{4}\s\d{4}\s\d{4}\b`)
	rePANID     = regexp.MustCompile(`[A-Z]{5}[0-9]{4}[A-Z]`)
	reVoterID   = regexp.MustCompile(`[A-Z]{3}[0-9]{7}|[A-Z]{2,3}/\d{2}/\d{3}/\d{6}`)
)

// ExtractPattern pulls the fields that have a fixed lexical shape for the
// given document type. First match in the text wins. DRIVING and Unknown have
// no reliable pattern and yield nothing.
func ExtractPattern(text string, docType constants.DocumentType) PatternFields {
	var out PatternFields
	switch docType {
	case constants.Aadhaar:
		out.IDNumber = reAadhaarID.FindString(text)
	case constants.PAN:
		out.IDNumber = rePANID.FindString(text)
	case constants.Voter:
		out.IDNumber = reVoterID.FindString(text)
	}
	return out
}
