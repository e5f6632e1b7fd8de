package docfields

import (
	"regexp"
	"strings"

	"github.com/verifeye/verifeye/constants"
)

var reDOBToken = regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`)

// Merge overlays the authoritative pattern fields on top of the semantic
// mapping. A dd/mm/yyyy token found in the raw text replaces the DOB when the
// merged DOB is missing or contains one of the placeholder markers (these mark
// a recurring OCR/LLM misread and come from configuration).
func Merge(pattern PatternFields, semantic FieldMap, rawText string, placeholders []string) FieldMap {
	merged := make(FieldMap, len(semantic)+2)
	for k, v := range semantic {
		merged[k] = v
	}
	if pattern.IDNumber != "" {
		merged[constants.FieldIDNumber] = pattern.IDNumber
	}
	if pattern.VIDNumber != "" {
		merged[constants.FieldVIDNumber] = pattern.VIDNumber
	}
	if tok := reDOBToken.FindString(rawText); tok != "" {
		dob, _ := merged[constants.FieldDOB].(string)
		if dob == "" || containsAny(dob, placeholders) {
			merged[constants.FieldDOB] = tok
		}
	}
	return merged
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
