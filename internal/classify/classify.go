package classify

import (
	"regexp"
	"strings"

	"github.com/verifeye/verifeye/constants"
)

var (
	reAadhaarGroups = regexp.MustCompile(`\b\d{4}\s\d{4}\s\d{4}\b`)
	rePostalCode    = regexp.MustCompile(`\b3\d{5}\b`)
)

// DetectType maps raw recognized text to a document type. Checks run in a
// fixed priority order: the AADHAAR 4-4-4 digit grouping outranks every
// keyword test, and PAN has two independent triggers.
func DetectType(text string) constants.DocumentType {
	t := strings.ToUpper(text)
	switch {
	case reAadhaarGroups.MatchString(text):
		return constants.Aadhaar
	case strings.Contains(t, "INCOME") && strings.Contains(t, "TAX"):
		return constants.PAN
	case strings.Contains(t, "PERMANENT ACCOUNT") || strings.Contains(t, "P.A.N"):
		return constants.PAN
	case strings.Contains(t, "DRIVING") && strings.Contains(t, "LICENCE"):
		return constants.Driving
	case strings.Contains(t, "ELECTION") || strings.Contains(t, "COMMISSION"):
		return constants.Voter
	}
	return constants.Unknown
}

// IsBackSide reports whether the captured face is the reverse of the card.
// Front markers win and short-circuit. "PATA" is transliterated Hindi for
// address; a 6-digit token starting with 3 is a postal-code heuristic.
func IsBackSide(text string) bool {
	t := strings.ToUpper(text)
	if strings.Contains(t, "DOB") || strings.Contains(t, "DATE") || strings.Contains(t, "INCOME") {
		return false
	}
	if strings.Contains(t, "ADDRESS") || strings.Contains(t, "PATA") || rePostalCode.MatchString(text) {
		return true
	}
	return false
}
