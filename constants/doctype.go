package constants

import "strings"

// DocumentType enumerates the supported identity-document categories.
type DocumentType string

const (
	Aadhaar DocumentType = "AADHAAR"
	PAN     DocumentType = "PAN"
	Voter   DocumentType = "VOTER"
	Driving DocumentType = "DRIVING"
	Unknown DocumentType = "Unknown"
)

// DocumentTypes holds every concrete type; Unknown is deliberately excluded.
var DocumentTypes = []DocumentType{Aadhaar, PAN, Voter, Driving}

// ParseDocumentType maps a caller-supplied hint to a DocumentType. Empty,
// "null" and "undefined" are raw form values some frontends send for "no hint"
// and parse to (Unknown, false).
func ParseDocumentType(s string) (DocumentType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(Aadhaar):
		return Aadhaar, true
	case string(PAN):
		return PAN, true
	case string(Voter):
		return Voter, true
	case string(Driving):
		return Driving, true
	}
	return Unknown, false
}
