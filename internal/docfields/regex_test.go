package docfields

import (
	"testing"

	"github.com/verifeye/verifeye/constants"
)

func TestExtractPattern(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		docType constants.DocumentType
		want    PatternFields
	}{
		{
			name:    "aadhaar id",
			text:    "Government of India 1234 5678 9012 Male",
			docType: constants.Aadhaar,
			want:    PatternFields{IDNumber: "1234 5678 9012"},
		},
		{
			name:    "aadhaar first match wins",
			text:    "1111 2222 3333 and 4444 5555 6666",
			docType: constants.Aadhaar,
			want:    PatternFields{IDNumber: "1111 2222 3333"},
		},
		{
			name:    "aadhaar rejects unspaced run",
			text:    "123456789012",
			docType: constants.Aadhaar,
			want:    PatternFields{},
		},
		{
			name:    "pan id",
			text:    "Permanent Account Number ABCDE1234F",
			docType: constants.PAN,
			want:    PatternFields{IDNumber: "ABCDE1234F"},
		},
		{
			name:    "pan rejects lowercase",
			text:    "abcde1234f",
			docType: constants.PAN,
			want:    PatternFields{},
		},
		{
			name:    "voter compact id",
			text:    "Elector ABC1234567",
			docType: constants.Voter,
			want:    PatternFields{IDNumber: "ABC1234567"},
		},
		{
			name:    "voter slash id",
			text:    "Elector AB/12/345/678901",
			docType: constants.Voter,
			want:    PatternFields{IDNumber: "AB/12/345/678901"},
		},
		{
			name:    "driving has no pattern",
			text:    "DL No MH1220200012345 DOB 01/01/1990",
			docType: constants.Driving,
			want:    PatternFields{},
		},
		{
			name:    "unknown has no pattern",
			text:    "1234 5678 9012",
			docType: constants.Unknown,
			want:    PatternFields{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPattern(tt.text, tt.docType); got != tt.want {
				t.Errorf("ExtractPattern() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
