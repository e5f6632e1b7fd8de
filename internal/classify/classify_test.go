package classify

import (
	"testing"

	"github.com/verifeye/verifeye/constants"
)

func TestDetectType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want constants.DocumentType
	}{
		{
			name: "aadhaar digit grouping",
			text: "Government of India 1234 5678 9012",
			want: constants.Aadhaar,
		},
		{
			name: "digit grouping outranks keywords",
			text: "INCOME TAX DEPARTMENT 1234 5678 9012",
			want: constants.Aadhaar,
		},
		{
			name: "income and tax",
			text: "INCOME TAX DEPARTMENT GOVT OF INDIA",
			want: constants.PAN,
		},
		{
			name: "income and tax lowercase",
			text: "income tax department",
			want: constants.PAN,
		},
		{
			name: "permanent account trigger",
			text: "Permanent Account Number Card",
			want: constants.PAN,
		},
		{
			name: "pan abbreviation trigger",
			text: "P.A.N Services Unit",
			want: constants.PAN,
		},
		{
			name: "driving licence",
			text: "DRIVING LICENCE Union of India",
			want: constants.Driving,
		},
		{
			name: "driving without licence keyword",
			text: "DRIVING SCHOOL",
			want: constants.Unknown,
		},
		{
			name: "election commission",
			text: "ELECTION COMMISSION OF INDIA",
			want: constants.Voter,
		},
		{
			name: "commission alone",
			text: "State Commission Identity Card",
			want: constants.Voter,
		},
		{
			name: "no markers",
			text: "some unrelated text",
			want: constants.Unknown,
		},
		{
			name: "empty",
			text: "",
			want: constants.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectType(tt.text); got != tt.want {
				t.Errorf("DetectType(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsBackSide(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "dob short-circuits before address",
			text: "Name X DOB: 01/01/1990 ADDRESS 12 MG Road",
			want: false,
		},
		{
			name: "date marker means front",
			text: "Date of Issue 2020 something",
			want: false,
		},
		{
			name: "income marker means front",
			text: "INCOME TAX DEPARTMENT",
			want: false,
		},
		{
			name: "address marker",
			text: "ADDRESS 12 MG Road Pune",
			want: true,
		},
		{
			name: "transliterated hindi address",
			text: "Pata 12 MG Road",
			want: true,
		},
		{
			name: "postal code heuristic",
			text: "S/O Ram Kumar, Pune 311024",
			want: true,
		},
		{
			name: "six digits not starting with 3",
			text: "S/O Ram Kumar, 411024",
			want: false,
		},
		{
			name: "no markers",
			text: "plain text",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBackSide(tt.text); got != tt.want {
				t.Errorf("IsBackSide(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
