package constants

import "testing"

func TestParseDocumentType(t *testing.T) {
	tests := []struct {
		in     string
		want   DocumentType
		wantOK bool
	}{
		{"AADHAAR", Aadhaar, true},
		{"aadhaar", Aadhaar, true},
		{"  Pan ", PAN, true},
		{"voter", Voter, true},
		{"DRIVING", Driving, true},
		{"", Unknown, false},
		{"null", Unknown, false},
		{"undefined", Unknown, false},
		{"PASSPORT", Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDocumentType(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseDocumentType(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIsNoValue(t *testing.T) {
	for _, v := range []string{"null", "NULL", " None ", "n/a", "Unspecified"} {
		if !IsNoValue(v) {
			t.Errorf("IsNoValue(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"Asha Rao", "0", "na", ""} {
		if IsNoValue(v) {
			t.Errorf("IsNoValue(%q) = true, want false", v)
		}
	}
}
