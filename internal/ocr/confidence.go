package ocr

import (
	"regexp"
	"strings"
)

var (
	reDateToken = regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`)
	reIDToken   = regexp.MustCompile(`\b\d{4}\s\d{4}\s\d{4}\b|[A-Z]{5}[0-9]{4}[A-Z]|[A-Z]{3}[0-9]{7}`)
)

var idKeywords = []string{"government", "india", "income", "tax", "election", "licence", "aadhaar"}

// naive heuristic confidence based on decoded text characteristics
func heuristicConfidence(txt string) float32 {
	// boost when common identity-card artifacts decoded cleanly
	// (a date, an ID-shaped token, issuer keywords). Each adds a bit.
	score := float32(0.2) // base
	if reDateToken.MatchString(txt) {
		score += 0.2
	}
	if reIDToken.MatchString(txt) {
		score += 0.2
	}
	lower := strings.ToLower(txt)
	for _, kw := range idKeywords {
		if strings.Contains(lower, kw) {
			score += 0.15
			break
		}
	}
	if len(txt) > 80 { // enough content
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
