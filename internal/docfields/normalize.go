package docfields

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/verifeye/verifeye/constants"
)

var (
	reYearRun       = regexp.MustCompile(`\d{4}`)
	reDLLabel       = regexp.MustCompile(`(?i)(DL\s*No|Licence\s*No)[:.\s-]*`)
	reNonDigitSpace = regexp.MustCompile(`[^\d\s]`)
	reNonDigit      = regexp.MustCompile(`\D`)
	reAddrLabel     = regexp.MustCompile(`(?i)^(Address|Addr|To|Date).*?[:,-]`)
	reHasLetter     = regexp.MustCompile(`[a-zA-Z]`)
)

// panNoiseWords are department boilerplate fragments OCR drags into PAN name
// fields; each is stripped wherever it appears, case-insensitively.
var panNoiseWords = []string{"INCOME", "TAX", "DEPARTMENT", "GOVT", "INDIA", "SIGNATURE", "CHAIRMAN"}

var panNoisePatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(panNoiseWords))
	for i, w := range panNoiseWords {
		out[i] = regexp.MustCompile(`(?i)` + w)
	}
	return out
}()

// allowedFor returns the fields valid for a (docType, side) combination.
// nil means "keep everything present" (Unknown documents).
func allowedFor(docType constants.DocumentType, isBack bool) []string {
	switch docType {
	case constants.Aadhaar:
		if isBack {
			return []string{constants.FieldAddress, constants.FieldIDNumber, constants.FieldVIDNumber}
		}
		return []string{constants.FieldName, constants.FieldDOB, constants.FieldGender, constants.FieldIDNumber, constants.FieldVIDNumber}
	case constants.PAN:
		return []string{constants.FieldName, constants.FieldParentName, constants.FieldDOB, constants.FieldIDNumber}
	case constants.Voter:
		return []string{constants.FieldName, constants.FieldParentName, constants.FieldDOB, constants.FieldIDNumber, constants.FieldGender}
	case constants.Driving:
		return []string{constants.FieldName, constants.FieldParentName, constants.FieldIDNumber, constants.FieldDOB, constants.FieldIssueDate, constants.FieldValidity, constants.FieldAddress}
	}
	return nil
}

// Normalize projects fields onto the allow-list for (docType, side), drops
// sentinel "no value" strings, flattens structured addresses, and applies the
// per-type repair rules. currentYear feeds the DRIVING DOB/Validity
// disambiguation and must come from the clock, not a literal. The result is
// stable under repeated application.
func Normalize(fields FieldMap, docType constants.DocumentType, isBack bool, currentYear int) Clean {
	clean := Clean{}

	allowed := allowedFor(docType, isBack)
	if allowed == nil {
		allowed = make([]string, 0, len(fields))
		for k := range fields {
			allowed = append(allowed, k)
		}
		sort.Strings(allowed)
	}

	for _, k := range allowed {
		v, ok := fields[k]
		if !ok || v == nil {
			continue
		}
		if sub, isMap := v.(map[string]any); isMap {
			if k != constants.FieldAddress {
				continue
			}
			if joined := flattenAddress(sub); joined != "" {
				clean[k] = joined
			}
			continue
		}
		s := strings.TrimSpace(stringify(v))
		if s == "" || constants.IsNoValue(s) {
			continue
		}
		clean[k] = s
	}

	switch docType {
	case constants.Driving:
		repairDriving(clean, currentYear)
	case constants.Aadhaar:
		repairAadhaar(clean, isBack)
	case constants.PAN:
		repairPAN(clean)
	}

	return clean
}

// repairDriving fixes the recurring DOB/Validity confusion (a "birth year" in
// the future is the expiry date) and strips licence-number label noise.
func repairDriving(clean Clean, currentYear int) {
	if dob, ok := clean[constants.FieldDOB]; ok {
		if run := reYearRun.FindString(dob); run != "" {
			if year, err := strconv.Atoi(run); err == nil && year > currentYear {
				if _, has := clean[constants.FieldValidity]; !has {
					clean[constants.FieldValidity] = dob
				}
				delete(clean, constants.FieldDOB)
			}
		}
	}
	if id, ok := clean[constants.FieldIDNumber]; ok {
		clean[constants.FieldIDNumber] = strings.TrimSpace(reDLLabel.ReplaceAllString(id, ""))
	}
}

// repairAadhaar enforces the 12-digit (plus internal spaces) ID shape and the
// 16-digit VID shape. A VID with fewer than 16 digits is left untouched: a
// partial match is accepted as-is. On the back side the address loses any
// leading label and surrounding separators.
func repairAadhaar(clean Clean, isBack bool) {
	if id, ok := clean[constants.FieldIDNumber]; ok {
		id = reNonDigitSpace.ReplaceAllString(id, "")
		if len(id) > 14 {
			id = id[:14]
		}
		clean[constants.FieldIDNumber] = id
	}
	if vid, ok := clean[constants.FieldVIDNumber]; ok {
		digits := reNonDigit.ReplaceAllString(vid, "")
		if len(digits) >= 16 {
			clean[constants.FieldVIDNumber] = digits[:16]
		}
	}
	if isBack {
		if addr, ok := clean[constants.FieldAddress]; ok {
			addr = reAddrLabel.ReplaceAllString(addr, "")
			clean[constants.FieldAddress] = strings.Trim(addr, " ,;:-")
		}
	}
}

// repairPAN strips department boilerplate out of the name fields and drops a
// field whose residue is too short or letterless to be a name.
func repairPAN(clean Clean) {
	for _, field := range []string{constants.FieldName, constants.FieldParentName} {
		val, ok := clean[field]
		if !ok {
			continue
		}
		for _, re := range panNoisePatterns {
			val = strings.TrimSpace(re.ReplaceAllString(val, ""))
		}
		if len(val) < 3 || !reHasLetter.MatchString(val) {
			delete(clean, field)
		} else {
			clean[field] = val
		}
	}
}

// flattenAddress concatenates the non-sentinel sub-values of a structured
// address into one ", "-separated string. Sub-keys are visited in sorted order
// so the output is deterministic.
func flattenAddress(sub map[string]any) string {
	keys := make([]string, 0, len(sub))
	for k := range sub {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		v := sub[k]
		if v == nil {
			continue
		}
		s := strings.TrimSpace(stringify(v))
		if s == "" || constants.IsNoValue(s) {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}
