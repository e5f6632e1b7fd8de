package llm

import (
	"fmt"
	"strings"

	"github.com/verifeye/verifeye/constants"
)

// buildInstruction tailors the extraction ask to (docType, side). Each variant
// names exactly the fields worth asking for and explicitly excludes the ones
// the model tends to hallucinate from boilerplate.
func buildInstruction(docType constants.DocumentType, isBack bool) string {
	switch docType {
	case constants.Aadhaar:
		if isBack {
			return "Extract Address, VID Number. Ignore Name and DOB."
		}
		return "Extract Name, DOB, Gender, ID Number. Ignore Address."
	case constants.PAN:
		return "Extract ONLY: Name, Parent Name, DOB, ID Number. Ignore 'Income Tax Department', 'Govt of India', and Signature labels."
	case constants.Driving:
		return "Extract Name, Parent Name (Father/Husband), DOB, ID Number (License No), Address, Issue Date (DOI), Validity (Non-Transport/Transport). Distinguish clearly between DOB and Validity."
	}
	return "Extract details."
}

// BuildPrompt composes the full extraction instruction for one document.
func BuildPrompt(req ExtractRequest) string {
	instr := buildInstruction(req.DocType, req.IsBack)
	return fmt.Sprintf(`Extract %s data. %s Raw Text: %q
Return JSON with keys: %s.
Important:
1. If a field is not found, return null.
2. The "Address" field must be a single string.
3. For Driving License, "Parent Name" is usually labeled as S/O, W/O, or D/O.
4. "Validity" is the expiry date (Valid Till).`,
		req.DocType, instr, req.RawText, strings.Join(constants.FieldVocabulary, ", "))
}
