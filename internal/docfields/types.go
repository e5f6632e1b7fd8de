// Package docfields holds the extraction core: the lexical (regex) extractor,
// the merge policy between lexical and semantic output, and the per-type
// normalization rules that turn noisy OCR/LLM output into a clean record.
package docfields

// FieldMap is a loose field mapping as produced by the semantic extractor.
// Values may be strings, numbers, or nested objects (addresses in particular
// come back structured sometimes).
type FieldMap map[string]any

// Clean is a normalized field mapping: allow-listed, sentinel-free, flat.
type Clean map[string]string
