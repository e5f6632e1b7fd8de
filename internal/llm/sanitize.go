package llm

import (
	"encoding/json"
	"strconv"

	"github.com/verifeye/verifeye/constants"
)

var knownFields = func() map[string]struct{} {
	m := make(map[string]struct{}, len(constants.FieldVocabulary))
	for _, f := range constants.FieldVocabulary {
		m[f] = struct{}{}
	}
	return m
}()

// SanitizeFields removes or normalizes offenders so an imperfect response can
// still validate: keys outside the field vocabulary are dropped, nulls are
// dropped, numeric scalars are reformatted as strings. Address objects are
// kept for the normalizer to flatten.
func SanitizeFields(doc []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, nil, err
	}

	var dropped []string
	for k, v := range m {
		if _, ok := knownFields[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k)
			continue
		}
		switch t := v.(type) {
		case nil:
			delete(m, k)
			dropped = append(dropped, k)
		case string:
			// fine as-is; sentinel handling is the normalizer's concern
		case float64:
			m[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			m[k] = strconv.FormatBool(t)
		case map[string]any:
			if k != constants.FieldAddress {
				delete(m, k)
				dropped = append(dropped, k)
			}
		default:
			// arrays and anything else have no field meaning -> drop
			delete(m, k)
			dropped = append(dropped, k)
		}
	}

	b, err := json.Marshal(m)
	if err != nil {
		return nil, nil, err
	}
	return b, dropped, nil
}
