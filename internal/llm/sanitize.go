package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strings"
)

// NormalizeAndSanitizeJSON
// - Removes unknown keys (the model loves to volunteer extras)
// - Coerces a scalar "phones" into a one-element array, and array members to strings
// - Coerces stray numbers into strings for the text fields
// - Trims strings and drops nulls
// The phone values themselves are left untouched: no digit stripping, no
// reformatting, insertion order preserved.
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 4)

	// 1) remove unknown keys
	allowed := map[string]struct{}{
		"name": {}, "phones": {}, "email": {}, "address": {}, "description": {},
	}
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	// 2) phones: accept string, number, or array of either
	if v, ok := m["phones"]; ok {
		switch t := v.(type) {
		case nil:
			delete(m, "phones")
			dropped = append(dropped, "phones(null)")
		case string:
			m["phones"] = []string{t}
			dropped = append(dropped, "phones(scalar)")
		case []any:
			out := make([]string, 0, len(t))
			for _, e := range t {
				switch s := e.(type) {
				case string:
					out = append(out, s)
				case float64:
					out = append(out, fmt.Sprintf("%.0f", s))
				default:
					dropped = append(dropped, "phones.item(type)")
				}
			}
			m["phones"] = out
		default:
			delete(m, "phones")
			dropped = append(dropped, "phones(type)")
		}
	}

	// 3) text fields: coerce numbers, trim, drop nulls
	for _, k := range []string{"name", "email", "address", "description"} {
		if v, ok := m[k]; ok {
			switch t := v.(type) {
			case string:
				m[k] = strings.TrimSpace(t)
			case float64:
				m[k] = strings.TrimSpace(fmt.Sprintf("%v", t))
				dropped = append(dropped, k+"(number)")
			case nil:
				delete(m, k)
				dropped = append(dropped, k+"(null)")
			default:
				delete(m, k)
				dropped = append(dropped, k+"(type)")
			}
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.extract.normalize_sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}
