// Package form implements the evaluation form engine: response
// normalization on the way in, display resolution on the way out, and
// the draft/submitted validation gate. Everything here is pure; storage
// and transport live elsewhere.
package form

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// DecodeMulti unpacks the stored value of a multiple selection field.
// Values written by current clients are JSON arrays; legacy rows hold a
// comma joined string. A bracketed value that fails to parse as JSON
// falls through to the comma path, so nothing ever errors out.
func DecodeMulti(stored string) []string {
	s := strings.TrimSpace(stored)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		var entries []any
		if err := json.Unmarshal([]byte(s), &entries); err == nil {
			vals := make([]string, 0, len(entries))
			for _, e := range entries {
				if v := strings.TrimSpace(stringify(e)); v != "" {
					vals = append(vals, v)
				}
			}
			if len(vals) == 0 {
				return nil
			}
			return vals
		}
	}
	parts := strings.Split(s, ",")
	vals := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return nil
	}
	return vals
}

// EncodeMulti packs a selection into its stored form: a comma joined
// string, switching to a JSON array whenever the join would not decode
// back to the same selection (values containing commas, or a joined
// text that itself looks like a JSON array).
func EncodeMulti(values []string) string {
	vals := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return ""
	}
	joined := strings.Join(vals, ",")
	if ambiguousJoin(vals, joined) {
		b, err := json.Marshal(vals)
		if err == nil {
			return string(b)
		}
	}
	return joined
}

func ambiguousJoin(vals []string, joined string) bool {
	for _, v := range vals {
		if strings.Contains(v, ",") {
			return true
		}
	}
	return strings.HasPrefix(joined, "[") && strings.HasSuffix(joined, "]")
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
