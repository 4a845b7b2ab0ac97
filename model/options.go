package model

import (
	"bytes"
	"strconv"

	json "github.com/goccy/go-json"
)

// Option is one selectable entry of a choice field. Value is what gets
// stored in a response, Label is what gets shown.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionList tolerates the two shapes options have reached the database
// in: a structured JSON array, or that same array serialized once more
// into a JSON string by older clients. Anything unreadable decodes to an
// empty list, never to an error, so one corrupt field cannot take a
// whole template down.
type OptionList []Option

func (ol *OptionList) UnmarshalJSON(data []byte) error {
	*ol = decodeOptions(data)
	return nil
}

// ParseOptions decodes the options column of a form field row.
func ParseOptions(raw string) OptionList {
	return decodeOptions([]byte(raw))
}

// Encode renders the canonical storage form: a plain JSON array, or the
// empty string when there are no options.
func (ol OptionList) Encode() string {
	if len(ol) == 0 {
		return ""
	}
	b, err := json.Marshal([]Option(ol))
	if err != nil {
		return ""
	}
	return string(b)
}

// Values lists the stored values in declaration order.
func (ol OptionList) Values() []string {
	vals := make([]string, len(ol))
	for i, o := range ol {
		vals[i] = o.Value
	}
	return vals
}

func decodeOptions(data []byte) OptionList {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		// dual-encoded: the array arrived wrapped in a JSON string
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil
		}
		return decodeEntries([]byte(inner))
	}
	return decodeEntries(data)
}

func decodeEntries(data []byte) OptionList {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	opts := make(OptionList, 0, len(entries))
	for _, e := range entries {
		if o, ok := decodeEntry(e); ok {
			opts = append(opts, o)
		}
	}
	if len(opts) == 0 {
		return nil
	}
	return opts
}

// decodeEntry accepts {value,label} objects as well as bare string or
// numeric entries, which stand for both value and label at once.
func decodeEntry(e json.RawMessage) (Option, bool) {
	var o Option
	if err := json.Unmarshal(e, &o); err == nil && (o.Value != "" || o.Label != "") {
		if o.Value == "" {
			o.Value = o.Label
		}
		if o.Label == "" {
			o.Label = o.Value
		}
		return o, true
	}
	var s string
	if err := json.Unmarshal(e, &s); err == nil && s != "" {
		return Option{Value: s, Label: s}, true
	}
	var n float64
	if err := json.Unmarshal(e, &n); err == nil {
		v := strconv.FormatFloat(n, 'f', -1, 64)
		return Option{Value: v, Label: v}, true
	}
	return Option{}, false
}
