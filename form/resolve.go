package form

import (
	"strconv"
	"strings"

	"github.com/truthtechno/lockerroom-evals/model"
)

const maxStars = 5

type DisplayKind string

const (
	DisplayText   DisplayKind = "text"
	DisplayStars  DisplayKind = "stars"
	DisplayLabel  DisplayKind = "label"
	DisplayLabels DisplayKind = "labels"
)

// DisplayValue is the render-ready form of a stored response.
type DisplayValue struct {
	Kind   DisplayKind `json:"kind"`
	Text   string      `json:"text,omitempty"`
	Labels []string    `json:"labels,omitempty"`
	Stars  int         `json:"stars,omitempty"`
}

// matchOption walks the resolution ladder: exact value match, then
// trimmed, then trimmed case-insensitive. Option values are string
// coerced at parse time, so a separate coercion pass is not needed.
func matchOption(opts model.OptionList, value string) (model.Option, bool) {
	for _, o := range opts {
		if o.Value == value {
			return o, true
		}
	}
	tv := strings.TrimSpace(value)
	for _, o := range opts {
		if strings.TrimSpace(o.Value) == tv {
			return o, true
		}
	}
	for _, o := range opts {
		if strings.EqualFold(strings.TrimSpace(o.Value), tv) {
			return o, true
		}
	}
	return model.Option{}, false
}

// ResolveLabel maps a stored value onto its option label. ok is false
// when no rung of the ladder matches; callers then show the raw value.
func ResolveLabel(opts model.OptionList, value string) (string, bool) {
	o, ok := matchOption(opts, value)
	return o.Label, ok
}

// ResolveDisplay renders one stored response for its field. It never
// fails: anything unresolvable comes back as raw text, so a template
// edit can degrade how an old evaluation reads but can never hide it.
func ResolveDisplay(f model.FormField, stored string) DisplayValue {
	switch f.Type {
	case model.FieldTypeStarRating:
		if n, err := strconv.Atoi(strings.TrimSpace(stored)); err == nil && n >= 1 && n <= maxStars {
			return DisplayValue{Kind: DisplayStars, Stars: n}
		}
		return DisplayValue{Kind: DisplayText, Text: stored}
	case model.FieldTypeMultipleChoice, model.FieldTypeDropdown:
		if len(f.Options) == 0 {
			return DisplayValue{Kind: DisplayText, Text: stored}
		}
		if label, ok := ResolveLabel(f.Options, stored); ok {
			return DisplayValue{Kind: DisplayLabel, Text: label}
		}
		return DisplayValue{Kind: DisplayText, Text: stored}
	case model.FieldTypeMultipleSelection:
		if len(f.Options) == 0 {
			return DisplayValue{Kind: DisplayText, Text: stored}
		}
		vals := DecodeMulti(stored)
		labels := make([]string, len(vals))
		for i, v := range vals {
			if label, ok := ResolveLabel(f.Options, v); ok {
				labels[i] = label
			} else {
				labels[i] = v
			}
		}
		return DisplayValue{Kind: DisplayLabels, Labels: labels}
	default:
		return DisplayValue{Kind: DisplayText, Text: stored}
	}
}

// ResolvedResponse pairs a stored response with its display form.
type ResolvedResponse struct {
	model.SubmissionResponse
	Display DisplayValue `json:"display"`
}

// ResolveAll resolves every response of a submission against its
// template. Responses whose field no longer exists degrade to raw text.
func ResolveAll(t model.FormTemplate, rs []model.SubmissionResponse) []ResolvedResponse {
	out := make([]ResolvedResponse, len(rs))
	for i, r := range rs {
		if f, ok := t.FieldByID(r.FieldID); ok {
			out[i] = ResolvedResponse{SubmissionResponse: r, Display: ResolveDisplay(f, r.Value)}
		} else {
			out[i] = ResolvedResponse{SubmissionResponse: r, Display: DisplayValue{Kind: DisplayText, Text: r.Value}}
		}
	}
	return out
}
