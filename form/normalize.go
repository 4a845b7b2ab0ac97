package form

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/truthtechno/lockerroom-evals/model"
)

const dateLayout = "2006-01-02"

// NormalizeResponse checks one incoming value against its field type
// and returns the canonical text to store. Blank input is never an
// error here: absence is handled by the submit gate, not per field.
func NormalizeResponse(f model.FormField, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", nil
	}

	switch f.Type {
	case model.FieldTypeSectionHeader:
		return "", fmt.Errorf("section headers do not take a response")
	case model.FieldTypeShortText, model.FieldTypeParagraph:
		return v, nil
	case model.FieldTypeStarRating:
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxStars {
			return "", fmt.Errorf("must be a rating between 1 and %d", maxStars)
		}
		return strconv.Itoa(n), nil
	case model.FieldTypeNumber:
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return "", fmt.Errorf("must be a number")
		}
		return v, nil
	case model.FieldTypeDate:
		if _, err := time.Parse(dateLayout, v); err != nil {
			return "", fmt.Errorf("must be a date in YYYY-MM-DD format")
		}
		return v, nil
	case model.FieldTypeMultipleChoice, model.FieldTypeDropdown:
		if len(f.Options) == 0 {
			// a field whose options failed to parse still accepts input
			return v, nil
		}
		if o, ok := matchOption(f.Options, v); ok {
			return o.Value, nil
		}
		return "", fmt.Errorf("%q is not one of the available options", v)
	case model.FieldTypeMultipleSelection:
		vals := DecodeMulti(v)
		if len(f.Options) == 0 {
			return EncodeMulti(vals), nil
		}
		canon := make([]string, len(vals))
		for i, val := range vals {
			o, ok := matchOption(f.Options, val)
			if !ok {
				return "", fmt.Errorf("%q is not one of the available options", val)
			}
			canon[i] = o.Value
		}
		return EncodeMulti(canon), nil
	default:
		return "", fmt.Errorf("unknown field type %q", f.Type)
	}
}

// NormalizeAll runs NormalizeResponse over a whole response list and
// collapses it into a field id keyed map. Entries referencing fields
// the template does not have are rejected, not dropped.
func NormalizeAll(t model.FormTemplate, rs []model.SubmissionResponse) (map[string]string, error) {
	m := make(map[string]string, len(rs))
	var problems []model.FieldError
	for _, r := range rs {
		f, ok := t.FieldByID(r.FieldID)
		if !ok {
			problems = append(problems, model.FieldError{
				Field: "responses." + r.FieldID,
				Error: "no such field on this form",
			})
			continue
		}
		v, err := NormalizeResponse(f, r.Value)
		if err != nil {
			problems = append(problems, model.FieldError{
				Field: "responses." + r.FieldID,
				Error: err.Error(),
			})
			continue
		}
		if v != "" {
			m[f.ID] = v
		}
	}
	if len(problems) > 0 {
		return nil, model.NewValidationError("invalid responses", problems...)
	}
	return m, nil
}

// BuildResponses flattens a normalized response map into storage order.
// Blank values and section headers never make it into the result.
func BuildResponses(t model.FormTemplate, responses map[string]string) []model.SubmissionResponse {
	out := make([]model.SubmissionResponse, 0, len(responses))
	for _, f := range t.Fields {
		if !f.Type.Input() {
			continue
		}
		v, ok := responses[f.ID]
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		out = append(out, model.SubmissionResponse{FieldID: f.ID, Value: v})
	}
	return out
}

// ResponseMap indexes stored responses by field id.
func ResponseMap(rs []model.SubmissionResponse) map[string]string {
	m := make(map[string]string, len(rs))
	for _, r := range rs {
		m[r.FieldID] = r.Value
	}
	return m
}
