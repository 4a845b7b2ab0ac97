package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/truthtechno/lockerroom-evals/model"
)

// NormalizeTemplate puts a template payload into canonical shape:
// trimmed name, defaulted status, generated field ids, positional order
// when the client sent none, and the section header invariant (headers
// are never required).
func NormalizeTemplate(t *model.FormTemplate) {
	t.Name = strings.TrimSpace(t.Name)
	t.Description = strings.TrimSpace(t.Description)
	if t.Status == "" {
		t.Status = model.TemplateStatusActive
	}

	allZero := true
	for _, f := range t.Fields {
		if f.Order != 0 {
			allZero = false
			break
		}
	}
	for i := range t.Fields {
		f := &t.Fields[i]
		f.Label = strings.TrimSpace(f.Label)
		if f.ID == "" {
			f.ID = uuid.Must(uuid.NewV4()).String()
		}
		if allZero {
			f.Order = i
		}
		if !f.Type.Input() {
			f.Required = false
		}
	}
}

type fieldProblem struct {
	field string
	msg   string
}

func (p fieldProblem) Error() string {
	return p.field + ": " + p.msg
}

// ValidateTemplateFields checks the dynamic part of a template payload
// and reports every problem at once rather than stopping at the first.
func ValidateTemplateFields(fields []model.FormField) error {
	var errs *multierror.Error
	seen := make(map[string]int, len(fields))
	for i, f := range fields {
		path := fmt.Sprintf("fields[%d]", i)
		if !f.Type.Valid() {
			errs = multierror.Append(errs, fieldProblem{path + ".type", fmt.Sprintf("unknown field type %q", f.Type)})
		}
		if strings.TrimSpace(f.Label) == "" {
			errs = multierror.Append(errs, fieldProblem{path + ".label", "this field is required"})
		}
		if f.Order < 0 {
			errs = multierror.Append(errs, fieldProblem{path + ".order", "must not be negative"})
		}
		if f.ID != "" {
			if _, err := uuid.FromString(f.ID); err != nil {
				errs = multierror.Append(errs, fieldProblem{path + ".id", "must be a valid field id"})
			} else if prev, dup := seen[f.ID]; dup {
				errs = multierror.Append(errs, fieldProblem{path + ".id", fmt.Sprintf("duplicates fields[%d].id", prev)})
			} else {
				seen[f.ID] = i
			}
		}
	}
	return errs.ErrorOrNil()
}

// TemplateFieldErrors converts a ValidateTemplateFields verdict into
// field errors a client can map back onto its payload.
func TemplateFieldErrors(err error) []model.FieldError {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return []model.FieldError{{Field: "fields", Error: err.Error()}}
	}
	out := make([]model.FieldError, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		if p, ok := e.(fieldProblem); ok {
			out = append(out, model.FieldError{Field: p.field, Error: p.msg})
		} else {
			out = append(out, model.FieldError{Field: "fields", Error: e.Error()})
		}
	}
	return out
}
