package form

import (
	"strings"

	"github.com/gofrs/uuid"

	"github.com/truthtechno/lockerroom-evals/model"
)

// ValidateTemplateRef rejects template references that are not UUID
// shaped before anything touches the database.
func ValidateTemplateRef(id string) error {
	if _, err := uuid.FromString(strings.TrimSpace(id)); err != nil {
		return model.NewValidationError("invalid form template reference",
			model.FieldError{Field: "formTemplateId", Error: "must be a valid template id"})
	}
	return nil
}

// ValidateSubject enforces the one subject rule: an evaluation names a
// roster player or carries a manual entry, never both, never neither.
func ValidateSubject(studentID string, manual *model.StudentData) error {
	hasRef := strings.TrimSpace(studentID) != ""
	switch {
	case hasRef && manual != nil:
		return model.NewValidationError("evaluation subject is ambiguous",
			model.FieldError{Field: "studentId", Error: "pick a roster player or enter one manually, not both"})
	case !hasRef && manual == nil:
		return model.NewValidationError("evaluation subject is missing",
			model.FieldError{Field: "studentId", Error: "a roster player or a manual entry is required"})
	case !hasRef && manual.Blank():
		return model.NewValidationError("Player name is required for manual entry",
			model.FieldError{Field: "studentData.name", Error: "this field is required"})
	}
	return nil
}

// ValidateSubmit is the draft to submitted gate. Drafts always pass.
// Submitted requires every required input field to carry a non blank
// response, and the verdict names each missing field. The check is a
// pure read: running it twice over the same inputs yields the same
// verdict.
func ValidateSubmit(t model.FormTemplate, responses map[string]string, status model.SubmissionStatus) error {
	if !status.Valid() {
		return model.NewValidationError("invalid submission status",
			model.FieldError{Field: "status", Error: "must be draft or submitted"})
	}
	if status != model.StatusSubmitted {
		return nil
	}
	var missing []model.FieldError
	for _, f := range t.Fields {
		if !f.Required || !f.Type.Input() {
			continue
		}
		if strings.TrimSpace(responses[f.ID]) == "" {
			missing = append(missing, model.FieldError{
				Field: "responses." + f.ID,
				Error: f.Label + " is required",
			})
		}
	}
	if len(missing) > 0 {
		return model.NewValidationError("missing required fields", missing...)
	}
	return nil
}
