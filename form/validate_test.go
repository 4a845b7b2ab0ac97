package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truthtechno/lockerroom-evals/model"
)

func TestValidateTemplateRef(t *testing.T) {
	assert.NoError(t, ValidateTemplateRef("b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d201"))
	assert.NoError(t, ValidateTemplateRef("  b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d201  "))

	for _, bad := range []string{"", "   ", "42", "not-a-uuid", "b2c0fe22"} {
		err := ValidateTemplateRef(bad)
		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr, "ref %q", bad)
		assert.Equal(t, "formTemplateId", verr.Fields[0].Field)
	}
}

func TestValidateSubject(t *testing.T) {
	manual := &model.StudentData{Name: "Marcus Webb"}

	assert.NoError(t, ValidateSubject("a1b9fd11-6b3c-4f86-9e01-2d5a9be0c101", nil))
	assert.NoError(t, ValidateSubject("", manual))

	err := ValidateSubject("a1b9fd11-6b3c-4f86-9e01-2d5a9be0c101", manual)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "evaluation subject is ambiguous", verr.Msg)

	// whitespace counts as no reference at all
	err = ValidateSubject("   ", nil)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "evaluation subject is missing", verr.Msg)

	err = ValidateSubject("", &model.StudentData{Name: "   ", Position: "Forward"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Player name is required for manual entry", verr.Msg)
	assert.Equal(t, "studentData.name", verr.Fields[0].Field)
}

func TestValidateSubmit(t *testing.T) {
	tpl := model.FormTemplate{
		Fields: []model.FormField{
			{ID: "head", Type: model.FieldTypeSectionHeader, Label: "Basics"},
			{ID: "date", Type: model.FieldTypeDate, Label: "Match date", Required: true},
			{ID: "stars", Type: model.FieldTypeStarRating, Label: "Performance", Required: true},
			{ID: "notes", Type: model.FieldTypeParagraph, Label: "Notes"},
		},
	}

	// drafts pass with anything, including nothing
	assert.NoError(t, ValidateSubmit(tpl, nil, model.StatusDraft))
	assert.NoError(t, ValidateSubmit(tpl, map[string]string{"date": ""}, model.StatusDraft))

	err := ValidateSubmit(tpl, nil, "finalized")
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Fields[0].Field)

	complete := map[string]string{"date": "2024-03-09", "stars": "4"}
	assert.NoError(t, ValidateSubmit(tpl, complete, model.StatusSubmitted))

	// blanks and missing keys read the same; headers and optional
	// fields never count
	err = ValidateSubmit(tpl, map[string]string{"stars": "   "}, model.StatusSubmitted)
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, model.FieldError{Field: "responses.date", Error: "Match date is required"}, verr.Fields[0])
	assert.Equal(t, model.FieldError{Field: "responses.stars", Error: "Performance is required"}, verr.Fields[1])

	// the gate is a pure read: same inputs, same verdict
	again := ValidateSubmit(tpl, map[string]string{"stars": "   "}, model.StatusSubmitted)
	assert.Equal(t, err, again)
}

func TestNormalizeTemplate(t *testing.T) {
	tpl := model.FormTemplate{
		Name:        "  Trial Notes  ",
		Description: " quick look ",
		Fields: []model.FormField{
			{Type: model.FieldTypeSectionHeader, Label: " Basics ", Required: true},
			{Type: model.FieldTypeShortText, Label: "Opponent"},
		},
	}
	NormalizeTemplate(&tpl)

	assert.Equal(t, "Trial Notes", tpl.Name)
	assert.Equal(t, "quick look", tpl.Description)
	assert.Equal(t, model.TemplateStatusActive, tpl.Status)
	assert.Equal(t, "Basics", tpl.Fields[0].Label)
	// headers can never be required
	assert.False(t, tpl.Fields[0].Required)
	// ids are minted, order follows position
	for i, f := range tpl.Fields {
		assert.NoError(t, ValidateTemplateRef(f.ID))
		assert.Equal(t, i, f.Order)
	}
	assert.NotEqual(t, tpl.Fields[0].ID, tpl.Fields[1].ID)

	// explicit orders are kept as sent
	withOrder := model.FormTemplate{
		Name:   "n",
		Status: model.TemplateStatusInactive,
		Fields: []model.FormField{
			{ID: "b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d202", Type: model.FieldTypeNumber, Label: "Minutes", Order: 7},
			{Type: model.FieldTypeNumber, Label: "Goals"},
		},
	}
	NormalizeTemplate(&withOrder)
	assert.Equal(t, model.TemplateStatusInactive, withOrder.Status)
	assert.Equal(t, "b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d202", withOrder.Fields[0].ID)
	assert.Equal(t, 7, withOrder.Fields[0].Order)
	assert.Equal(t, 0, withOrder.Fields[1].Order)
}

func TestValidateTemplateFields(t *testing.T) {
	good := []model.FormField{
		{ID: "b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d201", Type: model.FieldTypeShortText, Label: "Opponent"},
		{Type: model.FieldTypeStarRating, Label: "Performance", Order: 1},
	}
	assert.NoError(t, ValidateTemplateFields(good))

	bad := []model.FormField{
		{Type: "checkbox", Label: "  ", Order: -1},
		{ID: "nope", Type: model.FieldTypeNumber, Label: "Minutes"},
		{ID: "b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d201", Type: model.FieldTypeDate, Label: "Date"},
		{ID: "b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d201", Type: model.FieldTypeDate, Label: "Date again"},
	}
	err := ValidateTemplateFields(bad)
	require.Error(t, err)

	fields := TemplateFieldErrors(err)
	require.Len(t, fields, 5)
	assert.Equal(t, model.FieldError{Field: "fields[0].type", Error: `unknown field type "checkbox"`}, fields[0])
	assert.Equal(t, model.FieldError{Field: "fields[0].label", Error: "this field is required"}, fields[1])
	assert.Equal(t, model.FieldError{Field: "fields[0].order", Error: "must not be negative"}, fields[2])
	assert.Equal(t, model.FieldError{Field: "fields[1].id", Error: "must be a valid field id"}, fields[3])
	assert.Equal(t, model.FieldError{Field: "fields[3].id", Error: "duplicates fields[2].id"}, fields[4])
}
