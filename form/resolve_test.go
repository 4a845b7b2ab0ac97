package form

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/truthtechno/lockerroom-evals/model"
)

func TestResolveLabelLadder(t *testing.T) {
	opts := model.OptionList{
		{Value: "Fast", Label: "Fast runner"},
		{Value: "fast ", Label: "defined with padding"},
	}

	// exact beats everything
	label, ok := ResolveLabel(opts, "Fast")
	assert.True(t, ok)
	assert.Equal(t, "Fast runner", label)

	// trimmed comparison finds the padded option
	label, ok = ResolveLabel(opts, "fast")
	assert.True(t, ok)
	assert.Equal(t, "defined with padding", label)

	// case-insensitive is the last rung
	label, ok = ResolveLabel(opts, " FAST ")
	assert.True(t, ok)
	assert.Equal(t, "Fast runner", label)

	_, ok = ResolveLabel(opts, "slow")
	assert.False(t, ok)
}

func TestResolveDisplayStars(t *testing.T) {
	f := optField(model.FieldTypeStarRating)

	assert.Equal(t, DisplayValue{Kind: DisplayStars, Stars: 4}, ResolveDisplay(f, "4"))
	assert.Equal(t, DisplayValue{Kind: DisplayStars, Stars: 1}, ResolveDisplay(f, " 1 "))

	// out of range or non numeric values fall back to text
	assert.Equal(t, DisplayValue{Kind: DisplayText, Text: "9"}, ResolveDisplay(f, "9"))
	assert.Equal(t, DisplayValue{Kind: DisplayText, Text: "banana"}, ResolveDisplay(f, "banana"))
}

func TestResolveDisplayChoice(t *testing.T) {
	f := optField(model.FieldTypeMultipleChoice,
		model.Option{Value: "gk", Label: "Goalkeeper"},
	)

	assert.Equal(t, DisplayValue{Kind: DisplayLabel, Text: "Goalkeeper"}, ResolveDisplay(f, "gk"))
	assert.Equal(t, DisplayValue{Kind: DisplayLabel, Text: "Goalkeeper"}, ResolveDisplay(f, " GK "))

	// a value no option claims renders raw, not blank
	assert.Equal(t, DisplayValue{Kind: DisplayText, Text: "st"}, ResolveDisplay(f, "st"))

	// no options at all: render verbatim
	bare := optField(model.FieldTypeDropdown)
	assert.Equal(t, DisplayValue{Kind: DisplayText, Text: "whatever"}, ResolveDisplay(bare, "whatever"))
}

func TestResolveDisplayMultiSelection(t *testing.T) {
	f := optField(model.FieldTypeMultipleSelection,
		model.Option{Value: "speed", Label: "Speed"},
		model.Option{Value: "vision", Label: "Vision"},
	)

	got := ResolveDisplay(f, "speed,vision")
	assert.Equal(t, DisplayValue{Kind: DisplayLabels, Labels: []string{"Speed", "Vision"}}, got)

	got = ResolveDisplay(f, `["speed","stamina"]`)
	assert.Equal(t, DisplayValue{Kind: DisplayLabels, Labels: []string{"Speed", "stamina"}}, got)

	// no options: raw stored value, not a decoded list
	bare := optField(model.FieldTypeMultipleSelection)
	assert.Equal(t, DisplayValue{Kind: DisplayText, Text: "a,b"}, ResolveDisplay(bare, "a,b"))
}

func TestResolveDisplayTextTypes(t *testing.T) {
	for _, ft := range []model.FieldType{
		model.FieldTypeShortText,
		model.FieldTypeParagraph,
		model.FieldTypeNumber,
		model.FieldTypeDate,
	} {
		got := ResolveDisplay(optField(ft), "raw value")
		assert.Equal(t, DisplayValue{Kind: DisplayText, Text: "raw value"}, got, "type %s", ft)
	}
}

func TestResolveAll(t *testing.T) {
	tpl := model.FormTemplate{
		Fields: []model.FormField{
			{ID: "stars", Type: model.FieldTypeStarRating, Label: "Performance"},
		},
	}
	rs := []model.SubmissionResponse{
		{FieldID: "stars", Value: "5"},
		{FieldID: "deleted-field", Value: "kept text"},
	}

	got := ResolveAll(tpl, rs)
	assert.Len(t, got, 2)
	assert.Equal(t, DisplayValue{Kind: DisplayStars, Stars: 5}, got[0].Display)
	// responses to deleted fields still render, raw
	assert.Equal(t, DisplayValue{Kind: DisplayText, Text: "kept text"}, got[1].Display)
	assert.Equal(t, "deleted-field", got[1].FieldID)
}
